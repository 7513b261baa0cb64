package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind enumerates the token kinds produced by the Tokenizer.
type Kind int

const (
	// KindStartElement is a start tag, possibly self-closing.
	KindStartElement Kind = iota
	// KindEndElement is an end tag.
	KindEndElement
	// KindCharData is character data with entity references decoded.
	KindCharData
	// KindCData is a CDATA section, passed through verbatim.
	KindCData
	// KindComment is a comment; Text holds the comment body.
	KindComment
	// KindProcInst is a processing instruction or XML declaration.
	KindProcInst
	// KindDirective is a <!...> directive such as DOCTYPE.
	KindDirective
)

// Attr is a single element attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Token is one complete piece of XML markup or character data.
type Token struct {
	Kind        Kind
	Name        string // qualified tag name, or ProcInst target
	Attrs       []Attr
	Text        []byte
	SelfClosing bool
}

// Tokenizer splits an incrementally fed byte stream into XML tokens.
//
// Feed appends bytes to the internal buffer; Next consumes and returns
// the next complete token, or ErrMoreData when the buffer ends inside a
// partial token. Character data is held back until the markup following
// it has started to arrive, so an entity reference can never be split
// by a chunk boundary.
//
// Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	buf  []byte
	base int
}

// Feed appends p to the tokenizer's input buffer.
func (z *Tokenizer) Feed(p []byte) { z.buf = append(z.buf, p...) }

// Offset returns the absolute input offset of the first unconsumed byte.
func (z *Tokenizer) Offset() int { return z.base }

func (z *Tokenizer) advance(n int) {
	z.buf = z.buf[n:]
	z.base += n
}

// Next returns the next complete token from the buffered input.
func (z *Tokenizer) Next() (Token, error) {
	if len(z.buf) == 0 {
		return Token{}, ErrMoreData
	}
	if z.buf[0] != '<' {
		return z.scanText()
	}
	return z.scanMarkup()
}

func (z *Tokenizer) scanText() (Token, error) {
	idx := bytes.IndexByte(z.buf, '<')
	if idx < 0 {
		return Token{}, ErrMoreData
	}
	text, err := unescape(z.buf[:idx], z.base)
	if err != nil {
		return Token{}, err
	}
	z.advance(idx)
	return Token{Kind: KindCharData, Text: text}, nil
}

var (
	markComment = []byte("<!--")
	markCData   = []byte("<![CDATA[")
)

func (z *Tokenizer) scanMarkup() (Token, error) {
	if len(z.buf) < 2 {
		return Token{}, ErrMoreData
	}
	switch z.buf[1] {
	case '!':
		switch {
		case bytes.HasPrefix(z.buf, markComment):
			return z.scanDelimited(markComment, []byte("-->"), KindComment)
		case bytes.HasPrefix(markComment, z.buf):
			return Token{}, ErrMoreData
		case bytes.HasPrefix(z.buf, markCData):
			return z.scanDelimited(markCData, []byte("]]>"), KindCData)
		case len(z.buf) < len(markCData) && bytes.HasPrefix(markCData, z.buf):
			return Token{}, ErrMoreData
		default:
			return z.scanDirective()
		}
	case '?':
		return z.scanProcInst()
	}
	return z.scanTag()
}

// scanDelimited consumes a token opened by intro and terminated by the
// outro marker, such as comments and CDATA sections.
func (z *Tokenizer) scanDelimited(intro, outro []byte, kind Kind) (Token, error) {
	i := bytes.Index(z.buf[len(intro):], outro)
	if i < 0 {
		return Token{}, ErrMoreData
	}
	text := z.buf[len(intro) : len(intro)+i]
	z.advance(len(intro) + i + len(outro))
	return Token{Kind: kind, Text: text}, nil
}

func (z *Tokenizer) scanProcInst() (Token, error) {
	// search past the opening "<?" so its '?' cannot match the terminator
	i := bytes.Index(z.buf[2:], []byte("?>"))
	if i < 0 {
		return Token{}, ErrMoreData
	}
	content := z.buf[2 : 2+i]
	offset := z.base
	target := content
	if sp := bytes.IndexFunc(content, isSpaceRune); sp >= 0 {
		target = content[:sp]
		content = content[sp+1:]
	} else {
		content = nil
	}
	if !validName(string(target)) {
		return Token{}, &SyntaxError{
			Msg:    fmt.Sprintf("invalid processing instruction target %q", target),
			Offset: offset,
		}
	}
	tok := Token{Kind: KindProcInst, Name: string(target), Text: content}
	z.advance(2 + i + 2)
	return tok, nil
}

// scanDirective consumes a <!...> directive. Internal DTD subsets are
// not supported; a directive ends at the first '>' outside quotes.
func (z *Tokenizer) scanDirective() (Token, error) {
	end := scanToTagEnd(z.buf)
	if end < 0 {
		return Token{}, ErrMoreData
	}
	text := z.buf[2:end]
	z.advance(end + 1)
	return Token{Kind: KindDirective, Text: text}, nil
}

func (z *Tokenizer) scanTag() (Token, error) {
	end := scanToTagEnd(z.buf)
	if end < 0 {
		return Token{}, ErrMoreData
	}
	raw := z.buf[1:end]
	offset := z.base
	z.advance(end + 1)
	if len(raw) > 0 && raw[0] == '/' {
		name := string(bytes.TrimSpace(raw[1:]))
		if !validName(name) {
			return Token{}, &SyntaxError{Msg: fmt.Sprintf("invalid end tag %q", name), Offset: offset}
		}
		return Token{Kind: KindEndElement, Name: name}, nil
	}
	tok := Token{Kind: KindStartElement}
	if len(raw) > 0 && raw[len(raw)-1] == '/' {
		tok.SelfClosing = true
		raw = raw[:len(raw)-1]
	}
	if err := parseStartTag(&tok, raw, offset); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// scanToTagEnd returns the index of the '>' terminating the markup at
// the head of b, honouring quoted attribute values, or -1 if the tag is
// still incomplete.
func scanToTagEnd(b []byte) int {
	var quote byte
	for i := 1; i < len(b); i++ {
		c := b[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i
		}
	}
	return -1
}

func parseStartTag(tok *Token, raw []byte, offset int) error {
	i := 0
	for i < len(raw) && !isSpace(raw[i]) {
		i++
	}
	name := string(raw[:i])
	if !validName(name) {
		return &SyntaxError{Msg: fmt.Sprintf("invalid element name %q", name), Offset: offset}
	}
	tok.Name = name
	for {
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) {
			return nil
		}
		start := i
		for i < len(raw) && raw[i] != '=' && !isSpace(raw[i]) {
			i++
		}
		attr := Attr{Name: string(raw[start:i])}
		if !validName(attr.Name) {
			return &SyntaxError{Msg: fmt.Sprintf("invalid attribute name %q", attr.Name), Offset: offset}
		}
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || raw[i] != '=' {
			return &SyntaxError{Msg: fmt.Sprintf("attribute %q missing value", attr.Name), Offset: offset}
		}
		i++
		for i < len(raw) && isSpace(raw[i]) {
			i++
		}
		if i >= len(raw) || (raw[i] != '"' && raw[i] != '\'') {
			return &SyntaxError{Msg: fmt.Sprintf("attribute %q value must be quoted", attr.Name), Offset: offset}
		}
		q := raw[i]
		i++
		start = i
		for i < len(raw) && raw[i] != q {
			i++
		}
		if i >= len(raw) {
			return &SyntaxError{Msg: fmt.Sprintf("attribute %q value not terminated", attr.Name), Offset: offset}
		}
		val, err := unescape(raw[start:i], offset)
		if err != nil {
			return err
		}
		attr.Value = string(val)
		i++
		tok.Attrs = append(tok.Attrs, attr)
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func isSpaceRune(r rune) bool { return r == ' ' || r == '\t' || r == '\r' || r == '\n' }

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= 0x80, c == '_', c == ':':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// unescape decodes entity references in b, returning b unchanged when
// it contains none.
func unescape(b []byte, offset int) ([]byte, error) {
	if bytes.IndexByte(b, '&') < 0 {
		return b, nil
	}
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		amp := bytes.IndexByte(b, '&')
		if amp < 0 {
			out = append(out, b...)
			break
		}
		out = append(out, b[:amp]...)
		b = b[amp:]
		semi := bytes.IndexByte(b, ';')
		if semi < 0 || semi > 12 {
			return nil, &SyntaxError{Msg: "unterminated entity reference", Offset: offset}
		}
		r, err := decodeEntity(string(b[1:semi]), offset)
		if err != nil {
			return nil, err
		}
		out = utf8.AppendRune(out, r)
		b = b[semi+1:]
	}
	return out, nil
}

func decodeEntity(name string, offset int) (rune, error) {
	switch name {
	case "lt":
		return '<', nil
	case "gt":
		return '>', nil
	case "amp":
		return '&', nil
	case "apos":
		return '\'', nil
	case "quot":
		return '"', nil
	}
	if strings.HasPrefix(name, "#") {
		num := name[1:]
		base := 10
		if strings.HasPrefix(num, "x") || strings.HasPrefix(num, "X") {
			base = 16
			num = num[1:]
		}
		if v, err := strconv.ParseUint(num, base, 32); err == nil && utf8.ValidRune(rune(v)) {
			return rune(v), nil
		}
	}
	return 0, &SyntaxError{Msg: fmt.Sprintf("undefined entity &%s;", name), Offset: offset}
}
