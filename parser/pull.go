package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/antchfx/xmlquery"

	"github.com/xmlpipe/xmlpipe/xmlutil"
)

// PullParser assembles tokens from an incrementally fed byte stream
// into a partial xmlquery document tree, queueing element nodes as
// parse events.
//
// Which tags queue an event is chosen at construction time: with
// WithStartEvents an element is queued as soon as its start tag is
// parsed (it has attributes but no children yet); with WithEndEvents
// (the default) an element is queued once its end tag closes, in
// document order.
//
// PullParser is not safe for concurrent use.
type PullParser struct {
	z   *Tokenizer
	doc *xmlquery.Node
	cur *xmlquery.Node

	scopes []xmlutil.PrefixMap
	events []*xmlquery.Node
	err    error

	emitStart bool
	emitEnd   bool
	rootSeen  bool
}

// New returns a PullParser configured by the given options.
func New(opts ...Option) *PullParser {
	p := &PullParser{z: &Tokenizer{}, doc: &xmlquery.Node{Type: xmlquery.DocumentNode}}
	p.cur = p.doc
	for _, opt := range opts {
		opt(p)
	}
	if !p.emitStart && !p.emitEnd {
		p.emitEnd = true
	}
	return p
}

// Document returns the partial document tree. The tree is owned by the
// caller driving the parser; it must not be mutated while elements are
// still open except through xmlutil.Trim on dispatched nodes.
func (p *PullParser) Document() *xmlquery.Node { return p.doc }

// Feed appends b to the parser input and consumes every complete token
// it now holds, growing the partial tree and queueing events.
//
// A returned error is fatal for this parser: the same error is returned
// from every later call.
func (p *PullParser) Feed(b []byte) error {
	if p.err != nil {
		return p.err
	}
	p.z.Feed(b)
	for {
		tok, err := p.z.Next()
		if err == ErrMoreData {
			return nil
		}
		if err == nil {
			err = p.apply(tok)
		}
		if err != nil {
			p.err = err
			return err
		}
	}
}

// Drain returns the queued event nodes in document order and clears the
// queue. Event nodes are live members of the partial tree; end-event
// nodes are fully closed, start-event nodes may still gain children.
func (p *PullParser) Drain() []*xmlquery.Node {
	evs := p.events
	p.events = nil
	return evs
}

func (p *PullParser) apply(tok Token) error {
	switch tok.Kind {
	case KindStartElement:
		return p.startElement(tok)
	case KindEndElement:
		return p.endElement(tok)
	case KindCharData:
		return p.text(tok, xmlquery.TextNode)
	case KindCData:
		return p.text(tok, xmlquery.CharDataNode)
	case KindComment:
		if p.cur != p.doc {
			xmlutil.AppendChild(p.cur, &xmlquery.Node{Type: xmlquery.CommentNode, Data: string(tok.Text)})
		}
	case KindProcInst, KindDirective:
		// declarations and DOCTYPEs carry no element content
	}
	return nil
}

func (p *PullParser) startElement(tok Token) error {
	if p.cur == p.doc && p.rootSeen {
		return &SyntaxError{Msg: "extra content at end of document", Offset: p.z.Offset()}
	}
	prefix, local := xmlutil.SplitName(tok.Name)
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: local, Prefix: prefix}
	for _, a := range tok.Attrs {
		ap, al := xmlutil.SplitName(a.Name)
		n.Attr = append(n.Attr, xmlquery.Attr{Name: xml.Name{Space: ap, Local: al}, Value: a.Value})
	}
	scope := p.scope()
	if decls := xmlutil.NewPrefixMap(n.Attr...); len(decls) > 0 {
		merged := xmlutil.PrefixMap{}
		for k, v := range scope {
			merged[k] = v
		}
		for k, v := range decls {
			merged[k] = v
		}
		scope = merged
	}
	n.NamespaceURI = scope.Namespace(prefix)
	xmlutil.AppendChild(p.cur, n)
	if p.cur == p.doc {
		p.rootSeen = true
	}
	if p.emitStart {
		p.events = append(p.events, n)
	}
	if tok.SelfClosing {
		if p.emitEnd {
			p.events = append(p.events, n)
		}
		return nil
	}
	p.cur = n
	p.scopes = append(p.scopes, scope)
	return nil
}

func (p *PullParser) endElement(tok Token) error {
	if p.cur == p.doc {
		return &SyntaxError{Msg: fmt.Sprintf("unexpected end tag </%s>", tok.Name), Offset: p.z.Offset()}
	}
	if want := xmlutil.Name(p.cur); tok.Name != want {
		return &SyntaxError{
			Msg:    fmt.Sprintf("mismatched end tag: expected </%s>, got </%s>", want, tok.Name),
			Offset: p.z.Offset(),
		}
	}
	if p.emitEnd {
		p.events = append(p.events, p.cur)
	}
	p.cur = p.cur.Parent
	p.scopes = p.scopes[:len(p.scopes)-1]
	return nil
}

func (p *PullParser) text(tok Token, typ xmlquery.NodeType) error {
	if p.cur == p.doc {
		if len(bytes.TrimSpace(tok.Text)) > 0 {
			return &SyntaxError{Msg: "content outside root element", Offset: p.z.Offset()}
		}
		return nil
	}
	if last := p.cur.LastChild; last != nil && last.Type == typ {
		last.Data += string(tok.Text)
		return nil
	}
	xmlutil.AppendChild(p.cur, &xmlquery.Node{Type: typ, Data: string(tok.Text)})
	return nil
}

func (p *PullParser) scope() xmlutil.PrefixMap {
	if len(p.scopes) == 0 {
		return nil
	}
	return p.scopes[len(p.scopes)-1]
}
