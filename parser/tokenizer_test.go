package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainTokens(t *testing.T, z *Tokenizer) []Token {
	t.Helper()
	var toks []Token
	for {
		tok, err := z.Next()
		if err == ErrMoreData {
			return toks
		}
		require.NoError(t, err)
		toks = append(toks, tok)
	}
}

const tokenizerDoc = `<?xml version="1.0"?><root a="1" b='two'><!--note--><item>text &amp; more</item><empty/><![CDATA[<raw>]]></root>`

func wantTokens() []Token {
	return []Token{
		{Kind: KindProcInst, Name: "xml", Text: []byte(`version="1.0"`)},
		{Kind: KindStartElement, Name: "root", Attrs: []Attr{{Name: "a", Value: "1"}, {Name: "b", Value: "two"}}},
		{Kind: KindComment, Text: []byte("note")},
		{Kind: KindStartElement, Name: "item"},
		{Kind: KindCharData, Text: []byte("text & more")},
		{Kind: KindEndElement, Name: "item"},
		{Kind: KindStartElement, Name: "empty", SelfClosing: true},
		{Kind: KindCData, Text: []byte("<raw>")},
		{Kind: KindEndElement, Name: "root"},
	}
}

func TestTokenizer(t *testing.T) {
	z := &Tokenizer{}
	z.Feed([]byte(tokenizerDoc))
	assert.Equal(t, wantTokens(), drainTokens(t, z))
	assert.Equal(t, len(tokenizerDoc), z.Offset())
}

func TestTokenizerByteAtATime(t *testing.T) {
	z := &Tokenizer{}
	var toks []Token
	for i := 0; i < len(tokenizerDoc); i++ {
		z.Feed([]byte{tokenizerDoc[i]})
		toks = append(toks, drainTokens(t, z)...)
	}
	assert.Equal(t, wantTokens(), toks)
}

func TestTokenizerPartialMarkup(t *testing.T) {
	z := &Tokenizer{}
	for _, piece := range []string{"<", "roo", `t a="x`, `>y"`} {
		z.Feed([]byte(piece))
		_, err := z.Next()
		require.Equal(t, ErrMoreData, err, "piece %q", piece)
	}
	z.Feed([]byte(">"))
	tok, err := z.Next()
	require.NoError(t, err)
	assert.Equal(t, Token{Kind: KindStartElement, Name: "root", Attrs: []Attr{{Name: "a", Value: "x>y"}}}, tok)

	for _, piece := range []string{"<!-", "-note-", "->"} {
		z.Feed([]byte(piece))
	}
	tok, err = z.Next()
	require.NoError(t, err)
	assert.Equal(t, Token{Kind: KindComment, Text: []byte("note")}, tok)
}

func TestTokenizerErrors(t *testing.T) {
	for _, tc := range []struct {
		input   string
		wantMsg string
	}{
		{input: `<root a>`, wantMsg: `attribute "a" missing value`},
		{input: `<root a=1>`, wantMsg: `attribute "a" value must be quoted`},
		{input: `<1bad>`, wantMsg: `invalid element name "1bad"`},
		{input: `</>`, wantMsg: `invalid end tag ""`},
		{input: `&foo;<x>`, wantMsg: `undefined entity &foo;`},
		{input: `one & two<x>`, wantMsg: `unterminated entity reference`},
		{input: `<x y="&nope;">`, wantMsg: `undefined entity &nope;`},
		{input: `<??>`, wantMsg: `invalid processing instruction target ""`},
		{input: `<?>?>`, wantMsg: `invalid processing instruction target ">"`},
		{input: `<?1bad data?>`, wantMsg: `invalid processing instruction target "1bad"`},
	} {
		t.Run(tc.input, func(t *testing.T) {
			z := &Tokenizer{}
			z.Feed([]byte(tc.input))
			_, err := z.Next()
			require.Error(t, err)
			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Contains(t, serr.Error(), tc.wantMsg)
		})
	}
}

func TestTokenizerProcInstIncomplete(t *testing.T) {
	// a lone "<?>" is an incomplete instruction, not a terminated one:
	// the '?' of the opening "<?" must never match as the terminator
	z := &Tokenizer{}
	z.Feed([]byte("<?>"))
	_, err := z.Next()
	require.Equal(t, ErrMoreData, err)

	z.Feed([]byte("?>"))
	_, err = z.Next()
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Error(), "invalid processing instruction target")
}

func TestTokenizerEntities(t *testing.T) {
	z := &Tokenizer{}
	z.Feed([]byte(`&lt;&gt;&amp;&apos;&quot;&#65;&#x42;<x>`))
	tok, err := z.Next()
	require.NoError(t, err)
	assert.Equal(t, `<>&'"AB`, string(tok.Text))
}
