package xmlutil

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, s string) *xmlquery.Node {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestCopyIndependence(t *testing.T) {
	doc := parseDoc(t, `<r><a x="1">one</a><b>two</b></r>`)
	r := xmlquery.FindOne(doc, "/r")
	require.NotNil(t, r)

	c := Copy(r)
	assert.Nil(t, c.Parent)
	assert.Nil(t, c.PrevSibling)
	assert.Nil(t, c.NextSibling)
	want := r.OutputXML(true)
	assert.Equal(t, want, c.OutputXML(true))

	// mutating the copy must not show through the source
	c.FirstChild.Attr[0].Value = "changed"
	c.FirstChild.FirstChild.Data = "altered"
	assert.Equal(t, want, r.OutputXML(true))

	// nor the other way around
	c2 := Copy(r)
	Trim(xmlquery.FindOne(doc, "//b"))
	assert.Equal(t, want, c2.OutputXML(true))
}

func TestStartTag(t *testing.T) {
	doc := parseDoc(t, `<r><a x="1">one</a></r>`)
	a := xmlquery.FindOne(doc, "//a")
	st := StartTag(a)
	assert.Equal(t, `<a x="1"></a>`, st.OutputXML(true))
	assert.Nil(t, st.FirstChild)
	assert.Nil(t, st.Parent)
}

func TestTrim(t *testing.T) {
	doc := parseDoc(t, `<r><a/><b/><c k="1"><e/></c><d/></r>`)
	c := xmlquery.FindOne(doc, "//c")
	require.NotNil(t, c)

	Trim(c)
	r := xmlquery.FindOne(doc, "/r")
	assert.Equal(t, `<r><c></c><d></d></r>`, r.OutputXML(true))
	assert.Same(t, c, r.FirstChild)
	assert.Nil(t, c.PrevSibling)
	assert.Nil(t, c.FirstChild)
	assert.Nil(t, c.Attr)
	require.NotNil(t, c.NextSibling)
	assert.Equal(t, "d", c.NextSibling.Data)

	// trimming the last remaining child leaves only that child
	Trim(c.NextSibling)
	assert.Equal(t, `<r><d></d></r>`, r.OutputXML(true))

	// a detached node trims without a parent
	Trim(StartTag(c))
}

func TestAppendChild(t *testing.T) {
	parent := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "p"}
	one := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "one"}
	two := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "two"}
	AppendChild(parent, one)
	AppendChild(parent, two)
	assert.Same(t, one, parent.FirstChild)
	assert.Same(t, two, parent.LastChild)
	assert.Same(t, two, one.NextSibling)
	assert.Same(t, one, two.PrevSibling)
	assert.Same(t, parent, two.Parent)
	assert.Equal(t, `<p><one></one><two></two></p>`, parent.OutputXML(true))
}
