package xmlutil

import (
	"github.com/antchfx/xmlquery"
)

// AppendChild links n as the last child of parent.
func AppendChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	if parent.FirstChild == nil {
		parent.FirstChild = n
	} else {
		parent.LastChild.NextSibling = n
		n.PrevSibling = parent.LastChild
	}
	parent.LastChild = n
}

// Copy returns a deep copy of n and its subtree. The copy shares no
// mutable state with n; its Parent and sibling links are nil, so it can
// be handed to a consumer while the source tree is trimmed or mutated.
func Copy(n *xmlquery.Node) *xmlquery.Node {
	c := StartTag(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		AppendChild(c, Copy(child))
	}
	return c
}

// StartTag returns a copy of n's start tag only: the node with its
// attributes but no children and no tree links.
func StartTag(n *xmlquery.Node) *xmlquery.Node {
	c := &xmlquery.Node{
		Type:         n.Type,
		Data:         n.Data,
		Prefix:       n.Prefix,
		NamespaceURI: n.NamespaceURI,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]xmlquery.Attr, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	return c
}

// Trim releases memory held by already-processed parts of the tree
// around n, which must have been dispatched (copied out) already.
//
// It clears n's own attributes and children, then unlinks every sibling
// preceding n from n's parent. Later siblings, n itself and all of n's
// ancestors are left in place: they are still required to finish
// parsing the document.
func Trim(n *xmlquery.Node) {
	n.Attr = nil
	n.FirstChild = nil
	n.LastChild = nil
	parent := n.Parent
	if parent == nil {
		return
	}
	for n.PrevSibling != nil {
		first := parent.FirstChild
		parent.FirstChild = first.NextSibling
		if first.NextSibling != nil {
			first.NextSibling.PrevSibling = nil
		}
		first.NextSibling = nil
		first.Parent = nil
	}
}
