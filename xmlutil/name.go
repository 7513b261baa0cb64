// Package xmlutil provides helpers for working with xmlquery element
// trees and XML names: qualified-name formatting, namespace prefix
// maps, deep copies and the sibling-trimming operation used by the
// streaming loop.
package xmlutil

import (
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

// XMLName is a shortcut for creating xml.Name, where typically you want at least
// a local name, and perhaps a namespace value as well.
func XMLName(local string, spaces ...string) xml.Name {
	n := xml.Name{Local: local}
	if len(spaces) > 0 {
		n.Space = spaces[0]
	}
	return n
}

// Name returns the qualified (prefix:local) name of an element node,
// or its local name when the element carries no prefix.
func Name(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// SplitName splits a qualified XML name into its prefix and local
// parts. Names without a colon have an empty prefix.
func SplitName(name string) (prefix, local string) {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}
