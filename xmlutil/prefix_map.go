package xmlutil

import (
	"sort"

	"github.com/antchfx/xmlquery"
)

// PrefixMap is a prefix to namespace URI map. The default namespace,
// declared by a bare xmlns attribute, is stored under the empty prefix.
type PrefixMap map[string]string

// NewPrefixMap returns a PrefixMap containing the namespace
// declarations found in the passed element attributes.
func NewPrefixMap(attrs ...xmlquery.Attr) PrefixMap {
	pmap := PrefixMap{}
	for _, attr := range attrs {
		switch {
		case attr.Name.Space == "xmlns":
			pmap[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			pmap[""] = attr.Value
		}
	}
	return pmap
}

// Attr returns the prefix map contents as a series of xmlns:<prefix>=<nsuri>
// attributes, sorted lexically by prefix.
func (m PrefixMap) Attr() (a []xmlquery.Attr) {
	for k, v := range m {
		if k == "" {
			a = append(a, xmlquery.Attr{Name: XMLName("xmlns"), Value: v})
			continue
		}
		a = append(a, xmlquery.Attr{Name: XMLName(k, "xmlns"), Value: v})
	}
	if len(a) > 0 {
		// sort lexically by prefix
		sort.Slice(a, func(i int, j int) bool { return a[i].Name.Local < a[j].Name.Local })
	}
	return a
}

// Namespace returns the namespace URI for the given prefix
func (m PrefixMap) Namespace(prefix string) string { return m[prefix] }

// Prefix returns any prefixes found for the namespace URI
func (m PrefixMap) Prefix(nsURI string) (pfxes []string) {
	for k, v := range m {
		if nsURI == v {
			pfxes = append(pfxes, k)
		}
	}
	return pfxes
}
