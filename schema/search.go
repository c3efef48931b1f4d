package schema

import "github.com/dlr-sc/cpacsgen/internal/xmltree"

// firstChildNamed returns the first direct child of el in the schema
// namespace with the given local name, or nil.
func firstChildNamed(el *xmltree.Element, local string) *xmltree.Element {
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space == schemaNS && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// childrenNamed returns every direct child of el in the schema
// namespace with the given local name, in document order.
func childrenNamed(el *xmltree.Element, local string) []*xmltree.Element {
	var out []*xmltree.Element
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space == schemaNS && c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

func hasChildNamed(el *xmltree.Element, local string) bool {
	return firstChildNamed(el, local) != nil
}
