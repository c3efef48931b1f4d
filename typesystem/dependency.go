package typesystem

import (
	"sort"

	"github.com/dlr-sc/cpacsgen/internal/dependency"
)

// classNamesSorted returns ts.Classes' keys in deterministic order, so
// that Graph.Add calls below (and hence the edge lists they produce)
// never depend on Go's randomized map iteration order.
func classNamesSorted(ts *TypeSystem) []string {
	names := make([]string, 0, len(ts.Classes))
	for name := range ts.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rebuildDependencies recomputes every Class's and Enum's Dependencies
// from scratch, per spec.md §4.3.1 and §5: transforms mutate the model
// and then this function is called again rather than patching edges
// incrementally, so a bug in one transform's bookkeeping cannot survive
// into the next.
func rebuildDependencies(ts *TypeSystem) {
	var (
		bases    dependency.Graph // class -> its base class
		children dependency.Graph // class -> classes referenced by its fields
		enumRefs dependency.Graph // class -> enums referenced by its fields
	)

	for _, name := range classNamesSorted(ts) {
		c := ts.Classes[name]
		if c.Base != "" {
			bases.Add(c.Name, c.Base)
		}
		for _, f := range c.Fields {
			if _, ok := ts.Classes[f.Type]; ok {
				children.Add(c.Name, f.Type)
			} else if _, ok := ts.Enums[f.Type]; ok {
				enumRefs.Add(c.Name, f.Type)
			}
		}
	}

	for name, c := range ts.Classes {
		c.Deps = Dependencies{
			Bases:           bases.Edges(name),
			XMLChildClasses: children.Edges(name),
			XMLChildEnums:   enumRefs.Edges(name),
		}
	}
	for _, e := range ts.Enums {
		e.Deps = EnumDependencies{}
	}
	// Deriveds and XMLParents are the transpose of Bases/XMLChildClasses;
	// build them by walking every class's forward edges once.
	for _, name := range classNamesSorted(ts) {
		c := ts.Classes[name]
		for _, b := range c.Deps.Bases {
			if base, ok := ts.Classes[b]; ok {
				base.Deps.Deriveds = insertSorted(base.Deps.Deriveds, c.Name)
			}
		}
		for _, child := range c.Deps.XMLChildClasses {
			if cc, ok := ts.Classes[child]; ok {
				cc.Deps.XMLParents = insertSorted(cc.Deps.XMLParents, c.Name)
			}
		}
		for _, e := range c.Deps.XMLChildEnums {
			if enum, ok := ts.Enums[e]; ok {
				enum.Deps.XMLParents = insertSorted(enum.Deps.XMLParents, c.Name)
			}
		}
	}

	// Enums with no referencing class still need a deterministic Deps
	// value (an empty, non-nil XMLParents slice); range once more to guarantee every enum was visited
	// even if the loop above skipped it (a pruned-and-orphaned enum).
	for _, e := range ts.Enums {
		if e.Deps.XMLParents == nil {
			e.Deps.XMLParents = []string{}
		}
	}
}

func insertSorted(set []string, s string) []string {
	i := 0
	for i < len(set) && set[i] < s {
		i++
	}
	if i < len(set) && set[i] == s {
		return set
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = s
	return set
}
