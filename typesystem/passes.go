package typesystem

import (
	"sort"
	"strings"

	"github.com/golang/glog"

	"github.com/dlr-sc/cpacsgen/tables"
)

// CollapseEnums merges structurally identical enums (spec.md §4.3.2):
// two enums collapse if they carry the same number of values, their
// ordered literal spellings are element-wise equal, and their schema
// names are equal once any trailing decimal digits are stripped ("FooType"
// and "FooType2", emitted as CPACSFoo and CPACSFooType2). The
// lexicographically smaller name survives; every field that referenced
// a loser is rewritten to the survivor and the dependency graph is
// rebuilt. Running this pass again on its own output is a no-op: once
// losers are removed from the registry, no group has more than one
// member left to collapse.
func CollapseEnums(ts *TypeSystem) {
	groups := make(map[string][]string)
	for name, e := range ts.Enums {
		groups[collapseKey(name, e)] = append(groups[collapseKey(name, e)], name)
	}

	rewrite := make(map[string]string)
	for _, names := range groups {
		if len(names) < 2 {
			continue
		}
		sort.Strings(names)
		survivor := names[0]
		for _, loser := range names[1:] {
			rewrite[loser] = survivor
		}
	}
	if len(rewrite) == 0 {
		return
	}

	for _, name := range classNamesSorted(ts) {
		for _, f := range ts.Classes[name].Fields {
			if survivor, ok := rewrite[f.Type]; ok {
				f.Type = survivor
			}
		}
	}
	for loser := range rewrite {
		delete(ts.Enums, loser)
	}
	rebuildDependencies(ts)
}

func collapseKey(name string, e *Enum) string {
	values := make([]string, len(e.Values))
	for i, v := range e.Values {
		values[i] = v.Literal
	}
	return stripTrailingDigits(e.SchemaName) + "|" + strings.Join(values, "\x00")
}

func stripTrailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i]
}

// ApplyPruneList flips the Pruned flag (spec.md §4.3.3) on every class
// and enum named in tbl.PruneList, then propagates it to everything
// reachable only through a pruned type: a class or enum with at least
// one referrer (an XML-parent class, or — for a class that is itself a
// base type — a deriving subclass) survives as long as any referrer
// survives; one with no referrers at all is a root and is never pruned
// implicitly. Fields that still reference an explicitly pruned type
// after propagation (the referencing class itself was not reachable
// only through the pruned subtree) are dropped from their owning class,
// so CodeGen never has to special-case a pruned field type.
func ApplyPruneList(ts *TypeSystem, tbl *tables.Tables) {
	for name, c := range ts.Classes {
		c.Pruned = tables.Contains(tbl.PruneList, name)
	}
	for name, e := range ts.Enums {
		e.Pruned = tables.Contains(tbl.PruneList, name)
	}

	for {
		changed := false
		for _, name := range classNamesSorted(ts) {
			c := ts.Classes[name]
			if c.Pruned {
				continue
			}
			referrers := append(append([]string{}, c.Deps.XMLParents...), c.Deps.Deriveds...)
			if len(referrers) == 0 {
				continue
			}
			if allPruned(ts, referrers) {
				c.Pruned = true
				changed = true
			}
		}
		for _, e := range ts.Enums {
			if e.Pruned || len(e.Deps.XMLParents) == 0 {
				continue
			}
			if allPruned(ts, e.Deps.XMLParents) {
				e.Pruned = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, name := range classNamesSorted(ts) {
		c := ts.Classes[name]
		if c.Pruned {
			continue
		}
		kept := c.Fields[:0]
		for _, f := range c.Fields {
			if isPruned(ts, f.Type) {
				glog.Warningf("typesystem: dropping field %q of %q: type %q is pruned", f.Name, c.Name, f.Type)
				continue
			}
			kept = append(kept, f)
		}
		c.Fields = kept
	}

	rebuildDependencies(ts)
}

func allPruned(ts *TypeSystem, names []string) bool {
	for _, n := range names {
		if !isPruned(ts, n) {
			return false
		}
	}
	return true
}

func isPruned(ts *TypeSystem, name string) bool {
	if c, ok := ts.Classes[name]; ok {
		return c.Pruned
	}
	if e, ok := ts.Enums[name]; ok {
		return e.Pruned
	}
	return false
}
