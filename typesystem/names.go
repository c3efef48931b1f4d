package typesystem

import (
	"strings"

	"github.com/dlr-sc/cpacsgen/tables"
)

// makeEmittedName turns a schema-level type name into the Go type name
// codegen writes: "CPACS" plus the name with its trailing "Type" suffix
// stripped and its first letter capitalized. It is applied identically
// to complex and simple type names, so "WingType" and "SymmetryAxis"
// (no suffix to strip) become "CPACSWing" and "CPACSSymmetryAxis".
func makeEmittedName(schemaName string) string {
	stem := strings.TrimSuffix(schemaName, "Type")
	if stem == "" {
		stem = schemaName
	}
	return "CPACS" + capitalizeFirst(stem)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// resolver resolves a schema-level type reference (an attribute's or
// element's "type" string) to the name Build should use for a Field's
// Type, plus whether that name is a registered class, a registered
// enum, or a Go builtin standing in for a fundamental/substituted type.
type resolver struct {
	schemaNames map[string]string // schema name -> emitted name, for types Build has registered
	enumSet     map[string]bool   // subset of schemaNames' keys that are enums, not classes
	tbl         *tables.Tables
}

type nameKind int

const (
	kindClass nameKind = iota
	kindEnum
	kindFundamental
)

// resolve implements the type-resolution order: first the registry of
// types Build has already turned into classes/enums, then the
// fundamental-type table, then a single type-substitution step (the
// target is looked up once, not substituted again), in that order. A reference that matches none of these is a hard
// error: every type name appearing in a CPACS schema must resolve to
// something Build or the tables know about.
func (r *resolver) resolve(schemaName string) (name string, kind nameKind) {
	if emitted, ok := r.schemaNames[schemaName]; ok {
		if r.enumSet[schemaName] {
			return emitted, kindEnum
		}
		return emitted, kindClass
	}
	if builtin, ok := r.tbl.FundamentalTypes[schemaName]; ok {
		return builtin, kindFundamental
	}
	if target, ok := r.tbl.SubstitutionFor(schemaName); ok {
		if emitted, ok := r.schemaNames[target]; ok {
			if r.enumSet[target] {
				return emitted, kindEnum
			}
			return emitted, kindClass
		}
		if builtin, ok := r.tbl.FundamentalTypes[target]; ok {
			return builtin, kindFundamental
		}
		// The substitution target isn't itself a name the schema
		// registry or the fundamental-type table knows about: treat
		// it as already being the final emitted class name, e.g. a
		// hand-written base class TypeSubstitution.txt points at
		// directly rather than at another schema type.
		return target, kindClass
	}
	stopf("unknown type %q", schemaName)
	panic("unreachable")
}
