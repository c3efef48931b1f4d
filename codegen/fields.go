package codegen

import (
	"fmt"

	"github.com/dlr-sc/cpacsgen/typesystem"
)

// goBuiltin maps the logical fundamental-type names tables.FundamentalTypes
// produces (see testdata/tables/valid/FundamentalTypes.txt: "xsd:double
// double") onto the Go builtin each one is stored as.
var goBuiltin = map[string]string{
	"string": "string",
	"double": "float64",
	"int":    "int",
	"bool":   "bool",
}

// fundamentalGoType resolves a fundamental-type name to its Go spelling,
// falling back to the name itself so an unrecognized fundamental (a
// table typo, or a future addition to FundamentalTypes.txt) still emits
// something rather than silently vanishing.
func fundamentalGoType(name string) string {
	if g, ok := goBuiltin[name]; ok {
		return g
	}
	return name
}

func isClassType(ts *typesystem.TypeSystem, name string) bool {
	_, ok := ts.Classes[name]
	return ok
}

func isEnumType(ts *typesystem.TypeSystem, name string) bool {
	_, ok := ts.Enums[name]
	return ok
}

// referencedTypeName is the bare Go type name a field's Type resolves to:
// a class's emitted name (for a custom-overridden class this is the
// package-local alias genCustomOverride declares, e.g. "CPACSPoint" for
// "type CPACSPoint = tigl.CTiglPoint" — using the alias rather than the
// raw CustomTypes.txt spelling means a field of this type needs no
// knowledge of, or import for, the external package), an enum's emitted
// name, or a fundamental's Go builtin.
func referencedTypeName(ts *typesystem.TypeSystem, typeName string) string {
	if c, ok := ts.Classes[typeName]; ok {
		return c.Name
	}
	if e, ok := ts.Enums[typeName]; ok {
		return e.Name
	}
	return fundamentalGoType(typeName)
}

// goType is the storage type a Field occupies on its owning struct, per
// the cardinality/construct table: Mandatory scalars are stored bare,
// Mandatory classes by pointer (a class is never embedded by value,
// since it may itself carry a parent pointer back up), Optional values
// of either shape are wrapped in cpacsio.Optional, and Vector fields are
// Go slices (of values for scalars, of pointers for classes).
func goType(ts *typesystem.TypeSystem, f *typesystem.Field) string {
	base := referencedTypeName(ts, f.Type)
	class := isClassType(ts, f.Type)

	switch f.Card {
	case typesystem.Mandatory:
		if class {
			return "*" + base
		}
		return base
	case typesystem.Optional:
		if class {
			return fmt.Sprintf("cpacsio.Optional[*%s]", base)
		}
		return fmt.Sprintf("cpacsio.Optional[%s]", base)
	case typesystem.Vector:
		if class {
			return "[]*" + base
		}
		return "[]" + base
	default:
		return base
	}
}

// fieldReceiver is the receiver identifier codegen uses for every method
// of an emitted class or enum: the type name's first letter, lowercased
// if it is an ASCII capital ("c" for every CPACS-prefixed name, and for
// an empty name). No collision mangling is applied.
func fieldReceiver(className string) string {
	if className == "" {
		return "c"
	}
	r := className[0]
	if r >= 'A' && r <= 'Z' {
		r = r - 'A' + 'a'
	}
	return string(r)
}
