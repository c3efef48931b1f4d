package codegen

import (
	"fmt"
	"go/ast"

	"github.com/dlr-sc/cpacsgen/internal/gen"
	"github.com/dlr-sc/cpacsgen/tables"
	"github.com/dlr-sc/cpacsgen/typesystem"
)

// genClass emits one file per Class: its struct type, parent-pointer
// plumbing (spec.md §4.5), field accessors (spec.md §4.4.2) and the
// ReadCPACS/WriteCPACS pair (xml.go).
func genClass(c *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables, cfg Config) ([]byte, error) {
	if c.CustomOverride != "" {
		return genCustomOverride(c, cfg)
	}

	file := &ast.File{Name: ast.NewIdent(cfg.Package)}

	structDecl, err := genStructDecl(c, ts, tbl)
	if err != nil {
		return nil, err
	}
	file.Decls = append(file.Decls, structDecl)

	ctorDecls, err := genConstructors(c, ts, tbl, cfg)
	if err != nil {
		return nil, err
	}
	file.Decls = append(file.Decls, ctorDecls...)

	accessorDecls, err := genAccessors(c, ts)
	if err != nil {
		return nil, err
	}
	file.Decls = append(file.Decls, accessorDecls...)

	xmlDecls, err := genReadWriteCPACS(c, ts, tbl)
	if err != nil {
		return nil, err
	}
	file.Decls = append(file.Decls, xmlDecls...)

	return gen.FormattedSource(file)
}

// genCustomOverride emits a type alias for a class CustomTypes.txt
// replaces with an externally supplied type, rather than a generated
// struct (spec.md §4.1: CustomTypes "completely replace generation of
// the named class"). The override string uses the CPACS tables'
// "pkg::Type" spelling; translating it to Go's "pkg.Type" selector
// syntax is this generator's job, but resolving that import path is the
// integrator's: goimports cannot discover a package it has never seen,
// so this file still needs a hand-added import when used.
func genCustomOverride(c *typesystem.Class, cfg Config) ([]byte, error) {
	goExpr := toGoSelector(c.CustomOverride)
	file := &ast.File{Name: ast.NewIdent(cfg.Package)}
	decl := gen.TypeDecl(ast.NewIdent(c.Name), ast.NewIdent(goExpr))
	decl.Specs[0].(*ast.TypeSpec).Assign = 1 // print "=": an alias, not a new defined type
	decl.Doc = gen.CommentGroup(fmt.Sprintf(
		"%s is supplied externally (see CustomTypes.txt); add an import for %s.",
		c.Name, goExpr))
	file.Decls = append(file.Decls, decl)
	return gen.FormattedSource(file)
}

func toGoSelector(cpp string) string {
	out := make([]byte, 0, len(cpp))
	for i := 0; i < len(cpp); i++ {
		if cpp[i] == ':' && i+1 < len(cpp) && cpp[i+1] == ':' {
			out = append(out, '.')
			i++
			continue
		}
		out = append(out, cpp[i])
	}
	return string(out)
}

func genStructDecl(c *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables) (ast.Decl, error) {
	var fieldStrs []string
	if c.Base != "" {
		fieldStrs = append(fieldStrs, referencedTypeName(ts, c.Base))
	}
	for _, f := range c.Fields {
		fieldStrs = append(fieldStrs, fmt.Sprintf("%s %s", f.Name, goType(ts, f)))
	}
	switch parentFieldKindOf(c, ts, tbl) {
	case parentFieldSingle, parentFieldMulti:
		fieldStrs = append(fieldStrs, fmt.Sprintf("%s %s", parentFieldName, parentFieldType(c, ts, tbl)))
	}

	fl, err := gen.FieldList(fieldStrs...)
	if err != nil {
		return nil, fmt.Errorf("class %s: %v", c.Name, err)
	}
	decl := gen.TypeDecl(ast.NewIdent(c.Name), &ast.StructType{Fields: fl})
	decl.Doc = gen.CommentGroup(fmt.Sprintf("%s is the implementation-level model of %s.", c.Name, c.SchemaName))
	return decl, nil
}

const parentFieldName = "mParent"

type parentFieldKind int

const (
	parentFieldNone parentFieldKind = iota
	parentFieldSingle
	parentFieldMulti
)

// parentCandidates is the set of non-pruned classes a parent-pointer
// class can actually be constructed under, derived from the dependency
// graph rather than re-walking the schema (spec.md §4.5: "every class
// embedded at more than one point... gets one constructor overload per
// admissible parent").
func parentCandidates(c *typesystem.Class, ts *typesystem.TypeSystem) []string {
	var out []string
	for _, p := range c.Deps.XMLParents {
		if parent, ok := ts.Classes[p]; ok && !parent.Pruned {
			out = append(out, p)
		}
	}
	return out
}

func parentFieldKindOf(c *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables) parentFieldKind {
	if !tbl.ParentPointer[c.Name] {
		return parentFieldNone
	}
	switch len(parentCandidates(c, ts)) {
	case 0:
		return parentFieldNone
	case 1:
		return parentFieldSingle
	default:
		return parentFieldMulti
	}
}

func parentFieldType(c *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables) string {
	switch parentFieldKindOf(c, ts, tbl) {
	case parentFieldSingle:
		return "*" + parentCandidates(c, ts)[0]
	case parentFieldMulti:
		return "cpacsio.ParentRef"
	default:
		return ""
	}
}

func genConstructors(c *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables, cfg Config) ([]ast.Decl, error) {
	var decls []ast.Decl
	kind := parentFieldKindOf(c, ts, tbl)

	switch kind {
	case parentFieldNone:
		fn := gen.Func("New" + c.Name).
			Returns("*" + c.Name).
			Comment(fmt.Sprintf("New%s returns a zero-value %s.", c.Name, c.Name)).
			Body("return &%s{}", c.Name)
		decl, err := fn.Decl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)

	case parentFieldSingle:
		parent := parentCandidates(c, ts)[0]
		fn := gen.Func("New"+c.Name).
			Args(fmt.Sprintf("parent *%s", parent)).
			Returns("*" + c.Name).
			Comment(fmt.Sprintf("New%s returns a %s linked to its parent %s.", c.Name, c.Name, parent)).
			Body("return &%s{%s: parent}", c.Name, parentFieldName)
		decl, err := fn.Decl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
		if cfg.EmitDefaultConstructor {
			dfn := gen.Func("New"+c.Name+"Unlinked").
				Returns("*" + c.Name).
				Comment(fmt.Sprintf("New%sUnlinked returns a %s with no parent set.", c.Name, c.Name)).
				Body("return &%s{}", c.Name)
			ddecl, err := dfn.Decl()
			if err != nil {
				return nil, err
			}
			decls = append(decls, ddecl)
		}

	case parentFieldMulti:
		for _, parent := range parentCandidates(c, ts) {
			fn := gen.Func(fmt.Sprintf("New%sFrom%s", c.Name, parent)).
				Args(fmt.Sprintf("parent *%s", parent)).
				Returns("*" + c.Name).
				Comment(fmt.Sprintf("New%sFrom%s returns a %s linked to its %s parent.", c.Name, parent, c.Name, parent)).
				Body("return &%s{%s: cpacsio.NewParentRef(%q, parent)}", c.Name, parentFieldName, parent)
			decl, err := fn.Decl()
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)
		}
		if cfg.EmitDefaultConstructor {
			dfn := gen.Func("New"+c.Name+"Unlinked").
				Returns("*" + c.Name).
				Comment(fmt.Sprintf("New%sUnlinked returns a %s with no parent set.", c.Name, c.Name)).
				Body("return &%s{}", c.Name)
			ddecl, err := dfn.Decl()
			if err != nil {
				return nil, err
			}
			decls = append(decls, ddecl)
		}
	}

	if kind == parentFieldMulti {
		for _, parent := range parentCandidates(c, ts) {
			fn := gen.Func("GetParentAs" + parent).
				Receiver(fieldReceiver(c.Name) + " *" + c.Name).
				Returns("*"+parent, "bool").
				Comment(fmt.Sprintf("GetParentAs%s returns the parent pointer if it was constructed\nwith a %s parent.", parent, parent)).
				Body("return cpacsio.ParentAs[%s](%s.%s, %q)", parent, fieldReceiver(c.Name), parentFieldName, parent)
			decl, err := fn.Decl()
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)
		}
	} else if kind == parentFieldSingle {
		parent := parentCandidates(c, ts)[0]
		fn := gen.Func("GetParent").
			Receiver(fieldReceiver(c.Name) + " *" + c.Name).
			Returns("*" + parent).
			Comment("GetParent returns the owning parent.").
			Body("return %s.%s", fieldReceiver(c.Name), parentFieldName)
		decl, err := fn.Decl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}

	return decls, nil
}

func genAccessors(c *typesystem.Class, ts *typesystem.TypeSystem) ([]ast.Decl, error) {
	var decls []ast.Decl
	recv := fieldReceiver(c.Name) + " *" + c.Name
	self := fieldReceiver(c.Name)

	for _, f := range c.Fields {
		class := isClassType(ts, f.Type)
		typeName := referencedTypeName(ts, f.Type)

		switch f.Card {
		case typesystem.Mandatory:
			if class {
				getFn := gen.Func("Get"+f.Name).
					Receiver(recv).
					Returns("*" + typeName).
					Body("return %s.%s", self, f.Name)
				decl, err := getFn.Decl()
				if err != nil {
					return nil, err
				}
				decls = append(decls, decl)
				continue
			}
			getFn := gen.Func("Get" + f.Name).Receiver(recv).Returns(typeName).
				Body("return %s.%s", self, f.Name)
			setFn := gen.Func("Set" + f.Name).Receiver(recv).Args(fmt.Sprintf("v %s", typeName)).
				Body("%s.%s = v", self, f.Name)
			for _, fn := range []*gen.Function{getFn, setFn} {
				decl, err := fn.Decl()
				if err != nil {
					return nil, err
				}
				decls = append(decls, decl)
			}

		case typesystem.Optional:
			hasFn := gen.Func("Has" + f.Name).Receiver(recv).Returns("bool").
				Body("return %s.%s.Has()", self, f.Name)
			retType := typeName
			if class {
				retType = "*" + typeName
			}
			getFn := gen.Func("Get" + f.Name).Receiver(recv).Returns(retType).
				Body("return %s.%s.Get()", self, f.Name)
			setFn := gen.Func("Set" + f.Name).Receiver(recv).Args(fmt.Sprintf("v %s", retType)).
				Body("%s.%s.Set(v)", self, f.Name)
			for _, fn := range []*gen.Function{hasFn, getFn, setFn} {
				decl, err := fn.Decl()
				if err != nil {
					return nil, err
				}
				decls = append(decls, decl)
			}

		case typesystem.Vector:
			retType := "[]" + typeName
			if class {
				retType = "[]*" + typeName
			}
			getFn := gen.Func("Get" + f.Name).Receiver(recv).Returns(retType).
				Body("return %s.%s", self, f.Name)
			decl, err := getFn.Decl()
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)
		}
	}
	return decls, nil
}
