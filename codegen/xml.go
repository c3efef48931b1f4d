package codegen

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/dlr-sc/cpacsgen/internal/gen"
	"github.com/dlr-sc/cpacsgen/tables"
	"github.com/dlr-sc/cpacsgen/typesystem"
)

// cpacsioSuffix is the Get/Set method-name suffix cpacsio.Document uses
// for a field's underlying fundamental representation: enumerations are
// always read and written as their string spelling and converted at the
// boundary via EnumToString/StringToEnum.
func cpacsioSuffix(ts *typesystem.TypeSystem, typeName string) (suffix string, isEnum bool) {
	if isEnumType(ts, typeName) {
		return "String", true
	}
	switch fundamentalGoType(typeName) {
	case "float64":
		return "Double", false
	case "int":
		return "Int", false
	case "bool":
		return "Bool", false
	default:
		return "String", false
	}
}

// childConstructorExpr is the constructor call ReadCPACS uses to build a
// freshly read child class instance, threading the parent pointer when
// the child's type requires one (spec.md §4.5).
func childConstructorExpr(child *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables, owner *typesystem.Class, selfVar string) string {
	switch parentFieldKindOf(child, ts, tbl) {
	case parentFieldSingle:
		return fmt.Sprintf("New%s(%s)", child.Name, selfVar)
	case parentFieldMulti:
		return fmt.Sprintf("New%sFrom%s(%s)", child.Name, owner.Name, selfVar)
	default:
		return fmt.Sprintf("New%s()", child.Name)
	}
}

func genReadWriteCPACS(c *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables) ([]ast.Decl, error) {
	read, err := genReadCPACS(c, ts, tbl)
	if err != nil {
		return nil, err
	}
	write, err := genWriteCPACS(c, ts, tbl)
	if err != nil {
		return nil, err
	}
	return []ast.Decl{read, write}, nil
}

func genReadCPACS(c *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables) (ast.Decl, error) {
	self := fieldReceiver(c.Name)
	var b strings.Builder

	if c.Base != "" {
		fmt.Fprintf(&b, "if err := %s.%s.ReadCPACS(doc, xpath); err != nil {\n\treturn err\n}\n", self, c.Base)
	}

	needsErrVar := false
	for _, f := range c.Fields {
		if f.Card == typesystem.Vector && isClassType(ts, f.Type) {
			needsErrVar = true
		}
	}
	if needsErrVar {
		fmt.Fprintf(&b, "var err error\n")
	}

	for i, f := range c.Fields {
		writeFieldReadStmt(&b, c, f, i, ts, tbl, self)
	}
	fmt.Fprintf(&b, "return nil\n")

	fn := gen.Func("ReadCPACS").
		Receiver(self + " *" + c.Name).
		Args("doc *cpacsio.Document", "xpath string").
		Returns("error").
		Comment(fmt.Sprintf("ReadCPACS populates %s from the document node at xpath.", c.Name)).
		Body(b.String())
	return fn.Decl()
}

func writeFieldReadStmt(b *strings.Builder, c *typesystem.Class, f *typesystem.Field, i int, ts *typesystem.TypeSystem, tbl *tables.Tables, self string) {
	switch f.Construct {
	case typesystem.AttributeConstruct:
		writeAttrRead(b, f, ts, self)

	case typesystem.SimpleContentConstruct, typesystem.FundamentalTypeBaseConstruct:
		suffix, isEnum := cpacsioSuffix(ts, f.Type)
		if isEnum {
			fmt.Fprintf(b, "if s, ok := doc.GetStringElement(xpath); ok {\n")
			fmt.Fprintf(b, "\tif v, ok := StringToEnum%s(s); ok {\n\t\t%s.%s = v\n\t} else {\n\t\tcpacsio.LogWarning(%q, s)\n\t}\n", f.Type, self, f.Name, fmt.Sprintf("%s: unknown enumeration value %%q", c.Name))
			fmt.Fprintf(b, "} else {\n\treturn fmt.Errorf(%q, xpath)\n}\n", fmt.Sprintf("%s: missing required value at %%s", c.Name))
		} else {
			fmt.Fprintf(b, "if v, ok := doc.Get%sElement(xpath); ok {\n\t%s.%s = v\n} else {\n\treturn fmt.Errorf(%q, xpath)\n}\n",
				suffix, self, f.Name, fmt.Sprintf("%s: missing required value at %%s", c.Name))
		}

	case typesystem.ElementConstruct:
		writeElementRead(b, c, f, i, ts, tbl, self)
	}
}

func writeAttrRead(b *strings.Builder, f *typesystem.Field, ts *typesystem.TypeSystem, self string) {
	suffix, isEnum := cpacsioSuffix(ts, f.Type)
	getExpr := fmt.Sprintf("doc.Get%sAttribute(xpath, %q)", suffix, f.CPACSName)

	if isEnum {
		switch f.Card {
		case typesystem.Mandatory:
			fmt.Fprintf(b, "if s, ok := %s; ok {\n\tif v, ok := StringToEnum%s(s); ok {\n\t\t%s.%s = v\n\t} else {\n\t\tcpacsio.LogWarning(%q, s)\n\t}\n} else {\n\treturn fmt.Errorf(%q, xpath)\n}\n",
				getExpr, f.Type, self, f.Name,
				fmt.Sprintf("unknown enumeration value %%q for @%s", f.CPACSName),
				fmt.Sprintf("missing required attribute @%s at %%s", f.CPACSName))
		case typesystem.Optional:
			fmt.Fprintf(b, "if s, ok := %s; ok {\n\tif v, ok := StringToEnum%s(s); ok {\n\t\t%s.%s.Set(v)\n\t} else {\n\t\tcpacsio.LogWarning(%q, s)\n\t}\n}\n",
				getExpr, f.Type, self, f.Name, fmt.Sprintf("unknown enumeration value %%q for @%s", f.CPACSName))
		}
		return
	}

	switch f.Card {
	case typesystem.Mandatory:
		fmt.Fprintf(b, "if v, ok := %s; ok {\n\t%s.%s = v\n} else {\n\treturn fmt.Errorf(%q, xpath)\n}\n",
			getExpr, self, f.Name, fmt.Sprintf("missing required attribute @%s at %%s", f.CPACSName))
	case typesystem.Optional:
		fmt.Fprintf(b, "if v, ok := %s; ok {\n\t%s.%s.Set(v)\n}\n", getExpr, self, f.Name)
	}
}

// elementXPathVar emits the "xpathN := xpath + "/name"" binding used by the
// Mandatory/Optional branches below, so that it is only declared where it is
// actually read: the Vector branches address their children entirely through
// doc.ForEachChild(xpath, f.CPACSName, ...) and never consult this variable,
// and an unconditionally emitted binding there would be an unused local.
func elementXPathVar(b *strings.Builder, f *typesystem.Field, i int) string {
	pathVar := fmt.Sprintf("xpath%d", i)
	fmt.Fprintf(b, "%s := xpath + \"/%s\"\n", pathVar, f.CPACSName)
	return pathVar
}

func writeElementRead(b *strings.Builder, c *typesystem.Class, f *typesystem.Field, i int, ts *typesystem.TypeSystem, tbl *tables.Tables, self string) {
	if isClassType(ts, f.Type) {
		child := ts.Classes[f.Type]
		ctor := childConstructorExpr(child, ts, tbl, c, self)
		switch f.Card {
		case typesystem.Mandatory:
			pathVar := elementXPathVar(b, f, i)
			fmt.Fprintf(b, "if !doc.CheckElement(%s) {\n\treturn fmt.Errorf(%q, %s)\n}\n", pathVar, "missing required element %s", pathVar)
			fmt.Fprintf(b, "{\n\tv := %s\n\tif err := v.ReadCPACS(doc, %s); err != nil {\n\t\treturn err\n\t}\n\t%s.%s = v\n}\n", ctor, pathVar, self, f.Name)
		case typesystem.Optional:
			pathVar := elementXPathVar(b, f, i)
			fmt.Fprintf(b, "if doc.CheckElement(%s) {\n\tv := %s\n\tif err := v.ReadCPACS(doc, %s); err != nil {\n\t\treturn err\n\t}\n\t%s.%s.Set(v)\n}\n", pathVar, ctor, pathVar, self, f.Name)
		case typesystem.Vector:
			fmt.Fprintf(b, "doc.ForEachChild(xpath, %q, func(childXPath string) {\n\tif err != nil {\n\t\treturn\n\t}\n\tv := %s\n\tif e := v.ReadCPACS(doc, childXPath); e != nil {\n\t\terr = e\n\t\treturn\n\t}\n\t%s.%s = append(%s.%s, v)\n})\nif err != nil {\n\treturn err\n}\n",
				f.CPACSName, ctor, self, f.Name, self, f.Name)
		}
		return
	}

	suffix, isEnum := cpacsioSuffix(ts, f.Type)
	switch f.Card {
	case typesystem.Mandatory:
		pathVar := elementXPathVar(b, f, i)
		if isEnum {
			fmt.Fprintf(b, "if s, ok := doc.GetStringElement(%s); ok {\n\tif v, ok := StringToEnum%s(s); ok {\n\t\t%s.%s = v\n\t} else {\n\t\tcpacsio.LogWarning(%q, s)\n\t}\n} else {\n\treturn fmt.Errorf(%q, %s)\n}\n",
				pathVar, f.Type, self, f.Name, "unknown enumeration value %q", "missing required element %s", pathVar)
		} else {
			fmt.Fprintf(b, "if v, ok := doc.Get%sElement(%s); ok {\n\t%s.%s = v\n} else {\n\treturn fmt.Errorf(%q, %s)\n}\n",
				suffix, pathVar, self, f.Name, "missing required element %s", pathVar)
		}
	case typesystem.Optional:
		pathVar := elementXPathVar(b, f, i)
		if isEnum {
			fmt.Fprintf(b, "if s, ok := doc.GetStringElement(%s); ok {\n\tif v, ok := StringToEnum%s(s); ok {\n\t\t%s.%s.Set(v)\n\t} else {\n\t\tcpacsio.LogWarning(%q, s)\n\t}\n}\n",
				pathVar, f.Type, self, f.Name, "unknown enumeration value %q")
		} else {
			fmt.Fprintf(b, "if v, ok := doc.Get%sElement(%s); ok {\n\t%s.%s.Set(v)\n}\n", suffix, pathVar, self, f.Name)
		}
	case typesystem.Vector:
		if isEnum {
			fmt.Fprintf(b, "doc.ForEachChild(xpath, %q, func(childXPath string) {\n\tif s, ok := doc.GetStringElement(childXPath); ok {\n\t\tif v, ok := StringToEnum%s(s); ok {\n\t\t\t%s.%s = append(%s.%s, v)\n\t\t} else {\n\t\t\tcpacsio.LogWarning(%q, s)\n\t\t}\n\t}\n})\n",
				f.CPACSName, f.Type, self, f.Name, self, f.Name, "unknown enumeration value %q")
		} else {
			fmt.Fprintf(b, "doc.ForEachChild(xpath, %q, func(childXPath string) {\n\tif v, ok := doc.Get%sElement(childXPath); ok {\n\t\t%s.%s = append(%s.%s, v)\n\t}\n})\n",
				f.CPACSName, suffix, self, f.Name, self, f.Name)
		}
	}
}

func genWriteCPACS(c *typesystem.Class, ts *typesystem.TypeSystem, tbl *tables.Tables) (ast.Decl, error) {
	self := fieldReceiver(c.Name)
	var b strings.Builder

	if c.Base != "" {
		fmt.Fprintf(&b, "if err := %s.%s.WriteCPACS(doc, xpath); err != nil {\n\treturn err\n}\n", self, c.Base)
	}

	for i, f := range c.Fields {
		writeFieldWriteStmt(&b, f, i, ts, self)
	}
	fmt.Fprintf(&b, "return nil\n")

	fn := gen.Func("WriteCPACS").
		Receiver(self + " *" + c.Name).
		Args("doc *cpacsio.Document", "xpath string").
		Returns("error").
		Comment(fmt.Sprintf("WriteCPACS serializes %s into the document node at xpath.", c.Name)).
		Body(b.String())
	return fn.Decl()
}

func writeFieldWriteStmt(b *strings.Builder, f *typesystem.Field, i int, ts *typesystem.TypeSystem, self string) {
	switch f.Construct {
	case typesystem.AttributeConstruct:
		writeAttrWrite(b, f, ts, self)

	case typesystem.SimpleContentConstruct, typesystem.FundamentalTypeBaseConstruct:
		suffix, isEnum := cpacsioSuffix(ts, f.Type)
		if isEnum {
			fmt.Fprintf(b, "doc.SetStringElement(xpath, %s.%s.EnumToString())\n", self, f.Name)
		} else {
			fmt.Fprintf(b, "doc.Set%sElement(xpath, %s.%s)\n", suffix, self, f.Name)
		}

	case typesystem.ElementConstruct:
		writeElementWrite(b, f, i, ts, self)
	}
}

func writeAttrWrite(b *strings.Builder, f *typesystem.Field, ts *typesystem.TypeSystem, self string) {
	suffix, isEnum := cpacsioSuffix(ts, f.Type)
	switch f.Card {
	case typesystem.Mandatory:
		if isEnum {
			fmt.Fprintf(b, "doc.SetStringAttribute(xpath, %q, %s.%s.EnumToString())\n", f.CPACSName, self, f.Name)
		} else {
			fmt.Fprintf(b, "doc.Set%sAttribute(xpath, %q, %s.%s)\n", suffix, f.CPACSName, self, f.Name)
		}
	case typesystem.Optional:
		fmt.Fprintf(b, "if %s.%s.Has() {\n", self, f.Name)
		if isEnum {
			fmt.Fprintf(b, "\tdoc.SetStringAttribute(xpath, %q, %s.%s.Get().EnumToString())\n", f.CPACSName, self, f.Name)
		} else {
			fmt.Fprintf(b, "\tdoc.Set%sAttribute(xpath, %q, %s.%s.Get())\n", suffix, f.CPACSName, self, f.Name)
		}
		fmt.Fprintf(b, "}\n")
	}
}

func writeElementWrite(b *strings.Builder, f *typesystem.Field, i int, ts *typesystem.TypeSystem, self string) {
	if isClassType(ts, f.Type) {
		switch f.Card {
		case typesystem.Mandatory:
			pathVar := elementXPathVar(b, f, i)
			fmt.Fprintf(b, "if %s.%s != nil {\n\tif err := %s.%s.WriteCPACS(doc, %s); err != nil {\n\t\treturn err\n\t}\n}\n", self, f.Name, self, f.Name, pathVar)
		case typesystem.Optional:
			pathVar := elementXPathVar(b, f, i)
			fmt.Fprintf(b, "if %s.%s.Has() {\n\tif err := %s.%s.Get().WriteCPACS(doc, %s); err != nil {\n\t\treturn err\n\t}\n}\n", self, f.Name, self, f.Name, pathVar)
		case typesystem.Vector:
			fmt.Fprintf(b, "for _, item := range %s.%s {\n\tp := doc.AppendChild(xpath, %q)\n\tif err := item.WriteCPACS(doc, p); err != nil {\n\t\treturn err\n\t}\n}\n",
				self, f.Name, f.CPACSName)
		}
		return
	}

	suffix, isEnum := cpacsioSuffix(ts, f.Type)
	switch f.Card {
	case typesystem.Mandatory:
		pathVar := elementXPathVar(b, f, i)
		if isEnum {
			fmt.Fprintf(b, "doc.SetStringElement(%s, %s.%s.EnumToString())\n", pathVar, self, f.Name)
		} else {
			fmt.Fprintf(b, "doc.Set%sElement(%s, %s.%s)\n", suffix, pathVar, self, f.Name)
		}
	case typesystem.Optional:
		pathVar := elementXPathVar(b, f, i)
		fmt.Fprintf(b, "if %s.%s.Has() {\n", self, f.Name)
		if isEnum {
			fmt.Fprintf(b, "\tdoc.SetStringElement(%s, %s.%s.Get().EnumToString())\n", pathVar, self, f.Name)
		} else {
			fmt.Fprintf(b, "\tdoc.Set%sElement(%s, %s.%s.Get())\n", suffix, pathVar, self, f.Name)
		}
		fmt.Fprintf(b, "}\n")
	case typesystem.Vector:
		if isEnum {
			fmt.Fprintf(b, "for _, v := range %s.%s {\n\tp := doc.AppendChild(xpath, %q)\n\tdoc.SetStringElement(p, v.EnumToString())\n}\n", self, f.Name, f.CPACSName)
		} else {
			fmt.Fprintf(b, "for _, v := range %s.%s {\n\tp := doc.AppendChild(xpath, %q)\n\tdoc.Set%sElement(p, v)\n}\n", self, f.Name, f.CPACSName, suffix)
		}
	}
}
