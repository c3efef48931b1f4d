package typesystem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/text/cases"

	"github.com/dlr-sc/cpacsgen/schema"
	"github.com/dlr-sc/cpacsgen/tables"
)

// foldCase is the Unicode-correct case-insensitive comparison golang.org/x/text
// provides; used instead of strings.ToLower wherever an identifier is checked
// against ReservedNames.txt, since ASCII lower-casing and Unicode case folding
// are not the same operation (and a CPACS name can carry non-ASCII letters).
var foldCase = cases.Fold()

// BuildTypeSystem lowers a schema registry into the implementation-level
// model: one Class per schema.ComplexType, one Enum per schema.SimpleType
// that carries enumeration values, fields resolved against tbl, and the
// dependency graph built (see rebuildDependencies). It recovers the
// *buildError panics raised by this package's helpers into a plain error,
// so the only exported failure mode is a returned error.
func BuildTypeSystem(types map[string]schema.Type, tbl *tables.Tables) (ts *TypeSystem, err error) {
	defer catchBuildError(&err)
	return build(types, tbl), nil
}

func build(types map[string]schema.Type, tbl *tables.Tables) *TypeSystem {
	ts := &TypeSystem{Classes: make(map[string]*Class), Enums: make(map[string]*Enum)}
	r := &resolver{
		schemaNames: make(map[string]string),
		enumSet:     make(map[string]bool),
		tbl:         tbl,
	}

	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	// Pass 1: register every emitted name before building any field, so
	// field resolution in pass 2 can see a sibling type regardless of
	// which order the registry's names happen to sort in.
	emittedOwner := make(map[string]string) // emitted name -> schema name that claimed it
	for _, name := range names {
		switch t := types[name].(type) {
		case *schema.ComplexType:
			emitted := makeEmittedName(name)
			claimName(emittedOwner, emitted, name)
			r.schemaNames[name] = emitted
		case *schema.SimpleType:
			if len(t.Enum) == 0 {
				continue
			}
			emitted := makeEmittedName(name)
			claimName(emittedOwner, emitted, name)
			r.schemaNames[name] = emitted
			r.enumSet[name] = true
		}
	}

	// Pass 2: build classes and enums now that every name resolves.
	for _, name := range names {
		switch t := types[name].(type) {
		case *schema.ComplexType:
			c := buildClass(t, r, tbl)
			ts.Classes[c.Name] = c
		case *schema.SimpleType:
			if len(t.Enum) == 0 {
				glog.Warningf("typesystem: simpleType %q has no enumeration values; skipping", name)
				continue
			}
			e := buildEnum(t, tbl)
			ts.Enums[e.Name] = e
		}
	}

	rebuildDependencies(ts)
	return ts
}

// claimName records that emitted is generated from schemaName, aborting
// if another schema type already claimed the same emitted name (spec.md
// §3 invariant 2: class and enum names are unique across both maps).
func claimName(owner map[string]string, emitted, schemaName string) {
	if prior, ok := owner[emitted]; ok && prior != schemaName {
		stopf("emitted name %q is claimed by both %q and %q", emitted, prior, schemaName)
	}
	owner[emitted] = schemaName
}

func buildClass(ct *schema.ComplexType, r *resolver, tbl *tables.Tables) *Class {
	emitted := r.schemaNames[ct.Name]
	c := &Class{SchemaName: ct.Name, Name: emitted}
	if override, ok := tbl.CustomTypes[emitted]; ok {
		c.CustomOverride = override
	}

	for _, a := range ct.Attributes {
		c.Fields = append(c.Fields, buildAttributeField(a, r, tbl))
	}
	if ct.Content != nil {
		c.Fields = append(c.Fields, buildParticleFields(ct.Content, r, tbl)...)
	}

	if ct.Base != "" {
		baseName, kind := r.resolve(ct.Base)
		switch kind {
		case kindFundamental:
			base := &Field{
				CPACSName: "base",
				Name:      "Base",
				Type:      baseName,
				Construct: FundamentalTypeBaseConstruct,
				Card:      Mandatory,
			}
			c.Fields = append([]*Field{base}, c.Fields...)
		case kindClass:
			c.Base = baseName
		case kindEnum:
			stopf("complexType %q: base %q resolves to enum %q, which cannot be a base",
				ct.Name, ct.Base, baseName)
		}
	}
	return c
}

func buildAttributeField(a *schema.Attribute, r *resolver, tbl *tables.Tables) *Field {
	typeName, _ := r.resolve(a.Type)
	card := Mandatory
	if a.Use == "optional" {
		card = Optional
	}
	return &Field{
		CPACSName: a.Name,
		Name:      goFieldName(a.Name, tbl),
		Type:      typeName,
		Construct: AttributeConstruct,
		Card:      card,
	}
}

// buildElementField returns (nil, false) for a (0,0) element, which
// spec.md §4.3 says to omit (with a warning) rather than emit a dead
// field for.
func buildElementField(e *schema.Element, r *resolver, tbl *tables.Tables) (*Field, bool) {
	var card Cardinality
	switch {
	case e.MinOccurs == 0 && e.MaxOccurs == 0:
		glog.Warningf("typesystem: element %q has minOccurs=maxOccurs=0; omitting field", e.Name)
		return nil, false
	case e.MinOccurs == 0 && e.MaxOccurs == 1:
		card = Optional
	case e.MinOccurs == 1 && e.MaxOccurs == 1:
		card = Mandatory
	case e.MinOccurs >= 0 && e.MaxOccurs > 1:
		card = Vector
	default:
		stopf("element %q: unsupported occurs (minOccurs=%d, maxOccurs=%d)", e.Name, e.MinOccurs, e.MaxOccurs)
	}
	typeName, kind := r.resolve(e.Type)
	if card == Vector && kind == kindEnum {
		stopf("element %q: a vector of enum %q is not supported", e.Name, typeName)
	}
	return &Field{
		CPACSName: e.Name,
		Name:      goFieldName(e.Name, tbl),
		Type:      typeName,
		Construct: ElementConstruct,
		Card:      card,
	}, true
}

// fieldCollector implements schema.Visitor, flattening a content
// particle into the ordered field list spec.md §4.3 describes: Sequence
// and All concatenate their elements' fields, SimpleContent synthesizes
// one mandatory field, Choice forces every field its branches contribute
// to Optional and renames it with a _choiceN suffix.
type fieldCollector struct {
	r   *resolver
	tbl *tables.Tables
	out []*Field
}

func buildParticleFields(p schema.Particle, r *resolver, tbl *tables.Tables) []*Field {
	fc := &fieldCollector{r: r, tbl: tbl}
	schema.Visit(p, fc)
	return fc.out
}

func (fc *fieldCollector) Sequence(s *schema.Sequence) {
	for _, item := range s.Items {
		schema.Visit(item, fc)
	}
}

func (fc *fieldCollector) All(a *schema.All) {
	for _, e := range a.Elements {
		if f, ok := buildElementField(e, fc.r, fc.tbl); ok {
			fc.out = append(fc.out, f)
		}
	}
}

func (fc *fieldCollector) Element(e *schema.Element) {
	if f, ok := buildElementField(e, fc.r, fc.tbl); ok {
		fc.out = append(fc.out, f)
	}
}

func (fc *fieldCollector) SimpleContent(sc *schema.SimpleContent) {
	typeName, _ := fc.r.resolve(sc.Type)
	fc.out = append(fc.out, &Field{
		Name:      "SimpleContent",
		Type:      typeName,
		Construct: SimpleContentConstruct,
		Card:      Mandatory,
	})
}

// choiceBranch records what the first branch to contribute a given
// CPACS name looked like, so later branches can be checked against it.
type choiceBranch struct {
	typ  string
	card Cardinality
}

func (fc *fieldCollector) Choice(ch *schema.Choice) {
	seen := make(map[string]choiceBranch)
	for i, item := range ch.Items {
		branch := &fieldCollector{r: fc.r, tbl: fc.tbl}
		schema.Visit(item, branch)
		for _, f := range branch.out {
			if prior, ok := seen[f.CPACSName]; ok {
				if prior.typ != f.Type || prior.card != f.Card {
					glog.Warningf("typesystem: choice branches disagree on field %q (type/cardinality mismatch); keeping both", f.CPACSName)
				}
			} else {
				seen[f.CPACSName] = choiceBranch{typ: f.Type, card: f.Card}
			}
			f.Card = Optional
			f.Name = goFieldName(fmt.Sprintf("%s_choice%d", f.CPACSName, i+1), fc.tbl)
			fc.out = append(fc.out, f)
		}
	}
}

func (fc *fieldCollector) Any(*schema.Any)     { stop("<any> particle is not supported in a field model") }
func (fc *fieldCollector) Group(*schema.Group) { stop("<group> particle is not supported in a field model") }

func buildEnum(st *schema.SimpleType, tbl *tables.Tables) *Enum {
	e := &Enum{SchemaName: st.Name, Name: makeEmittedName(st.Name)}
	used := make(map[string]bool)
	for _, v := range st.Enum {
		ident := sanitizeEnumIdentifier(v)
		for used[ident] || tbl.ReservedNames[foldCase.String(ident)] {
			ident += "_"
		}
		used[ident] = true
		e.Values = append(e.Values, EnumValue{Literal: v, Identifier: ident})
	}
	return e
}

// sanitizeEnumIdentifier turns an XML enumeration spelling into a Go
// identifier per spec.md §4.6: '-' and ' ' become '_'. Collisions (with
// a sibling value or a reserved name) are mangled by the caller
// appending trailing underscores until unique.
func sanitizeEnumIdentifier(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch r {
		case '-', ' ':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// goFieldName derives the exported Go identifier for a field from its
// CPACS-level (or choice-synthesized) effective name: reserved-name
// collisions are mangled by appending underscores (mirroring §4.6's enum
// mangling rule); the name is Pascal-cased on '_'/'-' boundaries and the
// mangling underscores are appended to the result ("type" -> "Type_").
func goFieldName(name string, tbl *tables.Tables) string {
	mangle := ""
	for tbl.ReservedNames[foldCase.String(name+mangle)] {
		mangle += "_"
	}
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	if len(parts) == 0 {
		return capitalizeFirst(name) + mangle
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(capitalizeFirst(p))
	}
	return b.String() + mangle
}
