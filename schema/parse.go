package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/dlr-sc/cpacsgen/internal/xmltree"
)

const schemaNS = "http://www.w3.org/2001/XMLSchema"

// Parse builds a registry of named types from a single XSD document.
// It does not resolve <xs:include>; use ParseFile for a schema split
// across multiple files.
func Parse(doc []byte) (map[string]Type, error) {
	root, err := xmltree.Parse(doc)
	if err != nil {
		return nil, err
	}
	return parseRoot(root)
}

// ParseFile is like Parse, but reads the schema from path and merges in
// the top-level declarations of every <xs:include>d document (resolved
// relative to the including file), recursively, before parsing. A
// document is merged at most once even if included from multiple
// places. <xs:import> (cross-namespace) is not supported: CPACS is a
// single-namespace schema family, so only include is needed.
func ParseFile(path string) (map[string]Type, error) {
	root, err := loadMerged(path, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	return parseRoot(root)
}

func loadMerged(path string, seen map[string]bool) (*xmltree.Element, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %v", err)
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %v", path, err)
	}
	seen[abs] = true

	merged := make([]xmltree.Element, 0, len(root.Children))
	for i := range root.Children {
		c := &root.Children[i]
		if c.Name.Space == schemaNS && c.Name.Local == "include" {
			loc := c.Attr("", "schemaLocation")
			incPath := filepath.Join(filepath.Dir(path), loc)
			incAbs, err := filepath.Abs(incPath)
			if err != nil {
				return nil, err
			}
			if seen[incAbs] {
				continue
			}
			incRoot, err := loadMerged(incPath, seen)
			if err != nil {
				return nil, err
			}
			merged = append(merged, incRoot.Children...)
			continue
		}
		if c.Name.Space == schemaNS && c.Name.Local == "import" {
			glog.Warningf("schema: %s: <xs:import> is not supported, ignoring namespace %q",
				path, c.Attr("", "namespace"))
			continue
		}
		merged = append(merged, *c)
	}
	root.Children = merged
	return root, nil
}

type parser struct {
	types map[string]Type
}

func parseRoot(root *xmltree.Element) (types map[string]Type, err error) {
	defer catchParseError(&err)
	p := &parser{types: make(map[string]Type)}

	for _, el := range childrenNamed(root, "simpleType") {
		p.parseSimpleTypeDecl(el, "", "")
	}
	for _, el := range childrenNamed(root, "complexType") {
		p.parseComplexTypeDecl(el, "", "")
	}
	for _, el := range childrenNamed(root, "element") {
		// Top-level elements are roots of a document; their types
		// are already registered above, or declared inline here.
		// The element declaration itself carries no information
		// the typesystem needs, since class construction walks
		// the registered ComplexTypes directly.
		p.parseElement(el, "")
	}
	return p.types, nil
}

func (p *parser) register(name string, t Type) {
	if _, exists := p.types[name]; exists {
		stopf("duplicate type name %q", name)
	}
	p.types[name] = t
}

// makeName generates a deterministic name for an anonymous inline type:
// the containing type's stem plus the owning attribute/element's local
// name plus the suffix "Type", disambiguated against the current
// registry by appending the smallest integer not already colliding.
// This is a pure function of (stem, owner, current registry contents);
// it never consults a traversal-order-dependent counter, so the same
// schema parsed with a different traversal order yields the same names.
func (p *parser) makeName(stem, owner string) string {
	base := stem + strings.Title(owner) + "Type"
	if _, exists := p.types[base]; !exists {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if _, exists := p.types[candidate]; !exists {
			return candidate
		}
	}
}

func stripTypeSuffix(name string) string {
	return strings.TrimSuffix(name, "Type")
}

// canonicalTypeName resolves qname (as it appeared on el) to a stable
// string key: "xsd:local" for references into the XML Schema built-in
// namespace (regardless of which prefix the schema author bound it to),
// or the bare local name otherwise, matching the literal strings used
// in the FundamentalTypes table and in this package's own type names.
func (p *parser) canonicalTypeName(el *xmltree.Element, qname string) string {
	name := el.Resolve(qname)
	if name.Space == schemaNS {
		return "xsd:" + name.Local
	}
	return name.Local
}

func rejectIfPresent(el *xmltree.Element, attr string) {
	if el.Attr("", attr) != "" {
		stopf("%s is not supported", attr)
	}
}

// rejectGroupOrAnyContentModel aborts if el's own content model (as opposed
// to a particle nested inside a sequence/choice, which parseParticleChildren
// already rejects) is a bare <group> or <any>. Without this check a
// complexType whose only content is <group ref="..."/> or <any/> falls
// through parseComplexTypeDecl's switch unmatched, leaving Content nil
// instead of naming the unsupported construct.
func rejectGroupOrAnyContentModel(el *xmltree.Element, typeName string) {
	if hasChildNamed(el, "group") {
		stopf("complexType %q: <group> is not supported", typeName)
	}
	if hasChildNamed(el, "any") {
		stopf("complexType %q: <any> is not supported", typeName)
	}
}

func parseOccurs(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		stopf("invalid occurs value %q", s)
	}
	return n
}

func parseMaxOccurs(s string) int {
	if s == "" {
		return 1
	}
	if s == "unbounded" {
		return Unbounded
	}
	return parseOccurs(s, 1)
}

func (p *parser) parseSimpleTypeDecl(el *xmltree.Element, stem, owner string) (name string) {
	defer breadcrumb(el)

	name = el.Attr("", "name")
	if name == "" {
		name = p.makeName(stem, owner)
	}
	if hasChildNamed(el, "list") {
		stopf("simpleType %q: list is not supported", name)
	}
	if hasChildNamed(el, "union") {
		stopf("simpleType %q: union is not supported", name)
	}
	restriction := firstChildNamed(el, "restriction")
	if restriction == nil {
		stopf("simpleType %q must contain a restriction", name)
	}

	enumEls := childrenNamed(restriction, "enumeration")
	if len(enumEls) == 0 {
		glog.Warningf("schema: simpleType %q has no enumeration values; skipping", name)
		return name
	}
	values := make([]string, 0, len(enumEls))
	for _, e := range enumEls {
		values = append(values, e.Attr("", "value"))
	}
	base := p.canonicalTypeName(restriction, restriction.Attr("", "base"))
	p.register(name, &SimpleType{Name: name, Base: base, Enum: values})
	return name
}

func (p *parser) parseComplexTypeDecl(el *xmltree.Element, stem, owner string) (name string) {
	defer breadcrumb(el)

	name = el.Attr("", "name")
	if name == "" {
		name = p.makeName(stem, owner)
	}

	rejectIfPresent(el, "id")
	rejectIfPresent(el, "abstract")
	rejectIfPresent(el, "mixed")
	rejectIfPresent(el, "block")
	rejectIfPresent(el, "final")
	if hasChildNamed(el, "attributeGroup") {
		stopf("complexType %q: attributeGroup is not supported", name)
	}
	rejectGroupOrAnyContentModel(el, name)

	ct := &ComplexType{Name: name}
	bodyStem := stripTypeSuffix(name)

	switch {
	case firstChildNamed(el, "all") != nil:
		ct.Content = p.parseParticle(firstChildNamed(el, "all"), bodyStem)
	case firstChildNamed(el, "sequence") != nil:
		ct.Content = p.parseParticle(firstChildNamed(el, "sequence"), bodyStem)
	case firstChildNamed(el, "choice") != nil:
		ct.Content = p.parseParticle(firstChildNamed(el, "choice"), bodyStem)
	case firstChildNamed(el, "complexContent") != nil:
		cc := firstChildNamed(el, "complexContent")
		if hasChildNamed(cc, "restriction") {
			stopf("complexType %q: complex-content restriction is not supported", name)
		}
		ext := firstChildNamed(cc, "extension")
		if ext == nil {
			stopf("complexType %q: complexContent must contain an extension", name)
		}
		rejectGroupOrAnyContentModel(ext, name)
		ct.Base = p.canonicalTypeName(ext, ext.Attr("", "base"))
		switch {
		case firstChildNamed(ext, "all") != nil:
			ct.Content = p.parseParticle(firstChildNamed(ext, "all"), bodyStem)
		case firstChildNamed(ext, "sequence") != nil:
			ct.Content = p.parseParticle(firstChildNamed(ext, "sequence"), bodyStem)
		case firstChildNamed(ext, "choice") != nil:
			ct.Content = p.parseParticle(firstChildNamed(ext, "choice"), bodyStem)
		}
		ct.Attributes = append(ct.Attributes, p.parseAttributes(ext, bodyStem)...)
	case firstChildNamed(el, "simpleContent") != nil:
		sc := firstChildNamed(el, "simpleContent")
		ct.Content = p.parseSimpleContent(sc, name, bodyStem)
		if r := firstChildNamed(sc, "restriction"); r != nil {
			ct.Attributes = append(ct.Attributes, p.parseAttributes(r, bodyStem)...)
		}
		if e := firstChildNamed(sc, "extension"); e != nil {
			ct.Attributes = append(ct.Attributes, p.parseAttributes(e, bodyStem)...)
		}
	}

	ct.Attributes = append(ct.Attributes, p.parseAttributes(el, bodyStem)...)

	p.register(name, ct)
	return name
}

func (p *parser) parseSimpleContent(sc *xmltree.Element, typeName, stem string) *SimpleContent {
	defer breadcrumb(sc)

	if r := firstChildNamed(sc, "restriction"); r != nil {
		enumEls := childrenNamed(r, "enumeration")
		if len(enumEls) > 0 {
			synthName := stem + "_SimpleContentType"
			values := make([]string, 0, len(enumEls))
			for _, e := range enumEls {
				values = append(values, e.Attr("", "value"))
			}
			base := p.canonicalTypeName(r, r.Attr("", "base"))
			p.register(synthName, &SimpleType{Name: synthName, Base: base, Enum: values})
			return &SimpleContent{Type: synthName}
		}
		glog.Warningf("schema: %q: simpleContent restriction without enumeration; other facets ignored", typeName)
		return &SimpleContent{Type: p.canonicalTypeName(r, r.Attr("", "base"))}
	}
	if e := firstChildNamed(sc, "extension"); e != nil {
		return &SimpleContent{Type: p.canonicalTypeName(e, e.Attr("", "base"))}
	}
	stopf("%q: simpleContent must contain a restriction or extension", typeName)
	panic("unreachable")
}

func (p *parser) parseAttributes(el *xmltree.Element, stem string) []*Attribute {
	var attrs []*Attribute
	for _, c := range childrenNamed(el, "attribute") {
		attrs = append(attrs, p.parseAttribute(c, stem))
	}
	return attrs
}

func (p *parser) parseAttribute(el *xmltree.Element, stem string) *Attribute {
	defer breadcrumb(el)

	name := el.Attr("", "name")
	if name == "" {
		stop("attribute is missing a name attribute")
	}
	use := el.Attr("", "use")
	switch use {
	case "":
		use = "required"
	case "optional", "required":
	default:
		stopf("attribute %q has invalid use=%q", name, use)
	}
	return &Attribute{
		Name:    name,
		Type:    p.resolveAttrOrInlineType(el, stem, name),
		Use:     use,
		Default: el.Attr("", "default"),
		Fixed:   el.Attr("", "fixed"),
	}
}

func (p *parser) parseElement(el *xmltree.Element, stem string) *Element {
	defer breadcrumb(el)

	name := el.Attr("", "name")
	if name == "" {
		stop("element is missing a name attribute")
	}
	rejectIfPresent(el, "substitutionGroup")
	return &Element{
		Name:      name,
		Type:      p.resolveAttrOrInlineType(el, stem, name),
		MinOccurs: parseOccurs(el.Attr("", "minOccurs"), 1),
		MaxOccurs: parseMaxOccurs(el.Attr("", "maxOccurs")),
	}
}

func (p *parser) resolveAttrOrInlineType(el *xmltree.Element, stem, owner string) string {
	if t := el.Attr("", "type"); t != "" {
		return p.canonicalTypeName(el, t)
	}
	if inline := firstChildNamed(el, "simpleType"); inline != nil {
		return p.parseSimpleTypeDecl(inline, stem, owner)
	}
	if inline := firstChildNamed(el, "complexType"); inline != nil {
		return p.parseComplexTypeDecl(inline, stem, owner)
	}
	stopf("%q has neither a type attribute nor an inline type", owner)
	panic("unreachable")
}

// parseParticle parses a <sequence>, <choice>, or <all> element into
// its Particle representation, recursing into nested particles.
func (p *parser) parseParticle(el *xmltree.Element, stem string) Particle {
	defer breadcrumb(el)

	switch el.Name.Local {
	case "sequence":
		return &Sequence{Items: p.parseParticleChildren(el, stem)}
	case "choice":
		return &Choice{Items: p.parseParticleChildren(el, stem)}
	case "all":
		var elems []*Element
		for i := range el.Children {
			c := &el.Children[i]
			if c.Name.Space != schemaNS {
				continue
			}
			if c.Name.Local != "element" {
				stopf("<all> may only contain <element>, found <%s>", c.Name.Local)
			}
			elems = append(elems, p.parseElement(c, stem))
		}
		return &All{Elements: elems}
	}
	panic("schema: parseParticle called on non-particle element " + el.Name.Local)
}

func (p *parser) parseParticleChildren(el *xmltree.Element, stem string) []Particle {
	var items []Particle
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space != schemaNS {
			continue
		}
		switch c.Name.Local {
		case "element":
			items = append(items, p.parseElement(c, stem))
		case "sequence", "choice":
			items = append(items, p.parseParticle(c, stem))
		case "any":
			stop("<any> is not supported")
		case "group":
			stop("<group> is not supported")
		}
	}
	return items
}
