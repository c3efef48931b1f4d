// Package typesystem turns the flat registry of schema.Type values
// produced by the schema package into the class/enum model codegen
// emits: Go-shaped names, field lists with resolved cardinalities, and
// the dependency bookkeeping that later passes (enum collapsing, the
// prune list, parent-pointer plumbing) operate on.
package typesystem

// Cardinality describes how many times a field's value can occur in a
// conforming document.
type Cardinality int

const (
	// Optional fields are stored in a cpacsio.Optional wrapper (of a
	// pointer, for class-typed fields).
	Optional Cardinality = iota
	// Mandatory fields are always present.
	Mandatory
	// Vector fields repeat; minOccurs does not affect the Go
	// representation, only validation left to the caller.
	Vector
)

func (c Cardinality) String() string {
	switch c {
	case Optional:
		return "Optional"
	case Mandatory:
		return "Mandatory"
	case Vector:
		return "Vector"
	default:
		return "Cardinality(?)"
	}
}

// XMLConstruct records which piece of XML syntax a field binds to, so
// codegen's reader/writer knows whether to look at an attribute, a
// child element, or the element's own text content.
type XMLConstruct int

const (
	ElementConstruct XMLConstruct = iota
	AttributeConstruct
	SimpleContentConstruct
	// FundamentalTypeBaseConstruct marks the synthetic field codegen
	// emits for a class whose schema.ComplexType.Base resolved to a
	// fundamental (not custom, not a registered class) type: the base
	// becomes a named scalar field "Base" rather than a Go embedded
	// struct, since there is no base struct to embed.
	FundamentalTypeBaseConstruct
)

// A Field is one member of a generated class: either an XSD attribute,
// an XSD child element, a simpleContent text value, or a demoted
// fundamental-type base.
type Field struct {
	CPACSName string // the schema-level attribute/element name
	Name      string // the Go field name (exported, collision-resolved)
	Type      string // emitted type name, or a Go builtin for fundamentals
	Construct XMLConstruct
	Card      Cardinality
}

// Dependencies is the edge bookkeeping rebuilt for a Class after every
// structural transform (see rebuildDependencies in dependency.go). Each
// list is sorted and deduplicated; none is a transitive closure.
type Dependencies struct {
	Bases           []string // direct base type names, if any (0 or 1 today)
	Deriveds        []string // classes whose Base is this class
	XMLChildClasses []string // classes referenced by a field of this class
	XMLChildEnums   []string // enums referenced by a field of this class
	XMLParents      []string // classes with a field referencing this class
}

// EnumDependencies is the enum-side counterpart of Dependencies.
type EnumDependencies struct {
	XMLParents []string // classes with a field referencing this enum
}

// EnumValue is one member of an Enum: its literal XML spelling plus the
// exported Go identifier derived from it.
type EnumValue struct {
	Literal    string
	Identifier string
}

// A Class is the implementation-level model of one CPACS complex type.
type Class struct {
	SchemaName     string // the XSD-level name, e.g. "WingType"
	Name           string // the emitted Go type name, e.g. "CPACSWing"
	Base           string // emitted name of the base class, if any
	Fields         []*Field
	Pruned         bool
	CustomOverride string // fully-qualified external type, if CustomTypes overrides this class
	Deps           Dependencies
}

// An Enum is the implementation-level model of one CPACS enumeration.
type Enum struct {
	SchemaName string
	Name       string
	Values     []EnumValue
	Pruned     bool
	Deps       EnumDependencies
}

// A TypeSystem is the fully resolved, transform-ready model of a CPACS
// schema: every class and enum keyed by its emitted Go name.
type TypeSystem struct {
	Classes map[string]*Class
	Enums   map[string]*Enum
}
