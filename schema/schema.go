// Package schema parses the subset of XML Schema (XSD) that CPACSGen
// understands into a registry of complex and simple types.
//
// The package does not validate documents against a schema; it exists
// to feed the typesystem package a flat, name-addressable map of the
// type declarations a CPACS schema is built from. Constructs outside
// the supported subset (groups, wildcards, complex-content restriction,
// attribute groups, mixed content, substitution groups) are rejected
// with a located diagnostic rather than silently accepted.
package schema

import "math"

// Unbounded represents an XSD maxOccurs="unbounded" particle bound.
const Unbounded = math.MaxInt32

// A Type is either a *ComplexType or a *SimpleType. Types that are not
// present in the registry returned by Parse are resolved downstream,
// against the fundamental-type table or the type-substitution table.
type Type interface {
	isType()
}

// A ComplexType is an XSD complexType: an optional base type extended
// or restricted, a content particle (or none), and a flat attribute
// list gathered from the type itself and from any restriction or
// extension nested beneath complexContent/simpleContent.
type ComplexType struct {
	Name       string
	Base       string // resolved base type name; empty if none
	Content    Particle
	Attributes []*Attribute
}

func (*ComplexType) isType() {}

// A SimpleType is an XSD simpleType restricted to an enumeration of
// values. Simple types without an enumeration restriction, and list or
// union simple types, are not represented here; see Parse.
type SimpleType struct {
	Name string
	Base string
	Enum []string
}

func (*SimpleType) isType() {}

// An Attribute is an XSD <xs:attribute>.
type Attribute struct {
	Name    string
	Type    string
	Use     string // "required" or "optional"
	Default string
	Fixed   string
}

// An Element is an XSD <xs:element> appearing within a content
// particle. It is itself a Particle, the terminal case of the closed
// set described below.
type Element struct {
	Name      string
	Type      string
	MinOccurs int
	MaxOccurs int
}

// Particle is the closed set of XSD content-model constructs this
// parser understands. It is a tagged variant over a fixed set of
// concrete types, dispatched through Visit rather than through
// interface methods implementing shared behavior, so that adding a
// particle kind is a compile-time-checked change at every call site.
type Particle interface {
	isParticle()
}

// Sequence is an ordered <xs:sequence> of particles.
type Sequence struct{ Items []Particle }

// Choice is an <xs:choice> of particles; exactly one branch is present
// in any conforming document.
type Choice struct{ Items []Particle }

// All is an <xs:all>; it may only directly contain Elements.
type All struct{ Elements []*Element }

// SimpleContent is a complex type's text-node body: either a direct
// reference to a primitive/enum type, or (when a restriction carries
// enumeration values) a reference to a synthetic SimpleType fabricated
// during parsing.
type SimpleContent struct{ Type string }

// Any stands for an unsupported <xs:any> wildcard particle. It exists
// only so encountering one produces a named diagnostic through the
// Visitor dispatch instead of a type assertion failure.
type Any struct{}

// Group stands for an unsupported <xs:group> reference particle, for
// the same reason as Any.
type Group struct{}

func (*Sequence) isParticle()      {}
func (*Choice) isParticle()        {}
func (*All) isParticle()           {}
func (*SimpleContent) isParticle() {}
func (*Element) isParticle()       {}
func (*Any) isParticle()           {}
func (*Group) isParticle()         {}

// A Visitor handles every case of the closed Particle set. Visit
// panics if p is not one of the seven concrete particle types, which
// can only happen if a new case is added to the set without a
// corresponding Visitor method - a programmer error, not a schema
// error.
type Visitor interface {
	Sequence(*Sequence)
	Choice(*Choice)
	All(*All)
	SimpleContent(*SimpleContent)
	Element(*Element)
	Any(*Any)
	Group(*Group)
}

// Visit dispatches to the Visitor method matching p's concrete type.
func Visit(p Particle, v Visitor) {
	switch p := p.(type) {
	case *Sequence:
		v.Sequence(p)
	case *Choice:
		v.Choice(p)
	case *All:
		v.All(p)
	case *SimpleContent:
		v.SimpleContent(p)
	case *Element:
		v.Element(p)
	case *Any:
		v.Any(p)
	case *Group:
		v.Group(p)
	default:
		panic("schema: unhandled Particle case")
	}
}
