package schema

import (
	"os"
	"strings"
	"testing"
)

func parseFixture(t *testing.T, path string) map[string]Type {
	t.Helper()
	doc, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	types, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	return types
}

func TestParsePrimitiveOnlyType(t *testing.T) {
	types := parseFixture(t, "../testdata/schema/mini.xsd")

	ct, ok := types["PointType"].(*ComplexType)
	if !ok {
		t.Fatal("PointType was not registered as a ComplexType")
	}
	seq, ok := ct.Content.(*Sequence)
	if !ok {
		t.Fatalf("PointType content = %T, want *Sequence", ct.Content)
	}
	if len(seq.Items) != 3 {
		t.Fatalf("PointType has %d particle items, want 3", len(seq.Items))
	}
	for i, name := range []string{"x", "y", "z"} {
		el, ok := seq.Items[i].(*Element)
		if !ok || el.Name != name || el.Type != "xsd:double" {
			t.Errorf("item %d = %+v, want element %q of type xsd:double", i, seq.Items[i], name)
		}
		if el.MinOccurs != 1 || el.MaxOccurs != 1 {
			t.Errorf("element %q cardinality = (%d,%d), want (1,1)", name, el.MinOccurs, el.MaxOccurs)
		}
	}
}

func TestParseOptionalAttributeWithDefault(t *testing.T) {
	types := parseFixture(t, "../testdata/schema/mini.xsd")

	ct := types["Header"].(*ComplexType)
	if len(ct.Attributes) != 1 {
		t.Fatalf("Header has %d attributes, want 1", len(ct.Attributes))
	}
	attr := ct.Attributes[0]
	if attr.Name != "version" || attr.Use != "optional" || attr.Default != "1.0" {
		t.Errorf("version attribute = %+v, want {version optional default=1.0}", attr)
	}
}

func TestParseVectorElement(t *testing.T) {
	types := parseFixture(t, "../testdata/schema/mini.xsd")

	ct := types["Wings"].(*ComplexType)
	seq := ct.Content.(*Sequence)
	wing := seq.Items[0].(*Element)
	if wing.MinOccurs != 0 || wing.MaxOccurs != Unbounded {
		t.Errorf("wing cardinality = (%d,%d), want (0,Unbounded)", wing.MinOccurs, wing.MaxOccurs)
	}
}

func TestParseChoice(t *testing.T) {
	types := parseFixture(t, "../testdata/schema/mini.xsd")

	ct := types["ChoiceExampleType"].(*ComplexType)
	choice, ok := ct.Content.(*Choice)
	if !ok {
		t.Fatalf("ChoiceExampleType content = %T, want *Choice", ct.Content)
	}
	if len(choice.Items) != 2 {
		t.Fatalf("choice has %d branches, want 2", len(choice.Items))
	}
}

func TestParseEnumeration(t *testing.T) {
	types := parseFixture(t, "../testdata/schema/mini.xsd")

	st, ok := types["SymmetryAxis"].(*SimpleType)
	if !ok {
		t.Fatal("SymmetryAxis was not registered as a SimpleType")
	}
	want := []string{"x-y-plane", "x-z-plane", "none"}
	if len(st.Enum) != len(want) {
		t.Fatalf("SymmetryAxis has %d values, want %d", len(st.Enum), len(want))
	}
	for i := range want {
		if st.Enum[i] != want[i] {
			t.Errorf("value %d = %q, want %q", i, st.Enum[i], want[i])
		}
	}
}

func TestParseDuplicateTypeNameIsAnError(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:complexType name="Dup">
    <xsd:sequence><xsd:element name="a" type="xsd:string"/></xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="Dup">
    <xsd:sequence><xsd:element name="b" type="xsd:string"/></xsd:sequence>
  </xsd:complexType>
</xsd:schema>`)
	_, err := Parse(doc)
	if err == nil {
		t.Fatal("expected an error for a duplicate type name")
	}
	if !strings.Contains(err.Error(), "Dup") {
		t.Errorf("error %q does not name the duplicate type", err.Error())
	}
}

func TestParseRejectsGroup(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:complexType name="UsesGroup">
    <xsd:sequence>
      <xsd:group ref="SomeGroup"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>`)
	_, err := Parse(doc)
	if err == nil {
		t.Fatal("expected an error for <group>")
	}
	if !strings.Contains(err.Error(), "UsesGroup") {
		t.Errorf("error %q does not include the enclosing type in its breadcrumb", err.Error())
	}
}

func TestParseInlineAnonymousComplexType(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:complexType name="OuterType">
    <xsd:sequence>
      <xsd:element name="inner">
        <xsd:complexType>
          <xsd:sequence>
            <xsd:element name="value" type="xsd:string"/>
          </xsd:sequence>
        </xsd:complexType>
      </xsd:element>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>`)
	types, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := types["OuterInnerType"]; !ok {
		t.Fatalf("expected a generated type named OuterInnerType, got %v", keys(types))
	}
}

func TestParseFileResolvesIncludes(t *testing.T) {
	types, err := ParseFile("../testdata/schema/included/main.xsd")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := types["PointType"]; !ok {
		t.Fatalf("expected PointType merged in from the included document, got %v", keys(types))
	}
	if _, ok := types["WingType"]; !ok {
		t.Fatalf("expected WingType from the main document, got %v", keys(types))
	}
}

func keys(m map[string]Type) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
