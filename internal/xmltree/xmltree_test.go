package xmltree

import (
	"encoding/xml"
	"testing"
)

var doc = []byte(`<?xml version="1.0" encoding="utf-8"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema" targetNamespace="https://www.cpacs.de/schema" xmlns="https://www.cpacs.de/schema">
  <xsd:complexType name="CPACSPointType">
    <xsd:sequence>
      <xsd:element name="x" type="xsd:double"/>
      <xsd:element name="y" type="xsd:double"/>
      <xsd:element name="z" type="xsd:double"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSWingsType">
    <xsd:sequence>
      <xsd:element name="wing" type="WingType" minOccurs="0" maxOccurs="unbounded"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>`)

func TestParse(t *testing.T) {
	root, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if root.Name.Local != "schema" {
		t.Errorf("expected root element <schema>, got <%s>", root.Name.Local)
	}
}

func TestSearch(t *testing.T) {
	root, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}

	result := root.Search(schemaNS, "complexType")
	if len(result) != 2 {
		t.Errorf("Search(%q, \"complexType\") = %d results, want 2", schemaNS, len(result))
	}
	if got := result[0].Attr("", "name"); got != "CPACSPointType" {
		t.Errorf("first complexType name = %q, want CPACSPointType", got)
	}
}

func TestNSResolution(t *testing.T) {
	root, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	name, ok := root.ResolveNS("xsd:string")
	if !ok {
		t.Fatal("could not resolve xsd: prefix")
	}
	if name.Space != schemaNS {
		t.Errorf("resolved xsd:string to namespace %q, want %q", name.Space, schemaNS)
	}

	elements := root.Search(schemaNS, "element")
	if len(elements) == 0 {
		t.Fatal("expected to find at least one element declaration")
	}
	for _, el := range elements {
		if el.Resolve("xsd:double") != (xml.Name{Space: schemaNS, Local: "double"}) {
			t.Errorf("element %q did not inherit the xsd: prefix binding from its ancestor scope",
				el.Attr("", "name"))
		}
	}
}

const schemaNS = "http://www.w3.org/2001/XMLSchema"
