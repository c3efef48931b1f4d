package typesystem

import (
	"testing"

	"github.com/dlr-sc/cpacsgen/schema"
	"github.com/dlr-sc/cpacsgen/tables"
)

func buildFixture(t *testing.T) *TypeSystem {
	t.Helper()
	types, err := schema.ParseFile("../testdata/schema/mini.xsd")
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := tables.Load("../testdata/tables/valid")
	if err != nil {
		t.Fatal(err)
	}
	ts, err := BuildTypeSystem(types, tbl)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func fieldNamed(t *testing.T, c *Class, name string) *Field {
	t.Helper()
	for _, f := range c.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("class %q has no field named %q; fields: %+v", c.Name, name, c.Fields)
	return nil
}

func TestBuildPrimitiveOnlyType(t *testing.T) {
	ts := buildFixture(t)
	point, ok := ts.Classes["CPACSPoint"]
	if !ok {
		t.Fatal("CPACSPoint was not emitted")
	}
	if len(point.Fields) != 3 {
		t.Fatalf("CPACSPoint has %d fields, want 3", len(point.Fields))
	}
	for i, name := range []string{"X", "Y", "Z"} {
		f := point.Fields[i]
		if f.Name != name || f.Type != "double" || f.Card != Mandatory || f.Construct != ElementConstruct {
			t.Errorf("field %d = %+v, want mandatory element %q of type double", i, f, name)
		}
	}
}

func TestBuildOptionalAttributeWithDefault(t *testing.T) {
	ts := buildFixture(t)
	header, ok := ts.Classes["CPACSHeader"]
	if !ok {
		t.Fatal("CPACSHeader was not emitted")
	}
	version := fieldNamed(t, header, "Version")
	if version.Card != Optional || version.Type != "string" || version.Construct != AttributeConstruct {
		t.Errorf("Version field = %+v, want optional string attribute", version)
	}
	name := fieldNamed(t, header, "Name")
	if name.Card != Mandatory || name.Construct != ElementConstruct {
		t.Errorf("Name field = %+v, want mandatory element", name)
	}
}

func TestBuildVectorOfClassesWithParentPointer(t *testing.T) {
	ts := buildFixture(t)
	wings, ok := ts.Classes["CPACSWings"]
	if !ok {
		t.Fatal("CPACSWings was not emitted")
	}
	wing := fieldNamed(t, wings, "Wing")
	if wing.Card != Vector || wing.Type != "CPACSWing" {
		t.Errorf("Wing field = %+v, want Vector of CPACSWing", wing)
	}
	wingClass, ok := ts.Classes["CPACSWing"]
	if !ok {
		t.Fatal("CPACSWing was not emitted")
	}
	found := false
	for _, p := range wingClass.Deps.XMLParents {
		if p == "CPACSWings" {
			found = true
		}
	}
	if !found {
		t.Errorf("CPACSWing.Deps.XMLParents = %v, want to include CPACSWings", wingClass.Deps.XMLParents)
	}
}

func TestBuildChoiceYieldsDisambiguatedOptionalFields(t *testing.T) {
	ts := buildFixture(t)
	choice, ok := ts.Classes["CPACSChoiceExample"]
	if !ok {
		t.Fatal("CPACSChoiceExample was not emitted")
	}
	if len(choice.Fields) != 2 {
		t.Fatalf("CPACSChoiceExample has %d fields, want 2", len(choice.Fields))
	}
	a := fieldNamed(t, choice, "AChoice1")
	if a.Card != Optional || a.CPACSName != "a" {
		t.Errorf("AChoice1 = %+v, want optional field bound to cpacs name \"a\"", a)
	}
	b := fieldNamed(t, choice, "BChoice2")
	if b.Card != Optional || b.CPACSName != "b" {
		t.Errorf("BChoice2 = %+v, want optional field bound to cpacs name \"b\"", b)
	}
}

func TestBuildEnumNonIdentifierSpellings(t *testing.T) {
	ts := buildFixture(t)
	enum, ok := ts.Enums["CPACSSymmetryAxis"]
	if !ok {
		t.Fatal("CPACSSymmetryAxis was not emitted")
	}
	want := map[string]string{
		"x-y-plane": "x_y_plane",
		"x-z-plane": "x_z_plane",
		"none":      "none",
	}
	if len(enum.Values) != len(want) {
		t.Fatalf("CPACSSymmetryAxis has %d values, want %d", len(enum.Values), len(want))
	}
	for _, v := range enum.Values {
		if want[v.Literal] != v.Identifier {
			t.Errorf("value %q identifier = %q, want %q", v.Literal, v.Identifier, want[v.Literal])
		}
	}
}

func TestCollapseEnums(t *testing.T) {
	ts := buildFixture(t)
	if _, ok := ts.Enums["CPACSFoo"]; !ok {
		t.Fatal("CPACSFoo was not emitted before collapsing")
	}
	if _, ok := ts.Enums["CPACSFooType2"]; !ok {
		t.Fatal("CPACSFooType2 was not emitted before collapsing")
	}

	CollapseEnums(ts)

	if _, ok := ts.Enums["CPACSFooType2"]; ok {
		t.Error("CPACSFooType2 should have been collapsed away")
	}
	if _, ok := ts.Enums["CPACSFoo"]; !ok {
		t.Error("CPACSFoo (the smaller name) should survive collapsing")
	}

	before := len(ts.Enums)
	CollapseEnums(ts)
	if len(ts.Enums) != before {
		t.Errorf("second CollapseEnums pass changed enum count: %d -> %d", before, len(ts.Enums))
	}
}

func TestApplyPruneListDropsReferencingField(t *testing.T) {
	ts := buildFixture(t)
	tbl, err := tables.Load("../testdata/tables/valid")
	if err != nil {
		t.Fatal(err)
	}
	tbl.PruneList["CPACSWing"] = true

	ApplyPruneList(ts, tbl)

	if !ts.Classes["CPACSWing"].Pruned {
		t.Error("CPACSWing should be pruned")
	}
	wings := ts.Classes["CPACSWings"]
	if wings.Pruned {
		t.Error("CPACSWings has no other referrer-free parent, but should stay: it is a root")
	}
	for _, f := range wings.Fields {
		if f.Type == "CPACSWing" {
			t.Errorf("CPACSWings still has a field referencing pruned CPACSWing: %+v", f)
		}
	}
}
