package codegen

import (
	"strings"
	"testing"

	"github.com/dlr-sc/cpacsgen/schema"
	"github.com/dlr-sc/cpacsgen/tables"
	"github.com/dlr-sc/cpacsgen/typesystem"
)

func fixture(t *testing.T) (*typesystem.TypeSystem, *tables.Tables) {
	t.Helper()
	types, err := schema.ParseFile("../testdata/schema/mini.xsd")
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := tables.Load("../testdata/tables/valid")
	if err != nil {
		t.Fatal(err)
	}
	ts, err := typesystem.BuildTypeSystem(types, tbl)
	if err != nil {
		t.Fatal(err)
	}
	typesystem.CollapseEnums(ts)
	typesystem.ApplyPruneList(ts, tbl)
	return ts, tbl
}

func TestGenClassCustomOverride(t *testing.T) {
	ts, tbl := fixture(t)
	point := ts.Classes["CPACSPoint"]
	if point.CustomOverride == "" {
		t.Fatal("CPACSPoint should have a CustomOverride from CustomTypes.txt")
	}

	src, err := genClass(point, ts, tbl, DefaultConfig("cpacs"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(src)
	if !strings.Contains(out, "type CPACSPoint = tigl.CTiglPoint") {
		t.Errorf("generated source = %s, want a type alias to tigl.CTiglPoint", out)
	}
	if strings.Contains(out, "func (") {
		t.Errorf("a CustomOverride class should not get generated methods:\n%s", out)
	}
}

func TestGenClassStructAndAccessors(t *testing.T) {
	ts, tbl := fixture(t)
	wing := ts.Classes["CPACSWing"]

	src, err := genClass(wing, ts, tbl, DefaultConfig("cpacs"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(src)

	for _, want := range []string{
		"type CPACSWing struct",
		"func NewCPACSWing(parent *CPACSWings) *CPACSWing",
		"func (c *CPACSWing) GetParent() *CPACSWings",
		"func (c *CPACSWing) GetPoint() *CPACSPoint",
		"func (c *CPACSWing) ReadCPACS(doc *cpacsio.Document, xpath string) error",
		"func (c *CPACSWing) WriteCPACS(doc *cpacsio.Document, xpath string) error",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated CPACSWing source missing %q:\n%s", want, out)
		}
	}
}

func TestGenClassVectorAccessor(t *testing.T) {
	ts, tbl := fixture(t)
	wings := ts.Classes["CPACSWings"]

	src, err := genClass(wings, ts, tbl, DefaultConfig("cpacs"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(src)
	if !strings.Contains(out, "func (c *CPACSWings) GetWing() []*CPACSWing") {
		t.Errorf("generated CPACSWings source missing vector accessor:\n%s", out)
	}
	if !strings.Contains(out, "func NewCPACSWings() *CPACSWings") {
		t.Errorf("generated CPACSWings source missing default constructor:\n%s", out)
	}
}

func TestGenClassChoiceAccessors(t *testing.T) {
	ts, tbl := fixture(t)
	choice := ts.Classes["CPACSChoiceExample"]

	src, err := genClass(choice, ts, tbl, DefaultConfig("cpacs"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(src)
	for _, want := range []string{
		"func (c *CPACSChoiceExample) HasAChoice1() bool",
		"func (c *CPACSChoiceExample) GetAChoice1() float64",
		"func (c *CPACSChoiceExample) HasBChoice2() bool",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated CPACSChoiceExample source missing %q:\n%s", want, out)
		}
	}
}

func TestGenEnum(t *testing.T) {
	ts, _ := fixture(t)
	axis := ts.Enums["CPACSSymmetryAxis"]

	src, err := genEnum(axis, DefaultConfig("cpacs"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(src)
	for _, want := range []string{
		"type CPACSSymmetryAxis string",
		"CPACSSymmetryAxisx_y_plane",
		"func (c CPACSSymmetryAxis) EnumToString() string",
		"func StringToEnumCPACSSymmetryAxis(s string) (CPACSSymmetryAxis, bool)",
		`case "x-y-plane":`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated CPACSSymmetryAxis source missing %q:\n%s", want, out)
		}
	}
}

func TestGenEnumLenient(t *testing.T) {
	ts, _ := fixture(t)
	axis := ts.Enums["CPACSSymmetryAxis"]

	cfg := DefaultConfig("cpacs")
	cfg.LenientEnumParsing = true
	src, err := genEnum(axis, cfg)
	if err != nil {
		t.Fatal(err)
	}
	out := string(src)
	if !strings.Contains(out, "cases.Fold()") {
		t.Errorf("lenient StringToEnum should use cases.Fold():\n%s", out)
	}
}
