package tables

import (
	"strings"
	"testing"
)

func TestLoadValid(t *testing.T) {
	tbl, err := Load("../testdata/tables/valid")
	if err != nil {
		t.Fatal(err)
	}

	if got, want := tbl.CustomTypes["CPACSPoint"], "tigl::CTiglPoint"; got != want {
		t.Errorf("CustomTypes[CPACSPoint] = %q, want %q", got, want)
	}
	if got, want := tbl.FundamentalTypes["xsd:double"], "double"; got != want {
		t.Errorf("FundamentalTypes[xsd:double] = %q, want %q", got, want)
	}
	if !tbl.ParentPointer["CPACSWing"] {
		t.Error("expected CPACSWing in ParentPointer set")
	}
	if !tbl.PruneList["CPACSLegacyMisc"] {
		t.Error("expected CPACSLegacyMisc in PruneList set")
	}

	if v, ok := tbl.SubstitutionFor("UIDBaseType"); !ok || v != "CPACSUIDBase" {
		t.Errorf("SubstitutionFor(UIDBaseType) = (%q, %v), want (CPACSUIDBase, true)", v, ok)
	}
	if _, ok := tbl.SubstitutionFor("NoSuchType"); ok {
		t.Error("SubstitutionFor(NoSuchType) unexpectedly found a mapping")
	}

	if !Contains(tbl.ReservedNames, "type") {
		t.Error("expected \"type\" to be a reserved name")
	}

	name := "xsd:unknown"
	SubstituteIfExists(tbl.FundamentalTypes, "xsd:string", &name)
	if name != "string" {
		t.Errorf("SubstituteIfExists did not overwrite: got %q", name)
	}
	name = "untouched"
	SubstituteIfExists(tbl.FundamentalTypes, "xsd:nosuch", &name)
	if name != "untouched" {
		t.Errorf("SubstituteIfExists overwrote on missing key: got %q", name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("../testdata/tables/malformed")
	if err == nil {
		t.Fatal("expected error for missing PruneList.txt")
	}
	if !strings.Contains(err.Error(), "PruneList.txt") {
		t.Errorf("error %q does not name the missing file", err.Error())
	}
}

func TestLoadMalformedLine(t *testing.T) {
	_, err := Load("../testdata/tables/malformed")
	if err == nil {
		t.Fatal("expected error for malformed CustomTypes.txt line")
	}
	if !strings.Contains(err.Error(), "CustomTypes.txt") {
		t.Errorf("error %q does not name the malformed file", err.Error())
	}
}
