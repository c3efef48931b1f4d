package cpacsio

import "testing"

func TestParseDocumentAndQuery(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<cpacs>
  <header version="1.0">
    <name>demo</name>
  </header>
  <wings>
    <wing uid="w1"><x>1</x></wing>
    <wing uid="w2"><x>2</x></wing>
  </wings>
</cpacs>`)

	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatal(err)
	}

	if v, ok := doc.GetStringAttribute("/cpacs/header", "version"); !ok || v != "1.0" {
		t.Errorf("header version = (%q, %v), want (1.0, true)", v, ok)
	}
	if v, ok := doc.GetStringElement("/cpacs/header/name"); !ok || v != "demo" {
		t.Errorf("header name = (%q, %v), want (demo, true)", v, ok)
	}
	if !doc.CheckElement("/cpacs/header") {
		t.Error("CheckElement(header) = false, want true")
	}
	if doc.CheckElement("/cpacs/nonexistent") {
		t.Error("CheckElement(nonexistent) = true, want false")
	}

	var uids []string
	doc.ForEachChild("/cpacs/wings", "wing", func(xpath string) {
		v, _ := doc.GetStringAttribute(xpath, "uid")
		uids = append(uids, v)
	})
	if len(uids) != 2 || uids[0] != "w1" || uids[1] != "w2" {
		t.Errorf("ForEachChild visited %v, want [w1 w2]", uids)
	}
}

func TestDocumentWrite(t *testing.T) {
	doc := NewDocument("cpacs")
	doc.SetStringAttribute("/cpacs/header", "version", "2.0")
	doc.SetDoubleElement("/cpacs/header/value", 3.5)

	childXPath := doc.AppendChild("/cpacs/wings", "wing")
	doc.SetStringAttribute(childXPath, "uid", "w1")

	out, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	doc2, err := ParseDocument(out)
	if err != nil {
		t.Fatalf("round-trip parse failed: %v\n%s", err, out)
	}
	if v, ok := doc2.GetStringAttribute("/cpacs/header", "version"); !ok || v != "2.0" {
		t.Errorf("round-tripped version = (%q, %v), want (2.0, true)", v, ok)
	}
	if v, ok := doc2.GetDoubleElement("/cpacs/header/value"); !ok || v != 3.5 {
		t.Errorf("round-tripped value = (%v, %v), want (3.5, true)", v, ok)
	}
}

func TestOptional(t *testing.T) {
	var o Optional[string]
	if o.Has() {
		t.Error("zero-value Optional should not be present")
	}
	o.Set("x")
	if !o.Has() || o.Get() != "x" {
		t.Errorf("after Set: Has()=%v Get()=%q, want true, \"x\"", o.Has(), o.Get())
	}
	o.Destroy()
	if o.Has() {
		t.Error("after Destroy, Has() should be false")
	}
}
