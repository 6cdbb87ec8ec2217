package descriptor

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const sample = `
user.name: ["Name", "required|min:3", "Jane"]
user.email:
  label: Email
  rules: required,email
newsletter: ["", "", 1]
notes: Notes
skipped:
quantity: [Quantity, required, 0]
`

func TestParseKeepsDocumentOrder(t *testing.T) {
	desc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []string{"user.name", "user.email", "newsletter", "notes", "skipped", "quantity"}
	if diff := cmp.Diff(want, desc.Paths()); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSplitsPartsAndSkipsEmpty(t *testing.T) {
	desc, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantLabels := map[string]string{
		"user.name":  "Name",
		"user.email": "Email",
		"notes":      "Notes",
		"quantity":   "Quantity",
	}
	if diff := cmp.Diff(wantLabels, desc.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	wantRules := map[string]string{
		"user.name":  "required|min:3",
		"user.email": "required,email",
		"quantity":   "required",
	}
	if diff := cmp.Diff(wantRules, desc.Rules()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	wantDefaults := map[string]any{
		"user.name":  "Jane",
		"newsletter": 1,
		"quantity":   0,
	}
	if diff := cmp.Diff(wantDefaults, desc.Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAcceptsJSON(t *testing.T) {
	desc, err := Parse([]byte(`{"title": ["Title", "required"], "body": {"label": "Body"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Descriptor{
		{Path: "title", Field: Field{Label: "Title", Rules: "required"}},
		{Path: "body", Field: Field{Label: "Body"}},
	}
	if diff := cmp.Diff(want, desc); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	desc, err := Parse([]byte("  \n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(desc) != 0 {
		t.Fatalf("expected empty descriptor, got %#v", desc)
	}
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	if err == nil || !strings.Contains(err.Error(), "sequence") {
		t.Fatalf("expected sequence error, got %v", err)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("name: [unterminated")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFromTuples(t *testing.T) {
	desc := FromTuples(map[string][]any{
		"email": {"Email Address", "required|email"},
		"age":   {nil, "", 18},
		"name":  {"Name"},
	})

	want := Descriptor{
		{Path: "age", Field: Field{Default: 18}},
		{Path: "email", Field: Field{Label: "Email Address", Rules: "required|email"}},
		{Path: "name", Field: Field{Label: "Name"}},
	}
	if diff := cmp.Diff(want, desc); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"email": "required|email"}, desc.Rules()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.yaml": {Data: []byte("message: [Message, required]\n")},
	}

	desc, err := LoadFS(fsys, "forms/contact.yaml")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"message": "Message"}, desc.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadFS(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoad(t *testing.T) {
	desc, err := Load(strings.NewReader("city: [City]"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(desc) != 1 || desc[0].Field.Label != "City" {
		t.Fatalf("unexpected descriptor %#v", desc)
	}
}
