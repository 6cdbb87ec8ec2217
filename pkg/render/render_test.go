package render_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formation/pkg/render"
	"github.com/goliatone/go-formation/pkg/request"
	"github.com/goliatone/go-formation/pkg/state"
	"github.com/goliatone/go-formation/pkg/validation"
)

func TestParseConfig_KeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := render.ParseConfig([]byte("field_container: p\nauto_csrf_token: false\n"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	want := render.DefaultConfig()
	want.FieldContainer = "p"
	want.AutoCSRFToken = false
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := render.LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if diff := cmp.Diff(render.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := render.ParseConfig([]byte("encoding: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestConfigNormalize(t *testing.T) {
	got := render.Config{FieldContainer: "  ", Encoding: " ISO-8859-1 "}.Normalize()
	if got.FieldContainer != render.DefaultFieldContainer {
		t.Fatalf("expected default container, got %q", got.FieldContainer)
	}
	if got.Encoding != "ISO-8859-1" {
		t.Fatalf("expected trimmed encoding, got %q", got.Encoding)
	}
	if got.CSRFField != render.DefaultCSRFField || got.ErrorClass != render.DefaultErrorClass {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestEscaper_Escape(t *testing.T) {
	escaper := render.NewEscaper("UTF-8")

	cases := map[string]string{
		`<a href="x">Tom & Jerry's</a>`: "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#039;s&lt;/a&gt;",
		"already &amp; escaped &#39;":   "already &amp; escaped &#39;",
		"a && b":                        "a &amp;&amp; b",
		"café ☃":                        "café ☃",
		"":                              "",
	}
	for input, want := range cases {
		if got := escaper.Escape(input); got != want {
			t.Fatalf("escape %q: want %q, got %q", input, want, got)
		}
	}
}

func TestEscaper_Charset(t *testing.T) {
	latin := render.NewEscaper("ISO-8859-1")
	if latin.Charset() != "ISO-8859-1" {
		t.Fatalf("unexpected charset %q", latin.Charset())
	}
	if got := latin.Escape("café ☃"); got != "café &#9731;" {
		t.Fatalf("unexpected latin escape %q", got)
	}

	unknown := render.NewEscaper("klingon")
	if unknown.Charset() != render.DefaultEncoding {
		t.Fatalf("expected fallback charset, got %q", unknown.Charset())
	}
}

func TestAttributes(t *testing.T) {
	attrs := render.Attrs("class", "wide", "id", "name", "required")

	want := render.Attributes{
		{Name: "class", Value: "wide"},
		{Name: "id", Value: "name"},
		{Name: "required", Value: "required"},
	}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}

	withClass := attrs.WithClass("error")
	if value, _ := withClass.Get("class"); value != "wide error" {
		t.Fatalf("expected appended class, got %q", value)
	}
	if value, _ := attrs.Get("class"); value != "wide" {
		t.Fatalf("original attributes mutated: %q", value)
	}

	if attrs.Without("id").Has("id") {
		t.Fatalf("expected id removed")
	}
	if value, _ := attrs.Default("id", "other").Get("id"); value != "name" {
		t.Fatalf("default must not override, got %q", value)
	}
}

func TestAttributes_SplitSuffix(t *testing.T) {
	attrs := render.Attrs("class", "opt", "class_container", "wide", "data-x_container", "1")

	matched, rest := attrs.SplitSuffix("_container")

	wantMatched := render.Attributes{{Name: "class", Value: "wide"}, {Name: "data-x", Value: "1"}}
	wantRest := render.Attributes{{Name: "class", Value: "opt"}}
	if diff := cmp.Diff(wantMatched, matched); diff != "" {
		t.Fatalf("matched mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantRest, rest); diff != "" {
		t.Fatalf("rest mismatch (-want +got):\n%s", diff)
	}
}

func TestEscaper_HTML(t *testing.T) {
	escaper := render.NewEscaper("")
	got := escaper.HTML(render.Attrs("value", `say "hi"`, "disabled"))
	want := ` value="say &quot;hi&quot;" disabled="disabled"`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if escaper.HTML(nil) != "" {
		t.Fatalf("expected empty output for no attributes")
	}
}

func TestFromMap_SortsNames(t *testing.T) {
	got := render.FromMap(map[string]string{"rows": "3", "cols": "40"})
	want := render.Attributes{{Name: "cols", Value: "40"}, {Name: "rows", Value: "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "1"},
		{false, ""},
		{0, "0"},
		{int64(12), "12"},
		{1.5, "1.5"},
		{[]string{"a", "b"}, "a,b"},
	}
	for _, tc := range cases {
		if got := render.Stringify(tc.in); got != tc.want {
			t.Fatalf("stringify %#v: want %q, got %q", tc.in, tc.want, got)
		}
	}

	if _, ok := render.Strings("x"); ok {
		t.Fatalf("scalar must not be treated as a sequence")
	}
	values, ok := render.Strings([]any{"a", 2})
	if !ok {
		t.Fatalf("expected sequence")
	}
	if diff := cmp.Diff([]string{"a", "2"}, values); diff != "" {
		t.Fatalf("strings mismatch (-want +got):\n%s", diff)
	}
}

func submittedStore(t *testing.T) *state.Store {
	t.Helper()
	return state.New(request.FromValues(map[string]any{
		"email": "nope",
		"items": map[string]any{"qty": ""},
	}))
}

func TestResolver_SubstitutesLabel(t *testing.T) {
	store := submittedStore(t)
	store.SetScopes([]validation.Scope{{
		Name:   "items",
		Prefix: "items",
		Result: validation.NewOutcome(map[string]string{"qty": "qty is required"}),
	}})
	store.SetLabels(map[string]string{"items.qty": "Quantity"})

	resolver := render.NewResolver(store)
	message, ok := resolver.MessageFor("items.qty")
	if !ok {
		t.Fatalf("expected a message")
	}
	if message != "Quantity is required" {
		t.Fatalf("unexpected message %q", message)
	}
}

func TestResolver_RootScopeFallsBackToPath(t *testing.T) {
	store := submittedStore(t)
	store.SetScopes([]validation.Scope{{
		Name:   "root",
		Result: validation.NewOutcome(map[string]string{"email": "The email field is invalid."}),
	}})

	resolver := render.NewResolver(store)
	message, ok := resolver.MessageFor("email")
	if !ok || message != "The email field is invalid." {
		t.Fatalf("unexpected message %q (%v)", message, ok)
	}

	store.SetLabels(map[string]string{"email": "E-mail address"})
	message, _ = resolver.MessageFor("email")
	if message != "The E-mail address field is invalid." {
		t.Fatalf("unexpected labelled message %q", message)
	}
}

func TestResolver_AbsentCases(t *testing.T) {
	scopes := []validation.Scope{{
		Name:   "items",
		Result: validation.NewOutcome(map[string]string{"qty": "qty is required"}),
	}}

	unsubmitted := state.New(request.Empty())
	unsubmitted.SetScopes(scopes)
	if render.NewResolver(unsubmitted).HasError("items.qty") {
		t.Fatalf("no body must mean no error")
	}

	store := submittedStore(t)
	store.SetScopes(scopes)
	resolver := render.NewResolver(store)
	if resolver.HasError("orders.qty") {
		t.Fatalf("unknown scope must not report")
	}
	if resolver.HasError("items.sku") {
		t.Fatalf("leaf without message must not report")
	}
	if render.NewResolver(nil).HasError("items.qty") {
		t.Fatalf("nil lookup must not report")
	}
}

func TestResolver_FirstScopeWins(t *testing.T) {
	store := submittedStore(t)
	store.SetScopes([]validation.Scope{
		{Name: "address", Prefix: "billing.address", Result: validation.NewOutcome(map[string]string{"zip": "zip is required"})},
		{Name: "address", Prefix: "shipping.address", Result: validation.NewOutcome(map[string]string{"zip": "zip is malformed"})},
	})

	message, _ := render.NewResolver(store).MessageFor("shipping.address.zip")
	if message != "shipping.address.zip is required" {
		t.Fatalf("expected first registered scope to answer, got %q", message)
	}
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/name":       {"name is required"},
		"body.owner.email": {" email invalid ", "email invalid"},
		"$.body.tags[0]":   {"tags must be unique"},
		"non_field_errors": {"Form level error"},
		"":                 {"Unscoped form error"},
		"owner.phone":      {"  "},
	}

	mapped := render.MapErrorPayload(payload)

	got := make(map[string]string)
	for _, scope := range mapped.Scopes {
		outcome, ok := scope.Result.(validation.Outcome)
		if !ok {
			t.Fatalf("unexpected result type %T", scope.Result)
		}
		for leaf, message := range outcome.Messages() {
			got[scope.Name+":"+leaf] = message
		}
	}
	want := map[string]string{
		"root:name":   "name is required",
		"root:tags":   "tags must be unique",
		"owner:email": "email invalid",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("scoped errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_FeedsResolver(t *testing.T) {
	mapped := render.MapErrorPayload(map[string][]string{"items[qty]": {"qty is required"}})

	store := submittedStore(t)
	store.SetScopes(mapped.Scopes)
	store.SetLabels(map[string]string{"items.qty": "Quantity"})

	message, ok := render.NewResolver(store).MessageFor("items.qty")
	if !ok || message != "Quantity is required" {
		t.Fatalf("unexpected message %q (%v)", message, ok)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged mismatch (-want +got):\n%s", diff)
	}
}

func TestSpoofMethod(t *testing.T) {
	cases := []struct {
		in     string
		method string
		hidden *render.HiddenField
	}{
		{"get", "GET", nil},
		{"", "POST", nil},
		{"post", "POST", nil},
		{"put", "POST", &render.HiddenField{Name: "_method", Value: "PUT"}},
		{"DELETE", "POST", &render.HiddenField{Name: "_method", Value: "DELETE"}},
	}
	for _, tc := range cases {
		method, hidden := render.SpoofMethod(tc.in)
		if method != tc.method {
			t.Fatalf("%q: want method %q, got %q", tc.in, tc.method, method)
		}
		if diff := cmp.Diff(tc.hidden, hidden); diff != "" {
			t.Fatalf("%q: hidden mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestHiddenFields(t *testing.T) {
	if got := render.CSRFToken("csrf_token", "abc"); got != (render.HiddenField{Name: "csrf_token", Value: "abc"}) {
		t.Fatalf("unexpected token field %+v", got)
	}
	if got := render.Hidden(" version ", 3); got.Name != "version" || got.Value != "3" {
		t.Fatalf("unexpected hidden field %+v", got)
	}

	sorted := render.SortedHiddenFields(map[string]string{"b": "2", "a": "1", " ": "x"})
	want := []render.HiddenField{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Fatalf("sorted mismatch (-want +got):\n%s", diff)
	}
}
