package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formation/pkg/request"
)

func TestGroupRulesSplitsRootAndNestedScopes(t *testing.T) {
	groups := GroupRules(map[string]string{
		"email":       "required|email",
		"items.qty":   "required",
		"items.price": "numeric",
		"name":        "required",
	})

	want := []Group{
		{Name: "root", Prefix: "", Rules: map[string]string{"email": "required|email", "name": "required"}},
		{Name: "items", Prefix: "items", Rules: map[string]string{"qty": "required", "price": "numeric"}},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

// Two different paths sharing a second-to-last segment collapse into one
// scope. This pins the current behaviour rather than asserting it is ideal.
func TestGroupRulesCollapsesSharedScopeNames(t *testing.T) {
	groups := GroupRules(map[string]string{
		"billing.address.city":  "required",
		"shipping.address.city": "required|min:3",
	})
	if len(groups) != 1 {
		t.Fatalf("expected a single scope, got %d", len(groups))
	}
	if groups[0].Prefix != "billing.address" {
		t.Fatalf("expected first path to fix the prefix, got %q", groups[0].Prefix)
	}
	if got := groups[0].Rules["city"]; got != "required|min:3" {
		t.Fatalf("expected later path to win the rule, got %q", got)
	}
}

func TestNormalizeRule(t *testing.T) {
	cases := map[string]string{
		"required,email":        "required,email",
		"required|email":        "required,email",
		"required|min:3|max:10": "required,min=3,max=10",
		"in:S,M,L":              "omitempty,oneof=S M L",
		"string|nullable|email": "omitempty,email",
		"between:2,5":           "omitempty,min=2,max=5",
		"integer|alpha_num":     "omitempty,number,alphanum",
		"  required  ":          "required",
		"url":                   "omitempty,url",
		"omitempty,numeric":     "omitempty,numeric",
		"required_with=a|url":   "required_with=a,url",
		"nullable":              "",
		"":                      "",
	}
	for input, want := range cases {
		if got := NormalizeRule(input); got != want {
			t.Fatalf("NormalizeRule(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRuleValidatorReportsFirstMessagePerField(t *testing.T) {
	v := NewRuleValidator()
	result, err := v.Validate(context.Background(), map[string]string{
		"email": "required|email",
		"name":  "required",
		"age":   "omitempty,numeric",
	}, map[string]any{
		"email": "not-an-email",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Passed() {
		t.Fatalf("expected validation to fail")
	}
	if got := result.FirstMessage("email"); got != "The email must be a valid email address." {
		t.Fatalf("unexpected email message %q", got)
	}
	if got := result.FirstMessage("name"); got != "The name field is required." {
		t.Fatalf("unexpected name message %q", got)
	}
	if got := result.FirstMessage("age"); got != "" {
		t.Fatalf("expected no message for optional field, got %q", got)
	}
}

func TestRuleValidatorSkipsBlankOptionalFields(t *testing.T) {
	v := NewRuleValidator()
	rules := map[string]string{
		"website": "url",
		"nick":    "min:3",
		"email":   "required|email",
	}

	for name, data := range map[string]map[string]any{
		"absent": {"email": "a@b.co"},
		"blank":  {"email": "a@b.co", "website": "", "nick": ""},
	} {
		result, err := v.Validate(context.Background(), rules, data)
		if err != nil {
			t.Fatalf("%s: validate: %v", name, err)
		}
		if !result.Passed() {
			t.Fatalf("%s: expected optional fields to pass, got website=%q nick=%q",
				name, result.FirstMessage("website"), result.FirstMessage("nick"))
		}
	}

	result, err := v.Validate(context.Background(), rules, map[string]any{"email": "a@b.co", "website": "nope", "nick": "ab"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := result.FirstMessage("website"); got != "The website format is invalid." {
		t.Fatalf("unexpected website message %q", got)
	}
	if got := result.FirstMessage("nick"); got != "The nick must be at least 3." {
		t.Fatalf("unexpected nick message %q", got)
	}
}

func TestRuleValidatorCustomMessages(t *testing.T) {
	v := NewRuleValidator(WithMessages(map[string]string{
		"min": ":attribute needs :param characters",
	}))
	result, err := v.Validate(context.Background(), map[string]string{"code": "min:4"}, map[string]any{"code": "ab"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := result.FirstMessage("code"); got != "code needs 4 characters" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRuleValidatorUnknownTagIsAnError(t *testing.T) {
	v := NewRuleValidator()
	_, err := v.Validate(context.Background(), map[string]string{"code": "definitely_not_a_tag"}, nil)
	if err == nil {
		t.Fatalf("expected unknown tag to produce an error")
	}
}

func TestRunUsesScopeData(t *testing.T) {
	src := request.FromValues(map[string]any{
		"email": "a@example.com",
		"items": map[string]any{"qty": ""},
	})

	scopes, err := Run(context.Background(), NewRuleValidator(), src, map[string]string{
		"email":     "required|email",
		"items.qty": "required",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(scopes) != 2 {
		t.Fatalf("expected two scopes, got %d", len(scopes))
	}
	if scopes[0].Name != "root" || !scopes[0].Result.Passed() {
		t.Fatalf("expected root scope to pass, got %+v", scopes[0])
	}
	if scopes[1].Name != "items" || scopes[1].Result.Passed() {
		t.Fatalf("expected items scope to fail, got %+v", scopes[1])
	}
	if got := scopes[1].Result.FirstMessage("qty"); got != "The qty field is required." {
		t.Fatalf("unexpected qty message %q", got)
	}
}

func TestRunPropagatesValidatorErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := ValidatorFunc(func(context.Context, map[string]string, map[string]any) (Result, error) {
		return nil, boom
	})
	_, err := Run(context.Background(), failing, request.Empty(), map[string]string{"email": "required"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected validator error, got %v", err)
	}
}

func TestNewOutcomeDropsEmptyMessages(t *testing.T) {
	outcome := NewOutcome(map[string]string{"email": ""})
	if !outcome.Passed() {
		t.Fatalf("expected outcome without messages to pass")
	}
	if diff := cmp.Diff(map[string]string{}, outcome.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
