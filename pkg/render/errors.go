package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formation/pkg/fieldpath"
	"github.com/goliatone/go-formation/pkg/validation"
)

// Lookup is the read side of the form state the resolver needs.
// *state.Store satisfies it.
type Lookup interface {
	Submitted() bool
	Label(path string) (string, bool)
	Scope(name string) (validation.Result, bool)
}

// Resolver finds the first validation message of a field path and rewrites
// the raw field name inside it to the field's display label.
type Resolver struct {
	lookup Lookup
}

// NewResolver binds a resolver to lookup.
func NewResolver(lookup Lookup) Resolver {
	return Resolver{lookup: lookup}
}

// MessageFor returns the first error message for path. Nothing is reported
// when the request had no body, when no scope matches, or when the scope has
// no message for the leaf.
//
// Paths with fewer than two segments read the "root" scope and substitute the
// whole path; nested paths read the scope named after their second-to-last
// segment and substitute the leaf. When several scopes share a name the first
// registered one wins.
func (r Resolver) MessageFor(path string) (string, bool) {
	if r.lookup == nil || !r.lookup.Submitted() {
		return "", false
	}

	scope, leaf := fieldpath.Scope(path)
	result, ok := r.lookup.Scope(scope)
	if !ok {
		return "", false
	}

	message := result.FirstMessage(leaf)
	if message == "" {
		return "", false
	}

	display := path
	if label, ok := r.lookup.Label(path); ok && label != "" {
		display = label
	}
	if leaf == "" {
		return message, true
	}
	return strings.ReplaceAll(message, leaf, display), true
}

// HasError reports whether MessageFor finds a message for path.
func (r Resolver) HasError(path string) bool {
	_, ok := r.MessageFor(path)
	return ok
}

// ErrorMapping is a server side error payload split into validation scopes
// and form level messages.
type ErrorMapping struct {
	Scopes []validation.Scope
	Form   []string
}

// MapErrorPayload turns an error payload keyed by field paths into scopes the
// resolver can read. Keys may use dotted, bracketed or JSON pointer notation
// ("items.qty", "items[qty]", "#/items/qty"); leading wrapper segments such
// as "body" or "data" are dropped. Keys that do not name a field are kept as
// form level messages so nothing is lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var order []string
	prefixes := make(map[string]string)
	messages := make(map[string]map[string]string)

	for _, key := range keys {
		normalized := normalizeMessages(payload[key])
		if len(normalized) == 0 {
			continue
		}

		path, formLevel := mapErrorPath(key)
		if formLevel {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}

		name, leaf := fieldpath.Scope(path)
		if _, ok := messages[name]; !ok {
			order = append(order, name)
			prefixes[name] = fieldpath.Prefix(path)
			messages[name] = make(map[string]string)
		}
		if _, exists := messages[name][leaf]; !exists {
			messages[name][leaf] = normalized[0]
		}
	}

	for _, name := range order {
		mapping.Scopes = append(mapping.Scopes, validation.Scope{
			Name:   name,
			Prefix: prefixes[name],
			Result: validation.NewOutcome(messages[name]),
		})
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates form level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}

	segments := dropWrapperSegments(parsePathSegments(trimmed))
	segments = stripNumericSegments(segments)
	if len(segments) == 0 {
		return "", true
	}
	return strings.Join(segments, "."), false
}

func parsePathSegments(path string) []string {
	if path == "" {
		return nil
	}

	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimLeft(clean, "#/.$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"attributes": {},
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 1 {
		if _, ok := wrapperSegments[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

// Numeric segments address list items; scopes are named by field, not index.
func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
