// Package request exposes submitted form data to the form helpers through the
// small Source contract, plus adapters for url.Values and *http.Request.
package request

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formation/pkg/fieldpath"
)

// Source supplies submitted form values addressed by dotted field paths.
type Source interface {
	// HasBody reports whether the current request carried submitted data.
	HasBody() bool
	// Get returns the submitted value for path. Nested groups are returned as
	// map[string]any, repeated values as []string.
	Get(path string) (any, bool)
	// All returns the full submitted payload as a nested map.
	All() map[string]any
}

// Locator is implemented by sources that know the URL of the current request.
// Form helpers use it to default the action of an opened form.
type Locator interface {
	Scheme() string
	Host() string
	Path() string
}

// CSRFSource is implemented by sources that can supply the session CSRF token.
type CSRFSource interface {
	CSRFToken() string
}

// WithCSRFToken attaches the session token to src. Locator details of src
// stay available through the returned source.
func WithCSRFToken(src Source, token string) Source {
	if src == nil {
		src = Empty()
	}
	return &tokenSource{Source: src, token: token}
}

type tokenSource struct {
	Source
	token string
}

func (t *tokenSource) CSRFToken() string { return t.token }

func (t *tokenSource) Scheme() string {
	if loc, ok := t.Source.(Locator); ok {
		return loc.Scheme()
	}
	return ""
}

func (t *tokenSource) Host() string {
	if loc, ok := t.Source.(Locator); ok {
		return loc.Host()
	}
	return ""
}

func (t *tokenSource) Path() string {
	if loc, ok := t.Source.(Locator); ok {
		return loc.Path()
	}
	return ""
}

type values struct {
	data      map[string]any
	submitted bool
}

// FromValues wraps an already nested payload. The source reports a body only
// when data is non-empty.
func FromValues(data map[string]any) Source {
	return &values{data: cloneMap(data), submitted: len(data) > 0}
}

// Empty returns a source for requests that carried no submission.
func Empty() Source {
	return &values{}
}

func (v *values) HasBody() bool {
	return v != nil && v.submitted
}

func (v *values) Get(path string) (any, bool) {
	if v == nil {
		return nil, false
	}
	return Lookup(v.data, path)
}

func (v *values) All() map[string]any {
	if v == nil {
		return map[string]any{}
	}
	return cloneMap(v.data)
}

// Lookup walks a nested payload using a dotted path.
func Lookup(data map[string]any, path string) (any, bool) {
	if len(data) == 0 || strings.TrimSpace(path) == "" {
		return nil, false
	}

	var current any = data
	for _, segment := range fieldpath.Segments(path) {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, ok := index(segment, len(node))
			if !ok {
				return nil, false
			}
			current = node[idx]
		case []string:
			idx, ok := index(segment, len(node))
			if !ok {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func index(segment string, length int) (int, bool) {
	idx, err := strconv.ParseUint(segment, 10, 0)
	if err != nil || idx >= uint64(length) {
		return 0, false
	}
	return int(idx), true
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneMap(v)
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
