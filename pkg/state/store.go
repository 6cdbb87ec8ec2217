// Package state holds the per-form bookkeeping the renderers read from:
// default values, labels, validation scopes, form level messages and the
// reset flag.
//
// A Store is created per request. It is not safe for concurrent use, the same
// way a request-scoped form is only ever rendered by one goroutine.
package state

import (
	"github.com/goliatone/go-formation/pkg/request"
	"github.com/goliatone/go-formation/pkg/validation"
)

// Kind selects how Value treats missing data.
type Kind string

const (
	KindStandard Kind = "standard"
	// KindCheckbox resolves missing values to 0 so the result can be written
	// straight into a persistence layer.
	KindCheckbox Kind = "checkbox"
)

// Store owns defaults, labels, validation scopes and the reset flag of one
// form build.
type Store struct {
	source   request.Source
	defaults map[string]any
	labels   map[string]string
	scopes   []validation.Scope
	messages []string
	reset    bool
}

// New creates a Store reading submitted values from src. A nil source behaves
// like a request without a body.
func New(src request.Source) *Store {
	if src == nil {
		src = request.Empty()
	}
	return &Store{
		source:   src,
		defaults: make(map[string]any),
		labels:   make(map[string]string),
	}
}

// Source returns the request data source backing the store.
func (s *Store) Source() request.Source {
	return s.source
}

// Submitted reports whether the current request carried a body.
func (s *Store) Submitted() bool {
	return s.source.HasBody()
}

// SetDefaults replaces the defaults wholesale and returns the stored map.
func (s *Store) SetDefaults(values map[string]any) map[string]any {
	s.defaults = make(map[string]any, len(values))
	for path, value := range values {
		s.defaults[path] = value
	}
	return s.Defaults()
}

// ResetDefaults optionally replaces the defaults and then forces every value
// to resolve from defaults, ignoring the submission, for the rest of the build.
func (s *Store) ResetDefaults(values map[string]any) {
	if len(values) > 0 {
		s.SetDefaults(values)
	}
	s.reset = true
}

// Reset reports whether ResetDefaults was called.
func (s *Store) Reset() bool {
	return s.reset
}

// Defaults returns a copy of the current defaults.
func (s *Store) Defaults() map[string]any {
	out := make(map[string]any, len(s.defaults))
	for path, value := range s.defaults {
		out[path] = value
	}
	return out
}

// SetLabels replaces the label map wholesale.
func (s *Store) SetLabels(values map[string]string) {
	s.labels = make(map[string]string, len(values))
	for path, label := range values {
		s.labels[path] = label
	}
}

// Label returns the registered label of path.
func (s *Store) Label(path string) (string, bool) {
	label, ok := s.labels[path]
	return label, ok
}

// RegisterLabel records label for path. Rendering a label calls this, so the
// label map grows as a form is rendered.
func (s *Store) RegisterLabel(path, label string) {
	if path == "" {
		return
	}
	s.labels[path] = label
}

// Labels returns a copy of the registered labels.
func (s *Store) Labels() map[string]string {
	out := make(map[string]string, len(s.labels))
	for path, label := range s.labels {
		out[path] = label
	}
	return out
}

// SetScopes replaces the validation scopes.
func (s *Store) SetScopes(scopes []validation.Scope) {
	s.scopes = append([]validation.Scope(nil), scopes...)
}

// Scopes returns the validation scopes in registration order.
func (s *Store) Scopes() []validation.Scope {
	return append([]validation.Scope(nil), s.scopes...)
}

// SetFormErrors replaces the form level messages, the ones not tied to a
// single field.
func (s *Store) SetFormErrors(messages []string) {
	s.messages = append([]string(nil), messages...)
}

// FormErrors returns the form level messages in the order they were set.
func (s *Store) FormErrors() []string {
	return append([]string(nil), s.messages...)
}

// Scope returns the result of the first scope registered under name.
func (s *Store) Scope(name string) (validation.Result, bool) {
	for _, scope := range s.scopes {
		if scope.Name == name && scope.Result != nil {
			return scope.Result, true
		}
	}
	return nil, false
}

// Validated reports whether every scope passed, or, when names are given,
// whether each named scope exists and passed.
func (s *Store) Validated(names ...string) bool {
	if len(names) == 0 {
		for _, scope := range s.scopes {
			if scope.Result != nil && !scope.Result.Passed() {
				return false
			}
		}
		return true
	}

	for _, name := range names {
		result, ok := s.Scope(name)
		if !ok || !result.Passed() {
			return false
		}
	}
	return true
}

// Value resolves the current value of path. A submitted value wins when the
// request has a body and the store was not reset; otherwise the default is
// used, and finally the empty string. KindCheckbox maps a missing or nil value
// to 0.
func (s *Store) Value(path string, kind Kind) any {
	var value any

	found := false
	if s.source.HasBody() && !s.reset {
		value, found = s.source.Get(path)
	}
	if !found {
		value = s.defaults[path]
	}

	if value == nil {
		if kind == KindCheckbox {
			return 0
		}
		return ""
	}
	return value
}
