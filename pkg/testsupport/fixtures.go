// Package testsupport collects helpers shared by the package tests: request
// fixtures, validation scope builders and golden file handling.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formation/pkg/request"
	"github.com/goliatone/go-formation/pkg/state"
	"github.com/goliatone/go-formation/pkg/validation"
)

// Submitted returns a request source carrying values as the submitted body.
func Submitted(values map[string]any) request.Source {
	return request.FromValues(values)
}

// NewStore builds a state store over values. A nil map behaves like a request
// without a body.
func NewStore(values map[string]any) *state.Store {
	if values == nil {
		return state.New(request.Empty())
	}
	return state.New(request.FromValues(values))
}

// FailedScope builds a validation scope whose result reports messages keyed
// by leaf field name.
func FailedScope(name, prefix string, messages map[string]string) validation.Scope {
	return validation.Scope{
		Name:   name,
		Prefix: prefix,
		Result: validation.NewOutcome(messages),
	}
}

// PassedScope builds a validation scope without messages.
func PassedScope(name, prefix string) validation.Scope {
	return FailedScope(name, prefix, nil)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written to the buffer.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
