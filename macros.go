package formation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrMacroNotFound is returned when calling a macro nobody registered.
var ErrMacroNotFound = errors.New("macro not found")

// Macro renders custom markup with the calling form.
type Macro func(f *Form, args ...any) (string, error)

// MacroRegistry stores macros by name. It is safe for concurrent use and is
// meant to be filled at startup and read by every request.
type MacroRegistry struct {
	mu     sync.RWMutex
	macros map[string]Macro
}

var defaultMacros = NewMacroRegistry()

// NewMacroRegistry creates an empty registry.
func NewMacroRegistry() *MacroRegistry {
	return &MacroRegistry{macros: make(map[string]Macro)}
}

// DefaultMacros returns the registry forms use unless WithMacros is given.
func DefaultMacros() *MacroRegistry {
	return defaultMacros
}

// RegisterMacro adds a macro to the default registry.
func RegisterMacro(name string, macro Macro) error {
	return defaultMacros.Register(name, macro)
}

// Register adds macro under name. Duplicate names return an error.
func (r *MacroRegistry) Register(name string, macro Macro) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("formation: macro name is required")
	}
	if macro == nil {
		return fmt.Errorf("formation: macro %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.macros[name]; exists {
		return fmt.Errorf("formation: macro %q already registered", name)
	}
	r.macros[name] = macro
	return nil
}

// MustRegister panics on registration failure.
func (r *MacroRegistry) MustRegister(name string, macro Macro) {
	if err := r.Register(name, macro); err != nil {
		panic(err)
	}
}

// Has reports whether name is registered.
func (r *MacroRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.macros[strings.TrimSpace(name)]
	return ok
}

// List returns the registered names sorted.
func (r *MacroRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.macros))
	for name := range r.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the macro registered under name.
func (r *MacroRegistry) Call(f *Form, name string, args ...any) (string, error) {
	r.mu.RLock()
	macro, ok := r.macros[strings.TrimSpace(name)]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("formation: Method [%s] does not exist: %w", name, ErrMacroNotFound)
	}
	return macro(f, args...)
}
