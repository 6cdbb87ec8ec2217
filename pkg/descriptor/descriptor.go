// Package descriptor describes a whole form in one document: for every field
// path an optional label, validation rule and default value.
//
// Each entry is either a tuple, [label, rule, default], or a mapping with the
// label, rules and default keys:
//
//	user.name: ["Name", "required|min:3", "Jane"]
//	user.email:
//	  label: Email
//	  rules: required,email
//	newsletter: ["", "", 1]
//
// Empty parts are skipped, so the newsletter entry above only sets a default.
package descriptor

import (
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formation/pkg/render"
)

// Field is the label, rule and default configured for one path.
type Field struct {
	Label   string `yaml:"label"`
	Rules   string `yaml:"rules"`
	Default any    `yaml:"default"`
}

// Entry binds a Field to its path.
type Entry struct {
	Path  string
	Field Field
}

// Descriptor is an ordered list of entries. Parse keeps document order.
type Descriptor []Entry

// FromTuples builds a descriptor from path keyed [label, rule, default]
// tuples. Paths are sorted; extra tuple items are ignored.
func FromTuples(tuples map[string][]any) Descriptor {
	paths := make([]string, 0, len(tuples))
	for path := range tuples {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := make(Descriptor, 0, len(paths))
	for _, path := range paths {
		out = append(out, Entry{Path: path, Field: fromTuple(tuples[path])})
	}
	return out
}

func fromTuple(tuple []any) Field {
	var field Field
	if len(tuple) > 0 {
		field.Label = render.Stringify(tuple[0])
	}
	if len(tuple) > 1 {
		field.Rules = render.Stringify(tuple[1])
	}
	if len(tuple) > 2 {
		field.Default = tuple[2]
	}
	return field
}

// Labels returns the non empty labels keyed by path.
func (d Descriptor) Labels() map[string]string {
	out := make(map[string]string)
	for _, entry := range d {
		if entry.Field.Label != "" {
			out[entry.Path] = entry.Field.Label
		}
	}
	return out
}

// Rules returns the non empty rules keyed by path.
func (d Descriptor) Rules() map[string]string {
	out := make(map[string]string)
	for _, entry := range d {
		if entry.Field.Rules != "" {
			out[entry.Path] = entry.Field.Rules
		}
	}
	return out
}

// Defaults returns the defaults keyed by path. Nil and empty string defaults
// are skipped; zero numbers and false are kept.
func (d Descriptor) Defaults() map[string]any {
	out := make(map[string]any)
	for _, entry := range d {
		if isEmpty(entry.Field.Default) {
			continue
		}
		out[entry.Path] = entry.Field.Default
	}
	return out
}

// Paths lists the entry paths in order.
func (d Descriptor) Paths() []string {
	out := make([]string, 0, len(d))
	for _, entry := range d {
		out = append(out, entry.Path)
	}
	return out
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

// Parse decodes a YAML (or JSON) descriptor document.
func Parse(data []byte) (Descriptor, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Descriptor{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("descriptor: parse: %w", err)
	}
	if len(doc.Content) == 0 {
		return Descriptor{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("descriptor: expected a mapping of field paths, got %s", kindName(root.Kind))
	}

	out := make(Descriptor, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		path := strings.TrimSpace(root.Content[i].Value)
		if path == "" {
			continue
		}
		field, err := decodeField(root.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("descriptor: field %s: %w", path, err)
		}
		out = append(out, Entry{Path: path, Field: field})
	}
	return out, nil
}

func decodeField(node *yaml.Node) (Field, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var tuple []any
		if err := node.Decode(&tuple); err != nil {
			return Field{}, err
		}
		return fromTuple(tuple), nil
	case yaml.MappingNode:
		var field Field
		if err := node.Decode(&field); err != nil {
			return Field{}, err
		}
		return field, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Field{}, nil
		}
		// A bare scalar is shorthand for a label.
		return Field{Label: node.Value}, nil
	}
	return Field{}, fmt.Errorf("unsupported %s entry", kindName(node.Kind))
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

// Load reads a descriptor document from r.
func Load(r io.Reader) (Descriptor, error) {
	if r == nil {
		return Descriptor{}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read: %w", err)
	}
	return Parse(data)
}

// LoadFS reads the named descriptor file from fsys.
func LoadFS(fsys fs.FS, name string) (Descriptor, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", name, err)
	}
	return Parse(data)
}
