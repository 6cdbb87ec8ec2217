package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Attribute is a single HTML attribute.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered attribute list. Order is preserved when rendering
// so output stays deterministic.
type Attributes []Attribute

// Attrs builds Attributes from name/value pairs. A trailing name without a
// value becomes a boolean attribute (required="required").
func Attrs(pairs ...string) Attributes {
	out := make(Attributes, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		name := strings.TrimSpace(pairs[i])
		value := name
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		out = out.With(name, value)
	}
	return out
}

// FromMap converts a map into Attributes sorted by name.
func FromMap(values map[string]string) Attributes {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Attributes, 0, len(names))
	for _, name := range names {
		out = out.With(name, values[name])
	}
	return out
}

// Clone returns a copy that can be mutated independently.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	return append(Attributes(nil), a...)
}

// Get returns the value of name.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether name is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// With returns a copy where name is set to value, replacing the existing
// entry in place or appending a new one.
func (a Attributes) With(name, value string) Attributes {
	if name == "" {
		return a.Clone()
	}
	out := a.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attribute{Name: name, Value: value})
}

// Default sets name only when it is not already present.
func (a Attributes) Default(name, value string) Attributes {
	if a.Has(name) {
		return a.Clone()
	}
	return a.With(name, value)
}

// Without returns a copy without the given names.
func (a Attributes) Without(names ...string) Attributes {
	out := make(Attributes, 0, len(a))
	for _, attr := range a {
		if containsString(names, attr.Name) {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// WithClass appends class to the class attribute.
func (a Attributes) WithClass(class string) Attributes {
	class = strings.TrimSpace(class)
	if class == "" {
		return a.Clone()
	}
	existing, ok := a.Get("class")
	if !ok || strings.TrimSpace(existing) == "" {
		return a.With("class", class)
	}
	return a.With("class", existing+" "+class)
}

// SplitSuffix moves every attribute whose name ends with suffix into matched,
// with the suffix stripped. The remaining attributes are returned as rest.
func (a Attributes) SplitSuffix(suffix string) (matched, rest Attributes) {
	for _, attr := range a {
		if suffix != "" && strings.HasSuffix(attr.Name, suffix) && len(attr.Name) > len(suffix) {
			matched = append(matched, Attribute{
				Name:  strings.TrimSuffix(attr.Name, suffix),
				Value: attr.Value,
			})
			continue
		}
		rest = append(rest, attr)
	}
	return matched, rest
}

// HTML renders the list as ` name="value"` pairs with escaped values. An
// empty list renders as the empty string.
func (e Escaper) HTML(attrs Attributes) string {
	if len(attrs) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, attr := range attrs {
		if attr.Name == "" {
			continue
		}
		builder.WriteByte(' ')
		builder.WriteString(attr.Name)
		builder.WriteString(`="`)
		builder.WriteString(e.Escape(attr.Value))
		builder.WriteByte('"')
	}
	return builder.String()
}

// Stringify converts a resolved field value into its attribute form. Booleans
// follow form conventions: true is "1", false is "".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return strings.Join(v, ",")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Strings converts sequence values into their string forms. The second result
// is false when value is not a sequence.
func Strings(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, Stringify(item))
		}
		return out, true
	case []int:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, strconv.Itoa(item))
		}
		return out, true
	default:
		return nil, false
	}
}

func containsString(values []string, needle string) bool {
	for _, value := range values {
		if value == needle {
			return true
		}
	}
	return false
}
