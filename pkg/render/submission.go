package render

import (
	"sort"
	"strings"
)

// MethodField is the hidden input that carries a spoofed HTTP method.
const MethodField = "_method"

// HiddenField is a hidden input emitted next to the visible controls.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: Stringify(value),
	}
}

// CSRFToken constructs the hidden field carrying token. Callers pass the
// input name their backend expects, usually Config.CSRFField.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// SpoofMethod maps method onto something a browser form can submit. GET stays
// GET, everything else is sent as POST. PUT, PATCH and DELETE also return the
// hidden _method field the server uses to recover the intended verb.
func SpoofMethod(method string) (string, *HiddenField) {
	upper := strings.ToUpper(strings.TrimSpace(method))
	switch upper {
	case "GET":
		return "GET", nil
	case "PUT", "PATCH", "DELETE":
		field := Hidden(MethodField, upper)
		return "POST", &field
	default:
		return "POST", nil
	}
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	clean := make(map[string]string, len(fields))
	for name, value := range fields {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		if _, seen := clean[key]; !seen {
			names = append(names, key)
		}
		clean[key] = value
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  name,
			Value: clean[name],
		})
	}
	return result
}
