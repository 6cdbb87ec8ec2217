package state

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// FromStruct converts a record (struct, pointer or map) into flat dotted
// defaults through its JSON representation, so field names follow the
// record's json tags.
func FromStruct(record any) (map[string]any, error) {
	if record == nil {
		return map[string]any{}, nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("state: marshal record: %w", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("state: record %T is not an object: %w", record, err)
	}
	return Flatten(decoded), nil
}

// Flatten turns nested maps into dotted keys. Slices are kept as values so
// multi-selects and checkbox sets can match against them.
func Flatten(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	flattenInto(out, "", values)
	return out
}

func flattenInto(dest map[string]any, prefix string, values map[string]any) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := values[key].(map[string]any); ok && len(nested) > 0 {
			flattenInto(dest, path, nested)
			continue
		}
		dest[path] = values[key]
	}
}
