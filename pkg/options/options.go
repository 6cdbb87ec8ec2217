// Package options builds the value/label lists rendered by select boxes,
// checkbox sets and radio sets.
package options

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// Option is one selectable entry. An Option with a non-nil Group renders as
// an <optgroup> labelled Label; its Value is ignored.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Group List   `json:"group,omitempty"`
}

// IsGroup reports whether the option is a group of nested options.
func (o Option) IsGroup() bool {
	return o.Group != nil
}

// List is an ordered option list.
type List []Option

// Pair returns an option with the given value and label.
func Pair(value, label string) Option {
	return Option{Value: value, Label: label}
}

// Group returns an option group. A nil items list is stored as an empty one
// so the result is always treated as a group.
func Group(label string, items List) Option {
	if items == nil {
		items = List{}
	}
	return Option{Label: label, Group: items}
}

// Values returns the values of the top level, non group options.
func (l List) Values() []string {
	out := make([]string, 0, len(l))
	for _, option := range l {
		if option.IsGroup() {
			continue
		}
		out = append(out, option.Value)
	}
	return out
}

// Find returns the first option with value, searching groups too.
func (l List) Find(value string) (Option, bool) {
	for _, option := range l {
		if option.IsGroup() {
			if found, ok := option.Group.Find(value); ok {
				return found, true
			}
			continue
		}
		if option.Value == value {
			return option, true
		}
	}
	return Option{}, false
}

// Simple uses every value as its own label.
func Simple(values ...string) List {
	out := make(List, 0, len(values))
	for _, value := range values {
		out = append(out, Pair(value, value))
	}
	return out
}

// Offset numbers the labels from 1, so the stored value is the 1-based
// position of the label.
func Offset(labels ...string) List {
	out := make(List, 0, len(labels))
	for i, label := range labels {
		out = append(out, Pair(strconv.Itoa(i+1), label))
	}
	return out
}

// FromMap converts a value to label map into a list sorted by value.
func FromMap(values map[string]string) List {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(List, 0, len(keys))
	for _, key := range keys {
		out = append(out, Pair(key, values[key]))
	}
	return out
}

// Numbers lists the numbers from start to end, inclusive, stepping by
// increment. The direction follows start and end; increment is taken as a
// magnitude. Values are formatted with decimals places, or as short as
// possible when decimals is zero.
func Numbers(start, end, increment float64, decimals int) List {
	increment = math.Abs(increment)
	if increment == 0 || math.IsNaN(start) || math.IsNaN(end) {
		return nil
	}
	step := increment
	if start > end {
		step = -increment
	}

	steps := int(math.Floor(math.Abs(end-start)/increment + 1e-9))
	out := make(List, 0, steps+1)
	for i := 0; i <= steps; i++ {
		value := formatNumber(start+float64(i)*step, decimals)
		out = append(out, Pair(value, value))
	}
	return out
}

func formatNumber(value float64, decimals int) string {
	if decimals > 0 {
		return strconv.FormatFloat(value, 'f', decimals, 64)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Granularity selects the minute marks Times produces for every hour.
type Granularity string

const (
	Hourly      Granularity = "full"
	HalfHourly  Granularity = "half"
	QuarterHour Granularity = "quarter"
	EveryMinute Granularity = "all"
)

// Times lists the times of a day. Values use the 24 hour "15:04:05" form and
// labels the 12 hour "03:04pm" form; midnight and noon read 12:00am and
// 12:00pm. Unknown granularities fall back to hourly.
func Times(granularity Granularity) List {
	minutes := []int{0}
	switch granularity {
	case HalfHourly:
		minutes = []int{0, 30}
	case QuarterHour:
		minutes = []int{0, 15, 30, 45}
	case EveryMinute:
		minutes = make([]int, 60)
		for m := range minutes {
			minutes[m] = m
		}
	}

	out := make(List, 0, 24*len(minutes))
	for h := 0; h < 24; h++ {
		hour := fmt.Sprintf("%02d", h)
		switch {
		case h == 0:
			hour = "12"
		case h > 12:
			hour = fmt.Sprintf("%02d", h-12)
		}
		meridiem := "am"
		if h >= 12 {
			meridiem = "pm"
		}
		for _, m := range minutes {
			value := fmt.Sprintf("%02d:%02d:00", h, m)
			label := fmt.Sprintf("%s:%02d%s", hour, m, meridiem)
			out = append(out, Pair(value, label))
		}
	}
	return out
}

// FromRecords builds a list from a slice of records (structs or maps). The
// option value is read from valueKey and the label from labelKey; an empty
// labelKey reuses the value. Records missing either key are skipped. When two
// records share a value the first position is kept and the later label wins.
func FromRecords(records any, valueKey, labelKey string) (List, error) {
	if valueKey == "" {
		return nil, fmt.Errorf("options: value key is required")
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("options: encode records: %w", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("options: records must be a list of objects: %w", err)
	}

	var out List
	positions := make(map[string]int)
	for _, row := range rows {
		value, ok := scalar(row, valueKey)
		if !ok {
			continue
		}
		label := value
		if labelKey != "" {
			if label, ok = scalar(row, labelKey); !ok {
				continue
			}
		}
		if pos, seen := positions[value]; seen {
			out[pos].Label = label
			continue
		}
		positions[value] = len(out)
		out = append(out, Pair(value, label))
	}
	return out, nil
}

func scalar(row map[string]any, key string) (string, bool) {
	value, ok := row[key]
	if !ok || value == nil {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
