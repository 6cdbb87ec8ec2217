package vanilla

import (
	"github.com/goliatone/go-formation/pkg/options"
	"github.com/goliatone/go-formation/pkg/render"
)

// ElementOption adjusts a single element render call.
type ElementOption func(*element)

type element struct {
	attrs render.Attributes

	value    any
	hasValue bool

	selected    any
	hasSelected bool

	text    string
	hasText bool

	placeholder    string
	hasPlaceholder bool

	checked bool
	prefix  string
	list    options.List
	always  bool
	hidden  map[string]string
}

func buildElement(opts []ElementOption) element {
	var el element
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&el)
	}
	return el
}

// WithValue sets the value explicitly instead of reading it from the store.
func WithValue(value any) ElementOption {
	return func(el *element) {
		el.value = value
		el.hasValue = true
	}
}

// WithAttributes appends attrs, replacing attributes of the same name.
func WithAttributes(attrs render.Attributes) ElementOption {
	return func(el *element) {
		for _, attr := range attrs {
			el.attrs = el.attrs.With(attr.Name, attr.Value)
		}
	}
}

// WithAttr sets one attribute. Names ending in "_container" target the
// wrapping list of checkbox and radio sets.
func WithAttr(name, value string) ElementOption {
	return func(el *element) {
		el.attrs = el.attrs.With(name, value)
	}
}

// WithPlaceholder adds a leading select option with an empty value.
func WithPlaceholder(label string) ElementOption {
	return func(el *element) {
		el.placeholder = label
		el.hasPlaceholder = true
	}
}

// WithSelected overrides the current value used to mark select options and
// radio set items. A slice selects several options.
func WithSelected(value any) ElementOption {
	return func(el *element) {
		el.selected = value
		el.hasSelected = true
	}
}

// WithChecked forces a checkbox or radio to render checked.
func WithChecked() ElementOption {
	return func(el *element) {
		el.checked = true
	}
}

// WithText sets the visible text of labels, buttons and composite fields.
func WithText(text string) ElementOption {
	return func(el *element) {
		el.text = text
		el.hasText = true
	}
}

// WithPrefix prefixes every field path of a checkbox set.
func WithPrefix(prefix string) ElementOption {
	return func(el *element) {
		el.prefix = prefix
	}
}

// WithList supplies the options of composite select, checkbox set and radio
// set fields.
func WithList(list options.List) ElementOption {
	return func(el *element) {
		el.list = list
	}
}

// AlwaysRender makes Error emit a hidden placeholder when there is no message.
func AlwaysRender() ElementOption {
	return func(el *element) {
		el.always = true
	}
}

// WithHiddenFields adds hidden inputs after the opening form tag, sorted by
// name. Later calls replace values of the same name.
func WithHiddenFields(fields map[string]string) ElementOption {
	return func(el *element) {
		if len(fields) == 0 {
			return
		}
		if el.hidden == nil {
			el.hidden = make(map[string]string, len(fields))
		}
		for name, value := range fields {
			el.hidden[name] = value
		}
	}
}
