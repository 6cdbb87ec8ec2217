package vanilla

import (
	"strings"

	"github.com/goliatone/go-formation/pkg/fieldpath"
	"github.com/goliatone/go-formation/pkg/render"
	"github.com/goliatone/go-formation/pkg/state"
)

// Input renders an <input> of the given type. The name attribute overrides
// path when present. Password and file inputs never carry a value unless one
// is given explicitly.
func (r *Renderer) Input(kind, path string, opts ...ElementOption) string {
	el := buildElement(opts)
	attrs := el.attrs
	if name, ok := attrs.Get("name"); ok && name != "" {
		path = name
	}

	var value any
	hasValue := el.hasValue
	if hasValue {
		value = el.value
	} else if kind != "password" && kind != "file" {
		value = r.store.Value(path, state.KindStandard)
		hasValue = true
	}
	return r.input(kind, path, value, hasValue, attrs)
}

func (r *Renderer) input(kind, path string, value any, hasValue bool, attrs render.Attributes) string {
	attrs = r.withErrorClass(path, attrs)
	explicitID, _ := attrs.Get("id")

	attrs = attrs.With("type", kind)
	if path != "" {
		attrs = attrs.With("name", fieldpath.WireName(path))
	} else {
		attrs = attrs.Without("name")
	}
	if hasValue {
		attrs = attrs.With("value", render.Stringify(value))
	}
	if id := fieldpath.DOMID(path, explicitID); id != "" {
		attrs = attrs.With("id", id)
	}
	return r.tag("input", attrs)
}

func (r *Renderer) Text(path string, opts ...ElementOption) string {
	return r.Input("text", path, opts...)
}

func (r *Renderer) Password(path string, opts ...ElementOption) string {
	return r.Input("password", path, opts...)
}

func (r *Renderer) Hidden(path string, opts ...ElementOption) string {
	return r.Input("hidden", path, opts...)
}

func (r *Renderer) Search(path string, opts ...ElementOption) string {
	return r.Input("search", path, opts...)
}

func (r *Renderer) Email(path string, opts ...ElementOption) string {
	return r.Input("email", path, opts...)
}

func (r *Renderer) Telephone(path string, opts ...ElementOption) string {
	return r.Input("tel", path, opts...)
}

func (r *Renderer) URL(path string, opts ...ElementOption) string {
	return r.Input("url", path, opts...)
}

func (r *Renderer) Number(path string, opts ...ElementOption) string {
	return r.Input("number", path, opts...)
}

func (r *Renderer) Date(path string, opts ...ElementOption) string {
	return r.Input("date", path, opts...)
}

func (r *Renderer) File(path string, opts ...ElementOption) string {
	return r.Input("file", path, opts...)
}

// Textarea renders a <textarea> holding the escaped current value.
func (r *Renderer) Textarea(path string, opts ...ElementOption) string {
	el := buildElement(opts)
	explicitID, _ := el.attrs.Get("id")

	attrs := el.attrs.
		With("name", fieldpath.WireName(path)).
		With("id", fieldpath.DOMID(path, explicitID))
	attrs = r.withErrorClass(path, attrs)

	value := el.value
	if !el.hasValue {
		value = r.store.Value(path, state.KindStandard)
	}
	return r.wrap("textarea", attrs, r.escaper.Escape(render.Stringify(value)))
}

// Submit renders a submit button input. An empty value reads "Submit".
func (r *Renderer) Submit(value string, opts ...ElementOption) string {
	if value == "" {
		value = "Submit"
	}
	el := buildElement(opts)
	return r.input("submit", "", value, true, el.attrs)
}

// Reset renders a reset button input.
func (r *Renderer) Reset(value string, opts ...ElementOption) string {
	el := buildElement(opts)
	return r.input("reset", "", value, value != "", el.attrs)
}

// Image renders an image submit input. Relative sources are resolved against
// the configured asset base.
func (r *Renderer) Image(src, path string, opts ...ElementOption) string {
	el := buildElement(opts)
	attrs := el.attrs.With("src", r.assetURL(src))
	return r.input("image", path, nil, false, attrs)
}

// Button renders a <button> with escaped text.
func (r *Renderer) Button(text string, opts ...ElementOption) string {
	el := buildElement(opts)
	return r.wrap("button", el.attrs, r.escaper.Escape(text))
}

func (r *Renderer) assetURL(src string) string {
	base := strings.TrimSpace(r.settings.AssetBase)
	if base == "" || src == "" || strings.HasPrefix(src, "/") || strings.Contains(src, "://") || strings.HasPrefix(src, "data:") {
		return src
	}
	return strings.TrimSuffix(base, "/") + "/" + src
}
