package vanilla

import (
	"strings"

	"github.com/goliatone/go-formation/pkg/fieldpath"
	"github.com/goliatone/go-formation/pkg/options"
	"github.com/goliatone/go-formation/pkg/render"
)

// Select renders a <select> with one <option> per list entry and an
// <optgroup> per group. Options are selected by comparing their value with
// the current value, or by membership when the current value is a sequence.
func (r *Renderer) Select(path string, list options.List, opts ...ElementOption) string {
	el := buildElement(opts)
	explicitID, _ := el.attrs.Get("id")

	attrs := el.attrs.
		With("id", fieldpath.DOMID(path, explicitID)).
		With("name", fieldpath.WireName(path))
	attrs = r.withErrorClass(path, attrs)

	selected := r.current(path, el)

	items := make([]string, 0, len(list)+1)
	if el.hasPlaceholder {
		items = append(items, r.option(options.Pair("", el.placeholder), selected))
	}
	for _, option := range list {
		if option.IsGroup() {
			items = append(items, r.optgroup(option, selected))
			continue
		}
		items = append(items, r.option(option, selected))
	}

	return r.wrap("select", attrs, strings.Join(items, "\n")+"\n")
}

func (r *Renderer) optgroup(group options.Option, selected any) string {
	var builder strings.Builder
	for _, option := range group.Group {
		builder.WriteString(r.option(option, selected))
	}
	return r.wrap("optgroup", render.Attrs("label", group.Label), builder.String())
}

func (r *Renderer) option(option options.Option, selected any) string {
	attrs := render.Attrs("value", option.Value)
	if matches(option.Value, selected) {
		attrs = attrs.With("selected", "selected")
	}
	return r.wrap("option", attrs, r.escaper.Escape(option.Label))
}

// Checkbox renders a checkbox input. The value defaults to "1" and the box is
// checked when the current value of path equals it.
func (r *Renderer) Checkbox(path string, opts ...ElementOption) string {
	el := buildElement(opts)
	value := "1"
	if el.hasValue {
		value = render.Stringify(el.value)
	}
	checked := el.checked || matches(value, r.current(path, element{}))
	return r.checkable("checkbox", path, value, checked, el.attrs)
}

// Radio renders a radio input. The value defaults to path.
func (r *Renderer) Radio(path string, opts ...ElementOption) string {
	el := buildElement(opts)
	value := path
	if el.hasValue {
		value = render.Stringify(el.value)
	}
	checked := el.checked || matches(value, r.current(path, element{}))
	return r.checkable("radio", path, value, checked, el.attrs)
}

func (r *Renderer) checkable(kind, path, value string, checked bool, attrs render.Attributes) string {
	if checked {
		attrs = attrs.With("checked", "checked")
	}
	return r.input(kind, path, value, true, attrs)
}

// CheckboxSet renders one checkbox per list entry inside
// <ul class="checkbox-set">. Each entry value is a field path of its own
// (joined to the WithPrefix prefix) and each label text comes from the entry
// label. Attributes ending in "_container" apply to the list.
func (r *Renderer) CheckboxSet(list options.List, opts ...ElementOption) string {
	el := buildElement(opts)
	if len(list) == 0 {
		return ""
	}
	container, rest := splitContainer(el.attrs, "checkbox-set")

	var builder strings.Builder
	builder.WriteString(r.tag("ul", container))
	for _, option := range list {
		if option.IsGroup() {
			continue
		}
		path := joinPath(el.prefix, option.Value)
		checked := matches("1", r.current(path, element{}))

		item := rest.With("id", fieldpath.DOMID(path, ""))
		builder.WriteString(r.listItem(checked))
		builder.WriteString(r.checkable("checkbox", path, "1", checked, item))
		builder.WriteString(r.Label(path, WithText(option.Label)))
		builder.WriteString("</li>")
	}
	builder.WriteString("</ul>")
	return builder.String()
}

// RadioSet renders one radio per list entry inside <ul class="radio-set">.
// Item ids are the field id followed by the slugged entry value.
func (r *Renderer) RadioSet(path string, list options.List, opts ...ElementOption) string {
	el := buildElement(opts)
	if len(list) == 0 {
		return ""
	}
	container, rest := splitContainer(el.attrs, "radio-set")
	container = r.withErrorClass(path, container)

	explicitID, _ := rest.Get("id")
	idPrefix := fieldpath.DOMID(path, explicitID)
	selected := r.current(path, el)

	var builder strings.Builder
	builder.WriteString(r.tag("ul", container))
	for _, option := range list {
		if option.IsGroup() {
			continue
		}
		checked := render.Stringify(selected) == option.Value
		id := itemID(idPrefix, option.Value)

		builder.WriteString(r.listItem(checked))
		builder.WriteString(r.checkable("radio", path, option.Value, checked, rest.With("id", id)))
		builder.WriteString(r.wrap("label", render.Attrs("for", id), r.escaper.Escape(option.Label)))
		builder.WriteString("</li>")
	}
	builder.WriteString("</ul>")
	return builder.String()
}

func (r *Renderer) listItem(selected bool) string {
	if selected {
		return r.tag("li", render.Attrs("class", "selected"))
	}
	return "<li>"
}
