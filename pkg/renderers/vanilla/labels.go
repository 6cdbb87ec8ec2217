package vanilla

import (
	"strings"

	"github.com/goliatone/go-formation/pkg/fieldpath"
	"github.com/goliatone/go-formation/pkg/render"
)

// Label renders a <label> for path. Text given with WithText is registered as
// the field's label; otherwise the registered label is used, or one is
// derived from the path and registered. Registered labels replace raw field
// names in error messages. An empty path renders a plain label.
func (r *Renderer) Label(path string, opts ...ElementOption) string {
	el := buildElement(opts)
	attrs := r.withErrorClass(path, el.attrs)

	if path == "" {
		return r.wrap("label", attrs, r.escaper.Escape(el.text))
	}

	text := r.labelText(path, el)
	r.store.RegisterLabel(path, text)

	attrs = attrs.With("for", fieldpath.DOMID(path, ""))
	return r.wrap("label", attrs, r.escaper.Escape(text))
}

func (r *Renderer) labelText(path string, el element) string {
	if el.hasText {
		return el.text
	}
	if label, ok := r.store.Label(path); ok && label != "" {
		return label
	}
	return fieldpath.Label(path)
}

// Error renders the first validation message of path inside
// <div class="error">. Without a message it renders nothing, or, with
// AlwaysRender, a hidden placeholder with id "<field id>-error" that client
// side code can fill in. The id is built from the control's DOM id, so
// "items.qty" gives "items-qty-error".
func (r *Renderer) Error(path string, opts ...ElementOption) string {
	el := buildElement(opts)
	attrs := render.Attrs("class", r.settings.ErrorClass)
	if el.always {
		attrs = attrs.With("id", fieldpath.DOMID(path, "")+"-error")
	}

	message, ok := r.errors.MessageFor(path)
	if ok {
		message = strings.TrimSpace(r.sanitizer.Sanitize(message))
	}
	if ok && message != "" {
		return r.wrap("div", attrs, message)
	}
	if el.always {
		return r.wrap("div", attrs.With("style", "display: none;"), "")
	}
	return ""
}

// FormErrors renders each form level message inside its own error block.
func (r *Renderer) FormErrors() string {
	var builder strings.Builder
	attrs := render.Attrs("class", r.settings.ErrorClass)
	for _, message := range r.store.FormErrors() {
		message = strings.TrimSpace(r.sanitizer.Sanitize(message))
		if message == "" {
			continue
		}
		builder.WriteString(r.wrap("div", attrs, message))
	}
	return builder.String()
}
