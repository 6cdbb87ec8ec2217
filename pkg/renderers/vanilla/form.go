package vanilla

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-formation/pkg/render"
	"github.com/goliatone/go-formation/pkg/request"
)

// Open renders the opening <form> tag. Only GET and POST reach the browser;
// PUT, PATCH and DELETE are sent as POST with a hidden _method field. An
// empty action posts back to the current request path. accept-charset
// defaults to the configured encoding, and the CSRF token follows when
// automatic tokens are enabled and a token is available. Fields given with
// WithHiddenFields come last.
func (r *Renderer) Open(action, method string, opts ...ElementOption) string {
	return r.open(action, method, false, buildElement(opts))
}

// OpenSecure is Open with the action forced onto https.
func (r *Renderer) OpenSecure(action, method string, opts ...ElementOption) string {
	return r.open(action, method, true, buildElement(opts))
}

// OpenForFiles is Open with a multipart/form-data encoding.
func (r *Renderer) OpenForFiles(action, method string, opts ...ElementOption) string {
	el := buildElement(opts)
	el.attrs = el.attrs.With("enctype", "multipart/form-data")
	return r.open(action, method, false, el)
}

// OpenSecureForFiles combines OpenSecure and OpenForFiles.
func (r *Renderer) OpenSecureForFiles(action, method string, opts ...ElementOption) string {
	el := buildElement(opts)
	el.attrs = el.attrs.With("enctype", "multipart/form-data")
	return r.open(action, method, true, el)
}

func (r *Renderer) open(action, method string, secure bool, el element) string {
	formMethod, spoof := render.SpoofMethod(method)

	attrs := el.attrs.
		With("method", formMethod).
		With("action", r.action(action, secure)).
		Default("accept-charset", r.escaper.Charset())

	var builder strings.Builder
	builder.WriteString(r.tag("form", attrs))
	if spoof != nil {
		builder.WriteString(r.tag("input", render.Attrs("type", "hidden", "name", spoof.Name, "value", spoof.Value)))
	}
	if r.settings.AutoCSRFToken {
		if token := r.token(); token != "" {
			builder.WriteString(r.tokenInput(token))
		}
	}
	for _, field := range render.SortedHiddenFields(el.hidden) {
		builder.WriteString(r.tag("input", render.Attrs("type", "hidden", "name", field.Name, "value", field.Value)))
	}
	return builder.String()
}

func (r *Renderer) action(action string, secure bool) string {
	action = strings.TrimSpace(action)
	loc, hasLocation := r.store.Source().(request.Locator)
	if action == "" && hasLocation {
		action = loc.Path()
	}
	if !secure {
		return action
	}

	target, err := url.Parse(action)
	if err != nil {
		return action
	}
	if target.IsAbs() {
		target.Scheme = "https"
		return target.String()
	}
	if !hasLocation || loc.Host() == "" {
		return action
	}
	base := &url.URL{Scheme: "https", Host: loc.Host(), Path: "/"}
	return base.ResolveReference(target).String()
}

// Close renders the closing </form> tag.
func (r *Renderer) Close() string {
	return "</form>"
}

// Token renders the hidden CSRF token input.
func (r *Renderer) Token() string {
	return r.tokenInput(r.token())
}

func (r *Renderer) tokenInput(token string) string {
	field := render.CSRFToken(r.settings.CSRFField, token)
	return r.input("hidden", field.Name, field.Value, true, nil)
}
