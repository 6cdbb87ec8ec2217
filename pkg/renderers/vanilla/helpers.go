package vanilla

import (
	"strings"

	"github.com/goliatone/go-formation/pkg/fieldpath"
	"github.com/goliatone/go-formation/pkg/render"
	"github.com/goliatone/go-formation/pkg/state"
)

const containerSuffix = "_container"

// withErrorClass appends the error class when path has a validation message.
func (r *Renderer) withErrorClass(path string, attrs render.Attributes) render.Attributes {
	if path == "" || !r.errors.HasError(path) {
		return attrs
	}
	return attrs.WithClass(r.settings.ErrorClass)
}

// current resolves the value used to mark options, checkboxes and radios.
func (r *Renderer) current(path string, el element) any {
	if el.hasSelected {
		return el.selected
	}
	return r.store.Value(path, state.KindStandard)
}

// matches compares a candidate value with the current value. Sequences match
// by membership, scalars by their string form.
func matches(candidate string, current any) bool {
	if values, ok := render.Strings(current); ok {
		for _, value := range values {
			if value == candidate {
				return true
			}
		}
		return false
	}
	return render.Stringify(current) == candidate
}

// splitContainer separates attributes aimed at the wrapping list of a set.
// class_container is appended to baseClass; other container attributes are
// copied over.
func splitContainer(attrs render.Attributes, baseClass string) (container, rest render.Attributes) {
	matched, rest := attrs.SplitSuffix(containerSuffix)
	container = render.Attrs("class", baseClass)
	for _, attr := range matched {
		if attr.Name == "class" {
			container = container.WithClass(attr.Value)
			continue
		}
		container = container.With(attr.Name, attr.Value)
	}
	return container, rest
}

func (r *Renderer) tag(name string, attrs render.Attributes) string {
	return "<" + name + r.escaper.HTML(attrs) + ">"
}

func (r *Renderer) wrap(name string, attrs render.Attributes, inner string) string {
	return r.tag(name, attrs) + inner + "</" + name + ">"
}

func joinPath(prefix, path string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return path
	}
	if strings.HasSuffix(prefix, ".") {
		return prefix + path
	}
	return prefix + "." + path
}

func itemID(prefix, value string) string {
	return prefix + "-" + fieldpath.Slug(value)
}
