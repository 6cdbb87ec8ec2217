package template

import (
	"io"
)

// TemplateRenderer renders named templates with the given data. Results are
// returned and, when writers are supplied, also written to each of them.
// Implementations must be safe for concurrent use.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}

// FieldTemplate is the template name composite fields are rendered with. It
// receives container, container_class and parts (the rendered label, control
// and error markup, in display order).
const FieldTemplate = "field"
