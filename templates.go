package formation

import (
	"io/fs"

	"github.com/goliatone/go-formation/pkg/render/template/pongo"
)

// EmbeddedTemplates exposes the built-in composite templates so callers can
// copy or extend them before passing their own set through WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return pongo.Templates()
}
