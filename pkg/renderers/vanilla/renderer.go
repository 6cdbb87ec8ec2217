// Package vanilla renders plain HTML form elements. Every method reads the
// current value, label and validation state of a field from a state.Store and
// returns the element markup as a string.
package vanilla

import (
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formation/pkg/render"
	rendertemplate "github.com/goliatone/go-formation/pkg/render/template"
	"github.com/goliatone/go-formation/pkg/render/template/pongo"
	"github.com/goliatone/go-formation/pkg/request"
	"github.com/goliatone/go-formation/pkg/state"
)

type Option func(*config)

var builtinTemplates = sync.OnceValues(func() (*pongo.Engine, error) {
	return pongo.New()
})

type config struct {
	settings         render.Config
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	sanitizer        *bluemonday.Policy
	token            func() string
}

// WithConfig replaces the render settings. Blank values fall back to their
// defaults.
func WithConfig(settings render.Config) Option {
	return func(cfg *config) {
		cfg.settings = settings.Normalize()
	}
}

// WithTemplatesFS supplies templates that shadow the built-in ones. It
// replaces any renderer set earlier with WithTemplateRenderer.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
		cfg.templateRenderer = nil
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
		cfg.templateRenderer = nil
	}
}

// WithTemplateRenderer injects a custom template renderer implementation. It
// replaces any templates set earlier with WithTemplatesFS or WithTemplatesDir.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
			cfg.templateFS = nil
		}
	}
}

// WithSanitizer sets the policy validation messages are filtered through
// before they are written into error blocks.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// WithTokenFunc sets where the CSRF token comes from. Without it the token is
// read from the request source when it implements request.CSRFSource.
func WithTokenFunc(fn func() string) Option {
	return func(cfg *config) {
		cfg.token = fn
	}
}

// Renderer renders the elements of one form. It shares the store it was built
// with, so labels registered while rendering are visible to later calls.
type Renderer struct {
	store     *state.Store
	errors    render.Resolver
	settings  render.Config
	escaper   render.Escaper
	templates rendertemplate.TemplateRenderer
	sanitizer *bluemonday.Policy
	token     func() string
}

// New constructs a renderer over store applying any provided options.
func New(store *state.Store, options ...Option) (*Renderer, error) {
	if store == nil {
		store = state.New(nil)
	}

	cfg := config{settings: render.DefaultConfig()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	switch {
	case templates != nil:
	case cfg.templateFS != nil:
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	default:
		engine, err := builtinTemplates()
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	sanitizer := cfg.sanitizer
	if sanitizer == nil {
		sanitizer = bluemonday.StrictPolicy()
	}

	token := cfg.token
	if token == nil {
		token = sourceToken(store.Source())
	}

	return &Renderer{
		store:     store,
		errors:    render.NewResolver(store),
		settings:  cfg.settings,
		escaper:   render.NewEscaper(cfg.settings.Encoding),
		templates: templates,
		sanitizer: sanitizer,
		token:     token,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=" + r.escaper.Charset()
}

// Store returns the form state the renderer reads from.
func (r *Renderer) Store() *state.Store {
	return r.store
}

// Settings returns the effective render settings.
func (r *Renderer) Settings() render.Config {
	return r.settings
}

// Escape escapes text with the configured charset.
func (r *Renderer) Escape(value string) string {
	return r.escaper.Escape(value)
}

func sourceToken(src request.Source) func() string {
	return func() string {
		if tokens, ok := src.(request.CSRFSource); ok {
			return tokens.CSRFToken()
		}
		return ""
	}
}
