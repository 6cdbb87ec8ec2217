// Package httpform builds one formation.Form per request for net/http
// servers and stores it in the request context.
package httpform

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	formation "github.com/goliatone/go-formation"
	"github.com/goliatone/go-formation/pkg/render/template/pongo"
	"github.com/goliatone/go-formation/pkg/request"
)

type contextKey struct{}

// Option configures the middleware.
type Option func(*config)

// ErrorHandler responds when a request body cannot be parsed.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type config struct {
	forms   []formation.Option
	token   func(*http.Request) string
	onError ErrorHandler
	logger  *zap.Logger
}

// WithFormOptions passes options to every Form the middleware builds.
func WithFormOptions(options ...formation.Option) Option {
	return func(cfg *config) {
		cfg.forms = append(cfg.forms, options...)
	}
}

// WithTokenFunc reads the session CSRF token of a request.
func WithTokenFunc(fn func(*http.Request) string) Option {
	return func(cfg *config) {
		cfg.token = fn
	}
}

// WithErrorHandler replaces the default 400 response for unparsable bodies.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.onError = fn
		}
	}
}

// WithLogger logs body parse failures.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{
		logger:  zap.NewNop(),
		onError: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Build parses r and constructs its Form.
func Build(r *http.Request, options ...Option) (*formation.Form, error) {
	return build(r, newConfig(options))
}

func build(r *http.Request, cfg config) (*formation.Form, error) {
	src, err := request.FromHTTP(r)
	if err != nil {
		return nil, fmt.Errorf("httpform: %w", err)
	}
	if cfg.token != nil {
		src = request.WithCSRFToken(src, cfg.token(r))
	}
	return formation.New(src, cfg.forms...)
}

// Middleware builds the Form of each request before calling next. Handlers
// read it back with FromContext. Every Form shares one template engine unless
// the form options supply their own templates.
func Middleware(options ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(options)
	cfg.forms = append([]formation.Option{formation.WithTemplateRenderer(pongo.MustNew())}, cfg.forms...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			form, err := build(r, cfg)
			if err != nil {
				cfg.logger.Warn("form build failed",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				cfg.onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), form)))
		})
	}
}

// NewContext returns a copy of ctx carrying form.
func NewContext(ctx context.Context, form *formation.Form) context.Context {
	return context.WithValue(ctx, contextKey{}, form)
}

// FromContext returns the Form stored by Middleware.
func FromContext(ctx context.Context) (*formation.Form, bool) {
	if ctx == nil {
		return nil, false
	}
	form, ok := ctx.Value(contextKey{}).(*formation.Form)
	return form, ok && form != nil
}
