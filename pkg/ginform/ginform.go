// Package ginform builds one formation.Form per gin request.
package ginform

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	formation "github.com/goliatone/go-formation"
	"github.com/goliatone/go-formation/pkg/httpform"
	"github.com/goliatone/go-formation/pkg/render/template/pongo"
)

// ContextKey is the gin context key the Form is stored under.
const ContextKey = "formation.form"

// Option configures the middleware.
type Option func(*config)

type config struct {
	forms  []formation.Option
	token  func(*gin.Context) string
	logger *zap.Logger
}

// WithFormOptions passes options to every Form the middleware builds.
func WithFormOptions(options ...formation.Option) Option {
	return func(cfg *config) {
		cfg.forms = append(cfg.forms, options...)
	}
}

// WithTokenFunc reads the session CSRF token of a request.
func WithTokenFunc(fn func(*gin.Context) string) Option {
	return func(cfg *config) {
		cfg.token = fn
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

// Middleware builds the Form of each request. It is stored both on the gin
// context and on the request context, so handlers written against
// httpform.FromContext work unchanged. Forms share one template engine
// unless the form options supply their own templates.
func Middleware(options ...Option) gin.HandlerFunc {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	forms := append([]formation.Option{formation.WithTemplateRenderer(pongo.MustNew())}, cfg.forms...)

	return func(c *gin.Context) {
		buildOptions := []httpform.Option{httpform.WithFormOptions(forms...)}
		if cfg.token != nil {
			token := cfg.token(c)
			buildOptions = append(buildOptions, httpform.WithTokenFunc(func(*http.Request) string { return token }))
		}

		form, err := httpform.Build(c.Request, buildOptions...)
		if err != nil {
			cfg.logger.Warn("form build failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   err.Error(),
				"status":  http.StatusBadRequest,
				"message": "The submitted form could not be read.",
			})
			return
		}

		c.Set(ContextKey, form)
		c.Request = c.Request.WithContext(httpform.NewContext(c.Request.Context(), form))
		c.Next()
	}
}

// FromContext returns the Form stored by Middleware.
func FromContext(c *gin.Context) (*formation.Form, bool) {
	if c == nil {
		return nil, false
	}
	value, ok := c.Get(ContextKey)
	if !ok {
		return nil, false
	}
	form, ok := value.(*formation.Form)
	return form, ok && form != nil
}

// MustFromContext is FromContext for routes that always run behind
// Middleware.
func MustFromContext(c *gin.Context) *formation.Form {
	form, ok := FromContext(c)
	if !ok {
		panic("ginform: no form in context, is the middleware installed?")
	}
	return form
}
