package formation

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formation/pkg/descriptor"
	"github.com/goliatone/go-formation/pkg/render"
	rendertemplate "github.com/goliatone/go-formation/pkg/render/template"
	"github.com/goliatone/go-formation/pkg/renderers/vanilla"
	"github.com/goliatone/go-formation/pkg/request"
	"github.com/goliatone/go-formation/pkg/state"
	"github.com/goliatone/go-formation/pkg/validation"
)

// Option configures a Form.
type Option func(*config)

type config struct {
	logger    *zap.Logger
	validator validation.Validator
	macros    *MacroRegistry
	renderer  []vanilla.Option
}

// WithConfig sets the render settings: field container, CSRF field name,
// charset and asset base.
func WithConfig(settings render.Config) Option {
	return func(cfg *config) {
		cfg.renderer = append(cfg.renderer, vanilla.WithConfig(settings))
	}
}

// WithLogger sets the logger used for setup and macro diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithValidator swaps the rule validator used by SetValidationRules.
func WithValidator(v validation.Validator) Option {
	return func(cfg *config) {
		if v != nil {
			cfg.validator = v
		}
	}
}

// WithMacros sets the registry Call looks macros up in. Forms share the
// package registry by default.
func WithMacros(registry *MacroRegistry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.macros = registry
		}
	}
}

// WithTokenFunc sets the CSRF token source used by Open and Token.
func WithTokenFunc(fn func() string) Option {
	return func(cfg *config) {
		cfg.renderer = append(cfg.renderer, vanilla.WithTokenFunc(fn))
	}
}

// WithTemplatesFS supplies templates that shadow the built-in ones.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.renderer = append(cfg.renderer, vanilla.WithTemplatesFS(files))
	}
}

// WithTemplateRenderer shares one template renderer across forms.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		cfg.renderer = append(cfg.renderer, vanilla.WithTemplateRenderer(renderer))
	}
}

// WithSanitizer sets the policy error messages are filtered through.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.renderer = append(cfg.renderer, vanilla.WithSanitizer(policy))
	}
}

// Form is the request scoped form context. It renders elements through the
// embedded renderer and owns the state those elements read.
type Form struct {
	*vanilla.Renderer

	store     *state.Store
	logger    *zap.Logger
	validator validation.Validator
	macros    *MacroRegistry
}

// New builds a Form reading submitted values from src. A nil src behaves like
// a request without a body.
func New(src request.Source, options ...Option) (*Form, error) {
	cfg := config{
		logger: zap.NewNop(),
		macros: defaultMacros,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.validator == nil {
		cfg.validator = validation.NewRuleValidator()
	}

	store := state.New(src)
	renderer, err := vanilla.New(store, cfg.renderer...)
	if err != nil {
		return nil, fmt.Errorf("formation: %w", err)
	}

	return &Form{
		Renderer:  renderer,
		store:     store,
		logger:    cfg.logger,
		validator: cfg.validator,
		macros:    cfg.macros,
	}, nil
}

// SetDefaults replaces the default values and returns the stored map.
func (f *Form) SetDefaults(values map[string]any) map[string]any {
	return f.store.SetDefaults(values)
}

// SetDefaultsFrom flattens a record into dotted defaults, for example a
// struct loaded from the database.
func (f *Form) SetDefaultsFrom(record any) (map[string]any, error) {
	values, err := state.FromStruct(record)
	if err != nil {
		return nil, fmt.Errorf("formation: defaults: %w", err)
	}
	return f.store.SetDefaults(values), nil
}

// ResetDefaults makes every field ignore submitted values, replacing the
// defaults first when values is not empty.
func (f *Form) ResetDefaults(values map[string]any) {
	f.store.ResetDefaults(values)
}

// SetLabels replaces the labels.
func (f *Form) SetLabels(labels map[string]string) {
	f.store.SetLabels(labels)
}

// SetValidationRules validates the submitted data against path keyed rules
// and records one scope per group. Failing rules are data; an error means a
// rule could not be evaluated at all.
func (f *Form) SetValidationRules(ctx context.Context, rules map[string]string) ([]validation.Scope, error) {
	scopes, err := validation.Run(ctx, f.validator, f.store.Source(), rules)
	if err != nil {
		f.logger.Warn("validation rules rejected", zap.Error(err))
		return nil, fmt.Errorf("formation: validation rules: %w", err)
	}
	f.store.SetScopes(scopes)
	f.logger.Debug("validation scopes recorded",
		zap.Int("rules", len(rules)),
		zap.Int("scopes", len(scopes)),
		zap.Bool("passed", f.store.Validated()),
	)
	return scopes, nil
}

// SetErrorPayload records errors reported by a backend, keyed by field path
// in dotted, bracketed or JSON pointer form. Field errors are read ahead of
// the scopes from SetValidationRules; keys that name no field become form
// level messages. SetValidationRules replaces every scope, so call it first.
// It returns the form level messages now recorded.
func (f *Form) SetErrorPayload(payload map[string][]string) []string {
	mapping := render.MapErrorPayload(payload)
	f.store.SetScopes(append(mapping.Scopes, f.store.Scopes()...))
	messages := f.AddFormErrors(mapping.Form...)
	f.logger.Debug("error payload recorded",
		zap.Int("keys", len(payload)),
		zap.Int("scopes", len(mapping.Scopes)),
		zap.Int("form_errors", len(messages)),
	)
	return messages
}

// AddFormErrors appends messages that belong to the whole form. Blank and
// repeated messages are dropped.
func (f *Form) AddFormErrors(messages ...string) []string {
	merged := render.MergeFormErrors(f.store.FormErrors(), messages...)
	f.store.SetFormErrors(merged)
	return merged
}

// Validated reports whether every scope passed, or only the named ones. An
// unknown scope name counts as not validated.
func (f *Form) Validated(names ...string) bool {
	return f.store.Validated(names...)
}

// Setup applies a descriptor: labels first, then validation rules, then
// defaults.
func (f *Form) Setup(ctx context.Context, desc descriptor.Descriptor) ([]validation.Scope, error) {
	labels := desc.Labels()
	rules := desc.Rules()
	defaults := desc.Defaults()

	f.logger.Debug("form setup",
		zap.Int("fields", len(desc)),
		zap.Int("labels", len(labels)),
		zap.Int("rules", len(rules)),
		zap.Int("defaults", len(defaults)),
	)

	f.store.SetLabels(labels)
	scopes, err := f.SetValidationRules(ctx, rules)
	if err != nil {
		return nil, err
	}
	f.store.SetDefaults(defaults)
	return scopes, nil
}

// Value returns the current value of path: the submitted value, else the
// default, else "".
func (f *Form) Value(path string) any {
	return f.store.Value(path, state.KindStandard)
}

// CheckboxValue is Value with absent values reported as 0.
func (f *Form) CheckboxValue(path string) any {
	return f.store.Value(path, state.KindCheckbox)
}

// Call invokes a registered macro with this form.
func (f *Form) Call(name string, args ...any) (string, error) {
	out, err := f.macros.Call(f, name, args...)
	if err != nil {
		f.logger.Warn("macro call failed", zap.String("macro", name), zap.Error(err))
		return "", err
	}
	return out, nil
}
