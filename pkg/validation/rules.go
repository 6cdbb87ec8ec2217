package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Placeholders understood by message templates.
const (
	AttributePlaceholder = ":attribute"
	ParamPlaceholder     = ":param"
)

var defaultMessages = map[string]string{
	"required":  "The :attribute field is required.",
	"email":     "The :attribute must be a valid email address.",
	"url":       "The :attribute format is invalid.",
	"min":       "The :attribute must be at least :param.",
	"max":       "The :attribute may not be greater than :param.",
	"len":       "The :attribute must be :param.",
	"numeric":   "The :attribute must be a number.",
	"number":    "The :attribute must be an integer.",
	"alpha":     "The :attribute may only contain letters.",
	"alphanum":  "The :attribute may only contain letters and numbers.",
	"oneof":     "The selected :attribute is invalid.",
	"boolean":   "The :attribute field must be true or false.",
	"datetime":  "The :attribute does not match the format :param.",
	"fallback":  "The :attribute field is invalid.",
	"e164":      "The :attribute must be a valid phone number.",
	"uuid":      "The :attribute must be a valid UUID.",
	"lowercase": "The :attribute must be lowercase.",
}

// RuleOption configures a RuleValidator.
type RuleOption func(*RuleValidator)

// WithMessages overrides message templates keyed by validator tag. Templates
// may use the :attribute and :param placeholders.
func WithMessages(messages map[string]string) RuleOption {
	return func(v *RuleValidator) {
		for tag, message := range messages {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			v.messages[tag] = message
		}
	}
}

// WithValidate swaps the underlying go-playground validator, for example to
// register custom tags.
func WithValidate(validate *validator.Validate) RuleOption {
	return func(v *RuleValidator) {
		if validate != nil {
			v.validate = validate
		}
	}
}

// RuleValidator validates map data with go-playground/validator tags. Rules
// may use the validator's own syntax ("required,email") or the pipe syntax
// common to PHP frameworks ("required|min:3|in:a,b").
type RuleValidator struct {
	validate *validator.Validate
	messages map[string]string
}

var _ Validator = (*RuleValidator)(nil)

// NewRuleValidator constructs a validator with the default message catalogue.
func NewRuleValidator(options ...RuleOption) *RuleValidator {
	v := &RuleValidator{
		validate: validator.New(),
		messages: make(map[string]string, len(defaultMessages)),
	}
	for tag, message := range defaultMessages {
		v.messages[tag] = message
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

// Validate runs every rule against data. Unknown tags make the underlying
// validator panic; the panic is returned as an error.
func (v *RuleValidator) Validate(ctx context.Context, rules map[string]string, data map[string]any) (result Result, err error) {
	if len(rules) == 0 {
		return NewOutcome(nil), nil
	}
	if data == nil {
		data = map[string]any{}
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("validation: %v", r)
		}
	}()

	compiled := make(map[string]any, len(rules))
	for field, rule := range rules {
		tag := NormalizeRule(rule)
		if tag == "" {
			continue
		}
		compiled[field] = tag
	}

	failures := v.validate.ValidateMapCtx(ctx, data, compiled)
	messages := make(map[string]string, len(failures))
	for field, failure := range failures {
		messages[field] = v.message(field, failure)
	}
	return NewOutcome(messages), nil
}

func (v *RuleValidator) message(field string, failure any) string {
	tag, param := "fallback", ""
	if err, ok := failure.(error); ok {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			tag = fieldErrors[0].Tag()
			param = fieldErrors[0].Param()
		}
	}

	template, ok := v.messages[tag]
	if !ok {
		template = v.messages["fallback"]
	}
	return strings.NewReplacer(
		AttributePlaceholder, field,
		ParamPlaceholder, param,
	).Replace(template)
}

// NormalizeRule converts pipe style rules into validator tags. Rules already
// written with validator syntax are returned trimmed. A rule without a
// required tag only runs when the value is present and not blank, so it gets
// a leading omitempty.
func NormalizeRule(rule string) string {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return ""
	}
	if !strings.Contains(rule, "|") && !strings.Contains(rule, ":") {
		return optional(strings.Split(rule, ","))
	}

	var tags []string
	for _, part := range strings.Split(rule, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, param, _ := strings.Cut(part, ":")
		switch name {
		case "nullable", "sometimes", "string", "bail":
		case "in":
			tags = append(tags, "oneof="+strings.Join(splitParams(param), " "))
		case "not_in":
			for _, value := range splitParams(param) {
				tags = append(tags, "ne="+value)
			}
		case "between":
			bounds := splitParams(param)
			if len(bounds) == 2 {
				tags = append(tags, "min="+bounds[0], "max="+bounds[1])
			}
		case "integer":
			tags = append(tags, "number")
		case "alpha_num":
			tags = append(tags, "alphanum")
		case "size":
			tags = append(tags, "len="+param)
		default:
			if param != "" {
				tags = append(tags, name+"="+param)
				continue
			}
			tags = append(tags, name)
		}
	}
	return optional(tags)
}

// optional joins tags, prefixing omitempty unless a tag already decides how
// empty values are treated.
func optional(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	for _, tag := range tags {
		name, _, _ := strings.Cut(strings.TrimSpace(tag), "=")
		if strings.HasPrefix(name, "required") || name == "omitempty" || name == "omitnil" {
			return strings.Join(tags, ",")
		}
	}
	return "omitempty," + strings.Join(tags, ",")
}

func splitParams(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
