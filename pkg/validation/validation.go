// Package validation groups field rules into validation scopes and runs them
// through a pluggable Validator. Validation failures are data: they surface as
// messages on a Result, never as errors.
package validation

import (
	"context"
	"sort"

	"github.com/goliatone/go-formation/pkg/fieldpath"
	"github.com/goliatone/go-formation/pkg/request"
)

// Result is the outcome of validating one scope.
type Result interface {
	Passed() bool
	// FirstMessage returns the first error message reported for leaf, or "".
	FirstMessage(leaf string) string
}

// Validator checks data against rules keyed by leaf field name.
type Validator interface {
	Validate(ctx context.Context, rules map[string]string, data map[string]any) (Result, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(ctx context.Context, rules map[string]string, data map[string]any) (Result, error)

func (fn ValidatorFunc) Validate(ctx context.Context, rules map[string]string, data map[string]any) (Result, error) {
	return fn(ctx, rules, data)
}

// Scope is a named group of fields validated together. Name is "root" for
// flat fields or the second-to-last segment of nested paths; Prefix is the
// path the scope's data was read from.
type Scope struct {
	Name   string
	Prefix string
	Result Result
}

// Group is the set of rules belonging to one scope before validation.
type Group struct {
	Name   string
	Prefix string
	Rules  map[string]string
}

// GroupRules splits path keyed rules into scopes. Paths are visited in sorted
// order; groups keep the order in which their name was first seen, and the
// prefix of the first path that produced them. Two paths that share a scope
// name and leaf collapse into one rule, the later path winning.
func GroupRules(rules map[string]string) []Group {
	if len(rules) == 0 {
		return nil
	}

	paths := make([]string, 0, len(rules))
	for path := range rules {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var groups []Group
	positions := make(map[string]int)
	for _, path := range paths {
		name, leaf := fieldpath.Scope(path)
		pos, ok := positions[name]
		if !ok {
			pos = len(groups)
			positions[name] = pos
			groups = append(groups, Group{
				Name:   name,
				Prefix: fieldpath.Prefix(path),
				Rules:  make(map[string]string),
			})
		}
		groups[pos].Rules[leaf] = rules[path]
	}
	return groups
}

// Run validates rules against the submitted data of src. The root scope sees
// the whole payload; nested scopes see the map stored under their prefix, or
// an empty map when nothing was submitted there.
func Run(ctx context.Context, v Validator, src request.Source, rules map[string]string) ([]Scope, error) {
	groups := GroupRules(rules)
	if len(groups) == 0 {
		return nil, nil
	}
	if src == nil {
		src = request.Empty()
	}

	scopes := make([]Scope, 0, len(groups))
	for _, group := range groups {
		data := scopeData(src, group)
		result, err := v.Validate(ctx, group.Rules, data)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, Scope{
			Name:   group.Name,
			Prefix: group.Prefix,
			Result: result,
		})
	}
	return scopes, nil
}

func scopeData(src request.Source, group Group) map[string]any {
	if group.Name == fieldpath.RootScope {
		return src.All()
	}
	value, ok := src.Get(group.Prefix)
	if !ok {
		return map[string]any{}
	}
	data, ok := value.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return data
}

// Outcome is a static Result. It is what RuleValidator produces and is handy
// for wiring results computed elsewhere.
type Outcome struct {
	passed   bool
	messages map[string]string
}

// NewOutcome builds a Result from leaf keyed messages. The outcome passes when
// messages is empty.
func NewOutcome(messages map[string]string) Outcome {
	clean := make(map[string]string, len(messages))
	for leaf, message := range messages {
		if message == "" {
			continue
		}
		clean[leaf] = message
	}
	return Outcome{passed: len(clean) == 0, messages: clean}
}

func (o Outcome) Passed() bool { return o.passed }

func (o Outcome) FirstMessage(leaf string) string {
	return o.messages[leaf]
}

// Messages returns a copy of the leaf keyed messages.
func (o Outcome) Messages() map[string]string {
	out := make(map[string]string, len(o.messages))
	for leaf, message := range o.messages {
		out[leaf] = message
	}
	return out
}
