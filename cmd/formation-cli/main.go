package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	formation "github.com/goliatone/go-formation"
	"github.com/goliatone/go-formation/pkg/descriptor"
	"github.com/goliatone/go-formation/pkg/render"
	"github.com/goliatone/go-formation/pkg/renderers/vanilla"
	"github.com/goliatone/go-formation/pkg/request"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

type kindFlags map[string]vanilla.FieldKind

func (k kindFlags) String() string {
	parts := make([]string, 0, len(k))
	for path, kind := range k {
		parts = append(parts, path+"="+string(kind))
	}
	return strings.Join(parts, ",")
}

func (k kindFlags) Set(raw string) error {
	path, kind, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(path) == "" || strings.TrimSpace(kind) == "" {
		return fmt.Errorf("expected path=kind, got %q", raw)
	}
	k[strings.TrimSpace(path)] = vanilla.FieldKind(strings.TrimSpace(kind))
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer, logger *zap.Logger) error {
	flags := flag.NewFlagSet("formation-cli", flag.ContinueOnError)
	descriptorPath := flags.String("descriptor", "", "form descriptor (YAML or JSON)")
	valuesPath := flags.String("values", "", "sample submission (YAML or JSON); empty renders an unsubmitted form")
	configPath := flags.String("config", "", "render configuration (YAML)")
	action := flags.String("action", "", "form action")
	method := flags.String("method", "POST", "form method")
	output := flags.String("output", "", "output file (stdout if empty)")
	kinds := kindFlags{}
	flags.Var(kinds, "kind", "field kind override as path=kind (repeatable)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *descriptorPath == "" {
		return fmt.Errorf("missing -descriptor")
	}
	desc, err := loadDescriptor(*descriptorPath)
	if err != nil {
		return err
	}

	settings := render.DefaultConfig()
	if *configPath != "" {
		if settings, err = loadConfig(*configPath); err != nil {
			return err
		}
	}

	src := request.Empty()
	if *valuesPath != "" {
		values, err := loadValues(*valuesPath)
		if err != nil {
			return err
		}
		src = request.FromValues(values)
	}

	form, err := formation.New(src, formation.WithConfig(settings), formation.WithLogger(logger))
	if err != nil {
		return err
	}
	if _, err := form.Setup(ctx, desc); err != nil {
		return err
	}

	html, err := renderForm(form, desc, kinds, *action, *method)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("form written", zap.String("path", *output), zap.Bool("validated", form.Validated()))
		return nil
	}
	_, err = io.WriteString(stdout, html)
	return err
}

func renderForm(form *formation.Form, desc descriptor.Descriptor, kinds kindFlags, action, method string) (string, error) {
	var builder strings.Builder
	builder.WriteString(form.Open(action, method))
	builder.WriteString("\n")
	for _, entry := range desc {
		kind, ok := kinds[entry.Path]
		if !ok {
			kind = inferKind(entry.Field.Rules)
		}
		field, err := form.Field(entry.Path, kind)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", entry.Path, err)
		}
		builder.WriteString(field)
	}
	builder.WriteString(form.Submit(""))
	builder.WriteString("\n")
	builder.WriteString(form.Close())
	builder.WriteString("\n")
	return builder.String(), nil
}

func inferKind(rules string) vanilla.FieldKind {
	for _, rule := range strings.FieldsFunc(rules, func(r rune) bool { return r == '|' || r == ',' }) {
		name, _, _ := strings.Cut(strings.TrimSpace(rule), ":")
		name, _, _ = strings.Cut(name, "=")
		switch name {
		case "email":
			return vanilla.KindEmail
		case "url":
			return vanilla.KindURL
		case "numeric", "number", "integer":
			return vanilla.KindNumber
		case "boolean", "accepted":
			return vanilla.KindCheckbox
		case "date", "datetime":
			return vanilla.KindDate
		}
	}
	return vanilla.KindText
}

func loadValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	return values, nil
}

func loadDescriptor(path string) (descriptor.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor: %w", err)
	}
	defer func() { _ = f.Close() }()
	return descriptor.Load(f)
}

func loadConfig(path string) (render.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return render.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()
	return render.LoadConfig(f)
}
