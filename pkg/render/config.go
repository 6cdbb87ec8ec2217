package render

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied whenever a configuration value is missing.
const (
	DefaultEncoding            = "UTF-8"
	DefaultFieldContainer      = "div"
	DefaultFieldContainerClass = "field"
	DefaultCSRFField           = "csrf_token"
	DefaultErrorClass          = "error"
)

// Config carries the settings element renderers consume verbatim.
type Config struct {
	// Encoding is the character encoding used for escaping and for the
	// accept-charset attribute of opened forms.
	Encoding string `yaml:"encoding" json:"encoding"`
	// FieldContainer and FieldContainerClass wrap composite fields.
	FieldContainer      string `yaml:"field_container" json:"field_container"`
	FieldContainerClass string `yaml:"field_container_class" json:"field_container_class"`
	// CSRFField is the input name of the CSRF token.
	CSRFField string `yaml:"csrf_field" json:"csrf_field"`
	// AutoCSRFToken emits the token right after every opened form.
	AutoCSRFToken bool `yaml:"auto_csrf_token" json:"auto_csrf_token"`
	// AssetBase prefixes relative image input sources.
	AssetBase string `yaml:"asset_base" json:"asset_base"`
	// ErrorClass is appended to labels and controls with a validation error.
	ErrorClass string `yaml:"error_class" json:"error_class"`
}

// DefaultConfig returns the configuration used when nothing is supplied.
func DefaultConfig() Config {
	return Config{
		Encoding:            DefaultEncoding,
		FieldContainer:      DefaultFieldContainer,
		FieldContainerClass: DefaultFieldContainerClass,
		CSRFField:           DefaultCSRFField,
		AutoCSRFToken:       true,
		ErrorClass:          DefaultErrorClass,
	}
}

// Normalize fills blank settings with their defaults.
func (c Config) Normalize() Config {
	c.Encoding = strings.TrimSpace(c.Encoding)
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	c.FieldContainer = strings.TrimSpace(c.FieldContainer)
	if c.FieldContainer == "" {
		c.FieldContainer = DefaultFieldContainer
	}
	if strings.TrimSpace(c.FieldContainerClass) == "" {
		c.FieldContainerClass = DefaultFieldContainerClass
	}
	c.CSRFField = strings.TrimSpace(c.CSRFField)
	if c.CSRFField == "" {
		c.CSRFField = DefaultCSRFField
	}
	if strings.TrimSpace(c.ErrorClass) == "" {
		c.ErrorClass = DefaultErrorClass
	}
	return c
}

// ParseConfig decodes a YAML (or JSON) document on top of DefaultConfig, so
// keys missing from data keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("render: parse config: %w", err)
	}
	return cfg.Normalize(), nil
}

// LoadConfig reads a configuration document from r.
func LoadConfig(r io.Reader) (Config, error) {
	if r == nil {
		return DefaultConfig(), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("render: read config: %w", err)
	}
	return ParseConfig(data)
}

// LoadConfigFS reads the named configuration file from fsys.
func LoadConfigFS(fsys fs.FS, name string) (Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Config{}, fmt.Errorf("render: read config %s: %w", name, err)
	}
	return ParseConfig(data)
}
