// Package template renders text reports of parsed descriptions.
package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/eoepca/owl-sdk/domain/ports"
)

// templateConfig holds configuration for the GoTemplateEngine.
type templateConfig struct {
	strict bool // Fail on missing keys
}

func defaultTemplateConfig() templateConfig {
	return templateConfig{
		strict: true,
	}
}

// TemplateOption configures a GoTemplateEngine.
type TemplateOption func(*templateConfig)

// WithStrict enables/disables strict mode for missing keys.
// When enabled (default), rendering fails if a referenced map key is missing.
func WithStrict(enabled bool) TemplateOption {
	return func(c *templateConfig) {
		c.strict = enabled
	}
}

// GoTemplateEngine implements TemplateEngine using standard text/template.
type GoTemplateEngine struct {
	config templateConfig
}

// NewGoTemplateEngine creates a new GoTemplateEngine.
func NewGoTemplateEngine(opts ...TemplateOption) ports.TemplateEngine {
	cfg := defaultTemplateConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoTemplateEngine{config: cfg}
}

// funcs are available to every template.
var funcs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"indent": func(n int, s string) string {
		pad := strings.Repeat("\t", n)
		return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
	},
}

// Render executes text with data.
func (e *GoTemplateEngine) Render(text []byte, data any) ([]byte, error) {
	tmpl := template.New("report").Funcs(funcs)

	if e.config.strict {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute report template: %w", err)
	}

	return buf.Bytes(), nil
}
