// Package config provides host configuration for loading parser modules.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/eoepca/owl-sdk/application/validation"
	"github.com/eoepca/owl-sdk/domain/entities"
	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/eoepca/owl-sdk/infrastructure/parser"
	"github.com/eoepca/owl-sdk/wireformat"
)

// Config is the host configuration.
type Config = entities.HostConfig

// DefaultCandidates are the module names probed when none are configured.
var DefaultCandidates = []string{"libeoepcaows.wasm", "libeoepcaows.reactor.wasm"}

// Option mutates a Config.
type Option func(*Config)

// WithCandidates replaces the probed module names.
func WithCandidates(names ...string) Option {
	return func(c *Config) {
		c.Candidates = append([]string(nil), names...)
	}
}

// WithSearchDirs sets the directories relative candidates are looked up in.
func WithSearchDirs(dirs ...string) Option {
	return func(c *Config) {
		c.SearchDirs = append([]string(nil), dirs...)
	}
}

// WithMountDir sets the directory exposed to modules.
func WithMountDir(dir string) Option {
	return func(c *Config) {
		c.MountDir = dir
	}
}

// WithLogLevel sets the log level name.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = strings.ToLower(level)
	}
}

// WithVersionRange sets the accepted module versions.
func WithVersionRange(lo, hi int64) Option {
	return func(c *Config) {
		c.MinVersion = lo
		c.MaxVersion = hi
	}
}

// WithMemoryLimitPages caps module memory.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *Config) {
		c.MemoryLimitPages = pages
	}
}

// Default returns the built-in configuration with opts applied.
func Default(opts ...Option) Config {
	cfg := Config{
		Candidates: append([]string(nil), DefaultCandidates...),
		MountDir:   ".",
		LogLevel:   "info",
		MinVersion: wireformat.MinABIVersion,
		MaxVersion: wireformat.ABIVersion,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Load reads the file at path over the defaults, applies opts and validates
// the result. An empty path skips the file.
func Load(path string, opts ...Option) (*Config, error) {
	return LoadWith(parser.NewYamlConfigParser(), path, opts...)
}

// LoadWith is Load with an explicit parser.
func LoadWith(p ports.ConfigParser, path string, opts ...Option) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied config path
		if err != nil {
			return nil, &domainerrors.ConfigError{Field: "path", Err: err}
		}
		parsed, err := p.Parse(data, cfg)
		if err != nil {
			return nil, &domainerrors.ConfigError{Field: "path", Err: err}
		}
		cfg = *parsed
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg and reports the first failing field as a ConfigError.
func Validate(cfg *Config) error {
	res, err := validation.NewConfigValidator().Validate(cfg)
	if err != nil {
		return &domainerrors.ConfigError{Field: "config", Err: err}
	}
	if !res.Valid {
		return &domainerrors.ConfigError{
			Field: res.Errors[0].Field,
			Err:   fmt.Errorf("invalid configuration: %s", res.Summary()),
		}
	}
	return nil
}

// Paths expands the candidates against the search directories, in probe
// order. Absolute candidates are used as is.
func Paths(cfg *Config) []string {
	dirs := cfg.SearchDirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	var paths []string
	for _, name := range cfg.Candidates {
		if filepath.IsAbs(name) {
			paths = append(paths, name)
			continue
		}
		for _, dir := range dirs {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// Level maps the configured level name to a slog.Level.
func Level(cfg *Config) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
