package host

import (
	"log/slog"

	"github.com/eoepca/owl-sdk/application/validation"
	"github.com/eoepca/owl-sdk/config"
	"github.com/eoepca/owl-sdk/domain/ports"
	hostwazero "github.com/eoepca/owl-sdk/infrastructure/wazero"
	"github.com/eoepca/owl-sdk/wireformat"
)

// Option configures a Loader.
type Option func(*loaderConfig)

type loaderConfig struct {
	runtime     ports.ModuleRuntime
	runtimeOpts []hostwazero.RuntimeOption
	logger      *slog.Logger
	validator   ports.DescriptionValidator
	minVersion  int64
	maxVersion  int64
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		logger:     slog.Default(),
		validator:  validation.NewDescriptionValidator(),
		minVersion: wireformat.MinABIVersion,
		maxVersion: wireformat.ABIVersion,
	}
}

// WithRuntime opens modules through rt. The loader does not close a runtime
// it did not create.
func WithRuntime(rt ports.ModuleRuntime) Option {
	return func(c *loaderConfig) {
		c.runtime = rt
	}
}

// WithRuntimeOptions configures the wazero runtime the loader creates when no
// runtime is given.
func WithRuntimeOptions(opts ...hostwazero.RuntimeOption) Option {
	return func(c *loaderConfig) {
		c.runtimeOpts = append(c.runtimeOpts, opts...)
	}
}

// WithLogger sets the logger for loader diagnostics and guest logs.
func WithLogger(logger *slog.Logger) Option {
	return func(c *loaderConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValidator replaces the validator applied to decoded trees. A nil
// validator disables validation.
func WithValidator(v ports.DescriptionValidator) Option {
	return func(c *loaderConfig) {
		c.validator = v
	}
}

// WithVersionRange sets the accepted module versions, inclusive.
func WithVersionRange(lo, hi int64) Option {
	return func(c *loaderConfig) {
		c.minVersion = lo
		c.maxVersion = hi
	}
}

// WithConfig applies the version range and module limits from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(c *loaderConfig) {
		c.minVersion = cfg.MinVersion
		c.maxVersion = cfg.MaxVersion
		c.runtimeOpts = append(c.runtimeOpts,
			hostwazero.WithMountDir(cfg.MountDir),
			hostwazero.WithMemoryLimitPages(cfg.MemoryLimitPages),
		)
	}
}
