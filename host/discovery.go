package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/eoepca/owl-sdk/config"
)

// OpenFirst opens each path in order and returns the first valid loader.
// Loaders that fail are closed. When none is valid the returned error joins
// every failure.
func OpenFirst(ctx context.Context, paths []string, opts ...Option) (*Loader, error) {
	if len(paths) == 0 {
		return nil, errors.New("no module candidates")
	}

	var errs []error
	for _, path := range paths {
		l := Open(ctx, path, opts...)
		if l.IsValid() {
			return l, nil
		}
		errs = append(errs, l.Err())
		_ = l.Close(ctx)
	}
	return nil, fmt.Errorf("no usable module among %d candidates: %w", len(paths), errors.Join(errs...))
}

// OpenConfig probes the candidates of cfg with its version range and module
// limits applied before opts.
func OpenConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Loader, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return OpenFirst(ctx, config.Paths(cfg), append([]Option{WithConfig(cfg)}, opts...)...)
}
