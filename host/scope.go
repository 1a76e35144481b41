package host

import (
	"context"
	"errors"

	"github.com/eoepca/owl-sdk/domain/entities"
)

// WithFile parses path and passes the tree to fn. The handle is released
// when fn returns, fails or panics. The tree must not be retained after fn.
func (l *Loader) WithFile(ctx context.Context, path string, fn func(*entities.OWSParameter) error) error {
	h, err := l.ParseFromFile(ctx, path)
	if err != nil {
		return err
	}
	return scoped(ctx, h, fn)
}

// WithMemory is WithFile for an in-memory document.
func (l *Loader) WithMemory(ctx context.Context, doc []byte, fn func(*entities.OWSParameter) error) error {
	h, err := l.ParseFromMemory(ctx, doc)
	if err != nil {
		return err
	}
	return scoped(ctx, h, fn)
}

func scoped(ctx context.Context, h *Handle, fn func(*entities.OWSParameter) error) (err error) {
	defer func() {
		if rerr := h.Release(ctx); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	return fn(h.Parameter())
}
