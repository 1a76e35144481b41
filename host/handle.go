package host

import (
	"context"

	"github.com/eoepca/owl-sdk/domain/entities"
	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
)

type handleState int

const (
	handleOwned handleState = iota
	handleMoved
	handleReleased
)

func (s handleState) String() string {
	switch s {
	case handleOwned:
		return "owned"
	case handleMoved:
		return "moved"
	case handleReleased:
		return "released"
	default:
		return "unknown"
	}
}

// noCopy lets go vet's copylocks check flag copies of Handle values.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle owns one parsed tree living in a module instance. The tree is
// destroyed by Release, through the loader that produced it, exactly once.
// Handles must not be copied; use Move to transfer ownership.
type Handle struct {
	_ noCopy

	loader *Loader
	packed uint64
	param  *entities.OWSParameter
	state  handleState
}

// Parameter returns the tree. It panics on a nil, moved or released handle.
func (h *Handle) Parameter() *entities.OWSParameter {
	if h == nil {
		domainerrors.Violation("parameter", "nil handle")
	}
	if h.state != handleOwned {
		domainerrors.Violation("parameter", "handle is "+h.state.String())
	}
	return h.param
}

// IsEmpty reports whether h no longer owns a tree.
func (h *Handle) IsEmpty() bool {
	return h == nil || h.state != handleOwned
}

// Release destroys the tree. Releasing a moved-from handle does nothing; a
// second release panics.
func (h *Handle) Release(ctx context.Context) error {
	if h == nil {
		domainerrors.Violation("releaseParameter", "nil handle")
	}
	if h.state == handleMoved {
		return nil
	}
	if h.loader == nil {
		domainerrors.Violation("releaseParameter", "handle has no loader")
	}
	return h.loader.ReleaseParameter(ctx, h)
}

// Move transfers ownership to a new handle and leaves h empty.
func (h *Handle) Move() *Handle {
	if h == nil {
		domainerrors.Violation("move", "nil handle")
	}
	if h.state != handleOwned {
		domainerrors.Violation("move", "handle is "+h.state.String())
	}

	l := h.loader
	l.mu.Lock()
	defer l.mu.Unlock()

	moved := &Handle{loader: l, packed: h.packed, param: h.param, state: handleOwned}
	delete(l.outstanding, h)
	l.outstanding[moved] = struct{}{}

	h.loader = nil
	h.packed = 0
	h.param = nil
	h.state = handleMoved
	return moved
}
