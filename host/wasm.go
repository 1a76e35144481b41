package host

import (
	"bytes"
	"context"
	"fmt"

	"github.com/eoepca/owl-sdk/application/codec"
	"github.com/eoepca/owl-sdk/domain/entities"
	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/eoepca/owl-sdk/internal/abi"
	"github.com/eoepca/owl-sdk/wireformat"
)

// call invokes a resolved export and returns its first result, or 0 for
// exports without results.
func (l *Loader) call(ctx context.Context, name string, params ...uint64) (uint64, error) {
	fn := l.exports[name]
	if fn == nil {
		return 0, &domainerrors.CapabilityError{Required: name, Path: l.path}
	}
	results, err := fn.Call(ctx, params...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0], nil
}

// alloc reserves size bytes in module memory.
func (l *Loader) alloc(ctx context.Context, size uint32) (uint32, error) {
	res, err := l.call(ctx, wireformat.ExportAllocate, uint64(size))
	if err != nil {
		return 0, err
	}
	ptr := uint32(res) //nolint:gosec // G115: wasm32 pointers are 32-bit
	if ptr == 0 {
		return 0, &domainerrors.MemoryError{Operation: "allocate", Size: size}
	}
	return ptr, nil
}

// free returns a block to the module. Failures are logged only: the block
// is already unreachable from the host.
func (l *Loader) free(ctx context.Context, ptr, size uint32) {
	if _, err := l.call(ctx, wireformat.ExportDeallocate, uint64(ptr), uint64(size)); err != nil {
		l.config.logger.WarnContext(ctx, "host: deallocate failed", "path", l.path, "ptr", ptr, "error", err)
	}
}

// read copies the block named by packed out of module memory.
func (l *Loader) read(packed uint64) ([]byte, error) {
	ptr, length := abi.UnpackPtrLen(packed)
	if !abi.Valid(packed) {
		return nil, &domainerrors.MemoryError{Operation: "read", Ptr: ptr, Size: length}
	}
	data, ok := l.memory.Read(ptr, length)
	if !ok {
		return nil, &domainerrors.MemoryError{Operation: "read", Ptr: ptr, Size: length}
	}
	return bytes.Clone(data), nil
}

func decodeTree(data []byte, v ports.DescriptionValidator) (*entities.OWSParameter, error) {
	return codec.DecodeWith(data, v)
}

// terminate NUL-terminates buf in place unless it already holds a NUL.
func terminate(buf []byte) {
	if len(buf) == 0 || bytes.IndexByte(buf, 0) >= 0 {
		return
	}
	buf[len(buf)-1] = 0
}

// cString returns the bytes of buf before the first NUL.
func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}
