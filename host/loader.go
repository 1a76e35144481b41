package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/eoepca/owl-sdk/domain/entities"
	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
	"github.com/eoepca/owl-sdk/domain/ports"
	hostwazero "github.com/eoepca/owl-sdk/infrastructure/wazero"
	"github.com/eoepca/owl-sdk/wireformat"
)

// ErrNullResult is the cause recorded when a parse call returns no tree.
var ErrNullResult = errors.New("module returned a null handle")

// ErrOutstandingHandles is returned by Close when handles were never released.
var ErrOutstandingHandles = errors.New("handles not released")

// MaxParserNameLength is the buffer ParserName uses.
const MaxParserNameLength = 1024

// Loader is one opened parser module. All calls into the module are
// serialized by the loader's mutex.
type Loader struct {
	mu sync.Mutex

	config      loaderConfig
	path        string
	runtime     ports.ModuleRuntime
	ownsRuntime bool
	module      ports.Module
	exports     map[string]ports.Function
	memory      ports.Memory

	valid   bool
	closed  bool
	lastErr error
	version int64

	outstanding map[*Handle]struct{}
}

// Open loads the module at path. It never fails outright: check IsValid and
// LastError. A loader that is not valid exposes no capability.
func Open(ctx context.Context, path string, opts ...Option) *Loader {
	cfg := defaultLoaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &Loader{
		config:      cfg,
		path:        path,
		outstanding: make(map[*Handle]struct{}),
	}
	if err := l.open(ctx); err != nil {
		l.lastErr = err
		l.config.logger.WarnContext(ctx, "host: module not usable", "path", path, "error", err)
		_ = l.teardown(ctx)
		return l
	}
	l.valid = true
	l.config.logger.DebugContext(ctx, "host: module loaded", "path", path, "module", l.module.Name(), "version", l.version)
	return l
}

func (l *Loader) open(ctx context.Context) error {
	l.runtime = l.config.runtime
	if l.runtime == nil {
		opts := append([]hostwazero.RuntimeOption{hostwazero.WithLogger(l.config.logger)}, l.config.runtimeOpts...)
		rt, err := hostwazero.NewRuntime(ctx, opts...)
		if err != nil {
			return &domainerrors.LoadError{Path: l.path, Err: err}
		}
		l.runtime = rt
		l.ownsRuntime = true
	}

	mod, err := l.runtime.Open(ctx, l.path)
	if err != nil {
		return &domainerrors.LoadError{Path: l.path, Err: err}
	}
	l.module = mod

	// Fail fast: stop at the first missing export.
	l.exports = make(map[string]ports.Function, len(wireformat.RequiredExports))
	for _, name := range wireformat.RequiredExports {
		fn := mod.ExportedFunction(name)
		if fn == nil {
			l.exports = nil
			return &domainerrors.CapabilityError{Required: name, Path: l.path}
		}
		l.exports[name] = fn
	}

	l.memory = mod.Memory()
	if l.memory == nil {
		l.exports = nil
		return &domainerrors.CapabilityError{Required: "memory", Path: l.path}
	}

	v, err := l.call(ctx, wireformat.ExportVersion)
	if err != nil {
		return &domainerrors.LoadError{Path: l.path, Err: err}
	}
	l.version = int64(v) //nolint:gosec // G115: i64 result reinterpreted as signed
	if l.version < l.config.minVersion || l.version > l.config.maxVersion {
		return &domainerrors.VersionError{Got: l.version, Min: l.config.minVersion, Max: l.config.maxVersion}
	}
	return nil
}

// teardown closes the module and any runtime the loader created.
func (l *Loader) teardown(ctx context.Context) error {
	var errs []error
	if l.module != nil {
		errs = append(errs, l.module.Close(ctx))
		l.module = nil
	}
	if l.ownsRuntime && l.runtime != nil {
		errs = append(errs, l.runtime.Close(ctx))
	}
	l.runtime = nil
	l.exports = nil
	l.memory = nil
	return errors.Join(errs...)
}

// IsValid reports whether the full capability set was resolved and the
// module version accepted.
func (l *Loader) IsValid() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.valid
}

// LastError returns the most recent failure, or "" when there is none.
func (l *Loader) LastError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastErr == nil {
		return ""
	}
	return l.lastErr.Error()
}

// Err returns the most recent failure as an error, or nil.
func (l *Loader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// LastErrorDetail returns the last error in structured form, or nil. Details
// default to the module path.
func (l *Loader) LastErrorDetail() *entities.ErrorDetail {
	err := l.Err()
	if err == nil {
		return nil
	}
	detail := domainerrors.ToErrorDetail(err)
	if detail.Details == nil {
		detail.WithDetails(map[string]any{"module": l.path})
	}
	return detail
}

// ResetError clears the last error.
func (l *Loader) ResetError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastErr = nil
}

// Path returns the path the loader was opened with.
func (l *Loader) Path() string {
	return l.path
}

// Version returns the version the module reported at load time.
func (l *Loader) Version() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mustBeValid(wireformat.ExportVersion)
	return l.version
}

// GetParserName writes the module's NUL-terminated parser name into buf,
// truncated to fit. Nothing is written past len(buf) and a non-empty buf
// always ends up NUL-terminated, whatever the module does.
func (l *Loader) GetParserName(ctx context.Context, buf []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mustBeValid(wireformat.ExportGetParserName)

	capacity := uint32(len(buf)) //nolint:gosec // G115: bounded by the i32 ABI
	if capacity == 0 {
		_, err := l.call(ctx, wireformat.ExportGetParserName, 0, 0)
		return l.record(err)
	}

	ptr, err := l.alloc(ctx, capacity)
	if err != nil {
		return l.record(err)
	}
	defer l.free(ctx, ptr, capacity)

	if _, err := l.call(ctx, wireformat.ExportGetParserName, uint64(ptr), uint64(capacity)); err != nil {
		return l.record(err)
	}
	data, ok := l.memory.Read(ptr, capacity)
	if !ok {
		return l.record(&domainerrors.MemoryError{Operation: "read", Ptr: ptr, Size: capacity})
	}
	copy(buf, data)
	terminate(buf)
	return nil
}

// ParserName returns the parser name as a string.
func (l *Loader) ParserName(ctx context.Context) (string, error) {
	buf := make([]byte, MaxParserNameLength)
	if err := l.GetParserName(ctx, buf); err != nil {
		return "", err
	}
	return cString(buf), nil
}

// ParseFromFile asks the module to parse the document at path, as seen by the
// module. A null result returns a *ParseError, also kept as the last error.
func (l *Loader) ParseFromFile(ctx context.Context, path string) (*Handle, error) {
	return l.parse(ctx, wireformat.ExportParseFromFile, []byte(path), path)
}

// ParseFromMemory asks the module to parse doc.
func (l *Loader) ParseFromMemory(ctx context.Context, doc []byte) (*Handle, error) {
	return l.parse(ctx, wireformat.ExportParseFromMemory, doc, fmt.Sprintf("%d bytes", len(doc)))
}

func (l *Loader) parse(ctx context.Context, op string, input []byte, source string) (*Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mustBeValid(op)

	fail := func(err error) (*Handle, error) {
		return nil, l.record(&domainerrors.ParseError{Operation: op, Source: source, Err: err})
	}

	if len(input) == 0 {
		return fail(errors.New("empty input"))
	}

	size := uint32(len(input)) //nolint:gosec // G115: bounded by the i32 ABI
	ptr, err := l.alloc(ctx, size)
	if err != nil {
		return fail(err)
	}
	if !l.memory.Write(ptr, input) {
		l.free(ctx, ptr, size)
		return fail(&domainerrors.MemoryError{Operation: "write", Ptr: ptr, Size: size})
	}
	packed, err := l.call(ctx, op, uint64(ptr), uint64(size))
	l.free(ctx, ptr, size)
	if err != nil {
		return fail(err)
	}
	if packed == 0 {
		return fail(ErrNullResult)
	}

	tree, err := l.decode(packed)
	if err != nil {
		// The module still owns a tree; give it back before reporting.
		if _, rerr := l.call(ctx, wireformat.ExportReleaseParameter, packed); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return fail(err)
	}

	h := &Handle{loader: l, packed: packed, param: tree, state: handleOwned}
	l.outstanding[h] = struct{}{}
	return h, nil
}

// ReleaseParameter destroys the tree behind h through this loader's module.
// Releasing a moved-from handle does nothing. A nil handle, a handle from
// another loader, a copied handle, or a second release panics.
func (l *Loader) ReleaseParameter(ctx context.Context, h *Handle) error {
	const op = wireformat.ExportReleaseParameter
	if h == nil {
		domainerrors.Violation(op, "nil handle")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if h.loader != l {
		// A moved-from handle has no loader and never changes again.
		if h.loader == nil && h.state == handleMoved {
			return nil
		}
		domainerrors.Violation(op, "handle was produced by another loader instance")
	}
	if h.state == handleReleased {
		domainerrors.Violation(op, "handle already released")
	}
	if l.closed {
		domainerrors.Violation(op, "loader is closed")
	}
	if _, ok := l.outstanding[h]; !ok {
		domainerrors.Violation(op, "handle is not owned by this loader")
	}

	h.state = handleReleased
	h.param = nil
	delete(l.outstanding, h)

	if _, err := l.call(ctx, op, h.packed); err != nil {
		return l.record(fmt.Errorf("releaseParameter: %w", err))
	}
	return nil
}

// Outstanding returns the number of handles not yet released.
func (l *Loader) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.outstanding)
}

// Close unloads the module. Outstanding handles are reported through
// ErrOutstandingHandles and become unusable. Close is idempotent.
func (l *Loader) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.valid = false

	var leaked error
	if n := len(l.outstanding); n > 0 {
		leaked = fmt.Errorf("%d %w by %s", n, ErrOutstandingHandles, l.path)
		l.config.logger.WarnContext(ctx, "host: closing module with live handles", "path", l.path, "count", n)
		for h := range l.outstanding {
			h.state = handleReleased
			h.param = nil
		}
		clear(l.outstanding)
	}
	return errors.Join(leaked, l.teardown(ctx))
}

// mustBeValid panics when capabilities are used on an invalid or closed
// loader. Callers hold l.mu.
func (l *Loader) mustBeValid(op string) {
	if l.closed {
		domainerrors.Violation(op, "loader is closed")
	}
	if !l.valid {
		reason := "loader is not valid"
		if l.lastErr != nil {
			reason += ": " + l.lastErr.Error()
		}
		domainerrors.Violation(op, reason)
	}
}

// record keeps err as the last error and returns it. Callers hold l.mu.
func (l *Loader) record(err error) error {
	if err != nil {
		l.lastErr = err
	}
	return err
}

// decode copies the serialized tree out of module memory and rebuilds it.
func (l *Loader) decode(packed uint64) (*entities.OWSParameter, error) {
	data, err := l.read(packed)
	if err != nil {
		return nil, err
	}
	return decodeTree(data, l.config.validator)
}
