package wazero

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/eoepca/owl-sdk/wireformat"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// DefaultMaxLogMessageSize limits a single log record read from guest memory.
const DefaultMaxLogMessageSize = 64 * 1024

// RuntimeConfig holds configuration for the wazero runtime.
type RuntimeConfig struct {
	// Logger receives guest log records. Default is slog.Default().
	Logger *slog.Logger

	// Stdout and Stderr receive the guest's standard streams. Default discards.
	Stdout io.Writer
	Stderr io.Writer

	// MountDir is mounted read-only at the guest root. Empty mounts nothing.
	MountDir string

	// MemoryLimitPages caps each instance's linear memory (64 KiB pages).
	// Zero keeps the wazero default.
	MemoryLimitPages uint32

	// MaxLogMessageSize limits log records read from guest memory.
	MaxLogMessageSize uint32
}

// RuntimeOption configures the runtime.
type RuntimeOption func(*RuntimeConfig)

// WithLogger sets the logger guest records are replayed into.
func WithLogger(logger *slog.Logger) RuntimeOption {
	return func(c *RuntimeConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithMountDir mounts dir read-only at the guest root so parseFromFile can
// read documents.
func WithMountDir(dir string) RuntimeOption {
	return func(c *RuntimeConfig) {
		c.MountDir = dir
	}
}

// WithMemoryLimitPages caps instance memory in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) RuntimeOption {
	return func(c *RuntimeConfig) {
		c.MemoryLimitPages = pages
	}
}

// WithStdio wires the guest's stdout and stderr.
func WithStdio(stdout, stderr io.Writer) RuntimeOption {
	return func(c *RuntimeConfig) {
		c.Stdout = stdout
		c.Stderr = stderr
	}
}

// WithMaxLogMessageSize sets the largest log record accepted from a guest.
func WithMaxLogMessageSize(size uint32) RuntimeOption {
	return func(c *RuntimeConfig) {
		if size > 0 {
			c.MaxLogMessageSize = size
		}
	}
}

// defaultRuntimeConfig returns the default runtime configuration.
func defaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Logger:            slog.Default(),
		Stdout:            io.Discard,
		Stderr:            io.Discard,
		MaxLogMessageSize: DefaultMaxLogMessageSize,
	}
}

// Runtime implements ports.ModuleRuntime on top of a wazero.Runtime.
type Runtime struct {
	runtime wazero.Runtime
	config  RuntimeConfig
	seq     atomic.Uint64
}

var _ ports.ModuleRuntime = (*Runtime)(nil)

// NewRuntime creates a wazero runtime with WASI and the owl_host module.
func NewRuntime(ctx context.Context, opts ...RuntimeOption) (*Runtime, error) {
	cfg := defaultRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rc := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if cfg.MemoryLimitPages > 0 {
		rc = rc.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, rc)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}

	r := &Runtime{runtime: rt, config: cfg}
	if err := r.registerHostModule(ctx); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}
	return r, nil
}

// registerHostModule exports owl_host.log_message.
func (r *Runtime) registerHostModule(ctx context.Context) error {
	_, err := r.runtime.NewHostModuleBuilder(wireformat.HostModule).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			r.forwardLog(ctx, GetModuleName(ctx, mod), mod.Memory(), stack[0])
		}), []api.ValueType{api.ValueTypeI64}, []api.ValueType{}).
		Export(wireformat.HostLogMessage).
		Instantiate(ctx)
	return err
}

// Open reads, compiles and instantiates the module at path. The _start
// function is not run; _initialize is called when exported.
func (r *Runtime) Open(ctx context.Context, path string) (ports.Module, error) {
	wasmBytes, err := os.ReadFile(path) //nolint:gosec // G304: loading a caller-named module is the point
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}

	compiled, err := r.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	name := r.instanceName(path)
	mc := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions().
		WithStdout(r.config.Stdout).
		WithStderr(r.config.Stderr).
		WithSysWalltime().
		WithSysNanotime().
		WithRandSource(rand.Reader)
	if r.config.MountDir != "" {
		mc = mc.WithFSConfig(wazero.NewFSConfig().WithReadOnlyDirMount(r.config.MountDir, "/"))
	}

	ctx = WithModuleName(ctx, name)
	mod, err := r.runtime.InstantiateModule(ctx, compiled, mc)
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			_ = compiled.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &module{mod: mod, compiled: compiled, name: name}, nil
}

// Close releases the runtime and every module it instantiated.
func (r *Runtime) Close(ctx context.Context) error {
	return r.runtime.Close(ctx)
}

// instanceName derives a runtime-unique module name from path.
func (r *Runtime) instanceName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fmt.Sprintf("%s#%d", base, r.seq.Add(1))
}

// memoryReader is the part of api.Memory the log forwarder needs.
type memoryReader interface {
	Read(offset, byteCount uint32) ([]byte, bool)
}
