package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/eoepca/owl-sdk/guest"
	"github.com/eoepca/owl-sdk/guest/guesttest"
	"github.com/eoepca/owl-sdk/internal/abi"
	"github.com/eoepca/owl-sdk/wireformat"
)

// ErrTrap is returned by a fake export configured to fail.
var ErrTrap = errors.New("wasm trap: unreachable")

// Counters records what the host did to a FakeModule.
type Counters struct {
	Calls       map[string]int
	Allocs      int
	Frees       int
	Parses      int // parse calls returning a non-null handle
	Releases    int // successful releaseParameter calls
	BadReleases int // releaseParameter calls the module rejected
}

// FakeModule is an in-process ports.Module that serves the parser exports
// through guest.Bridge over its own heap. Each instance has a private heap,
// like a real module.
type FakeModule struct {
	name     string
	heap     *abi.Heap
	bridge   *guest.Bridge
	noMemory bool
	exports map[string]ports.Function

	mu       sync.Mutex
	counters Counters
	closed   bool
}

// FakeOption configures a FakeModule.
type FakeOption func(*fakeConfig)

type fakeConfig struct {
	parser   ports.DescriptionParser
	base     uint32
	without  map[string]bool
	failing  map[string]bool
	noMemory bool
}

// WithParser serves p instead of the default guesttest stub.
func WithParser(p ports.DescriptionParser) FakeOption {
	return func(c *fakeConfig) { c.parser = p }
}

// WithHeapBase sets the first address the heap hands out.
func WithHeapBase(base uint32) FakeOption {
	return func(c *fakeConfig) { c.base = base }
}

// WithoutExports omits the named exports.
func WithoutExports(names ...string) FakeOption {
	return func(c *fakeConfig) {
		for _, n := range names {
			c.without[n] = true
		}
	}
}

// WithTrap makes the named exports fail with ErrTrap.
func WithTrap(names ...string) FakeOption {
	return func(c *fakeConfig) {
		for _, n := range names {
			c.failing[n] = true
		}
	}
}

// WithoutMemory makes Memory return nil.
func WithoutMemory() FakeOption {
	return func(c *fakeConfig) { c.noMemory = true }
}

// NewFakeModule builds a module named name.
func NewFakeModule(name string, opts ...FakeOption) *FakeModule {
	cfg := fakeConfig{
		base:    0x1000,
		without: map[string]bool{},
		failing: map[string]bool{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.parser == nil {
		cfg.parser = guesttest.NewStubParser()
	}

	m := &FakeModule{
		name: name,
		heap: abi.NewHeap(abi.SequentialAddresses(cfg.base)),
	}
	m.bridge = guest.NewBridge(cfg.parser, m.heap,
		guest.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	m.counters.Calls = map[string]int{}

	all := map[string]fakeFunc{
		wireformat.ExportVersion: func([]uint64) ([]uint64, error) {
			return []uint64{uint64(m.bridge.Version())}, nil //nolint:gosec // G115: i64 result is reinterpreted by the host
		},
		wireformat.ExportGetParserName: func(p []uint64) ([]uint64, error) {
			m.bridge.GetParserName(uint32(p[0]), uint32(p[1])) //nolint:gosec // G115: i32 params
			return nil, nil
		},
		wireformat.ExportParseFromFile: func(p []uint64) ([]uint64, error) {
			return m.parsed(m.bridge.ParseFromFile(uint32(p[0]), uint32(p[1]))), nil //nolint:gosec // G115: i32 params
		},
		wireformat.ExportParseFromMemory: func(p []uint64) ([]uint64, error) {
			return m.parsed(m.bridge.ParseFromMemory(uint32(p[0]), uint32(p[1]))), nil //nolint:gosec // G115: i32 params
		},
		wireformat.ExportReleaseParameter: func(p []uint64) ([]uint64, error) {
			err := m.bridge.ReleaseParameter(p[0])
			m.mu.Lock()
			defer m.mu.Unlock()
			if err != nil {
				m.counters.BadReleases++
				return nil, fmt.Errorf("%w: %v", ErrTrap, err)
			}
			m.counters.Releases++
			return nil, nil
		},
		wireformat.ExportAllocate: func(p []uint64) ([]uint64, error) {
			ptr := m.heap.Alloc(uint32(p[0])) //nolint:gosec // G115: i32 param
			m.mu.Lock()
			m.counters.Allocs++
			m.mu.Unlock()
			return []uint64{uint64(ptr)}, nil
		},
		wireformat.ExportDeallocate: func(p []uint64) ([]uint64, error) {
			if m.heap.Free(uint32(p[0])) { //nolint:gosec // G115: i32 param
				m.mu.Lock()
				m.counters.Frees++
				m.mu.Unlock()
			}
			return nil, nil
		},
	}

	m.exports = make(map[string]ports.Function, len(all))
	for name, fn := range all {
		if cfg.without[name] {
			continue
		}
		if cfg.failing[name] {
			fn = func([]uint64) ([]uint64, error) { return nil, ErrTrap }
		}
		m.exports[name] = &fakeFunction{module: m, name: name, fn: fn}
	}
	m.noMemory = cfg.noMemory
	return m
}

func (m *FakeModule) parsed(packed uint64) []uint64 {
	if packed != 0 {
		m.mu.Lock()
		m.counters.Parses++
		m.mu.Unlock()
	}
	return []uint64{packed}
}

// Name implements ports.Module.
func (m *FakeModule) Name() string { return m.name }

// ExportedFunction implements ports.Module.
func (m *FakeModule) ExportedFunction(name string) ports.Function {
	fn, ok := m.exports[name]
	if !ok {
		return nil
	}
	return fn
}

// Memory implements ports.Module.
func (m *FakeModule) Memory() ports.Memory {
	if m.noMemory {
		return nil
	}
	return fakeMemory{heap: m.heap}
}

// Close implements ports.Module.
func (m *FakeModule) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *FakeModule) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Counters returns a snapshot of the instrumentation.
func (m *FakeModule) Counters() Counters {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.counters
	c.Calls = make(map[string]int, len(m.counters.Calls))
	for k, v := range m.counters.Calls {
		c.Calls[k] = v
	}
	return c
}

// LiveTrees returns the number of trees not yet released.
func (m *FakeModule) LiveTrees() int { return m.bridge.Live() }

// LiveBlocks returns the number of heap blocks still allocated.
func (m *FakeModule) LiveBlocks() int {
	n, _ := m.heap.Stats()
	return n
}

type fakeFunc func(params []uint64) ([]uint64, error)

type fakeFunction struct {
	module *FakeModule
	name   string
	fn     fakeFunc
}

func (f *fakeFunction) Call(ctx context.Context, params ...uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.module.mu.Lock()
	f.module.counters.Calls[f.name]++
	f.module.mu.Unlock()
	return f.fn(params)
}

// fakeMemory exposes heap blocks as linear memory.
type fakeMemory struct {
	heap *abi.Heap
}

func (m fakeMemory) Read(offset, length uint32) ([]byte, bool) {
	return m.heap.Resolve(offset, length)
}

func (m fakeMemory) Write(offset uint32, data []byte) bool {
	window, ok := m.heap.Resolve(offset, uint32(len(data))) //nolint:gosec // G115: bounded by block size
	if !ok {
		return false
	}
	copy(window, data)
	return true
}

// FakeRuntime is a ports.ModuleRuntime serving FakeModules by path.
type FakeRuntime struct {
	mu      sync.Mutex
	modules map[string]func() *FakeModule
	opened  []*FakeModule
	closed  bool
}

// NewFakeRuntime returns an empty FakeRuntime.
func NewFakeRuntime() *FakeRuntime {
	return &FakeRuntime{modules: map[string]func() *FakeModule{}}
}

// Serve makes path open a fresh module built with opts.
func (r *FakeRuntime) Serve(path string, opts ...FakeOption) *FakeRuntime {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[path] = func() *FakeModule { return NewFakeModule(path, opts...) }
	return r
}

// Open implements ports.ModuleRuntime.
func (r *FakeRuntime) Open(_ context.Context, path string) (ports.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	build, ok := r.modules[path]
	if !ok {
		return nil, fmt.Errorf("failed to read module: open %s: no such file or directory", path)
	}
	m := build()
	r.opened = append(r.opened, m)
	return m, nil
}

// Close implements ports.ModuleRuntime.
func (r *FakeRuntime) Close(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// Opened returns every module opened so far, in order.
func (r *FakeRuntime) Opened() []*FakeModule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*FakeModule(nil), r.opened...)
}

// Closed reports whether Close was called.
func (r *FakeRuntime) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
