package guest

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/eoepca/owl-sdk/application/codec"
	"github.com/eoepca/owl-sdk/domain/entities"
	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/eoepca/owl-sdk/internal/abi"
)

// ErrUnknownHandle is returned when releaseParameter is called with a handle
// this module did not produce or already released.
var ErrUnknownHandle = errors.New("unknown or already released handle")

// Bridge implements the export semantics over a parser and a module heap.
type Bridge struct {
	parser ports.DescriptionParser
	heap   ports.Allocator
	logger *slog.Logger

	mu   sync.Mutex
	live map[uint32]uint32 // tree ptr -> length
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLogger sets the logger used for parse failures.
func WithLogger(l *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		b.logger = l
	}
}

// NewBridge creates a Bridge serving parser out of heap.
func NewBridge(parser ports.DescriptionParser, heap ports.Allocator, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		parser: parser,
		heap:   heap,
		logger: slog.Default(),
		live:   make(map[uint32]uint32),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Version returns the parser's version.
func (b *Bridge) Version() int64 {
	return b.parser.Version()
}

// GetParserName writes the NUL-terminated parser name into the heap block at
// ptr, never touching more than capacity bytes or the block's own length.
func (b *Bridge) GetParserName(ptr, capacity uint32) {
	if capacity == 0 {
		return
	}
	block := b.heap.Bytes(ptr)
	if block == nil {
		b.logger.Error("getParserName: buffer is not a live allocation", "ptr", ptr)
		return
	}
	if int(capacity) < len(block) {
		block = block[:capacity]
	}
	WriteBoundedName(block, b.parser.Name())
}

// ParseFromFile parses the path stored at [ptr, ptr+length) and returns the
// packed handle of the serialized tree, or 0.
func (b *Bridge) ParseFromFile(ptr, length uint32) uint64 {
	path, err := b.input(ptr, length)
	if err != nil {
		b.logger.Error("parseFromFile: bad path argument", "error", err)
		return 0
	}
	tree, err := b.parser.ParseFile(string(path))
	if err != nil {
		b.logger.Error("parseFromFile failed", "path", string(path), "error", err)
		return 0
	}
	return b.pin("parseFromFile", tree)
}

// ParseFromMemory parses the document stored at [ptr, ptr+length).
func (b *Bridge) ParseFromMemory(ptr, length uint32) uint64 {
	doc, err := b.input(ptr, length)
	if err != nil {
		b.logger.Error("parseFromMemory: bad document argument", "error", err)
		return 0
	}
	data := append([]byte(nil), doc...)
	tree, err := b.parser.ParseMemory(data)
	if err != nil {
		b.logger.Error("parseFromMemory failed", "bytes", len(data), "error", err)
		return 0
	}
	return b.pin("parseFromMemory", tree)
}

// ReleaseParameter frees the tree behind packed. A handle is accepted exactly
// once.
func (b *Bridge) ReleaseParameter(packed uint64) error {
	ptr, length := abi.UnpackPtrLen(packed)

	b.mu.Lock()
	defer b.mu.Unlock()

	if got, ok := b.live[ptr]; !ok || got != length {
		return fmt.Errorf("releaseParameter(0x%x): %w", packed, ErrUnknownHandle)
	}
	delete(b.live, ptr)
	b.heap.Free(ptr)
	return nil
}

// Live returns the number of trees the host has not released yet.
func (b *Bridge) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.live)
}

func (b *Bridge) input(ptr, length uint32) ([]byte, error) {
	if length == 0 {
		return nil, errors.New("empty argument")
	}
	block := b.heap.Bytes(ptr)
	if block == nil || int(length) > len(block) {
		return nil, fmt.Errorf("argument [0x%x, +%d) is not a live allocation", ptr, length)
	}
	return block[:length], nil
}

func (b *Bridge) pin(op string, tree *entities.OWSParameter) uint64 {
	if tree == nil {
		b.logger.Error(op+": parser returned no tree")
		return 0
	}
	data, err := codec.Encode(tree)
	if err != nil {
		b.logger.Error(op+": failed to serialize tree", "error", err)
		return 0
	}

	size := uint32(len(data)) //nolint:gosec // G115: bounded by the heap limit
	ptr := b.heap.Alloc(size)
	copy(b.heap.Bytes(ptr), data)

	b.mu.Lock()
	b.live[ptr] = size
	b.mu.Unlock()

	return abi.PackPtrLen(ptr, size)
}
