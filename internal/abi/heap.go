package abi

import (
	"fmt"
	"sync"
)

// DefaultMaxTotalAllocations bounds the bytes a Heap may pin at once.
const DefaultMaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// AddressFunc maps a freshly allocated block to the address the host sees.
type AddressFunc func(block []byte) uint32

// Heap tracks every block handed out across the module boundary. It keeps a
// reference to each block so the Go GC cannot collect it until Free.
type Heap struct {
	mu             sync.Mutex
	blocks         map[uint32][]byte
	addr           AddressFunc
	totalAllocated int
	limit          int
}

// HeapOption configures a Heap.
type HeapOption func(*Heap)

// WithMaxTotalAllocations sets the byte limit. Non-positive values are ignored.
func WithMaxTotalAllocations(limit int) HeapOption {
	return func(h *Heap) {
		if limit > 0 {
			h.limit = limit
		}
	}
}

// NewHeap creates a Heap that addresses blocks with addr.
func NewHeap(addr AddressFunc, opts ...HeapOption) *Heap {
	h := &Heap{
		blocks: make(map[uint32][]byte),
		addr:   addr,
		limit:  DefaultMaxTotalAllocations,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Alloc reserves size zeroed bytes and returns their address.
// Panics if the allocation would exceed the heap limit.
func (h *Heap) Alloc(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalAllocated+int(size) > h.limit {
		panic(fmt.Sprintf("abi: memory allocation limit exceeded (requested: %d bytes, current: %d bytes, limit: %d bytes)",
			size, h.totalAllocated, h.limit))
	}

	buf := make([]byte, size)
	ptr := h.addr(buf)
	h.blocks[ptr] = buf
	h.totalAllocated += int(size)
	return ptr
}

// Bytes returns the live block starting at ptr, or nil.
func (h *Heap) Bytes(ptr uint32) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.blocks[ptr]
}

// Free drops the block at ptr and reports whether it was live. Accounting
// uses the stored block length, never a caller-supplied size.
func (h *Heap) Free(ptr uint32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	block, ok := h.blocks[ptr]
	if !ok {
		return false
	}
	delete(h.blocks, ptr)
	h.totalAllocated -= len(block)
	return true
}

// Resolve finds the live block containing [offset, offset+length) and returns
// that window of it.
func (h *Heap) Resolve(offset, length uint32) ([]byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ptr, block := range h.blocks {
		start := uint64(ptr)
		end := start + uint64(len(block))
		if uint64(offset) >= start && uint64(offset)+uint64(length) <= end {
			rel := offset - ptr
			return block[rel : rel+length], true
		}
	}
	return nil, false
}

// Stats returns the number of live blocks and their total size.
func (h *Heap) Stats() (count, totalBytes int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks), h.totalAllocated
}

// FreeAll drops every block.
func (h *Heap) FreeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.blocks)
	h.totalAllocated = 0
}

// SequentialAddresses returns an AddressFunc handing out increasing,
// non-overlapping addresses starting at base. Used where blocks do not live
// in a real linear memory.
func SequentialAddresses(base uint32) AddressFunc {
	var mu sync.Mutex
	next := base
	return func(block []byte) uint32 {
		mu.Lock()
		defer mu.Unlock()
		ptr := next
		next += uint32(len(block)) + 8 //nolint:gosec // G115: block sizes are bounded by the heap limit
		return ptr
	}
}
