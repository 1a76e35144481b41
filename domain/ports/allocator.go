package ports

// Allocator is a module-side heap that pins byte blocks until freed.
type Allocator interface {
	// Alloc reserves size bytes and returns their address, 0 for size 0.
	Alloc(size uint32) uint32

	// Bytes returns the block at ptr, or nil when ptr is not live.
	Bytes(ptr uint32) []byte

	// Free releases the block at ptr and reports whether it was live.
	Free(ptr uint32) bool
}
