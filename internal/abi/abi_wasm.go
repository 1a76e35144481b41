//go:build wasip1

package abi

import "unsafe"

// heap is the module heap. Addresses are real linear-memory offsets.
var heap = NewHeap(func(block []byte) uint32 {
	return uint32(uintptr(unsafe.Pointer(&block[0])))
})

// ModuleHeap returns the heap backing the allocate/deallocate exports.
func ModuleHeap() *Heap { return heap }

// allocate reserves memory in the WASM linear memory for the host to fill.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	return heap.Alloc(size)
}

// deallocate frees a block previously returned by allocate.
//
//go:wasmexport deallocate
func deallocate(ptr uint32, _ uint32) {
	heap.Free(ptr)
}

// PtrFromBytes copies data into a fresh heap block and returns it packed.
func PtrFromBytes(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	size := uint32(len(data)) //nolint:gosec // G115: bounded by heap limit
	ptr := heap.Alloc(size)
	copy(heap.Bytes(ptr), data)
	return PackPtrLen(ptr, size)
}

// DeallocatePacked frees the block named by packed.
func DeallocatePacked(packed uint64) {
	ptr, length := UnpackPtrLen(packed)
	if ptr != 0 && length > 0 {
		heap.Free(ptr)
	}
}
