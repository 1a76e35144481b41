// Package abi provides the memory conventions shared by host and module:
// packed pointer/length values and the module-side heap that pins blocks
// handed to the host.
package abi

import "fmt"

// PtrHighBits is the shift of the pointer half of a packed value.
const PtrHighBits = 32

// PackPtrLen packs a pointer and length into a single uint64.
// Pointer is stored in the high 32 bits, length in the low 32 bits.
// Panics if ptr is 0 and length > 0, indicating an invalid state.
func PackPtrLen(ptr, length uint32) uint64 {
	if ptr == 0 && length > 0 {
		panic(fmt.Sprintf("abi: invalid pack - null pointer (0x0) with non-zero length (%d)", length))
	}
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen unpacks a uint64 into its original pointer and length.
// Unlike PackPtrLen it never panics: values coming from a module are
// untrusted, so callers check Valid instead.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	ptr = uint32(packed >> PtrHighBits) //nolint:gosec // G115: packed format stores 32-bit values
	length = uint32(packed)             //nolint:gosec // G115: packed format stores 32-bit values
	return ptr, length
}

// Valid reports whether packed names a non-empty block.
func Valid(packed uint64) bool {
	ptr, length := UnpackPtrLen(packed)
	return ptr != 0 && length != 0
}
