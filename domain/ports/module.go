package ports

import "context"

// ModuleRuntime loads parser modules by path.
type ModuleRuntime interface {
	// Open reads, compiles and instantiates the module at path.
	Open(ctx context.Context, path string) (Module, error)

	// Close releases the runtime and every module it opened.
	Close(ctx context.Context) error
}

// Module is one instantiated module. Its linear memory and heap are private
// to the instance.
type Module interface {
	// Name identifies the instance in diagnostics.
	Name() string

	// ExportedFunction resolves an export by name, or returns nil.
	ExportedFunction(name string) Function

	// Memory returns the instance's linear memory.
	Memory() Memory

	// Close releases the instance.
	Close(ctx context.Context) error
}

// Function is a resolved export.
type Function interface {
	// Call invokes the export with wasm-encoded parameters.
	Call(ctx context.Context, params ...uint64) ([]uint64, error)
}

// Memory is the byte-addressed linear memory of a module.
type Memory interface {
	// Read returns length bytes at offset, or false when out of range.
	// The returned slice aliases module memory.
	Read(offset, length uint32) ([]byte, bool)

	// Write copies data to offset, or returns false when out of range.
	Write(offset uint32, data []byte) bool
}
