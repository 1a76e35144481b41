//go:build wasip1

package guest

import (
	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/eoepca/owl-sdk/internal/abi"
)

var bridge *Bridge

// Register installs the module's parser. Call it once from main.
func Register(p ports.DescriptionParser) {
	if bridge != nil {
		panic("guest: Register called twice")
	}
	bridge = NewBridge(p, abi.ModuleHeap())
}

func mustBridge() *Bridge {
	if bridge == nil {
		panic("guest: no parser registered")
	}
	return bridge
}

//go:wasmexport version
func version() int64 {
	return mustBridge().Version()
}

//go:wasmexport getParserName
func getParserName(ptr, capacity uint32) {
	mustBridge().GetParserName(ptr, capacity)
}

//go:wasmexport parseFromFile
func parseFromFile(ptr, length uint32) uint64 {
	return mustBridge().ParseFromFile(ptr, length)
}

//go:wasmexport parseFromMemory
func parseFromMemory(ptr, length uint32) uint64 {
	return mustBridge().ParseFromMemory(ptr, length)
}

// releaseParameter traps on an unknown handle so the host sees the misuse.
//
//go:wasmexport releaseParameter
func releaseParameter(handle uint64) {
	if err := mustBridge().ReleaseParameter(handle); err != nil {
		panic(err)
	}
}
