package wazero

import (
	"context"
	"errors"

	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// module adapts an api.Module to ports.Module.
type module struct {
	mod      api.Module
	compiled wazero.CompiledModule
	name     string
}

func (m *module) Name() string {
	return m.name
}

// ExportedFunction returns nil when name is not an exported function.
func (m *module) ExportedFunction(name string) ports.Function {
	fn := m.mod.ExportedFunction(name)
	if fn == nil {
		return nil
	}
	return function{fn: fn}
}

// Memory returns nil for modules without a memory.
func (m *module) Memory() ports.Memory {
	mem := m.mod.Memory()
	if mem == nil {
		return nil
	}
	return mem
}

func (m *module) Close(ctx context.Context) error {
	return errors.Join(m.mod.Close(ctx), m.compiled.Close(ctx))
}

// function adapts api.Function to ports.Function.
type function struct {
	fn api.Function
}

func (f function) Call(ctx context.Context, params ...uint64) ([]uint64, error) {
	return f.fn.Call(ctx, params...)
}
