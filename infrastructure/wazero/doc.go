// Package wazero loads parser modules with the wazero WebAssembly runtime.
//
// A Runtime compiles and instantiates .wasm files as ports.Module values. Every
// instance gets the WASI preview 1 imports and the owl_host module, whose
// log_message function replays guest slog records into the host logger.
//
// # Basic Usage
//
//	rt, err := wazero.NewRuntime(ctx,
//	    wazero.WithMountDir("."),
//	    wazero.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    return err
//	}
//	defer rt.Close(ctx)
//
//	mod, err := rt.Open(ctx, "libeoepcaows.wasm")
//
// Modules built as reactors (-buildmode=c-shared) are initialised through
// their _initialize export; _start is never run.
package wazero
