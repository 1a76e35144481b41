//go:build wasip1

package log

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/eoepca/owl-sdk/internal/abi"
)

// host_log_message is provided by the host under owl_host.log_message.
//
//go:wasmimport owl_host log_message
//nolint:revive // intentional snake_case to match WASM import convention
func host_log_message(messagePacked uint64)

// Handle serializes a slog.Record and sends it to the host via a host function.
func (h *WasmLogHandler) Handle(_ context.Context, record slog.Record) error {
	requestBytes, err := json.Marshal(h.toWire(record))
	if err != nil {
		fmt.Printf("owl: failed to marshal log message for host: %v, original: %s\n", err, record.Message)
		return nil
	}

	packed := abi.PtrFromBytes(requestBytes)
	host_log_message(packed)
	abi.DeallocatePacked(packed)
	return nil
}

// init configures the default slog handler to use our WasmLogHandler.
func init() {
	slog.SetDefault(slog.New(NewHandler()))
}
