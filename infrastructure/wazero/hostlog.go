package wazero

import (
	"context"
	"log/slog"

	"github.com/eoepca/owl-sdk/internal/abi"
	owllog "github.com/eoepca/owl-sdk/log"
)

// forwardLog reads a packed log record from guest memory and replays it into
// the runtime logger. Malformed or oversized records are reported, never
// propagated to the guest.
func (r *Runtime) forwardLog(ctx context.Context, moduleName string, mem memoryReader, packed uint64) {
	logger := r.config.Logger
	ptr, length := abi.UnpackPtrLen(packed)

	if length > r.config.MaxLogMessageSize {
		logger.WarnContext(ctx, "wazero: guest log message too large",
			"module", moduleName, "size", length, "max", r.config.MaxLogMessageSize)
		return
	}
	if mem == nil {
		logger.WarnContext(ctx, "wazero: guest has no memory for log message", "module", moduleName)
		return
	}

	payload, ok := mem.Read(ptr, length)
	if !ok {
		logger.WarnContext(ctx, "wazero: failed to read log message from guest memory",
			"module", moduleName, "ptr", ptr, "len", length)
		return
	}

	msg, err := owllog.Decode(payload)
	if err != nil {
		logger.InfoContext(ctx, "guest log (raw)", "module", moduleName, "payload", string(payload))
		return
	}
	if err := msg.Replay(ctx, logger.Handler(), slog.String("module", moduleName)); err != nil {
		logger.WarnContext(ctx, "wazero: failed to replay guest log", "module", moduleName, "error", err)
	}
}
