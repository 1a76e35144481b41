//go:build !wasip1

package log

import (
	"context"
	"log/slog"
	"os"
)

// fallback receives records when the handler runs outside a module, e.g. in
// tests driving a parser in-process.
var fallback slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})

// Handle replays the record into the fallback handler.
func (h *WasmLogHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.toWire(record).Replay(ctx, fallback)
}
