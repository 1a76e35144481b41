// Package log provides structured logging (slog) for parser modules. Inside a
// module, records are serialized and handed to the host's log_message
// function; the host replays them into its own slog logger.
package log

import (
	"context"
	"log/slog"
)

// WasmLogHandler implements slog.Handler to route logs through a host function.
type WasmLogHandler struct {
	opts  handlerConfig
	attrs []slog.Attr
	group string
}

// HandlerOption configures the WasmLogHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level will be filtered on the guest side.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a new WasmLogHandler with the given options.
func NewHandler(opts ...HandlerOption) *WasmLogHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WasmLogHandler{opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *WasmLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// WithAttrs returns a new WasmLogHandler that includes the given attributes.
func (h *WasmLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := *h
	newHandler.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &newHandler
}

// WithGroup returns a new WasmLogHandler whose later attributes are prefixed
// with name. Groups are flattened into dotted keys.
func (h *WasmLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newHandler := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	newHandler.group = name
	return &newHandler
}

func (h *WasmLogHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
	}
	return out
}

// toWire builds the wire message for record, including accumulated attrs.
func (h *WasmLogHandler) toWire(record slog.Record) LogMessageWire {
	logMsg := LogMessageWire{
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time,
	}
	for _, attr := range h.attrs {
		logMsg.Attrs = append(logMsg.Attrs, toLogAttrWire(attr))
	}
	record.Attrs(func(attr slog.Attr) bool {
		for _, q := range h.qualify([]slog.Attr{attr}) {
			logMsg.Attrs = append(logMsg.Attrs, toLogAttrWire(q))
		}
		return true
	})
	if h.opts.addSource && record.PC != 0 {
		if src := record.Source(); src != nil {
			logMsg.Source = src.File + ":" + itoa(src.Line)
		}
	}
	return logMsg
}
