package log

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// LogMessageWire is the JSON wire format for a log message from Guest to Host.
type LogMessageWire struct {
	Timestamp time.Time     `json:"timestamp"`
	Attrs     []LogAttrWire `json:"attrs,omitempty"`
	Level     string        `json:"level"`
	Message   string        `json:"message"`
	Source    string        `json:"source,omitempty"`
}

// LogAttrWire represents a single slog attribute for wire transfer.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`  // "string", "int64", "bool", "float64", "time", "error", "any"
	Value string `json:"value"` // String representation of the value
}

// Decode parses a wire message received from a module.
func Decode(payload []byte) (LogMessageWire, error) {
	var msg LogMessageWire
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, fmt.Errorf("decode log message: %w", err)
	}
	return msg, nil
}

// Replay emits the message through handler, prefixed with extra attributes.
func (m LogMessageWire) Replay(ctx context.Context, handler slog.Handler, extra ...slog.Attr) error {
	level := ParseLevel(m.Level)
	if !handler.Enabled(ctx, level) {
		return nil
	}
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	record := slog.NewRecord(ts, level, m.Message, 0)
	record.AddAttrs(extra...)
	for _, a := range m.Attrs {
		record.AddAttrs(a.attr())
	}
	if m.Source != "" {
		record.AddAttrs(slog.String(slog.SourceKey, m.Source))
	}
	return handler.Handle(ctx, record)
}

// ParseLevel maps slog level names, including offsets such as "INFO+2", back
// to levels. Unknown names map to INFO.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// attr rebuilds a typed slog attribute where the type survives the trip.
func (a LogAttrWire) attr() slog.Attr {
	switch a.Type {
	case "int64":
		if n, err := strconv.ParseInt(a.Value, 10, 64); err == nil {
			return slog.Int64(a.Key, n)
		}
	case "uint64":
		if n, err := strconv.ParseUint(a.Value, 10, 64); err == nil {
			return slog.Uint64(a.Key, n)
		}
	case "bool":
		if b, err := strconv.ParseBool(a.Value); err == nil {
			return slog.Bool(a.Key, b)
		}
	case "float64":
		if f, err := strconv.ParseFloat(a.Value, 64); err == nil {
			return slog.Float64(a.Key, f)
		}
	case "duration":
		if d, err := time.ParseDuration(a.Value); err == nil {
			return slog.Duration(a.Key, d)
		}
	case "time":
		if t, err := time.Parse(time.RFC3339Nano, a.Value); err == nil {
			return slog.Time(a.Key, t)
		}
	}
	return slog.String(a.Key, a.Value)
}

// toLogAttrWire converts a slog.Attr to LogAttrWire.
func toLogAttrWire(attr slog.Attr) LogAttrWire {
	wire := LogAttrWire{
		Key: attr.Key,
	}
	// Resolve the attribute value
	attr.Value = attr.Value.Resolve()

	switch attr.Value.Kind() {
	case slog.KindString:
		wire.Type = "string"
		wire.Value = attr.Value.String()
	case slog.KindInt64:
		wire.Type = "int64"
		wire.Value = strconv.FormatInt(attr.Value.Int64(), 10)
	case slog.KindUint64:
		wire.Type = "uint64"
		wire.Value = strconv.FormatUint(attr.Value.Uint64(), 10)
	case slog.KindBool:
		wire.Type = "bool"
		wire.Value = strconv.FormatBool(attr.Value.Bool())
	case slog.KindFloat64:
		wire.Type = "float64"
		wire.Value = fmt.Sprintf("%f", attr.Value.Float64())
	case slog.KindTime:
		wire.Type = "time"
		wire.Value = attr.Value.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		wire.Type = "duration"
		wire.Value = attr.Value.Duration().String()
	case slog.KindAny:
		if v := attr.Value.Any(); v != nil {
			if err, isErr := v.(error); isErr {
				wire.Type = "error"
				wire.Value = err.Error()
			} else if data, marshalErr := json.Marshal(v); marshalErr == nil {
				wire.Type = "json"
				wire.Value = string(data)
			} else {
				wire.Type = "any"
				wire.Value = fmt.Sprintf("%v", v)
			}
		} else {
			wire.Type = "any"
			wire.Value = "<nil>"
		}
	case slog.KindGroup:
		wire.Type = "group"
		wire.Value = fmt.Sprintf("%v", attr.Value.Any())
	default:
		wire.Type = "any"
		wire.Value = fmt.Sprintf("%v", attr.Value.Any())
	}
	return wire
}

func itoa(n int) string { return strconv.Itoa(n) }
