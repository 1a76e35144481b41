package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLogAttrWire(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		wantType string
		wantVal  string
	}{
		{
			name:     "string",
			attr:     slog.String("key", "value"),
			wantType: "string",
			wantVal:  "value",
		},
		{
			name:     "int64",
			attr:     slog.Int64("key", 123),
			wantType: "int64",
			wantVal:  "123",
		},
		{
			name:     "bool",
			attr:     slog.Bool("key", true),
			wantType: "bool",
			wantVal:  "true",
		},
		{
			name:     "float64",
			attr:     slog.Float64("key", 1.23),
			wantType: "float64",
			wantVal:  "1.230000",
		},
		{
			name:     "time",
			attr:     slog.Time("key", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			wantType: "time",
			wantVal:  "2024-01-01T00:00:00Z",
		},
		{
			name:     "duration",
			attr:     slog.Duration("key", 1*time.Hour),
			wantType: "duration",
			wantVal:  "1h0m0s",
		},
		{
			name:     "error",
			attr:     slog.Any("key", errors.New("test error")),
			wantType: "error",
			wantVal:  "test error",
		},
		{
			name:     "nil",
			attr:     slog.Any("key", nil),
			wantType: "any",
			wantVal:  "<nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := toLogAttrWire(tt.attr)
			assert.Equal(t, tt.attr.Key, wire.Key)
			assert.Equal(t, tt.wantType, wire.Type)
			assert.Equal(t, tt.wantVal, wire.Value)
		})
	}
}

func TestToLogAttrWire_JSON(t *testing.T) {
	// Test structured object that should be serialized as JSON
	type MyStruct struct {
		Field string `json:"field"`
	}
	obj := MyStruct{Field: "data"}
	attr := slog.Any("key", obj)

	wire := toLogAttrWire(attr)
	assert.Equal(t, "key", wire.Key)
	assert.Equal(t, "json", wire.Type)

	var decoded MyStruct
	err := json.Unmarshal([]byte(wire.Value), &decoded)
	require.NoError(t, err)
	assert.Equal(t, obj, decoded)
}

func TestToLogAttrWire_LogValuer(t *testing.T) {
	// Test types that implement LogValuer
	attr := slog.Any("key", logValuer{val: "resolved"})
	wire := toLogAttrWire(attr)

	assert.Equal(t, "key", wire.Key)
	assert.Equal(t, "string", wire.Type)
	assert.Equal(t, "resolved", wire.Value)
}

type logValuer struct {
	val string
}

func (l logValuer) LogValue() slog.Value {
	return slog.StringValue(l.val)
}

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler()
	assert.NotNil(t, h)
	// Check default level via Enabled
	assert.True(t, h.Enabled(context.TODO(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.TODO(), slog.LevelDebug))
}

func TestNewHandler_Options(t *testing.T) {
	h := NewHandler(
		WithLevel(slog.LevelDebug),
		WithSource(true),
	)
	assert.NotNil(t, h)
	assert.True(t, h.Enabled(context.TODO(), slog.LevelDebug))
	assert.True(t, h.opts.addSource)
}

func TestHandler_ToWireIncludesGroupedAttrs(t *testing.T) {
	h := NewHandler().WithAttrs([]slog.Attr{slog.String("parser", "stub")}).WithGroup("req")
	h = h.WithAttrs([]slog.Attr{slog.Int("id", 7)})

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "parsing", 0)
	record.AddAttrs(slog.String("path", "a.xml"))

	wire := h.(*WasmLogHandler).toWire(record)
	assert.Equal(t, "WARN", wire.Level)
	assert.Equal(t, "parsing", wire.Message)
	require.Len(t, wire.Attrs, 3)
	assert.Equal(t, "parser", wire.Attrs[0].Key)
	assert.Equal(t, "req.id", wire.Attrs[1].Key)
	assert.Equal(t, "req.path", wire.Attrs[2].Key)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo+2, ParseLevel("INFO+2"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestDecodeAndReplay(t *testing.T) {
	payload := []byte(`{"timestamp":"2024-01-01T00:00:00Z","level":"ERROR","message":"boom",` +
		`"attrs":[{"key":"n","type":"int64","value":"5"},{"key":"ok","type":"bool","value":"false"}]}`)

	msg, err := Decode(payload)
	require.NoError(t, err)

	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)
	require.NoError(t, msg.Replay(context.Background(), handler, slog.String("module", "stub")))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "ERROR", out["level"])
	assert.Equal(t, "boom", out["msg"])
	assert.Equal(t, "stub", out["module"])
	assert.EqualValues(t, 5, out["n"])
	assert.Equal(t, false, out["ok"])
}

func TestReplay_FiltersDisabledLevels(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	require.NoError(t, LogMessageWire{Level: "DEBUG", Message: "quiet"}.Replay(context.Background(), handler))
	assert.Empty(t, buf.String())
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte("{"))
	assert.Error(t, err)
}
