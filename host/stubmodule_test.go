package host_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/eoepca/owl-sdk/application/codec"
	"github.com/eoepca/owl-sdk/domain/entities"
	"github.com/eoepca/owl-sdk/guest/guesttest"
	"github.com/eoepca/owl-sdk/host"
	"github.com/eoepca/owl-sdk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildStubModule compiles examples/stubparser for wasip1 into a temp dir.
func buildStubModule(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("builds a wasm module")
	}
	gobin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not on PATH")
	}

	out := filepath.Join(t.TempDir(), "libeoepcaows.wasm")
	cmd := exec.Command(gobin, "build", "-buildmode=c-shared", "-o", out, "./examples/stubparser")
	cmd.Dir = ".."
	cmd.Env = append(os.Environ(), "GOOS=wasip1", "GOARCH=wasm")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "building stub module: %s", output)
	return out
}

func TestStubModule_EndToEnd(t *testing.T) {
	path := buildStubModule(t)
	ctx := context.Background()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l := host.Open(ctx, path, host.WithLogger(logger))
	require.True(t, l.IsValid(), "open: %s", l.LastError())
	defer func() { assert.NoError(t, l.Close(ctx)) }()

	assert.Equal(t, guesttest.StubVersion, l.Version())
	name, err := l.ParserName(ctx)
	require.NoError(t, err)
	assert.Equal(t, guesttest.StubName, name)

	t.Run("name truncation", func(t *testing.T) {
		for _, capacity := range []int{1, 4, 11} {
			buf := bytes.Repeat([]byte{0xff}, capacity)
			require.NoError(t, l.GetParserName(ctx, buf))
			n := min(capacity-1, len(guesttest.StubName))
			assert.Equal(t, guesttest.StubName[:n], string(buf[:n]))
			assert.Zero(t, buf[n])
		}
	})

	t.Run("parse and release cycles", func(t *testing.T) {
		for range 50 {
			err := l.WithFile(ctx, "sample.xml", func(p *entities.OWSParameter) error {
				testutil.AssertSameDescription(t, guesttest.SampleDescription(), p)
				return nil
			})
			require.NoError(t, err)
		}
		assert.Zero(t, l.Outstanding())
	})

	t.Run("parse from memory", func(t *testing.T) {
		doc, err := codec.Encode(guesttest.SampleDescription())
		require.NoError(t, err)

		h, err := l.ParseFromMemory(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, "proc1", h.Parameter().GetIdentifier())
		require.NoError(t, h.Release(ctx))
	})

	t.Run("guest logs reach the host", func(t *testing.T) {
		h, err := l.ParseFromFile(ctx, "does-not-exist.xml")
		assert.Nil(t, h)
		require.Error(t, err)
		assert.Contains(t, logs.String(), "parseFromFile failed")
		assert.True(t, l.IsValid())
	})
}
