package host_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/eoepca/owl-sdk/domain/entities"
	"github.com/eoepca/owl-sdk/guest/guesttest"
	"github.com/eoepca/owl-sdk/host"
	"github.com/eoepca/owl-sdk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const guard = 0xAA

func openStub(t *testing.T, opts ...testutil.FakeOption) (*host.Loader, *testutil.FakeModule) {
	t.Helper()
	ctx := context.Background()
	rt := testutil.NewFakeRuntime().Serve(stubPath, opts...)
	l := host.Open(ctx, stubPath,
		host.WithRuntime(rt),
		host.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.True(t, l.IsValid(), l.LastError())
	t.Cleanup(func() { _ = l.Close(ctx) })
	return l, rt.Opened()[0]
}

func TestGetParserName_Capacities(t *testing.T) {
	l, _ := openStub(t)
	name := guesttest.StubName

	tests := []struct {
		name     string
		capacity int
		want     string
	}{
		{name: "zero", capacity: 0, want: ""},
		{name: "one", capacity: 1, want: ""},
		{name: "truncated", capacity: 5, want: name[:4]},
		{name: "exact", capacity: len(name) + 1, want: name},
		{name: "typical", capacity: 1024, want: name},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backing := bytes.Repeat([]byte{guard}, tt.capacity+16)
			buf := backing[:tt.capacity]

			require.NoError(t, l.GetParserName(context.Background(), buf))

			for i := tt.capacity; i < len(backing); i++ {
				require.Equal(t, byte(guard), backing[i], "byte %d past capacity was written", i)
			}
			if tt.capacity == 0 {
				return
			}
			nul := bytes.IndexByte(buf, 0)
			require.GreaterOrEqual(t, nul, 0, "buffer is not NUL-terminated")
			assert.Equal(t, tt.want, string(buf[:nul]))
		})
	}
}

func TestGetParserName_BoundedProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z0-9 ._-]{0,64}`).Draw(rt, "name")
		capacity := rapid.IntRange(0, 96).Draw(rt, "capacity")

		fake := testutil.NewFakeRuntime().Serve(stubPath,
			testutil.WithParser(guesttest.NewStubParser(guesttest.WithName(name))))
		l := host.Open(context.Background(), stubPath,
			host.WithRuntime(fake),
			host.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		defer l.Close(context.Background())
		if !l.IsValid() {
			rt.Fatalf("loader invalid: %s", l.LastError())
		}

		backing := bytes.Repeat([]byte{guard}, capacity+8)
		if err := l.GetParserName(context.Background(), backing[:capacity]); err != nil {
			rt.Fatalf("GetParserName: %v", err)
		}
		for i := capacity; i < len(backing); i++ {
			if backing[i] != guard {
				rt.Fatalf("wrote past capacity at %d", i)
			}
		}
		if capacity == 0 {
			return
		}
		nul := bytes.IndexByte(backing[:capacity], 0)
		if nul < 0 {
			rt.Fatalf("not NUL-terminated")
		}
		want := name
		if len(want) > capacity-1 {
			want = want[:capacity-1]
		}
		if got := string(backing[:nul]); got != want {
			rt.Fatalf("name = %q, want %q", got, want)
		}
		if blocks := fake.Opened()[0].LiveBlocks(); blocks != 0 {
			rt.Fatalf("%d transport blocks leaked", blocks)
		}
	})
}

// Every non-null parse result is released exactly once, whatever mix of
// successful and failing parses, moves and scoped reads the caller performs.
func TestReleaseCountMatchesNonNullResults(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		fake := testutil.NewFakeRuntime().Serve(stubPath)
		l := host.Open(ctx, stubPath,
			host.WithRuntime(fake),
			host.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		defer l.Close(ctx)
		mod := fake.Opened()[0]

		var live []*host.Handle
		nonNull := 0
		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				if h, err := l.ParseFromFile(ctx, "sample.xml"); err == nil {
					nonNull++
					live = append(live, h)
				}
			case 1:
				if h, err := l.ParseFromFile(ctx, "absent.xml"); err == nil {
					nonNull++
					live = append(live, h)
				}
			case 2:
				if err := l.WithFile(ctx, "sample.xml", func(*entities.OWSParameter) error { return nil }); err == nil {
					nonNull++
				}
			case 3:
				if len(live) > 0 {
					idx := rapid.IntRange(0, len(live)-1).Draw(rt, "move")
					old := live[idx]
					live[idx] = old.Move()
					_ = old.Release(ctx)
				}
			case 4:
				if len(live) > 0 {
					idx := rapid.IntRange(0, len(live)-1).Draw(rt, "release")
					if err := live[idx].Release(ctx); err != nil {
						rt.Fatalf("release: %v", err)
					}
					live = append(live[:idx], live[idx+1:]...)
				}
			}
		}
		for _, h := range live {
			if err := h.Release(ctx); err != nil {
				rt.Fatalf("release: %v", err)
			}
		}

		c := mod.Counters()
		if c.Parses != nonNull {
			rt.Fatalf("module produced %d trees, host saw %d", c.Parses, nonNull)
		}
		if c.Releases != nonNull {
			rt.Fatalf("releases = %d, non-null results = %d", c.Releases, nonNull)
		}
		if c.BadReleases != 0 {
			rt.Fatalf("%d rejected releases", c.BadReleases)
		}
		if mod.LiveTrees() != 0 || mod.LiveBlocks() != 0 || l.Outstanding() != 0 {
			rt.Fatalf("leak: trees=%d blocks=%d outstanding=%d", mod.LiveTrees(), mod.LiveBlocks(), l.Outstanding())
		}
	})
}
