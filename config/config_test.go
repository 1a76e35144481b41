package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
	"github.com/eoepca/owl-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultCandidates, cfg.Candidates)
	assert.Equal(t, ".", cfg.MountDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(wireformat.MinABIVersion), cfg.MinVersion)
	assert.Equal(t, int64(wireformat.ABIVersion), cfg.MaxVersion)
	require.NoError(t, Validate(&cfg))

	cfg.Candidates[0] = "changed.wasm"
	assert.Equal(t, "libeoepcaows.wasm", DefaultCandidates[0])
}

func TestOptions(t *testing.T) {
	cfg := Default(
		WithCandidates("a.wasm"),
		WithSearchDirs("/opt/owl"),
		WithMountDir("/srv"),
		WithLogLevel("DEBUG"),
		WithVersionRange(2, 4),
		WithMemoryLimitPages(256),
	)

	assert.Equal(t, []string{"a.wasm"}, cfg.Candidates)
	assert.Equal(t, []string{"/opt/owl"}, cfg.SearchDirs)
	assert.Equal(t, "/srv", cfg.MountDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(2), cfg.MinVersion)
	assert.Equal(t, int64(4), cfg.MaxVersion)
	assert.Equal(t, uint32(256), cfg.MemoryLimitPages)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		field string
	}{
		{"no candidates", []Option{WithCandidates()}, "Candidates"},
		{"empty candidate", []Option{WithCandidates("")}, "Candidates[0]"},
		{"bad level", []Option{WithLogLevel("loud")}, "LogLevel"},
		{"inverted range", []Option{WithVersionRange(3, 1)}, "MaxVersion"},
		{"negative min", []Option{WithVersionRange(-1, 1)}, "MinVersion"},
		{"too much memory", []Option{WithMemoryLimitPages(70000)}, "MemoryLimitPages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(tt.opts...)
			err := Validate(&cfg)
			require.Error(t, err)

			var cfgErr *domainerrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, cfgErr.Field, tt.field)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("candidates: [custom.wasm]\nlog_level: warn\n"), 0o600))

	cfg, err := Load(path, WithMountDir("/data"))
	require.NoError(t, err)
	assert.Equal(t, []string{"custom.wasm"}, cfg.Candidates)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/data", cfg.MountDir)
	assert.Equal(t, int64(wireformat.ABIVersion), cfg.MaxVersion)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCandidates, cfg.Candidates)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("max_version: -5\nmin_version: 0\n"), 0o600))
	_, err = Load(bad)
	var cfgErr *domainerrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Field, "MaxVersion")
}

func TestPaths(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "opt", "x.wasm")
	cfg := Default(WithCandidates("a.wasm", abs), WithSearchDirs("d1", "d2"))

	assert.Equal(t, []string{
		filepath.Join("d1", "a.wasm"),
		filepath.Join("d2", "a.wasm"),
		abs,
	}, Paths(&cfg))

	plain := Default(WithCandidates("a.wasm"))
	assert.Equal(t, []string{"a.wasm"}, Paths(&plain))
}

func TestLevel(t *testing.T) {
	cfg := Default(WithLogLevel("error"))
	assert.Equal(t, slog.LevelError, Level(&cfg))

	cfg.LogLevel = ""
	assert.Equal(t, slog.LevelInfo, Level(&cfg))
}
