package parser

import (
	"testing"

	"github.com/eoepca/owl-sdk/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYamlConfigParser_Parse(t *testing.T) {
	base := entities.HostConfig{
		Candidates: []string{"libeoepcaows.wasm"},
		LogLevel:   "info",
		MinVersion: 1,
		MaxVersion: 3,
	}

	data := []byte(`
candidates:
  - a.wasm
  - b.wasm
mount_dir: /srv/docs
max_version: 5
`)

	cfg, err := NewYamlConfigParser().Parse(data, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wasm", "b.wasm"}, cfg.Candidates)
	assert.Equal(t, "/srv/docs", cfg.MountDir)
	assert.Equal(t, int64(5), cfg.MaxVersion)
	assert.Equal(t, int64(1), cfg.MinVersion)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"libeoepcaows.wasm"}, base.Candidates)
}

func TestYamlConfigParser_Empty(t *testing.T) {
	base := entities.HostConfig{LogLevel: "warn"}
	cfg, err := NewYamlConfigParser().Parse(nil, base)
	require.NoError(t, err)
	assert.Equal(t, base, *cfg)
}

func TestYamlConfigParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "plugins: [x]\n"},
		{"wrong type", "max_version: lots\n"},
		{"malformed", "candidates: [a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYamlConfigParser().Parse([]byte(tt.data), entities.HostConfig{})
			assert.Error(t, err)
		})
	}
}
