package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/splittable/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvSecureSeed, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, rng.EntropyFast, cfg.EntropyMode())
	assert.Equal(t, 256, cfg.Check.Buckets)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvSecureSeed, "")

	path := writeConfig(t, `
entropy = "secure"

check {
  samples = 5000
  buckets = 16
  alpha   = 0.001
}

server {
  address    = "127.0.0.1:9000"
  batch_size = 64
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rng.EntropySecure, cfg.EntropyMode())
	assert.Equal(t, 5000, cfg.Check.Samples)
	assert.Equal(t, 16, cfg.Check.Buckets)
	assert.Equal(t, 0.001, cfg.Check.Alpha)
	assert.Equal(t, 4, cfg.Check.Splits, "unset fields fall back to defaults")
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, 64, cfg.Server.BatchSize)
	assert.Equal(t, 1_000_000, cfg.Server.MaxCount)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvSecureSeed, "true")

	cfg, err := Load(writeConfig(t, `entropy = "fast"`))
	require.NoError(t, err)
	assert.Equal(t, rng.EntropySecure, cfg.EntropyMode())

	t.Setenv(EnvSecureSeed, "not-a-bool")
	_, err = Load(writeConfig(t, `entropy = "fast"`))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv(EnvSecureSeed, "")

	tests := []struct {
		name string
		body string
	}{
		{"syntax error", `entropy = `},
		{"unknown attribute", `colour = "blue"`},
		{"unknown entropy", `entropy = "dice"`},
		{"one bucket", "check {\n  buckets = 1\n}"},
		{"too few samples", "check {\n  samples = 10\n  buckets = 8\n}"},
		{"alpha out of range", "check {\n  alpha = 2\n}"},
		{"negative splits", "check {\n  splits = -1\n}"},
		{"negative batch", "server {\n  batch_size = -5\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
