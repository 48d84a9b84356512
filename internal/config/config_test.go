package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ignitionstack/wasmboard/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, api.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Runtime.CallTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, DefaultHome(), cfg.Session.Dir)
	assert.False(t, cfg.UI.Plain)
}

func TestLoadConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://staging:3000/api/v1
runtime:
  call_timeout: 2s
log:
  level: info
`), 0o644))

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "http://staging:3000/api/v1", cfg.API.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.Runtime.CallTimeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "monokai", cfg.UI.Theme)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("WASMBOARD_LOG_LEVEL", "debug")
		t.Setenv("WASMBOARD_RUNTIME_CALL_TIMEOUT", "250ms")
		t.Setenv("WASMBOARD_UI_PLAIN", "true")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 250*time.Millisecond, cfg.Runtime.CallTimeout)
		assert.True(t, cfg.UI.Plain)
		assert.Equal(t, "http://staging:3000/api/v1", cfg.API.BaseURL)
	})
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runtime:\n  call_timout: 2s\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config")
}

func TestLoadConfigIgnoresUnrelatedEnv(t *testing.T) {
	t.Setenv("WASMBOARD_HOME", "/srv/wasmboard")
	t.Setenv("WASMBOARD_LOG_LEVEL", "error")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, DefaultHome(), cfg.Session.Dir)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "y"), ExpandHome("~/x/y"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
	assert.Equal(t, "rel/~/", ExpandHome("rel/~/"))
}
