package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/gamepadlab/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gamepadlab-prefs.json", cfg.PrefsFile)
	assert.False(t, cfg.Simulate)
	assert.True(t, cfg.Tray)
}

func TestLoadFlagsOverride(t *testing.T) {
	cfg, err := config.Load([]string{"--addr", ":9999", "--simulate", "--log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.True(t, cfg.Simulate)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamepadlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7000\"\nsimulate: true\n"), 0o644))

	cfg, err := config.Load([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.True(t, cfg.Simulate)
}

func TestLoadMissingExplicitConfigFails(t *testing.T) {
	_, err := config.Load([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoadBadFlag(t *testing.T) {
	_, err := config.Load([]string{"--no-such-flag"})
	assert.Error(t, err)
}
