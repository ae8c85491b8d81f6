package log_test

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "github.com/soar/gamepadlab/internal/log"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, applog.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, applog.ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, applog.ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, applog.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, applog.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, applog.ParseLevel("bogus"))
}

func TestSetupWithoutFile(t *testing.T) {
	logger, closer, err := applog.Setup("debug", "")
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Nil(t, closer)
	logger.Debug("smoke")
}

func TestSetupWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := applog.Setup("info", path)
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()
	logger.Info("written to file")
}

func TestSetupBadFilePath(t *testing.T) {
	_, _, err := applog.Setup("info", filepath.Join(t.TempDir(), "missing", "app.log"))
	assert.Error(t, err)
}
