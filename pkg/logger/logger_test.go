package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobasera/pkg/config"
)

func TestNewWritesAccessFile(t *testing.T) {
	var cfg config.Config
	cfg.App.Env = "production"
	cfg.Log.Level = "info"
	cfg.Log.Encoding = "json"
	cfg.Log.AccessFile = filepath.Join(t.TempDir(), "access.log")

	logger, err := New(cfg)
	require.NoError(t, err)

	logger.Info("request completed")
	_ = logger.Sync()

	raw, err := os.ReadFile(cfg.Log.AccessFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "request completed")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	var cfg config.Config
	cfg.Log.Level = "loud"

	_, err := New(cfg)
	assert.Error(t, err)
}
