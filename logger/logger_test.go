package logger

import (
	"os"
	"path/filepath"
	"testing"

	"arbscanner/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestNewInvalidLevel
func TestNewInvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	require.Error(t, err)
}

// go test -v --run TestNewWithFile
func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scan.log")

	log, err := New(config.LogConfig{
		Level:      "debug",
		Format:     "json",
		OutputFile: path,
	})
	require.NoError(t, err)

	log.Info("scan started")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scan started")
}
