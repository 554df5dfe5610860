package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuebridge/internal/infra/config"
)

func TestNewJSONLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	log, closer, err := New(config.LoggerConfig{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)

	log.Debug("invocation finished", "exit_code", 0)
	require.NoError(t, closer())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())

	var record map[string]any
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
	assert.Equal(t, "invocation finished", record["msg"])
	assert.Equal(t, float64(0), record["exit_code"])
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")

	log, closer, err := New(config.LoggerConfig{Level: "error", Format: "text", Output: path})
	require.NoError(t, err)

	log.Info("suppressed")
	log.Error("kept")
	require.NoError(t, closer())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "kept")
}

func TestStderrDefault(t *testing.T) {
	log, closer, err := New(config.LoggerConfig{})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.NoError(t, closer())
}
