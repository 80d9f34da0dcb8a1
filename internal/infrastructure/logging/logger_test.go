package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ficsit-planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/ficsit-planner-go/internal/infrastructure/logging"
)

func TestNewHandler_JSONRespectsLevel(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(logging.NewHandler(&buf, config.LoggingConfig{Level: "warn", Format: "json"}))

	// Act
	logger.Info("hidden")
	logger.Warn("catalog reloaded", "recipes", 3)

	// Assert
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog reloaded", entry["msg"])
	assert.Equal(t, float64(3), entry["recipes"])
}

func TestNewHandler_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewHandler(&buf, config.LoggingConfig{Level: "debug", Format: "text"}))

	logger.Debug("plan built", "nodes", 6)

	assert.Contains(t, buf.String(), "msg=\"plan built\" nodes=6")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "planner.log")
	logger, err := logging.New(config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)

	logger.Slog().Info("written")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"msg\":\"written\"")
}
