package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	start := time.Date(2024, 3, 7, 9, 5, 1, 0, time.UTC)
	assert.Equal(t, "wordgrid-07-03-2024_09-05-01.log", FileName(start))
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(&buf, Options{Level: slog.LevelInfo})
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	logger.Debug("hidden")
	logger.Info("scan finished", slog.Int("matches", 2))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scan finished", entry["msg"])
	assert.EqualValues(t, 2, entry["matches"])
}

func TestNewWritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	start := time.Date(2024, 3, 7, 9, 5, 1, 0, time.UTC)

	var buf bytes.Buffer
	logger, closeFn, err := New(&buf, Options{Level: slog.LevelInfo, Dir: dir, Start: start})
	require.NoError(t, err)

	logger.Info("lexicon loaded")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(dir, FileName(start)))
	require.NoError(t, err)
	assert.Contains(t, string(data), "lexicon loaded")
	assert.Contains(t, buf.String(), "lexicon loaded")
}

func TestNewCLILevels(t *testing.T) {
	var buf bytes.Buffer
	NewCLI(&buf, false).Info("quiet")
	assert.Empty(t, buf.String())

	NewCLI(&buf, true).Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}
