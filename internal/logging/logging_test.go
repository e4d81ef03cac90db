package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestSetupWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "partsearch.log")
	logger, cleanup, err := Setup(Config{Level: "info", FilePath: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("category_search_failed", slog.String("category", "cpu"))
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug is below the level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "category_search_failed", rec["msg"])
	assert.Equal(t, "cpu", rec["category"])
}

func TestSetupWithoutFile(t *testing.T) {
	logger, cleanup, err := Setup(Config{Level: "debug"})
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
