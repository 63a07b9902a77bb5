package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanout_WritesTextAndJSON(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "ntm.log")

	logger, closer, err := newFanout(&stderr, slog.LevelInfo, path)
	require.NoError(t, err)

	logger.Info("trace finished", "machine", "m", "error", errors.New("boom"))
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	assert.Contains(t, stderr.String(), "machine=m")
	assert.Contains(t, stderr.String(), "err=boom")
	assert.NotContains(t, stderr.String(), "hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "trace finished", record["msg"])
	assert.Equal(t, "boom", record["err"])
}

func TestFanout_NoFile(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := newFanout(&stderr, slog.LevelWarn, "")
	require.NoError(t, err)
	defer closer.Close()

	logger.Warn("careful")
	assert.Contains(t, stderr.String(), "careful")
}

func TestFanout_BadPath(t *testing.T) {
	_, _, err := newFanout(&bytes.Buffer{}, slog.LevelInfo, filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelWarn, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"error", slog.LevelError, false},
		{"chatty", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
