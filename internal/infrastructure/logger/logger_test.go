package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "every log line is valid JSON: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "agent.log")

	log, err := New(Options{Path: path})
	require.NoError(t, err)

	log.Info("session starting", "host", "demo", "attempt_id", "42")
	log.Error("authentication failed", "error", "boom")
	require.NoError(t, log.Close())

	entries := readLines(t, path)
	require.Len(t, entries, 2)

	assert.Equal(t, "session starting", entries[0]["msg"])
	assert.Equal(t, "demo", entries[0]["host"])
	assert.Equal(t, "42", entries[0]["attempt_id"])
	assert.NotEmpty(t, entries[0]["timestamp"])

	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "boom", entries[1]["error"])
}

func TestNew_AppendsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.log")

	first, err := New(Options{Path: path})
	require.NoError(t, err)
	first.Info("first run")
	require.NoError(t, first.Close())

	second, err := New(Options{Path: path})
	require.NoError(t, err)
	second.Info("second run")
	require.NoError(t, second.Close())

	entries := readLines(t, path)
	require.Len(t, entries, 2, "log is append-only")
}

func TestWith_AttachesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.log")

	log, err := New(Options{Path: path})
	require.NoError(t, err)

	child := log.With("host", "demo", "email", "jo***@example.com")
	child.Info("invoking login hook")
	log.Info("plain line")
	require.NoError(t, log.Close())

	entries := readLines(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, "demo", entries[0]["host"])
	assert.Equal(t, "jo***@example.com", entries[0]["email"])
	_, hasHost := entries[1]["host"]
	assert.False(t, hasHost, "parent logger unaffected by With")
}

func TestNew_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.log")

	log, err := New(Options{Path: path})
	require.NoError(t, err)
	log.Debug("hidden at info level")
	require.NoError(t, log.Close())
	assert.Empty(t, readLines(t, path))

	debugPath := filepath.Join(t.TempDir(), "agent.log")
	debugLog, err := New(Options{Path: debugPath, Debug: true})
	require.NoError(t, err)
	debugLog.Debug("visible at debug level")
	require.NoError(t, debugLog.Close())
	require.Len(t, readLines(t, debugPath), 1)
}

func TestNewNop_Discards(t *testing.T) {
	log := NewNop()
	log.Info("goes nowhere")
	assert.NoError(t, log.Close())
}
