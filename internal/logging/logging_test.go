package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, done, err := New(Options{NoColor: true, Writer: &buf})
	require.NoError(t, err)
	defer done()

	log.Debug("hidden")
	log.Info("extracting", zap.String("region", "v3v4"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "extracting")
	assert.Contains(t, out, `"region": "v3v4"`)
	assert.NotContains(t, out, "\x1b[", "no colour codes")
}

func TestNewColor(t *testing.T) {
	var buf bytes.Buffer
	log, done, err := New(Options{Writer: &buf})
	require.NoError(t, err)
	defer done()

	log.Warn("careful")
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestLevels(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, Options{}.Level())
	assert.Equal(t, zapcore.WarnLevel, Options{Quiet: true}.Level())
	assert.Equal(t, zapcore.DebugLevel, Options{Verbose: true}.Level())

	var buf bytes.Buffer
	log, done, err := New(Options{Quiet: true, NoColor: true, Writer: &buf})
	require.NoError(t, err)
	defer done()
	log.Info("chatty")
	log.Warn("important")
	assert.NotContains(t, buf.String(), "chatty")
	assert.Contains(t, buf.String(), "important")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.True(t, Options{}.FromEnv().NoColor)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hyperex.log")
	var buf bytes.Buffer
	log, done, err := New(Options{Quiet: true, NoColor: true, File: path, Writer: &buf})
	require.NoError(t, err)

	log.Debug("record scanned", zap.String("id", "seq1"))
	require.NoError(t, log.Sync())
	done()

	assert.Empty(t, buf.String(), "console honours quiet")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "record scanned", entry["msg"])
	assert.Equal(t, "seq1", entry["id"])
}
