package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLogger_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, LevelDebug).With(F("run_id", "abc"))

	log.Error("renamer", "rename failed", errors.New("boom"), F("file", "Heat.mkv"))

	line := buf.String()
	assert.Contains(t, line, "[ERROR] [renamer] rename failed")
	assert.Contains(t, line, "| error=boom")
	assert.Contains(t, line, "| run_id=abc")
	assert.Contains(t, line, "| file=Heat.mkv")
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, LevelWarn)

	log.Debug("tmdb", "request")
	log.Info("tmdb", "response")
	assert.Empty(t, buf.String())

	log.Warn("tmdb", "slow")
	assert.Contains(t, buf.String(), "[WARN] [tmdb] slow")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jellyrename.log")

	log, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)

	log.Info("scanner", "scan started", F("root", "/movies"))
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] [scanner] scan started | root=/movies")
	assert.Equal(t, path, log.FilePath())
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("any", "ignored", errors.New("x"))
	assert.NoError(t, log.Close())
}
