package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInit_DisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	c, err := Init(Options{Enabled: false, Output: &buf})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	Info("hidden")
	require.Empty(t, buf.String())
}

func TestInit_JSONOutput(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	var buf bytes.Buffer
	_, err := Init(Options{Enabled: true, JSON: true, Level: slog.LevelDebug, Output: &buf})
	require.NoError(t, err)

	Debug("decoded", "path", "level.dat", "bytes", 42)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "decoded", rec["msg"])
	require.Equal(t, "level.dat", rec["path"])
	require.InDelta(t, 42, rec["bytes"], 0)
}

func TestInit_LevelFilters(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	var buf bytes.Buffer
	_, err := Init(Options{Enabled: true, Level: slog.LevelWarn, Output: &buf})
	require.NoError(t, err)

	Info("quiet")
	Warn("loud")
	require.NotContains(t, buf.String(), "quiet")
	require.Contains(t, buf.String(), "msg=loud")
}

func TestInit_LogDir(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	dir := t.TempDir()
	old := filepath.Join(dir, logPrefix+"2001-01-01"+logSuffix)
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))
	keep := filepath.Join(dir, "unrelated.log")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))

	c, err := Init(Options{Enabled: true, LogDir: dir})
	require.NoError(t, err)
	Error("boom")
	require.NoError(t, c.Close())

	_, err = os.Stat(old)
	require.ErrorIs(t, err, os.ErrNotExist, "expired log is pruned")
	_, err = os.Stat(keep)
	require.NoError(t, err)

	today := filepath.Join(dir, logPrefix+time.Now().Format(time.DateOnly)+logSuffix)
	data, err := os.ReadFile(today)
	require.NoError(t, err)
	require.Contains(t, string(data), "boom")
}
