// Package logger holds the process-wide structured logger used by the codec
// collaborators (nbtio, the CLI). It discards everything until Init is
// called, so library users see no output unless they opt in.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
)

// L is the global logger. It discards all output by default.
var L = discard()

const (
	logPrefix     = "nbtctl-"
	logSuffix     = ".log"
	retentionDays = 14
)

// Options configures Init.
type Options struct {
	Enabled bool       // if false, all logging is discarded
	Level   slog.Level // minimum level
	JSON    bool       // JSON lines instead of logfmt text
	Output  io.Writer  // destination; takes precedence over LogDir
	LogDir  string     // write a dated file here when Output is nil ("~" is expanded)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init replaces L according to opts. With neither Output nor LogDir set,
// logs go to stderr. The returned closer releases a log file, if one was
// opened.
func Init(opts Options) (io.Closer, error) {
	if !opts.Enabled {
		L = discard()
		return nopCloser{}, nil
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	switch {
	case opts.Output != nil:
		out = opts.Output
	case opts.LogDir != "":
		f, err := openLogFile(opts.LogDir)
		if err != nil {
			return nil, err
		}
		out, closer = f, f
	}

	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(out, hopts))
	} else {
		L = slog.New(slog.NewTextHandler(out, hopts))
	}
	return closer, nil
}

func openLogFile(dir string) (*os.File, error) {
	dir, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	pruneLogs(dir, time.Now())

	name := filepath.Join(dir, logPrefix+time.Now().Format(time.DateOnly)+logSuffix)
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// pruneLogs removes dated log files older than retentionDays. Best effort.
func pruneLogs(dir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		day, err := time.Parse(time.DateOnly, strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Debug logs at debug level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
