// Package logger holds the process-wide slog logger used by the pools.
//
// Logging is off by default. Setting MINIPTR_LOG_ALLOC to a non-empty value
// sends debug output to stderr; Init switches to a dated JSON log file.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvAllocLog enables stderr debug logging when set.
const EnvAllocLog = "MINIPTR_LOG_ALLOC"

const (
	logPrefix     = "miniptr-"
	logSuffix     = ".log"
	retentionDays = 30
)

// L is the global logger instance.
var L = discard()

// debugOn caches whether L accepts debug records so hot paths can skip
// building attributes.
var debugOn bool

func init() {
	if os.Getenv(EnvAllocLog) != "" {
		setLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Directory for log files. Default: ~/.miniptr/logs
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	Stderr  bool       // Log text to stderr instead of a file
}

// Init configures logging. If opts.Enabled is false, all log output is
// discarded.
func Init(opts Options) error {
	if !opts.Enabled {
		setLogger(discard())
		return nil
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}

	if opts.Stderr {
		setLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		logDir = filepath.Join(home, ".miniptr", "logs")
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	cleanOldLogs(logDir, time.Now())

	filename := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	setLogger(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})))
	return nil
}

// SetOutput routes logging to w at the given level. Used by tests and the CLI.
func SetOutput(w io.Writer, level slog.Level) {
	setLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// DebugEnabled reports whether debug records are emitted.
func DebugEnabled() bool { return debugOn }

func setLogger(l *slog.Logger) {
	L = l
	debugOn = l.Enabled(context.Background(), slog.LevelDebug)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// miniptr-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }
