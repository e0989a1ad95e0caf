// Package logger provides a logging utility based on log/slog
//
// DEBUG logging can be enabled by setting the WORKSHEET_DEBUG environment variable:
//
//	export WORKSHEET_DEBUG=1
//
// or with `debug: true` in the worksheet config. Worksheet narration never goes
// through this package; it is written to the caller's output stream.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger is the global logger instance
	Logger *slog.Logger

	level = new(slog.LevelVar)
)

func init() {
	if envEnabled(os.Getenv("WORKSHEET_DEBUG")) {
		level.Set(slog.LevelDebug)
	}
	SetOutput(os.Stderr)
}

func envEnabled(v string) bool {
	return v != "" && strings.ToLower(v) != "false" && v != "0"
}

// SetOutput redirects the global logger. The MCP server uses stdout for the
// protocol, so logs must never go there.
func SetOutput(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// SetDebug toggles debug level at runtime.
func SetDebug(on bool) {
	if on {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelInfo)
}

// DebugEnabled reports whether debug records are emitted.
func DebugEnabled() bool {
	return level.Level() <= slog.LevelDebug
}

// Debug logs a debug message if debug logging is enabled
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
