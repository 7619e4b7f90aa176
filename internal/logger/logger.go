// Package logger configures structured logging for the rankincohen command.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Setup returns a text slog.Logger writing to w at the given level
// (debug, info, warn or error, case-insensitive). An unrecognized level
// falls back to info and logs a warning through the new logger.
func Setup(level string, w io.Writer) *slog.Logger {
	lvl, ok := ParseLevel(level)

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(handler)

	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}
	return logger
}

// ParseLevel maps a level name to its slog.Level. ok is false for unknown
// names, in which case the level is slog.LevelInfo.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
