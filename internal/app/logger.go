package app

import (
	"io"
	"log/slog"
)

// newLogger creates the console logger. It does not set the global logger,
// allowing for isolated logger instances. The console stays coarse; the
// detailed per-definition diagnostics go to the batch log file instead.
func newLogger(levelStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(outW, &slog.HandlerOptions{Level: level}))
}
