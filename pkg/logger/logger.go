package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gnmodel/pkg/config"
)

// New creates a new slog.Logger based on the provided configuration.
// It respects the logging level, format and destination from the config.
// Invalid values default to Info level, JSON format and stdout.
func New(cfg *config.LogConfig) *slog.Logger {
	// Parse log level
	level := ParseLevel(cfg.Level)

	var writer io.Writer
	switch strings.ToLower(cfg.Destination) {
	case "stderr":
		writer = os.Stderr
	default:
		writer = os.Stdout
	}

	// Create handler based on format
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive).
// Invalid levels default to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info", "": // Default to info if empty
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Invalid level, default to info
		return slog.LevelInfo
	}
}
