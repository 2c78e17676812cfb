package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/gnames/gnmodel/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything fn wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestNew_TextFormat(t *testing.T) {
	cfg := &config.LogConfig{
		Level:  "info",
		Format: "text",
	}

	output := captureStdout(t, func() {
		logger := New(cfg)
		logger.Info("test message", "key", "value")
	})

	// Verify text format characteristics
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "level=INFO")
}

func TestNew_JSONFormat(t *testing.T) {
	cfg := &config.LogConfig{
		Level:  "info",
		Format: "json",
	}

	output := captureStdout(t, func() {
		logger := New(cfg)
		logger.Info("test message", "key", "value")
	})

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(output), &logEntry)
	require.NoError(t, err, "Output should be valid JSON")

	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Contains(t, logEntry, "time") // Should have timestamp
}

func TestNew_LogLevelFiltering(t *testing.T) {
	tests := []struct {
		name          string
		configLevel   string
		logFunc       func(*slog.Logger)
		shouldContain string
		shouldLog     bool
	}{
		{
			name:          "info level shows info messages",
			configLevel:   "info",
			logFunc:       func(l *slog.Logger) { l.Info("info message") },
			shouldContain: "info message",
			shouldLog:     true,
		},
		{
			name:          "info level hides debug messages",
			configLevel:   "info",
			logFunc:       func(l *slog.Logger) { l.Debug("debug message") },
			shouldContain: "debug message",
			shouldLog:     false,
		},
		{
			name:          "debug level shows debug messages",
			configLevel:   "debug",
			logFunc:       func(l *slog.Logger) { l.Debug("debug message") },
			shouldContain: "debug message",
			shouldLog:     true,
		},
		{
			name:          "warn level hides info messages",
			configLevel:   "warn",
			logFunc:       func(l *slog.Logger) { l.Info("info message") },
			shouldContain: "info message",
			shouldLog:     false,
		},
		{
			name:          "error level only shows errors",
			configLevel:   "error",
			logFunc:       func(l *slog.Logger) { l.Warn("warn message") },
			shouldContain: "warn message",
			shouldLog:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.LogConfig{
				Level:  tt.configLevel,
				Format: "text",
			}

			output := captureStdout(t, func() {
				logger := New(cfg)
				tt.logFunc(logger)
			})

			if tt.shouldLog {
				assert.Contains(t, output, tt.shouldContain)
			} else {
				assert.NotContains(t, output, tt.shouldContain)
			}
		})
	}
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	cfg := &config.LogConfig{
		Level:  "invalid",
		Format: "text",
	}

	output := captureStdout(t, func() {
		logger := New(cfg)

		// Debug should be hidden at default Info level
		logger.Debug("debug message")
		// Info should be shown
		logger.Info("info message")
	})

	assert.NotContains(t, output, "debug message",
		"Debug should be hidden at default Info level")
	assert.Contains(t, output, "info message",
		"Info should be shown at default Info level")
}

func TestNew_InvalidFormatDefaultsToJSON(t *testing.T) {
	cfg := &config.LogConfig{
		Level:  "info",
		Format: "invalid",
	}

	output := captureStdout(t, func() {
		logger := New(cfg)
		logger.Info("test message")
	})

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(output), &logEntry)
	require.NoError(t, err, "Output should fall back to JSON format")
	assert.Equal(t, "test message", logEntry["msg"])
}

func TestNew_StderrDestination(t *testing.T) {
	cfg := &config.LogConfig{
		Level:       "info",
		Format:      "text",
		Destination: "stderr",
	}

	// Nothing should reach stdout
	output := captureStdout(t, func() {
		old := os.Stderr
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		require.NoError(t, err)
		os.Stderr = devNull

		logger := New(cfg)
		logger.Info("test message")

		os.Stderr = old
		devNull.Close()
	})

	assert.NotContains(t, output, "test message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},        // Empty defaults to Info
		{"invalid", slog.LevelInfo}, // Invalid defaults to Info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNew_CaseInsensitiveFormat(t *testing.T) {
	formats := []string{"JSON", "Json", "json", "TEXT", "Text", "text"}

	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			cfg := &config.LogConfig{
				Level:  "info",
				Format: format,
			}

			// Should not panic
			logger := New(cfg)
			assert.NotNil(t, logger)
		})
	}
}
