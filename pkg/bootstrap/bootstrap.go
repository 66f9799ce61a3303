// Package bootstrap wires up process-wide infrastructure.
package bootstrap

import (
	"log/slog"
	"os"

	"github.com/vblinov/invtrack/pkg/logger"
)

// NewLogger creates a new slog.Logger instance with the specified log level.
// Records are emitted as JSON and carry the request ID when one is present
// in the context.
func NewLogger(level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, loggerOpts))
	return slog.New(logHandler)
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
