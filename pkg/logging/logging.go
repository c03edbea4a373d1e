// Package logging builds the slog loggers used by testrig.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
)

// New returns a logger writing to output at the given level ("debug",
// "info", "warn", "error") in the given format ("json" or "text").
func New(output io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a level name to a slog level; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Dump logs v serialized as JSON at debug level. Serialization problems are
// reported at warn level and never returned: dumping is diagnostic only.
func Dump(ctx context.Context, logger *slog.Logger, msg string, v any) {
	if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.WarnContext(ctx, "debug dump failed", slog.String("dump", msg), slog.Any("error", err))
		return
	}
	logger.DebugContext(ctx, msg, slog.String("value", string(data)))
}
