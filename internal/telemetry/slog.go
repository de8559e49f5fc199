package telemetry

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a configured level name to a slog.Level, case-insensitive.
// Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// NewLogger builds a logger writing to w.
//
// format: "json" selects the JSON handler, anything else the text handler.
func NewLogger(w io.Writer, format, level string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "familyvault")
}

// SetupLogger installs a stdout logger as the slog default and returns it.
func SetupLogger(format, level string) *slog.Logger {
	logger := NewLogger(os.Stdout, format, level)
	slog.SetDefault(logger)
	logger.Info("logger initialised", "format", format, "level", ParseLevel(level).String())
	return logger
}
