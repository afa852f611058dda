package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/messier-skychart/internal/config"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT. Debug
// mode forces the debug level.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	return newLogger(os.Stdout, level, cfg.LogFormat)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", "skychart")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
