package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"note-slides/internal/config"
)

var (
	current atomic.Pointer[slog.Logger]
	once    sync.Once
)

// Init builds the process logger from cfg. The first call wins; later calls
// return the same instance regardless of cfg.
func Init(cfg config.Config) (*slog.Logger, error) {
	once.Do(func() {
		current.Store(New(cfg, os.Stdout).With("service", "note-slides"))
	})

	return current.Load(), nil
}

// New builds a logger writing to w with the level and format from cfg.
// Unknown formats fall back to JSON, unknown levels to info.
func New(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a LOG_LEVEL value onto a slog level.
func ParseLevel(s string) slog.Level {
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

// L returns the process logger, or slog.Default() before Init.
func L() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return slog.Default()
}
