// Package logger is a thin package-level wrapper around log/slog.
//
// The bootstrap process lives for seconds before replacing itself, so
// the only requirements are structured diagnostics on stdout with a
// text/json switch. Supervision and alerting belong to the platform.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

var (
	mu       sync.RWMutex
	output   io.Writer = os.Stdout
	useColor           = isTerminal(os.Stdout.Fd())
	level              = new(slog.LevelVar)
	slogger            = newLogger(os.Stdout, "text", isTerminal(os.Stdout.Fd()))
)

func newLogger(w io.Writer, format string, color bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(NewColorTextHandler(w, opts, color))
}

// Init configures the package logger. Safe to call more than once; the
// last call wins.
func Init(cfg Config) error {
	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}

	format := strings.ToLower(cfg.Format)
	switch format {
	case "", "text":
		format = "text"
	case "json":
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	mu.Lock()
	defer mu.Unlock()
	level.Set(lvl)
	slogger = newLogger(output, format, useColor)
	return nil
}

// InitWithWriter redirects output to w. Primarily for tests.
func InitWithWriter(w io.Writer, lvl, format string, color bool) {
	mu.Lock()
	output = w
	useColor = color
	mu.Unlock()
	_ = Init(Config{Level: lvl, Format: format})
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func getLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// Debug logs at debug level with structured fields.
func Debug(msg string, args ...any) { getLogger().Debug(msg, args...) }

// Info logs at info level with structured fields.
func Info(msg string, args ...any) { getLogger().Info(msg, args...) }

// Warn logs at warn level with structured fields.
func Warn(msg string, args ...any) { getLogger().Warn(msg, args...) }

// Error logs at error level with structured fields.
func Error(msg string, args ...any) { getLogger().Error(msg, args...) }

// With returns a slog.Logger with pre-bound attributes.
func With(args ...any) *slog.Logger { return getLogger().With(args...) }
