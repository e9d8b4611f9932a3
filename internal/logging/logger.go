// Package logging configures structured logging for paisa.
//
// Logs go to a JSON file by default so the dashboard's terminal stays clean.
// Verbose mode switches to a text handler on stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger wraps slog.Logger with a component name.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	// File receives JSON records. Empty means no file output.
	File string
	// Verbose writes text records to Stderr instead of the file.
	Verbose bool
	Stderr  io.Writer
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelInfo,
		Component: ComponentApp,
		File:      DefaultFile(),
		Stderr:    os.Stderr,
	}
}

// DefaultFile returns $XDG_STATE_HOME/paisa/paisa.log.
func DefaultFile() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "paisa", "paisa.log")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "paisa", "paisa.log")
}

// New builds a logger from cfg. The returned close func releases the log file
// and is safe to call when no file was opened.
func New(cfg Config) (*Logger, func() error, error) {
	noop := func() error { return nil }
	opts := &slog.HandlerOptions{Level: cfg.Level}
	component := cfg.Component
	if component == "" {
		component = ComponentApp
	}

	var handler slog.Handler
	closer := noop
	switch {
	case cfg.Verbose:
		w := cfg.Stderr
		if w == nil {
			w = os.Stderr
		}
		handler = slog.NewTextHandler(w, opts)
	case cfg.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, noop, fmt.Errorf("logging: creating log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, noop, fmt.Errorf("logging: opening log file: %w", err)
		}
		handler = slog.NewJSONHandler(f, opts)
		closer = f.Close
	default:
		handler = slog.DiscardHandler
	}

	return &Logger{
		Logger:    slog.New(handler).With(FieldComponent, component),
		component: component,
	}, closer, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler), component: ComponentApp}
}

// With returns a new logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), component: l.component}
}

// WithComponent returns a logger tagged with a different component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(FieldComponent, component),
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// ParseLevel maps a config string to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}
