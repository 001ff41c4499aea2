// Package logger adapts log/slog to the printf-style logger the calculators and the
// scenario generator accept.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Logger is a leveled printf logger backed by slog.
type Logger struct {
	slog  *slog.Logger
	level *slog.LevelVar
}

// New builds a logger writing to w at the given level.
func New(w io.Writer, level string, format Format) (*Logger, error) {
	if w == nil {
		w = os.Stdout
	}
	lv := new(slog.LevelVar)
	l := &Logger{level: lv}
	if err := l.SetLevelString(level); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	switch format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	case FormatText, "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
	l.slog = slog.New(h)
	return l, nil
}

// Default is an info-level text logger on stderr.
func Default() *Logger {
	l, _ := New(os.Stderr, "info", FormatText)
	return l
}

// Named returns a child logger tagged with a component name. The level is shared.
func (l *Logger) Named(name string) *Logger {
	return &Logger{slog: l.slog.With(slog.String("component", name)), level: l.level}
}

// Slog exposes the underlying structured logger.
func (l *Logger) Slog() *slog.Logger { return l.slog }

// SetLevelString parses and sets the logging level.
// Accepts: debug, info, warn/warning, error (case-insensitive).
func (l *Logger) SetLevelString(level string) error {
	lv, err := ParseLevel(level)
	if err != nil {
		return err
	}
	l.level.Set(lv)
	return nil
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.level.Level() <= level
}

func (l *Logger) Debugf(format string, args ...any) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.slog.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.slog.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.slog.Error(fmt.Sprintf(format, args...))
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
}
