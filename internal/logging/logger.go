// Package logging provides structured logging infrastructure for scenechapters.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level aliases for slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger wraps slog.Logger with scenechapters-specific configuration.
type Logger struct {
	*slog.Logger
}

// Config contains logger configuration options.
type Config struct {
	Level   slog.Level
	Output  io.Writer
	Enabled bool
	// JSON selects slog's JSON handler instead of the text handler.
	JSON bool
}

// DefaultConfig returns a default logger configuration. Only warnings and
// errors are shown so the reporter owns normal terminal output.
func DefaultConfig() Config {
	return Config{
		Level:   LevelWarn,
		Output:  os.Stderr,
		Enabled: true,
	}
}

// New creates a new logger with the given configuration.
func New(cfg Config) *Logger {
	if !cfg.Enabled {
		return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithPrefix returns a new logger with the given prefix as a group.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{Logger: l.WithGroup(prefix)}
}

var globalLogger atomic.Pointer[Logger]

// Global returns the global logger instance.
func Global() *Logger {
	if l := globalLogger.Load(); l != nil {
		return l
	}
	l := New(DefaultConfig())
	if globalLogger.CompareAndSwap(nil, l) {
		return l
	}
	return globalLogger.Load()
}

// SetGlobal sets the global logger instance.
func SetGlobal(logger *Logger) {
	globalLogger.Store(logger)
}

// Setup installs the global logger for a CLI run: debug output when verbose,
// warnings only otherwise.
func Setup(verbose, jsonOutput bool, w io.Writer) *Logger {
	level := LevelWarn
	if verbose {
		level = LevelDebug
	}
	l := New(Config{Level: level, Output: w, Enabled: true, JSON: jsonOutput})
	SetGlobal(l)
	return l
}

// Debug logs a debug message to the global logger.
func Debug(msg string, args ...any) {
	Global().Debug(msg, args...)
}

// Info logs an informational message to the global logger.
func Info(msg string, args ...any) {
	Global().Info(msg, args...)
}

// Warn logs a warning message to the global logger.
func Warn(msg string, args ...any) {
	Global().Warn(msg, args...)
}

// Error logs an error message to the global logger.
func Error(msg string, args ...any) {
	Global().Error(msg, args...)
}
