// Package logger wraps log/slog with a per-component handle so every line
// carries the subsystem it came from.
package logger

import (
	"log/slog"
	"os"
)

type Logger struct {
	inner *slog.Logger
}

// Init installs the process-wide handler: JSON in prod, text otherwise.
func Init(env string) {
	options := &slog.HandlerOptions{Level: slog.LevelDebug}

	var handler slog.Handler
	if env == "prod" {
		options.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, options)
	} else {
		handler = slog.NewTextHandler(os.Stdout, options)
	}
	slog.SetDefault(slog.New(handler))
}

func New(component string) *Logger {
	return &Logger{inner: slog.Default().With("component", component)}
}

func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}
