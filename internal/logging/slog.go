package logging

import (
	"context"
	"io"
	"log/slog"
)

// SlogLogger implements Logger on log/slog. Loggers built by New share a
// LevelVar with their children, so SetLevel affects the whole tree.
type SlogLogger struct {
	l     *slog.Logger
	level *slog.LevelVar
}

// NewSlogLogger wraps an existing slog logger. Its level is owned by the
// handler and SetLevel is a no-op.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// newSlogLogger builds a JSON or text logger writing to w at lvl.
func newSlogLogger(w io.Writer, json bool, lvl slog.Level) *SlogLogger {
	level := new(slog.LevelVar)
	level.Set(lvl)

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{l: slog.New(h), level: level}
}

// SetLevel changes the minimum level at runtime.
func (s *SlogLogger) SetLevel(lvl slog.Level) {
	if s.level != nil {
		s.level.Set(lvl)
	}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...), level: s.level}
}
