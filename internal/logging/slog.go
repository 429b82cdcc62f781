package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts a *slog.Logger to the Logger interface. It is the only
// implementation the client ships; NewTerminalLogger builds one over a tint
// handler, and tests hand it a buffer or discard handler instead.
type SlogLogger struct {
	sl *slog.Logger
}

// NewSlogLogger wraps an already configured slog logger.
func NewSlogLogger(sl *slog.Logger) *SlogLogger {
	return &SlogLogger{sl: sl}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.sl.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.sl.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.sl.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.sl.ErrorContext(ctx, msg, args...)
}

// With returns a child logger that stamps the given key–value pairs on
// every record it emits.
func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{sl: s.sl.With(args...)}
}
