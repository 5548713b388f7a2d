package logging

import (
	"context"
	"io"
	"log/slog"
)

// SlogLogger writes through log/slog. savelinks only uses it before the
// config is loaded; after that the zap logger takes over.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewBootstrap is a text logger on w at info level, for startup failures.
func NewBootstrap(w io.Writer) *SlogLogger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return NewSlogLogger(slog.New(h).With("logger", "savelinks"))
}

func (b *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	b.l.Log(ctx, slog.LevelDebug, msg, args...)
}

func (b *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	b.l.Log(ctx, slog.LevelInfo, msg, args...)
}

func (b *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	b.l.Log(ctx, slog.LevelWarn, msg, args...)
}

func (b *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	b.l.Log(ctx, slog.LevelError, msg, args...)
}

func (b *SlogLogger) With(args ...any) Logger {
	return NewSlogLogger(b.l.With(args...))
}
