package logger

import (
	"context"
	"log/slog"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger implements gocron.Logger on top of slog. gocron reports
// routine job lifecycle at info level, which is demoted to debug here so it
// does not drown the task's own logs.
type gocronLogger struct {
	log *slog.Logger
}

// NewGocronLogger returns a gocron.Logger writing to log.
//
//nolint:ireturn // gocron.WithLogger takes the interface
func NewGocronLogger(log *slog.Logger) gocron.Logger {
	if log == nil {
		log = slog.Default()
	}
	return &gocronLogger{log: log.With("source", "gocron")}
}

func (l *gocronLogger) Debug(msg string, args ...any) {
	l.log.Log(context.Background(), slog.LevelDebug, msg, args...)
}

func (l *gocronLogger) Info(msg string, args ...any) {
	l.log.Log(context.Background(), slog.LevelDebug, msg, args...)
}

func (l *gocronLogger) Warn(msg string, args ...any) {
	l.log.Log(context.Background(), slog.LevelWarn, msg, args...)
}

func (l *gocronLogger) Error(msg string, args ...any) {
	l.log.Log(context.Background(), slog.LevelError, msg, args...)
}
