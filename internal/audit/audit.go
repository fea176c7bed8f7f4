// Package audit provides the incident audit sink. Writes are best-effort:
// a failing or panicking sink never propagates into the caller's path.
package audit

import (
	"context"
	"log/slog"
)

// Entry describes one failed operation for the audit trail.
type Entry struct {
	Operation string
	MessageID string
	User      string
	Err       error
}

// Logger is the audit port. Implementations may fail; callers go through
// Record which discards any failure.
type Logger interface {
	Log(ctx context.Context, entry Entry)
}

// Record writes an entry to the sink, swallowing panics. Safe on a nil sink.
func Record(ctx context.Context, sink Logger, entry Entry) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("audit sink panicked", slog.Any("recover", r))
		}
	}()
	sink.Log(ctx, entry)
}

// SlogLogger writes audit entries as structured log records.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger builds a sink over logger, or slog.Default when nil.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger}
}

func (l *SlogLogger) Log(ctx context.Context, entry Entry) {
	l.logger.ErrorContext(ctx, "operation failed",
		slog.String("operation", entry.Operation),
		slog.String("messageId", entry.MessageID),
		slog.String("user", entry.User),
		slog.Any("error", entry.Err))
}
