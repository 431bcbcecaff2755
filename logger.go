package textgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with textgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithK adds a k (contexts per entity) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithPostings adds a posting count field to the logger.
func (l *Logger) WithPostings(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("postings", n),
	}
}

// WithLists adds a list count field to the logger.
func (l *Logger) WithLists(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("lists", n),
	}
}

// LogFilter logs a range filter operation.
func (l *Logger) LogFilter(ctx context.Context, in, out int) {
	l.DebugContext(ctx, "range filter completed",
		"in", in,
		"out", out,
	)
}

// LogIntersect logs an intersection operation.
func (l *Logger) LogIntersect(ctx context.Context, op string, lists, out int) {
	l.DebugContext(ctx, "intersection completed",
		"op", op,
		"lists", lists,
		"out", out,
	)
}

// LogAggregate logs a score aggregation operation.
func (l *Logger) LogAggregate(ctx context.Context, op string, in, k, rows int) {
	l.DebugContext(ctx, "aggregation completed",
		"op", op,
		"in", in,
		"k", k,
		"rows", rows,
	)
}

// LogCrossProduct logs a cross-product append operation.
func (l *Logger) LogCrossProduct(ctx context.Context, window, rows int) {
	l.DebugContext(ctx, "cross product appended",
		"window", window,
		"rows", rows,
	)
}

// LogParallelFilter logs a parallel prefilter stage.
func (l *Logger) LogParallelFilter(ctx context.Context, blocks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "parallel range filter failed",
			"blocks", blocks,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "parallel range filter completed",
			"blocks", blocks,
		)
	}
}
