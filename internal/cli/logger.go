package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with cheuc-specific helpers so that commands
// log with consistent field names.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithCommand adds the command name to every record.
func (l *Logger) WithCommand(name string) *Logger {
	return &Logger{Logger: l.Logger.With("command", name)}
}

// LogConversion logs a finished conversion.
func (l *Logger) LogConversion(ctx context.Context, value float64, from, to string, result float64, err error) {
	if err != nil {
		l.WarnContext(ctx, "conversion failed",
			"value", value,
			"from", from,
			"to", to,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "conversion completed",
		"value", value,
		"from", from,
		"to", to,
		"result", result,
	)
}

// LogSuite logs a finished suite.
func (l *Logger) LogSuite(ctx context.Context, name string, passed, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "suite completed with failures",
			"suite", name,
			"passed", passed,
			"failed", failed,
		)
		return
	}
	l.InfoContext(ctx, "suite passed",
		"suite", name,
		"cases", passed,
	)
}

// LogHistory logs a history write.
func (l *Logger) LogHistory(ctx context.Context, path, id string, seq int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "history write failed",
			"db", path,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "history recorded",
		"db", path,
		"id", id,
		"seq", seq,
	)
}
