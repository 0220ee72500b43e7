package pagecluster

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger is a slog.Logger with helpers that log session events under
// stable snake_case field names.
type Logger struct {
	*slog.Logger
}

// LogFormat selects the slog handler used by NewWriterLogger.
type LogFormat int

const (
	// LogFormatText writes logfmt-style key=value lines.
	LogFormatText LogFormat = iota
	// LogFormatJSON writes one JSON object per line.
	LogFormatJSON
)

// NewLogger wraps handler. A nil handler logs text at info level to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		return NewWriterLogger(os.Stderr, LogFormatText, slog.LevelInfo)
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewWriterLogger logs records at or above level to w.
func NewWriterLogger(w io.Writer, format LogFormat, level slog.Level) *Logger {
	ho := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if format == LogFormatJSON {
		h = slog.NewJSONHandler(w, ho)
	} else {
		h = slog.NewTextHandler(w, ho)
	}
	return &Logger{Logger: slog.New(h)}
}

// NewJSONLogger logs JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewWriterLogger(os.Stderr, LogFormatJSON, level)
}

// NewTextLogger logs text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewWriterLogger(os.Stderr, LogFormatText, level)
}

// NoopLogger discards everything. It is the default.
func NoopLogger() *Logger {
	return NewWriterLogger(io.Discard, LogFormatText, slog.Level(1000))
}

// WithSession returns a logger that tags every record with session_id.
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{Logger: l.With("session_id", id)}
}

// WithDimension returns a logger that tags every record with dimension.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.With("dimension", dim)}
}

// LogFlush logs a batch flush.
func (l *Logger) LogFlush(ctx context.Context, rows, outliers, dimension int, duration time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "flush failed", "rows", rows, "dimension", dimension, "error", err)
		return
	}
	l.DebugContext(ctx, "flush completed",
		"rows", rows,
		"outliers", outliers,
		"dimension", dimension,
		"duration", duration,
	)
}

// LogInit logs center initialization.
func (l *Logger) LogInit(ctx context.Context, clusters, dimension int, seeded bool) {
	method := "kmeans++"
	if seeded {
		method = "seed"
	}
	l.InfoContext(ctx, "clusters initialized",
		"clusters", clusters,
		"dimension", dimension,
		"method", method,
	)
}

// LogCheckpoint logs a checkpoint attempt. Skipped checkpoints are not logged.
func (l *Logger) LogCheckpoint(ctx context.Context, duration time.Duration, err error) {
	if err != nil {
		l.WarnContext(ctx, "checkpoint failed", "duration", duration, "error", err)
		return
	}
	l.DebugContext(ctx, "checkpoint saved", "duration", duration)
}
