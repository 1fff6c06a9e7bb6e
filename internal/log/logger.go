// Package log configures structured logging and carries request correlation
// IDs through contexts.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/wooldanji/console/internal/config"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for logging.
const (
	CorrelationIDKey ContextKey = "correlation_id"
	RequestIDKey     ContextKey = "request_id"
	StaffIDKey       ContextKey = "staff_id"
)

// Logger wraps slog.Logger and adds context-derived attributes.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger from configuration. Output goes to stderr so
// stdout stays free for the stdio MCP transport.
func NewLogger(cfg config.AppConfig) *Logger {
	return NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a Logger that writes to w.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = newTerminalHandler(w, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// With returns a new Logger with additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// WithContext returns a slog.Logger carrying the correlation ID, request ID
// and staff ID found in ctx.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	return l.logger.With(ContextAttrs(ctx)...)
}

// ContextAttrs returns the logging attributes stored in ctx as key/value
// pairs.
func ContextAttrs(ctx context.Context) []any {
	attrs := make([]any, 0, 6)
	if id := CorrelationID(ctx); id != "" {
		attrs = append(attrs, string(CorrelationIDKey), id)
	}
	if id := RequestID(ctx); id != "" {
		attrs = append(attrs, string(RequestIDKey), id)
	}
	if id, ok := ctx.Value(StaffIDKey).(int64); ok && id != 0 {
		attrs = append(attrs, string(StaffIDKey), id)
	}
	return attrs
}

// WithCorrelationID adds a correlation ID to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithStaffID records the authenticated staff member for log lines.
func WithStaffID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, StaffIDKey, id)
}

// CorrelationID extracts the correlation ID from context.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(CorrelationIDKey).(string)
	return id
}

// RequestID extracts the request ID from context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

var defaultLogger = NewLoggerWithWriter(os.Stderr, config.LogFormatPretty, config.DefaultLogLevel)

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// Configure builds a Logger from cfg and installs it as both the package
// default and the slog default.
func Configure(cfg config.AppConfig) *Logger {
	l := NewLogger(cfg)
	defaultLogger = l
	slog.SetDefault(l.logger)
	return l
}
