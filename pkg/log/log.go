package log

import (
	"context"
	"fmt"
	"log/slog"
)

// Logger is an alias for slog.Logger
type Logger = slog.Logger

var defaultLogger *Logger

var (
	String = slog.String
	Int    = slog.Int
	Int64  = slog.Int64
	Bool   = slog.Bool
)

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func FilePath(path string) slog.Attr {
	return slog.Attr{Key: "file_path", Value: slog.StringValue(path)}
}

// RecordID identifies a feed record: a CVE ID or a CPE name.
func RecordID(id string) slog.Attr {
	return slog.Attr{Key: "record_id", Value: slog.StringValue(id)}
}

// PrefixHandler wraps a slog.Handler and prepends "[prefix] " to every message
type PrefixHandler struct {
	prefix  string
	handler slog.Handler
}

func init() {
	defaultLogger = slog.New(&PrefixHandler{
		handler: slog.Default().Handler(),
	})
}

// WithPrefix returns a logger whose messages are tagged with the prefix,
// e.g. log.WithPrefix("nvd").Info("Decoding feed") logs "[nvd] Decoding feed".
func WithPrefix(prefix string) *Logger {
	return slog.New(&PrefixHandler{
		prefix:  prefix,
		handler: defaultLogger.Handler(),
	})
}

// SetLogger replaces the package logger. Loggers already returned by WithPrefix keep the old handler.
func SetLogger(l *Logger) {
	defaultLogger = l
}

func (h *PrefixHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.prefix != "" {
		r.Message = fmt.Sprintf("[%s] %s", h.prefix, r.Message)
	}
	return h.handler.Handle(ctx, r)
}

func (h *PrefixHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrefixHandler{
		prefix:  h.prefix,
		handler: h.handler.WithAttrs(attrs),
	}
}

func (h *PrefixHandler) WithGroup(name string) slog.Handler {
	return &PrefixHandler{
		prefix:  h.prefix,
		handler: h.handler.WithGroup(name),
	}
}

func (h *PrefixHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}
