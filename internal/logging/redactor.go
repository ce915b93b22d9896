// Package logging provides slog utilities that keep API keys out of logs.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// RedactedValue is the placeholder for redacted sensitive data.
const RedactedValue = "[REDACTED]"

var sensitiveFields = []string{"key", "secret", "password", "token", "passphrase", "credential"}

// keyHost matches a key-prefixed provider host such as "abc123.rest.akismet.com".
var keyHost = regexp.MustCompile(`\b[0-9A-Za-z]{8,}\.rest\.`)

// RedactorHandler wraps an slog.Handler to redact API keys.
type RedactorHandler struct {
	handler slog.Handler
}

// NewRedactorHandler creates a new handler that redacts sensitive fields.
func NewRedactorHandler(handler slog.Handler) *RedactorHandler {
	return &RedactorHandler{handler: handler}
}

// Enabled implements slog.Handler.
func (h *RedactorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
//
//nolint:gocritic // Required by slog.Handler interface
func (h *RedactorHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(redactAttr(attr))
		return true
	})

	if err := h.handler.Handle(ctx, newRecord); err != nil {
		return fmt.Errorf("redactor handle failed: %w", err)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *RedactorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		redacted[i] = redactAttr(attr)
	}
	return &RedactorHandler{handler: h.handler.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (h *RedactorHandler) WithGroup(name string) slog.Handler {
	return &RedactorHandler{handler: h.handler.WithGroup(name)}
}

func redactAttr(attr slog.Attr) slog.Attr {
	if isSensitiveField(attr.Key) {
		return slog.String(attr.Key, RedactedValue)
	}

	switch attr.Value.Kind() {
	case slog.KindGroup:
		group := attr.Value.Group()
		redacted := make([]slog.Attr, len(group))
		for i, groupAttr := range group {
			redacted[i] = redactAttr(groupAttr)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindString:
		return slog.String(attr.Key, redactString(attr.Value.String()))
	case slog.KindAny:
		// errors carry dial targets such as "abc123.rest.akismet.com:443"
		if err, ok := attr.Value.Any().(error); ok {
			return slog.String(attr.Key, redactString(err.Error()))
		}
	}
	return attr
}

func isSensitiveField(name string) bool {
	lower := strings.ToLower(name)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}

func redactString(value string) string {
	return keyHost.ReplaceAllString(value, RedactedValue+".rest.")
}

// New creates a logger writing to w in the given format ("json" or "text")
// at level, with redaction applied.
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewRedactorHandler(handler))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
