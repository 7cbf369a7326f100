// Package logging adapts the teacher's Google Cloud structured-logging
// handler (cloud.go) into an injectable *slog.Logger constructor: the core
// never calls slog.SetDefault or reaches for a package-level logger, it
// takes one in (spec.md §6 ambient logging requirement).
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"
)

// GoogleCloudHandler formats log records as single-line JSON objects shaped
// for Google Cloud's structured logging ingestion (severity/message/time
// plus arbitrary attributes), matching the teacher's handler exactly.
type GoogleCloudHandler struct {
	writer     io.Writer
	level      slog.Level
	extraAttrs map[string]interface{}
}

// NewGoogleCloudHandler creates a handler writing to w at the given minimum
// level.
func NewGoogleCloudHandler(w io.Writer, level slog.Level) *GoogleCloudHandler {
	return &GoogleCloudHandler{writer: w, level: level}
}

// New builds a ready-to-use *slog.Logger over a GoogleCloudHandler, the
// constructor cmd/server and tests call instead of slog.Default().
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewGoogleCloudHandler(w, level))
}

func (h *GoogleCloudHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *GoogleCloudHandler) Handle(_ context.Context, r slog.Record) error {
	severity := convertToSeverity(r.Level)

	attrs := map[string]interface{}{}
	r.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})
	for k, v := range h.extraAttrs {
		attrs[k] = v
	}

	logEntry := map[string]interface{}{
		"severity": severity,
		"message":  r.Message,
		"time":     time.Now().Format(time.RFC3339Nano),
	}
	for k, v := range attrs {
		logEntry[k] = v
	}

	return json.NewEncoder(h.writer).Encode(logEntry)
}

func (h *GoogleCloudHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := *h
	newHandler.extraAttrs = make(map[string]interface{}, len(h.extraAttrs)+len(attrs))
	for k, v := range h.extraAttrs {
		newHandler.extraAttrs[k] = v
	}
	for _, attr := range attrs {
		newHandler.extraAttrs[attr.Key] = attr.Value.Any()
	}
	return &newHandler
}

func (h *GoogleCloudHandler) WithGroup(name string) slog.Handler {
	return h
}

func convertToSeverity(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
