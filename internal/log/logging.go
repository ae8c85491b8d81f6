// Package log builds the process-wide slog.Logger. Without a log file,
// non-error records go to stdout and errors to stderr; with one, everything
// is mirrored to the file as well.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitHandler routes records at or above errLevel to errH, the rest to outH.
type splitHandler struct {
	outH, errH slog.Handler
	errLevel   slog.Level
}

func (h splitHandler) pick(level slog.Level) slog.Handler {
	if level >= h.errLevel {
		return h.errH
	}
	return h.outH
}

func (h splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.pick(level).Enabled(ctx, level)
}

func (h splitHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.pick(r.Level).Handle(ctx, r)
}

func (h splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return splitHandler{outH: h.outH.WithAttrs(attrs), errH: h.errH.WithAttrs(attrs), errLevel: h.errLevel}
}

func (h splitHandler) WithGroup(name string) slog.Handler {
	return splitHandler{outH: h.outH.WithGroup(name), errH: h.errH.WithGroup(name), errLevel: h.errLevel}
}

// teeHandler duplicates records to two handlers.
type teeHandler struct{ a, b slog.Handler }

func (h teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.a.Enabled(ctx, level) || h.b.Enabled(ctx, level)
}

func (h teeHandler) Handle(ctx context.Context, r slog.Record) error {
	_ = h.a.Handle(ctx, r)
	return h.b.Handle(ctx, r)
}

func (h teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{a: h.a.WithAttrs(attrs), b: h.b.WithAttrs(attrs)}
}

func (h teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{a: h.a.WithGroup(name), b: h.b.WithGroup(name)}
}

// Setup builds the logger. The returned closer is nil unless a log file was
// opened.
func Setup(levelStr, file string) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(levelStr)
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = splitHandler{
		outH:     slog.NewTextHandler(os.Stdout, opts),
		errH:     slog.NewTextHandler(os.Stderr, opts),
		errLevel: slog.LevelError,
	}

	var closer io.Closer
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closer = f
		h = teeHandler{a: h, b: slog.NewTextHandler(f, opts)}
	}
	return slog.New(h), closer, nil
}
