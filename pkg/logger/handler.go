package logger

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Line prefixes. Every trace line starts with one of these.
const (
	infoPrefix  = "- "
	warnPrefix  = "- [Warn] "
	errorPrefix = "- [Error] "
)

// LineHandler is a slog.Handler that renders one human-readable line per
// record: a severity prefix, the optional logger scope, the message and then
// the attributes as key=value pairs. Each line is a single Write call.
type LineHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Leveler
	scope string
	attrs []slog.Attr
}

// NewLineHandler creates a LineHandler writing to w.
func NewLineHandler(w io.Writer, level slog.Leveler) *LineHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &LineHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
	}
}

// Enabled reports whether records at level are written.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes the record.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(prefixFor(r.Level))
	if h.scope != "" {
		b.WriteString(h.scope)
		b.WriteString(": ")
	}
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		appendAttr(&b, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs returns a handler that appends attrs to every line.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.attrs = append(c.attrs, attrs...)
	return c
}

// WithGroup returns a handler whose lines are scoped with name.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	if c.scope == "" {
		c.scope = name
	} else {
		c.scope = c.scope + "." + name
	}
	return c
}

func (h *LineHandler) clone() *LineHandler {
	attrs := make([]slog.Attr, len(h.attrs))
	copy(attrs, h.attrs)
	return &LineHandler{
		mu:    h.mu,
		w:     h.w,
		level: h.level,
		scope: h.scope,
		attrs: attrs,
	}
}

func prefixFor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return errorPrefix
	case level >= slog.LevelWarn:
		return warnPrefix
	default:
		return infoPrefix
	}
}

func appendAttr(b *strings.Builder, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	b.WriteByte(' ')
	b.WriteString(a.Key)
	b.WriteByte('=')
	val := a.Value.Resolve().String()
	if val == "" || strings.ContainsAny(val, " \t\"=") {
		val = strconv.Quote(val)
	}
	b.WriteString(val)
}
