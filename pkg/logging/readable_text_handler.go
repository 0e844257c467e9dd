// Package logging contains a slog handler that writes compact, human readable lines.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// A slog handler which writes one line per record in the form
// "date|time|level|message|key=value, ...".
// Attributes added with With are rendered once when the child handler is created.
type ReadableTextHandler struct {
	options ReadableTextHandlerOptions
	mu      *sync.Mutex
	out     io.Writer
	// Rendered "key=value" pairs of the With calls, in call order.
	rendered []string
	// Key prefix of the currently open groups, e.g. "outer.inner.".
	keyPrefix string
}

type ReadableTextHandlerOptions struct {
	Level slog.Leveler
	// Omits the date and time columns. Mostly useful for tests.
	NoTimestamp bool
}

func NewReadableTextHandler(out io.Writer, options *ReadableTextHandlerOptions) *ReadableTextHandler {
	handler := &ReadableTextHandler{out: out, mu: &sync.Mutex{}}
	if options != nil {
		handler.options = *options
	}
	if handler.options.Level == nil {
		handler.options.Level = slog.LevelInfo
	}
	return handler
}

// Creates a logger writing to the given writer with either info or debug level.
func NewLogger(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewReadableTextHandler(out, &ReadableTextHandlerOptions{Level: level}))
}

func (h *ReadableTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.options.Level.Level()
}

func (h *ReadableTextHandler) Handle(ctx context.Context, record slog.Record) error {
	columns := make([]string, 0, 5)
	if !h.options.NoTimestamp {
		columns = append(columns, record.Time.Format("2006.01.02"), record.Time.Format("15:04:05.000"))
	}
	columns = append(columns, fmt.Sprintf("%-5s", record.Level.String()), record.Message)

	pairs := slices.Clone(h.rendered)
	record.Attrs(func(a slog.Attr) bool {
		pairs = appendAttr(pairs, h.keyPrefix, a)
		return true
	})
	if len(pairs) > 0 {
		columns = append(columns, strings.Join(pairs, ", "))
	}
	line := strings.Join(columns, "|") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}

func (h *ReadableTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	child := *h
	child.rendered = slices.Clip(slices.Clone(h.rendered))
	for _, a := range attrs {
		child.rendered = appendAttr(child.rendered, h.keyPrefix, a)
	}
	return &child
}

func (h *ReadableTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	child := *h
	child.keyPrefix = h.keyPrefix + name + "."
	return &child
}

// Appends the attribute as "key=value" to pairs. Groups are flattened into dotted keys.
func appendAttr(pairs []string, keyPrefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return pairs
	}
	if a.Value.Kind() != slog.KindGroup {
		return append(pairs, keyPrefix+a.Key+"="+a.Value.String())
	}
	if a.Key != "" {
		keyPrefix += a.Key + "."
	}
	for _, member := range a.Value.Group() {
		pairs = appendAttr(pairs, keyPrefix, member)
	}
	return pairs
}
