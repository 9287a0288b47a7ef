package log

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// GuestHandler implements slog.Handler to route logs through a host function.
type GuestHandler struct {
	opts   handlerConfig
	prefix string
	attrs  []LogAttrWire
}

// HandlerOption configures the GuestHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	sink      func([]byte)
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
		sink:  sendToHost,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level will be filtered on the guest side.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file:line) as the "source" attribute.
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithSink replaces the function receiving encoded LogMessageWire records.
func WithSink(sink func([]byte)) HandlerOption {
	return func(c *handlerConfig) {
		if sink != nil {
			c.sink = sink
		}
	}
}

// NewHandler creates a new GuestHandler with the given options.
func NewHandler(opts ...HandlerOption) *GuestHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GuestHandler{opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *GuestHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle serializes a slog.Record and hands it to the sink.
func (h *GuestHandler) Handle(_ context.Context, record slog.Record) error {
	msg := LogMessageWire{
		Level:     record.Level.String(),
		Message:   record.Message,
		Timestamp: record.Time,
	}
	msg.Attrs = append(msg.Attrs, h.attrs...)

	if h.opts.addSource && record.PC != 0 {
		if src := record.Source(); src != nil {
			msg.Attrs = append(msg.Attrs, LogAttrWire{
				Key:   slog.SourceKey,
				Type:  "string",
				Value: fmt.Sprintf("%s:%d", src.File, src.Line),
			})
		}
	}

	record.Attrs(func(attr slog.Attr) bool {
		msg.Attrs = append(msg.Attrs, h.flatten(attr)...)
		return true
	})

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal log message %q: %w", record.Message, err)
	}
	h.opts.sink(data)
	return nil
}

// WithAttrs returns a new GuestHandler that includes the given attributes.
func (h *GuestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append([]LogAttrWire(nil), h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, h.flatten(attr)...)
	}
	return &clone
}

// WithGroup returns a new GuestHandler whose attribute keys are qualified by name.
func (h *GuestHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

// flatten converts attr to wire attributes, expanding groups into dotted keys.
func (h *GuestHandler) flatten(attr slog.Attr) []LogAttrWire {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() != slog.KindGroup {
		if attr.Equal(slog.Attr{}) {
			return nil
		}
		attr.Key = h.prefix + attr.Key
		return []LogAttrWire{toLogAttrWire(attr)}
	}

	group := attr.Value.Group()
	prefix := h.prefix
	if attr.Key != "" {
		prefix = h.prefix + attr.Key + "."
	}
	sub := &GuestHandler{opts: h.opts, prefix: prefix}
	var out []LogAttrWire
	for _, a := range group {
		out = append(out, sub.flatten(a)...)
	}
	return out
}
