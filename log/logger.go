// Package log provides slog wiring for hosts and guests of the string-message
// host functions.
//
// Hosts build their logger with NewLogger. Guests install a GuestHandler,
// which forwards records to the host's log_message function where Replay
// feeds them into the host logger.
package log

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewLogger builds a logger writing to w with the level and format from cfg.
// Empty fields fall back to info and text.
func NewLogger(cfg entities.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// ParseLevel parses a level name such as "debug" or "warn".
func ParseLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", name, err)
	}
	return level, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
