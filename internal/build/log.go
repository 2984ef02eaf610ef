// Package build wires up process-wide logging for the samvadhaan CLI: a
// btclog handler set that fans records out to the console and a rotating
// log file.
package build

import (
	"context"
	"log/slog"

	"github.com/btcsuite/btclog"
	btclogv2 "github.com/btcsuite/btclog/v2"
)

// HandlerSet fans log records out to multiple underlying btclog handlers,
// enabling dual-stream logging (console plus rotating file) behind a single
// slog.Handler.
type HandlerSet struct {
	level btclog.Level
	set   []btclogv2.Handler
}

// NewHandlerSet constructs a HandlerSet from the given handlers, initialized
// to the Info level.
func NewHandlerSet(handlers ...btclogv2.Handler) *HandlerSet {
	h := &HandlerSet{
		set:   handlers,
		level: btclog.LevelInfo,
	}
	h.SetLevel(h.level)

	return h
}

// Enabled reports whether every underlying handler handles records at the
// given level.
//
// NOTE: this is part of the slog.Handler interface.
func (h *HandlerSet) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.set {
		if !handler.Enabled(ctx, level) {
			return false
		}
	}

	return true
}

// Handle dispatches the record to all underlying handlers.
//
// NOTE: this is part of the slog.Handler interface.
func (h *HandlerSet) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.set {
		if err := handler.Handle(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

// WithAttrs returns a new Handler whose attributes consist of both the
// receiver's attributes and the arguments.
//
// NOTE: this is part of the slog.Handler interface.
func (h *HandlerSet) WithAttrs(attrs []slog.Attr) slog.Handler {
	newSet := &fanoutSet{set: make([]slog.Handler, len(h.set))}
	for i, handler := range h.set {
		newSet.set[i] = handler.WithAttrs(attrs)
	}

	return newSet
}

// WithGroup returns a new Handler with the given group appended to the
// receiver's existing groups.
//
// NOTE: this is part of the slog.Handler interface.
func (h *HandlerSet) WithGroup(name string) slog.Handler {
	newSet := &fanoutSet{set: make([]slog.Handler, len(h.set))}
	for i, handler := range h.set {
		newSet.set[i] = handler.WithGroup(name)
	}

	return newSet
}

// SubSystem creates a new Handler with the given sub-system tag.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *HandlerSet) SubSystem(tag string) btclogv2.Handler {
	newSet := &HandlerSet{set: make([]btclogv2.Handler, len(h.set))}
	for i, handler := range h.set {
		newSet.set[i] = handler.SubSystem(tag)
	}

	return newSet
}

// WithPrefix returns a copy of the Handler with the given string prefixed to
// each log message.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *HandlerSet) WithPrefix(prefix string) btclogv2.Handler {
	newSet := &HandlerSet{set: make([]btclogv2.Handler, len(h.set))}
	for i, handler := range h.set {
		newSet.set[i] = handler.WithPrefix(prefix)
	}

	return newSet
}

// SetLevel changes the logging level on all underlying handlers.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *HandlerSet) SetLevel(level btclog.Level) {
	for _, handler := range h.set {
		handler.SetLevel(level)
	}
	h.level = level
}

// Level returns the current logging level.
//
// NOTE: this is part of the btclog.Handler interface.
func (h *HandlerSet) Level() btclog.Level {
	return h.level
}

var _ btclogv2.Handler = (*HandlerSet)(nil)

// fanoutSet is a plain slog.Handler fan-out, produced by HandlerSet's
// WithGroup and WithAttrs methods which return slog.Handlers rather than
// btclog handlers.
type fanoutSet struct {
	set []slog.Handler
}

// Enabled reports whether every underlying handler handles records at the
// given level.
func (s *fanoutSet) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range s.set {
		if !handler.Enabled(ctx, level) {
			return false
		}
	}

	return true
}

// Handle dispatches the record to all underlying handlers.
func (s *fanoutSet) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range s.set {
		if err := handler.Handle(ctx, record); err != nil {
			return err
		}
	}

	return nil
}

// WithAttrs returns a new fan-out with the attributes applied to every
// underlying handler.
func (s *fanoutSet) WithAttrs(attrs []slog.Attr) slog.Handler {
	newSet := &fanoutSet{set: make([]slog.Handler, len(s.set))}
	for i, handler := range s.set {
		newSet.set[i] = handler.WithAttrs(attrs)
	}

	return newSet
}

// WithGroup returns a new fan-out with the group applied to every underlying
// handler.
func (s *fanoutSet) WithGroup(name string) slog.Handler {
	newSet := &fanoutSet{set: make([]slog.Handler, len(s.set))}
	for i, handler := range s.set {
		newSet.set[i] = handler.WithGroup(name)
	}

	return newSet
}

var _ slog.Handler = (*fanoutSet)(nil)
