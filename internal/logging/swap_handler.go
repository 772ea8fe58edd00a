package logging

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
)

// swapHandler forwards to a handler that Initialize can replace, so module
// loggers handed out before Initialize follow format changes. Attributes and
// groups added through the logger are replayed onto the current handler.
type swapHandler struct {
	current *atomic.Pointer[slog.Handler]
	derive  []func(slog.Handler) slog.Handler
}

func newSwapHandler(h slog.Handler) *swapHandler {
	s := &swapHandler{current: &atomic.Pointer[slog.Handler]{}}
	s.swap(h)
	return s
}

func (s *swapHandler) swap(h slog.Handler) {
	s.current.Store(&h)
}

func (s *swapHandler) handler() slog.Handler {
	h := *s.current.Load()
	for _, fn := range s.derive {
		h = fn(h)
	}
	return h
}

// Enabled implements slog.Handler.
func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.handler().Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.handler().Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	attrs = slices.Clone(attrs)
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup implements slog.Handler.
func (s *swapHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s *swapHandler) with(fn func(slog.Handler) slog.Handler) *swapHandler {
	derive := make([]func(slog.Handler) slog.Handler, len(s.derive), len(s.derive)+1)
	copy(derive, s.derive)
	return &swapHandler{current: s.current, derive: append(derive, fn)}
}
