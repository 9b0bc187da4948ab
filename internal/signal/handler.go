// Package signal turns SIGINT/SIGTERM into context cancellation for aigit
// commands, so a Ctrl+C during a long git or model call cancels the running
// task instead of killing the process mid-commit.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler cancels its context when SIGINT or SIGTERM arrives.
type Handler struct {
	ctx         context.Context //nolint:containedctx // handler owns the context lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{}
	once        sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal
	onInterrupt []func()
}

// Option configures a Handler.
type Option func(*Handler)

// WithOnInterrupt registers fn to run once, on the first signal, before the
// context is canceled. The CLI uses it to cancel the running task.
func WithOnInterrupt(fn func()) Option {
	return func(h *Handler) {
		if fn != nil {
			h.onInterrupt = append(h.onInterrupt, fn)
		}
	}
}

// NewHandler starts listening for SIGINT and SIGTERM. Call Stop when done.
//
//	h := signal.NewHandler(ctx, signal.WithOnInterrupt(func() { orch.Cancel(handle) }))
//	defer h.Stop()
//	ctx = h.Context()
func NewHandler(parent context.Context, opts ...Option) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		sigChan:     make(chan os.Signal, 1),
	}
	for _, opt := range opts {
		opt(h)
	}

	signal.Notify(h.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the context canceled on interrupt or Stop.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted is closed when the first signal arrives.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// WasInterrupted reports whether a signal has been received.
func (h *Handler) WasInterrupted() bool {
	select {
	case <-h.interrupted:
		return true
	default:
		return false
	}
}

// Stop unregisters the handler and cancels its context. Safe to call twice.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel()
	})
}

// handleSignal runs the interrupt callbacks and cancels the context once.
func (h *Handler) handleSignal() {
	h.once.Do(func() {
		for _, fn := range h.onInterrupt {
			fn()
		}
		h.cancel()
		close(h.interrupted)
	})
}

// listen drains signals until Stop is called or the parent context ends.
// Only the first signal has an effect.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case <-h.sigChan:
			h.handleSignal()
		}
	}
}
