package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook is a cleanup step run on shutdown.
type Hook func(context.Context) error

// Handler coordinates a graceful shutdown.
type Handler struct {
	timeout time.Duration
	logger  *slog.Logger
	signals []os.Signal

	mu    sync.Mutex
	hooks []Hook

	stop     chan struct{}
	stopOnce sync.Once
	reason   string
	done     chan struct{}
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSignals replaces the default SIGINT and SIGTERM.
func WithSignals(sigs ...os.Signal) Option {
	return func(h *Handler) {
		h.signals = sigs
	}
}

// NewHandler creates a handler whose hooks share a context bounded by
// timeout.
func NewHandler(timeout time.Duration, opts ...Option) *Handler {
	h := &Handler{
		timeout: timeout,
		logger:  slog.Default(),
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnShutdown registers a hook. Hooks run in reverse order of registration.
func (h *Handler) OnShutdown(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Listen triggers the stop on the first configured signal.
func (h *Handler) Listen() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, h.signals...)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case sig := <-sigCh:
			h.Trigger(sig.String())
		case <-h.stop:
		}
	}()
}

// Trigger closes the stop channel. Only the first call has an effect.
func (h *Handler) Trigger(reason string) {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		h.reason = reason
		h.mu.Unlock()
		h.logger.Info("shutdown requested", "reason", reason)
		close(h.stop)
	})
}

// Stop returns a channel closed once shutdown has been triggered.
func (h *Handler) Stop() <-chan struct{} {
	return h.stop
}

// Reason returns what triggered the shutdown, or "" before it happens.
func (h *Handler) Reason() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reason
}

// Wait blocks until shutdown is triggered, then runs every hook and
// returns their joined errors.
func (h *Handler) Wait() error {
	<-h.stop

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	h.mu.Lock()
	hooks := append([]Hook(nil), h.hooks...)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			h.logger.Warn("shutdown hook failed", "error", err)
			errs = append(errs, err)
		}
	}

	close(h.done)
	return errors.Join(errs...)
}

// Done returns a channel closed once Wait has run every hook.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
