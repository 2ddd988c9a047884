package shutdown

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/yndnr/foldershare-go/internal/telemetry/logger"
)

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("%s not closed within 2s", what)
	}
}

func TestHandler_Signal(t *testing.T) {
	h := NewHandler(time.Second, WithLogger(logger.Discard()), WithSignals(syscall.SIGUSR1))
	h.Listen()

	select {
	case <-h.Stop():
		t.Fatal("stop closed before any signal")
	default:
	}

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	waitClosed(t, h.Stop(), "stop")

	if h.Reason() == "" {
		t.Error("Reason is empty after a signal")
	}
}

func TestHandler_Trigger(t *testing.T) {
	h := NewHandler(time.Second, WithLogger(logger.Discard()))
	if h.Reason() != "" {
		t.Errorf("Reason = %q before trigger", h.Reason())
	}

	h.Trigger("serve failed")
	h.Trigger("second")
	waitClosed(t, h.Stop(), "stop")

	if got := h.Reason(); got != "serve failed" {
		t.Errorf("Reason = %q, want the first trigger", got)
	}
}

func TestHandler_WaitRunsHooksInReverse(t *testing.T) {
	h := NewHandler(time.Second, WithLogger(logger.Discard()))

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 1; i <= 3; i++ {
		h.OnShutdown(func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("hook context has no deadline")
			}
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait() }()

	select {
	case <-h.Done():
		t.Fatal("done closed before trigger")
	case <-time.After(20 * time.Millisecond):
	}

	h.Trigger("test")
	if err := <-errCh; err != nil {
		t.Errorf("Wait: %v", err)
	}
	waitClosed(t, h.Done(), "done")

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("hook order = %v, want [3 2 1]", order)
	}
}

func TestHandler_WaitJoinsHookErrors(t *testing.T) {
	h := NewHandler(time.Second, WithLogger(logger.Discard()))

	errA := errors.New("close watcher")
	errB := errors.New("flush")
	h.OnShutdown(func(context.Context) error { return errA })
	h.OnShutdown(func(context.Context) error { return nil })
	h.OnShutdown(func(context.Context) error { return errB })

	h.Trigger("test")
	err := h.Wait()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Wait = %v, want both hook errors", err)
	}
}

func TestHandler_ConcurrentOnShutdown(t *testing.T) {
	h := NewHandler(time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnShutdown(func(context.Context) error { return nil })
		}()
	}
	wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.hooks) != 10 {
		t.Errorf("hooks = %d, want 10", len(h.hooks))
	}
}
