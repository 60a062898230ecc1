// Package dispatch runs fire-and-forget work on a bounded set of goroutines.
package dispatch

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// DefaultMaxWorkers is used when NewRunner receives a non-positive limit.
const DefaultMaxWorkers = 32

// Runner schedules background tasks without blocking the caller.
// Tasks are detached from the caller's cancellation but keep its values.
type Runner struct {
	wg      sync.WaitGroup
	sema    chan struct{}
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewRunner creates a Runner that allows at most maxWorkers concurrent tasks,
// each bounded by timeout.
func NewRunner(maxWorkers int, timeout time.Duration) *Runner {
	if maxWorkers < 1 {
		maxWorkers = DefaultMaxWorkers
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{sema: make(chan struct{}, maxWorkers), timeout: timeout}
}

// Go runs f in a new goroutine if a slot is free. When the runner is saturated
// or closed the task is dropped and a warning logged. Errors returned by f are logged.
func (r *Runner) Go(ctx context.Context, name string, f func(ctx context.Context) error) {
	if r == nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		slog.WarnContext(ctx, "dispatch runner closed, dropping task", "task", name)
		return
	}

	select {
	case r.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "dispatch runner saturated, dropping task", "task", name)
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() { <-r.sema }()
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.Error("panic in background task", "task", name, "panic", rvr, "stack", string(debug.Stack()))
			}
		}()

		tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		if err := f(tctx); err != nil {
			slog.Error("background task failed", "task", name, "err", err)
		}
	}()
}

// Wait stops accepting new tasks and blocks until running ones finish.
func (r *Runner) Wait() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
}
