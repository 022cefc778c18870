// Package worker runs CPU-heavy jobs (password hashing) on a fixed set of
// goroutines so they never occupy more than n cores at once.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/baharkarakas/learnhub-backend/internal/metrics"
)

var ErrStopped = errors.New("worker: pool stopped")

type task func()

type Pool struct {
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	jobs   chan task
}

func NewPool(n int) *Pool {
	if n <= 0 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
				run(job)
			}
		}()
	}
	return p
}

func run(job task) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("worker job panic", "err", rec)
		}
	}()
	job()
}

// Submit is the fire-and-forget entry point: it queues f, blocking while
// the queue is full, and does not wait for f to run. Use Do to wait.
func (p *Pool) Submit(f task) error { return p.submit(context.Background(), f) }

func (p *Pool) submit(ctx context.Context, f task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrStopped
	}
	select {
	case p.jobs <- f:
		metrics.WorkerQueueDepth.Set(float64(len(p.jobs)))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs f on the pool and waits for it to finish. If ctx ends first Do
// returns ctx.Err(); f may still run afterwards.
func (p *Pool) Do(ctx context.Context, f func()) error {
	done := make(chan struct{})
	if err := p.submit(ctx, func() {
		defer close(done)
		f()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drains queued jobs and waits for the workers to exit.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
