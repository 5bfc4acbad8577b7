// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package outbound paces the requests Bookscout sends to the catalog site.

The catalog has no public API and blocks aggressive clients, so every fetch is
scheduled through a single process-wide [Limiter].

Rules:

  - Concurrency: At most N tasks run at the same time.
  - Spacing: Two task starts are separated by at least the minimum interval.
  - Fairness: Waiting tasks are admitted in submission order.

The queue is unbounded and tasks are never deduplicated or retried.
*/
package outbound

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Limiter bounds the concurrency and start rate of outbound tasks.
//
// # Concurrency
//
// Limiter is safe for concurrent use and is meant to be shared by every
// component that talks to the catalog site.
type Limiter struct {
	slots *semaphore.Weighted
	pacer *rate.Limiter
}

// New creates a Limiter running at most concurrency tasks at once, with task
// starts spaced by at least minTime. A zero minTime disables spacing.
func New(concurrency int, minTime time.Duration) *Limiter {
	if concurrency < 1 {
		concurrency = 1
	}

	limiter := &Limiter{slots: semaphore.NewWeighted(int64(concurrency))}
	if minTime > 0 {
		limiter.pacer = rate.NewLimiter(rate.Every(minTime), 1)
	}

	return limiter
}

// Schedule waits for a free slot and for the pacing interval, then runs task.
//
// The task's error is returned unchanged. If ctx ends while waiting, the task
// is not run and the context error is returned.
func (l *Limiter) Schedule(ctx context.Context, task func(ctx context.Context) error) error {

	// 1. Wait for a concurrency slot (waiters are served FIFO)
	if err := l.slots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("outbound: waiting for slot: %w", err)
	}
	defer l.slots.Release(1)

	// 2. Respect the minimum spacing between starts
	if l.pacer != nil {
		if err := l.pacer.Wait(ctx); err != nil {
			return fmt.Errorf("outbound: waiting for pacing: %w", err)
		}
	}

	// 3. Run the task while holding the slot
	return task(ctx)
}

// Do schedules a value-returning task on l.
func Do[T any](ctx context.Context, l *Limiter, task func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := l.Schedule(ctx, func(ctx context.Context) error {
		var taskErr error
		result, taskErr = task(ctx)
		return taskErr
	})
	return result, err
}
