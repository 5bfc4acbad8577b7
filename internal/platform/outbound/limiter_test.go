// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package outbound_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookscout/internal/platform/outbound"
)

/*
TestLimiter_ConcurrencyCap verifies no more than N tasks run at once.
*/
func TestLimiter_ConcurrencyCap(t *testing.T) {
	limiter := outbound.New(2, 0)

	var running, peak atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := limiter.Schedule(context.Background(), func(ctx context.Context) error {
				current := running.Add(1)
				for {
					previous := peak.Load()
					if current <= previous || peak.CompareAndSwap(previous, current) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				running.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(2), peak.Load())
}

/*
TestLimiter_Spacing verifies successive starts are at least minTime apart.
*/
func TestLimiter_Spacing(t *testing.T) {
	const minTime = 40 * time.Millisecond
	limiter := outbound.New(4, minTime)

	var mu sync.Mutex
	var starts []time.Time
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = limiter.Schedule(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				starts = append(starts, time.Now())
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	require.Len(t, starts, 4)
	for i := 1; i < len(starts); i++ {
		// Small tolerance for timer granularity.
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), minTime-5*time.Millisecond)
	}
}

/*
TestLimiter_FIFO verifies queued tasks start in submission order.
*/
func TestLimiter_FIFO(t *testing.T) {
	limiter := outbound.New(1, 0)
	gate := make(chan struct{})
	blocking := make(chan struct{})

	// Occupy the only slot.
	go func() {
		_ = limiter.Schedule(context.Background(), func(ctx context.Context) error {
			close(blocking)
			<-gate
			return nil
		})
	}()
	<-blocking

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = limiter.Schedule(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}(i)
		// Give the goroutine time to enqueue before the next one.
		time.Sleep(10 * time.Millisecond)
	}

	close(gate)
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

/*
TestDo_PropagatesResult checks values and task errors pass through unchanged.
*/
func TestDo_PropagatesResult(t *testing.T) {
	limiter := outbound.New(1, 0)

	value, err := outbound.Do(context.Background(), limiter, func(ctx context.Context) (string, error) {
		return "<html></html>", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", value)

	sentinel := errors.New("boom")
	_, err = outbound.Do(context.Background(), limiter, func(ctx context.Context) (int, error) {
		return 0, sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

/*
TestLimiter_CancelledWhileWaiting ensures a cancelled waiter never runs.
*/
func TestLimiter_CancelledWhileWaiting(t *testing.T) {
	limiter := outbound.New(1, 0)
	gate := make(chan struct{})
	blocking := make(chan struct{})

	go func() {
		_ = limiter.Schedule(context.Background(), func(ctx context.Context) error {
			close(blocking)
			<-gate
			return nil
		})
	}()
	<-blocking
	defer close(gate)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var ran atomic.Bool
	err := limiter.Schedule(ctx, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, ran.Load())
}
