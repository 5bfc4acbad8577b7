// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lazy provides connections that are established on first use.

The cache tiers are optional: the server must start and serve live fetches
while PostgreSQL or Redis are still unreachable. A [Conn] therefore defers the
dial until a store actually needs the backend, and retries on the next call
when the previous attempt failed.

Guarantees:

  - Memoization: A successful connection is created once and reused.
  - Sharing: Concurrent callers wait on the same in-flight attempt.
  - No negative caching: A failed attempt is forgotten immediately.
  - Clean shutdown: A client that finishes dialing after Close is released
    instead of being kept.
*/
package lazy

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Get when Close ran while the dial was in flight.
var ErrClosed = errors.New("lazy: connection closed while dialing")

// ConnectFunc dials the backend and returns a ready-to-use client.
type ConnectFunc[T any] func(ctx context.Context) (T, error)

// CloseFunc releases a client created by a [ConnectFunc].
type CloseFunc[T any] func(client T) error

// Conn is a lazily established, memoized client of type T.
//
// # Concurrency
//
// Conn is safe for concurrent use. It must not be copied after first use.
type Conn[T any] struct {
	connect ConnectFunc[T]
	close   CloseFunc[T]

	group singleflight.Group

	mu         sync.RWMutex
	client     T
	connected  bool
	generation uint64
}

// New creates a Conn that dials with connect and releases with release.
// A nil release is allowed for clients that need no cleanup.
func New[T any](connect ConnectFunc[T], release CloseFunc[T]) *Conn[T] {
	return &Conn[T]{connect: connect, close: release}
}

// Get returns the memoized client, connecting first if needed.
//
// The dial runs with a context detached from the caller's cancellation so
// that one impatient request does not fail the attempt shared by others.
func (c *Conn[T]) Get(ctx context.Context) (T, error) {

	// 1. Fast path: already connected
	if client, ok := c.current(); ok {
		return client, nil
	}

	// 2. Slow path: join or start the shared attempt
	result := c.group.DoChan("connect", func() (any, error) {
		c.mu.RLock()
		client, connected, generation := c.client, c.connected, c.generation
		c.mu.RUnlock()
		if connected {
			return client, nil
		}

		client, err := c.connect(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		// A Close during the dial owns the outcome
		c.mu.Lock()
		if c.generation != generation {
			c.mu.Unlock()
			c.release(client)
			return nil, ErrClosed
		}
		c.client = client
		c.connected = true
		c.mu.Unlock()

		return client, nil
	})

	// 3. Wait for the attempt or the caller's deadline
	var zero T
	select {
	case outcome := <-result:
		if outcome.Err != nil {
			return zero, outcome.Err
		}
		client, _ := outcome.Val.(T)
		return client, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Connected reports whether a client has been established.
func (c *Conn[T]) Connected() bool {
	_, ok := c.current()
	return ok
}

// Close releases the client if one was established. A dial still in flight
// is released as soon as it completes. The Conn may be reused afterwards, in
// which case the next Get dials again.
func (c *Conn[T]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	if !c.connected {
		return nil
	}

	client := c.client
	var zero T
	c.client = zero
	c.connected = false

	if c.close == nil {
		return nil
	}
	return c.close(client)
}

func (c *Conn[T]) release(client T) {
	if c.close != nil {
		_ = c.close(client)
	}
}

func (c *Conn[T]) current() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client, c.connected
}
