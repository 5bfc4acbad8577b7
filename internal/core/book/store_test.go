// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookscout/internal/core/book"
	"github.com/taibuivan/bookscout/internal/platform/lazy"
)

var errUnreachable = errors.New("dial tcp: connection refused")

func unreachable[T any](attempts *int) *lazy.Conn[T] {
	return lazy.New[T](func(context.Context) (T, error) {
		*attempts++
		var zero T
		return zero, errUnreachable
	}, nil)
}

/*
TestPostgresDetailsStore_Unreachable verifies an unreachable database degrades to
Unavailable and is retried on the next operation.
*/
func TestPostgresDetailsStore_Unreachable(t *testing.T) {
	attempts := 0
	store := book.NewPostgresDetailsStore(unreachable[*pgxpool.Pool](&attempts), discardLogger())
	ctx := context.Background()

	lookup := store.GetDetails(ctx, "B012345678")
	assert.Equal(t, book.Unavailable, lookup.Status)
	assert.Nil(t, lookup.Value)

	assert.NotPanics(t, func() {
		store.SetDetails(ctx, &book.Details{ASIN: "B012345678", Title: "T"})
	})
	assert.ErrorIs(t, store.Ping(ctx), errUnreachable)
	assert.Equal(t, 3, attempts)
}

/*
TestRedisCache_Unreachable verifies an unreachable cache degrades to Unavailable.
*/
func TestRedisCache_Unreachable(t *testing.T) {
	attempts := 0
	cache := book.NewRedisCache(unreachable[*redis.Client](&attempts), time.Hour, discardLogger())
	ctx := context.Background()

	assert.Equal(t, book.Unavailable, cache.GetDetails(ctx, "B012345678").Status)
	assert.Equal(t, book.Unavailable, cache.GetSearch(ctx, "dune", 1).Status)
	assert.NotPanics(t, func() {
		cache.SetSearch(ctx, &book.SearchResponse{Query: book.Query{Keywords: "dune", Page: 1}})
	})
	assert.Error(t, cache.Ping(ctx))
	assert.Equal(t, 4, attempts)
}

/*
TestRedisCache_BrokenServer verifies command failures on an established client are
reported as Unavailable rather than Miss.
*/
func TestRedisCache_BrokenServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	conn := lazy.New[*redis.Client](func(context.Context) (*redis.Client, error) { return client, nil }, nil)
	cache := book.NewRedisCache(conn, time.Hour, discardLogger())

	assert.Equal(t, book.Unavailable, cache.GetDetails(context.Background(), "B012345678").Status)
}

/*
TestLookupStatus_String names each status.
*/
func TestLookupStatus_String(t *testing.T) {
	assert.Equal(t, "miss", book.Miss.String())
	assert.Equal(t, "hit", book.Hit.String())
	assert.Equal(t, "unavailable", book.Unavailable.String())
	require.Equal(t, book.Miss, book.Lookup[*book.Details]{}.Status)
}
