// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookscout/internal/platform/constants"
	"github.com/taibuivan/bookscout/internal/platform/lazy"
)

// RedisCache implements [Cache] with JSON values in Redis.
//
// Details are stored without expiry; search pages expire after searchTTL.
type RedisCache struct {
	conn      *lazy.Conn[*redis.Client]
	searchTTL time.Duration
	logger    *slog.Logger
}

// NewRedisCache creates an ephemeral tier on a lazily connected client.
func NewRedisCache(conn *lazy.Conn[*redis.Client], searchTTL time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{conn: conn, searchTTL: searchTTL, logger: logger}
}

// DetailsKey returns the cache key of a details record.
func DetailsKey(asin string) string {
	return constants.RedisPrefixDetails + asin
}

// SearchKey returns the cache key of a search page. Keywords are matched
// case-insensitively.
func SearchKey(keywords string, page int) string {
	return fmt.Sprintf("%s%s:%d", constants.RedisPrefixSearch, strings.ToLower(keywords), page)
}

// GetDetails reads details:{asin}.
func (repository *RedisCache) GetDetails(context context.Context, asin string) Lookup[*Details] {
	return getJSON[Details](context, repository, DetailsKey(asin))
}

// SetDetails writes details:{asin} without expiry.
func (repository *RedisCache) SetDetails(context context.Context, details *Details) {
	repository.setJSON(context, DetailsKey(details.ASIN), details, 0)
}

// GetSearch reads search:{lower(keywords)}:{page}.
func (repository *RedisCache) GetSearch(context context.Context, keywords string, page int) Lookup[*SearchResponse] {
	return getJSON[SearchResponse](context, repository, SearchKey(keywords, page))
}

// SetSearch writes the search page with the configured TTL.
func (repository *RedisCache) SetSearch(context context.Context, response *SearchResponse) {
	repository.setJSON(context, SearchKey(response.Query.Keywords, response.Query.Page), response, repository.searchTTL)
}

// Ping reports whether the ephemeral tier is reachable.
func (repository *RedisCache) Ping(context context.Context) error {
	client, err := repository.conn.Get(context)
	if err != nil {
		return err
	}
	return client.Ping(context).Err()
}

// # Codec

func getJSON[T any](context context.Context, repository *RedisCache, key string) Lookup[*T] {
	context, cancel := tierContext(context)
	defer cancel()

	// 1. Connect on first use
	client, err := repository.conn.Get(context)
	if err != nil {
		repository.warn(context, "ephemeral_connect_failed", key, err)
		return unavailable[*T]()
	}

	// 2. Read the raw value
	raw, err := client.Get(context, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return miss[*T]()
	}
	if err != nil {
		repository.warn(context, "ephemeral_read_failed", key, err)
		return unavailable[*T]()
	}

	// 3. Decode
	value := new(T)
	if err := json.Unmarshal(raw, value); err != nil {
		repository.warn(context, "ephemeral_decode_failed", key, err)
		return unavailable[*T]()
	}

	return hit(value)
}

// setJSON stores value under key. A zero ttl means no expiry.
func (repository *RedisCache) setJSON(context context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		repository.warn(context, "ephemeral_encode_failed", key, err)
		return
	}

	context, cancel := tierContext(context)
	defer cancel()

	client, err := repository.conn.Get(context)
	if err != nil {
		repository.warn(context, "ephemeral_connect_failed", key, err)
		return
	}

	if err := client.Set(context, key, payload, ttl).Err(); err != nil {
		repository.warn(context, "ephemeral_write_failed", key, err)
	}
}

func (repository *RedisCache) warn(context context.Context, event, key string, err error) {
	repository.logger.WarnContext(context, event,
		slog.String("key", key),
		slog.Any("error", err),
	)
}
