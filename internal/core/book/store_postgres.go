// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookscout/internal/platform/database/schema"
	"github.com/taibuivan/bookscout/internal/platform/dberr"
	"github.com/taibuivan/bookscout/internal/platform/lazy"
)

// PostgresDetailsStore implements [DetailsStore] on a JSONB table.
type PostgresDetailsStore struct {
	conn   *lazy.Conn[*pgxpool.Pool]
	logger *slog.Logger
}

// NewPostgresDetailsStore creates a durable tier on a lazily connected pool.
func NewPostgresDetailsStore(conn *lazy.Conn[*pgxpool.Pool], logger *slog.Logger) *PostgresDetailsStore {
	return &PostgresDetailsStore{conn: conn, logger: logger}
}

var (
	selectDetailsQuery = fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`,
		schema.BookDetailsCache.Payload, schema.BookDetailsCache.Table, schema.BookDetailsCache.ASIN,
	)

	upsertDetailsQuery = fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (%[2]s) DO UPDATE
		SET %[3]s = EXCLUDED.%[3]s, %[5]s = now()
	`,
		schema.BookDetailsCache.Table, schema.BookDetailsCache.ASIN, schema.BookDetailsCache.Payload,
		schema.BookDetailsCache.CreatedAt, schema.BookDetailsCache.UpdatedAt,
	)
)

/*
GetDetails loads the snapshot stored for asin.

Returns:
  - Hit with the decoded record
  - Miss when no row exists
  - Unavailable on connection, query or decode failure
*/
func (repository *PostgresDetailsStore) GetDetails(context context.Context, asin string) Lookup[*Details] {
	context, cancel := tierContext(context)
	defer cancel()

	// 1. Connect on first use
	pool, err := repository.conn.Get(context)
	if err != nil {
		repository.warn(context, "durable_connect_failed", asin, err)
		return unavailable[*Details]()
	}

	// 2. Read the raw payload
	var payload []byte
	err = pool.QueryRow(context, selectDetailsQuery, asin).Scan(&payload)
	if dberr.IsNotFound(err) {
		return miss[*Details]()
	}
	if err != nil {
		repository.warn(context, "durable_read_failed", asin, dberr.Wrap(err, "select_book_details"))
		return unavailable[*Details]()
	}

	// 3. Decode the snapshot
	details := &Details{}
	if err := json.Unmarshal(payload, details); err != nil {
		repository.warn(context, "durable_decode_failed", asin, err)
		return unavailable[*Details]()
	}

	return hit(details)
}

// SetDetails upserts the snapshot of details. Failures are logged and dropped.
func (repository *PostgresDetailsStore) SetDetails(context context.Context, details *Details) {
	payload, err := json.Marshal(details)
	if err != nil {
		repository.warn(context, "durable_encode_failed", details.ASIN, err)
		return
	}

	context, cancel := tierContext(context)
	defer cancel()

	pool, err := repository.conn.Get(context)
	if err != nil {
		repository.warn(context, "durable_connect_failed", details.ASIN, err)
		return
	}

	if _, err := pool.Exec(context, upsertDetailsQuery, details.ASIN, payload); err != nil {
		repository.warn(context, "durable_write_failed", details.ASIN, dberr.Wrap(err, "upsert_book_details"))
	}
}

// Ping reports whether the durable tier is reachable.
func (repository *PostgresDetailsStore) Ping(context context.Context) error {
	pool, err := repository.conn.Get(context)
	if err != nil {
		return err
	}
	return pool.Ping(context)
}

func (repository *PostgresDetailsStore) warn(context context.Context, event, asin string, err error) {
	repository.logger.WarnContext(context, event,
		slog.String("asin", asin),
		slog.Any("error", err),
	)
}
