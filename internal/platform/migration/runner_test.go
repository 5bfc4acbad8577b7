// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookscout/internal/platform/migration"
)

/*
TestPgx5DSN verifies the scheme rewrite expected by the pgx/v5 migrate driver.
*/
func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres_scheme", "postgres://app:secret@db:5432/books", "pgx5://app:secret@db:5432/books"},
		{"postgresql_scheme", "postgresql://app@db/books?sslmode=disable", "pgx5://app@db/books?sslmode=disable"},
		{"already_pgx5", "pgx5://db/books", "pgx5://db/books"},
		{"keyword_form", "host=db user=app", "host=db user=app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.Pgx5DSN(tt.dsn))
		})
	}
}

/*
TestWithConnectTimeout verifies the dial bound is added once, in both DSN forms.
*/
func TestWithConnectTimeout(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		timeout time.Duration
		want    string
	}{
		{"url", "postgres://app:secret@db:5432/books", 5 * time.Second, "postgres://app:secret@db:5432/books?connect_timeout=5"},
		{"url_with_query", "postgresql://app@db/books?sslmode=disable", 5 * time.Second, "postgresql://app@db/books?connect_timeout=5&sslmode=disable"},
		{"url_already_set", "postgres://db/books?connect_timeout=2", 5 * time.Second, "postgres://db/books?connect_timeout=2"},
		{"rounds_up", "postgres://db/books", 1500 * time.Millisecond, "postgres://db/books?connect_timeout=2"},
		{"keyword_form", "host=db user=app", 5 * time.Second, "host=db user=app connect_timeout=5"},
		{"keyword_already_set", "host=db connect_timeout=1", 5 * time.Second, "host=db connect_timeout=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.WithConnectTimeout(tt.dsn, tt.timeout))
		})
	}
}
