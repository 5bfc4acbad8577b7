// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// the cache tier's fail-soft lookups.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// IsNotFound reports whether err means the queried row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Wrap annotates a database error with the action that produced it.
// It returns nil for a nil error.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("postgres: %s: %w", action, err)
}
