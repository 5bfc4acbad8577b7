// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the durable tier, so that
// queries never spell identifiers inline.
package schema

// BookDetailsCacheTable represents the 'book_details_cache' table
type BookDetailsCacheTable struct {
	Table     string
	ASIN      string
	Payload   string
	CreatedAt string
	UpdatedAt string
}

// BookDetailsCache is the schema definition for book_details_cache
var BookDetailsCache = BookDetailsCacheTable{
	Table:     "book_details_cache",
	ASIN:      "asin",
	Payload:   "payload",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t BookDetailsCacheTable) Columns() []string {
	return []string{t.ASIN, t.Payload, t.CreatedAt, t.UpdatedAt}
}
