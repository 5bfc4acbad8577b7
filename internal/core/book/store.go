// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"

	"github.com/taibuivan/bookscout/internal/catalog"
	"github.com/taibuivan/bookscout/internal/platform/constants"
)

// # Fail-soft Lookups

// LookupStatus is the outcome of a cache tier read.
type LookupStatus int

const (
	// Miss means the tier answered and holds no entry for the key.
	Miss LookupStatus = iota
	// Hit means the tier returned a usable entry.
	Hit
	// Unavailable means the tier could not answer (connect, query or decode failure).
	Unavailable
)

func (status LookupStatus) String() string {
	switch status {
	case Hit:
		return "hit"
	case Unavailable:
		return "unavailable"
	default:
		return "miss"
	}
}

// Lookup is the result of a cache tier read. Value is only meaningful on Hit.
type Lookup[T any] struct {
	Value  T
	Status LookupStatus
}

// tierContext bounds one tier call so that a hung backend costs at most
// [constants.CacheTierTimeout] before the caller moves on.
func tierContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, constants.CacheTierTimeout)
}

func hit[T any](value T) Lookup[T] {
	return Lookup[T]{Value: value, Status: Hit}
}

func miss[T any]() Lookup[T] {
	return Lookup[T]{Status: Miss}
}

func unavailable[T any]() Lookup[T] {
	return Lookup[T]{Status: Unavailable}
}

// # Ports

// DetailsStore is the durable tier: details records kept until overwritten.
//
// Implementations never return errors; failures are logged and reported as
// [Unavailable] on reads and dropped on writes.
type DetailsStore interface {
	GetDetails(context context.Context, asin string) Lookup[*Details]
	SetDetails(context context.Context, details *Details)
}

// Cache is the ephemeral tier: JSON snapshots that may expire.
type Cache interface {
	DetailsStore
	GetSearch(context context.Context, keywords string, page int) Lookup[*SearchResponse]
	SetSearch(context context.Context, response *SearchResponse)
}

// Catalog fetches pages from the catalog site.
type Catalog interface {
	BaseURL() string
	SearchURL(keywords string, page int) string
	DetailsURL(asin string) string
	FetchHTML(context context.Context, pageURL string, options catalog.FetchOptions) (string, error)
}

// Parser turns catalog HTML into records. Parsing never fails: missing
// attributes are simply absent from the result.
type Parser interface {
	ParseDetails(asin, html string) Details
	ParseSearch(html, baseURL string) []SearchItem
}
