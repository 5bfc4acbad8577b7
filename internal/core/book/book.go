// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book retrieves audiobook metadata from the catalog site.

Every lookup walks the same tiers:

	durable store (PostgreSQL) → ephemeral cache (Redis) → live fetch + extraction

and the result is written back to the best enabled tier. Both cache tiers are
optional and fail soft: an unreachable backend is treated as a miss.
*/
package book

// SearchItem is a single result of a catalog search page.
//
// Optional attributes are nil when the page did not expose them.
type SearchItem struct {
	ASIN           string   `json:"asin"`
	Title          string   `json:"title"`
	Authors        []string `json:"authors"`
	Narrators      []string `json:"narrators"`
	ReleaseDate    *string  `json:"releaseDate,omitempty"`
	ReleaseYear    *int     `json:"releaseYear,omitempty"`
	RuntimeMinutes *int     `json:"runtimeMinutes,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	RatingCount    *int     `json:"ratingCount,omitempty"`
	ThumbnailURL   *string  `json:"thumbnailUrl,omitempty"`
	DetailURL      string   `json:"detailUrl"`
}

// Series places a book inside a series.
type Series struct {
	Name     string `json:"name"`
	Position *int   `json:"position,omitempty"`
}

// Details is the full record of a single book.
type Details struct {
	ASIN           string   `json:"asin"`
	Title          string   `json:"title"`
	Authors        []string `json:"authors"`
	Narrators      []string `json:"narrators"`
	Publisher      *string  `json:"publisher,omitempty"`
	ReleaseDate    *string  `json:"releaseDate,omitempty"`
	Language       *string  `json:"language,omitempty"`
	RuntimeMinutes *int     `json:"runtimeMinutes,omitempty"`
	Series         *Series  `json:"series,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	RatingCount    *int     `json:"ratingCount,omitempty"`
	Description    *string  `json:"description,omitempty"`
	CoverURL       *string  `json:"coverUrl,omitempty"`
	Thumbnails     []string `json:"thumbnails,omitempty"`
}

// # Provenance

// Source names the tier a details record was served from.
type Source string

const (
	SourceDurable   Source = "db"
	SourceEphemeral Source = "redis"
	SourceLive      Source = "scrape"
)

// DetailsMetadata describes where a details record came from.
type DetailsMetadata struct {
	FromCache bool   `json:"fromCache"`
	Source    Source `json:"source"`
}

// DetailsResponse is a details record plus its provenance.
type DetailsResponse struct {
	Details
	Metadata DetailsMetadata `json:"metadata"`
}

// Query echoes the search parameters of a [SearchResponse].
type Query struct {
	Keywords string `json:"keywords"`
	Page     int    `json:"page"`
}

// SearchMetadata describes where a search page came from.
type SearchMetadata struct {
	FromCache bool `json:"fromCache"`
}

// SearchResponse is one page of search results plus its provenance.
type SearchResponse struct {
	Query    Query          `json:"query"`
	Items    []SearchItem   `json:"items"`
	Metadata SearchMetadata `json:"metadata"`
}

// Request parameter names, shared by handlers and validation messages.
const (
	FieldASIN     = "asin"
	FieldKeywords = "keywords"
	FieldPage     = "page"
)
