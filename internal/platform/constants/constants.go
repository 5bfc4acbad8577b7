// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: IP tracking TTLs for the inbound limiter.
  - Catalog: Upstream paths and result caps.
  - Cache Taxonomy: Key prefixes for the ephemeral tier.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bookscout-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Catalog fetches are queued behind the outbound limiter, so this is generous.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 45 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds migrations and other startup work.
	StartupTimeout = 30 * time.Second

	// CacheTierTimeout bounds a single cache tier call, connect included.
	// A slower tier is reported unavailable and the live fetch proceeds.
	CacheTierTimeout = 1 * time.Second

	// DatabaseConnectTimeout bounds each connection attempt of the migration driver.
	DatabaseConnectTimeout = 5 * time.Second
)

// # Rate Limiting

const (
	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Catalog

const (
	// DetailsPathPrefix is the catalog path prefix of a product page.
	DetailsPathPrefix = "/pd/"

	// SearchResultLimit caps the number of items returned per search page.
	SearchResultLimit = 5

	// MaxThumbnails caps the thumbnail list of a details record.
	MaxThumbnails = 7

	// MaxRedirects is the number of redirects followed per catalog request.
	MaxRedirects = 3

	// AcceptHeader is sent with every catalog request.
	AcceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
)

// # JSON Field Identifiers

const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixDetails = "details:"
	RedisPrefixSearch  = "search:"
)
