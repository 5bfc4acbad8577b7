// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog fetches HTML pages from the catalog site.

Every request goes through the shared [outbound.Limiter], sends browser-like
headers and follows at most a few redirects. Upstream failures are translated
into [apperr.AppError] values so that the HTTP layer can report them directly.
*/
package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/taibuivan/bookscout/internal/platform/apperr"
	"github.com/taibuivan/bookscout/internal/platform/constants"
	"github.com/taibuivan/bookscout/internal/platform/outbound"
)

// Options configures a [Client].
type Options struct {
	// BaseURL is the catalog site origin (e.g. https://www.audible.fr).
	BaseURL string
	// SearchPath is the path of the search page, relative to BaseURL.
	SearchPath string
	// Timeout bounds the wait for response headers and, separately, the body
	// read that starts once they arrive.
	Timeout        time.Duration
	UserAgent      string
	AcceptLanguage string
}

// FetchOptions tunes the status handling of a single fetch.
type FetchOptions struct {
	// AllowNotFound reports a 404 as NOT_FOUND instead of UPSTREAM_ERROR.
	AllowNotFound bool
}

// Client is a paced HTML client for the catalog site.
//
// # Concurrency
//
// Client is safe for concurrent use.
type Client struct {
	http       *resty.Client
	limiter    *outbound.Limiter
	baseURL    *url.URL
	searchPath string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient builds a catalog client that schedules every request on limiter.
func NewClient(options Options, limiter *outbound.Limiter, logger *slog.Logger) (*Client, error) {
	baseURL, err := url.Parse(options.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid base URL: %w", err)
	}

	// 1. Bound the header phase on the transport; the body phase is bounded per fetch
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = options.Timeout

	client := resty.New().
		SetTransport(transport).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(constants.MaxRedirects)).
		SetHeaders(map[string]string{
			"User-Agent":      options.UserAgent,
			"Accept":          constants.AcceptHeader,
			"Accept-Language": options.AcceptLanguage,
		})

	// 2. Trace every exchange at debug level
	client.OnBeforeRequest(func(_ *resty.Client, request *resty.Request) error {
		logger.DebugContext(request.Context(), "catalog_request_started",
			slog.String("method", request.Method),
			slog.String("url", request.URL),
		)
		return nil
	})
	client.OnError(func(request *resty.Request, err error) {
		logger.WarnContext(request.Context(), "catalog_request_failed",
			slog.String("url", request.URL),
			slog.Any("error", err),
		)
	})

	return &Client{
		http:       client,
		limiter:    limiter,
		baseURL:    baseURL,
		searchPath: options.SearchPath,
		timeout:    options.Timeout,
		logger:     logger,
	}, nil
}

/*
FetchHTML performs a single paced GET and returns the body verbatim.

Returns:
  - NOT_FOUND when the page is missing and options.AllowNotFound is set
  - UPSTREAM_ERROR (502) for any other status >= 400, a transport failure or
    a context that ended while waiting for the limiter
*/
func (client *Client) FetchHTML(ctx context.Context, pageURL string, options FetchOptions) (string, error) {
	body, err := outbound.Do(ctx, client.limiter, func(ctx context.Context) (string, error) {

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		// 1. Issue the request; the body is streamed below
		response, err := client.http.R().SetContext(ctx).SetDoNotParseResponse(true).Get(pageURL)
		if err != nil {
			return "", apperr.Upstream(0, fmt.Errorf("catalog: GET %s: %w", pageURL, err))
		}
		raw := response.RawBody()
		defer raw.Close()

		// 2. Classify the status
		status := response.StatusCode()
		if status == http.StatusNotFound && options.AllowNotFound {
			return "", apperr.NotFound("Catalog page")
		}
		if status >= http.StatusBadRequest {
			return "", apperr.Upstream(status, fmt.Errorf("catalog: GET %s: status %d", pageURL, status))
		}

		// 3. Read the body under its own deadline
		if client.timeout > 0 {
			timer := time.AfterFunc(client.timeout, cancel)
			defer timer.Stop()
		}

		payload, err := io.ReadAll(raw)
		if err != nil {
			return "", apperr.Upstream(0, fmt.Errorf("catalog: GET %s: read body: %w", pageURL, err))
		}

		client.logger.DebugContext(ctx, "catalog_request_finished",
			slog.String("url", pageURL),
			slog.Int("status", status),
			slog.Int64("latency_ms", time.Since(response.Request.Time).Milliseconds()),
		)
		return string(payload), nil
	})

	// The caller gave up while queued
	if err != nil && apperr.As(err) == nil {
		return "", apperr.Upstream(0, err)
	}
	return body, err
}
