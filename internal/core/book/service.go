// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bookscout/internal/catalog"
	"github.com/taibuivan/bookscout/internal/platform/apperr"
	"github.com/taibuivan/bookscout/internal/platform/constants"
	"github.com/taibuivan/bookscout/pkg/slice"
)

// Service orchestrates cache lookups, live fetches and write-back.
//
// A nil durable store or ephemeral cache means the tier is disabled.
type Service struct {
	durable   DetailsStore
	ephemeral Cache
	catalog   Catalog
	parser    Parser
	logger    *slog.Logger
}

// NewService wires the retrieval pipeline. Pass an untyped nil for a disabled tier.
func NewService(durable DetailsStore, ephemeral Cache, pages Catalog, parser Parser, logger *slog.Logger) *Service {
	return &Service{
		durable:   durable,
		ephemeral: ephemeral,
		catalog:   pages,
		parser:    parser,
		logger:    logger,
	}
}

/*
Details returns the record of asin with its provenance.

Lookup order:
 1. Durable store.
 2. Ephemeral cache, consulted only when the durable store is disabled.
 3. Live fetch of the product page, then write-back to the best enabled tier.

Returns:
  - NOT_FOUND when the catalog has no page or the page yields no title
  - UPSTREAM_ERROR when the catalog request fails
*/
func (service *Service) Details(ctx context.Context, asin string) (*DetailsResponse, error) {

	// 1. Cache tiers
	if cached, source, ok := service.cachedDetails(ctx, asin); ok {
		if cached.Title == "" {
			service.logger.WarnContext(ctx, "cached_details_untitled",
				slog.String("asin", asin),
				slog.String("source", string(source)),
			)
		}
		service.logger.DebugContext(ctx, "details_cache_hit",
			slog.String("asin", asin),
			slog.String("source", string(source)),
		)
		return newDetailsResponse(cached, true, source), nil
	}

	// 2. Live fetch
	html, err := service.catalog.FetchHTML(ctx, service.catalog.DetailsURL(asin), catalog.FetchOptions{AllowNotFound: true})
	if err != nil {
		return nil, err
	}

	// 3. Extraction
	details := service.parser.ParseDetails(asin, html)
	if details.Title == "" {
		service.logger.InfoContext(ctx, "details_untitled", slog.String("asin", asin))
		return nil, apperr.NotFound("Book details")
	}

	// 4. Write-back survives a client that disconnected meanwhile
	service.persistDetails(context.WithoutCancel(ctx), &details)

	service.logger.InfoContext(ctx, "details_scraped", slog.String("asin", asin))
	return newDetailsResponse(&details, false, SourceLive), nil
}

/*
Search returns at most five results of one catalog search page.

Pages are cached in the ephemeral tier under their lower-cased keywords.
*/
func (service *Service) Search(ctx context.Context, keywords string, page int) (*SearchResponse, error) {

	// 1. Ephemeral cache
	if service.ephemeral != nil {
		lookup := service.ephemeral.GetSearch(ctx, keywords, page)
		if lookup.Status == Hit {
			service.logger.DebugContext(ctx, "search_cache_hit",
				slog.String("keywords", keywords),
				slog.Int("page", page),
			)
			return newSearchResponse(keywords, page, lookup.Value.Items, true), nil
		}
	}

	// 2. Live fetch
	html, err := service.catalog.FetchHTML(ctx, service.catalog.SearchURL(keywords, page), catalog.FetchOptions{})
	if err != nil {
		return nil, err
	}

	// 3. Extraction, capped
	items := slice.Take(service.parser.ParseSearch(html, service.catalog.BaseURL()), constants.SearchResultLimit)
	response := newSearchResponse(keywords, page, items, false)

	// 4. Write-back
	if service.ephemeral != nil {
		service.ephemeral.SetSearch(context.WithoutCancel(ctx), response)
	}

	service.logger.InfoContext(ctx, "search_scraped",
		slog.String("keywords", keywords),
		slog.Int("page", page),
		slog.Int("items", len(items)),
	)
	return response, nil
}

/*
Find resolves keywords to the details of the first search result.

It returns nil without error when the search yields no result.
*/
func (service *Service) Find(ctx context.Context, keywords string) (*DetailsResponse, error) {
	results, err := service.Search(ctx, keywords, 1)
	if err != nil {
		return nil, err
	}

	if len(results.Items) == 0 {
		return nil, nil
	}

	return service.Details(ctx, results.Items[0].ASIN)
}

// # Helpers

// cachedDetails consults the tiers in priority order. Miss and Unavailable
// are both treated as "not cached".
func (service *Service) cachedDetails(ctx context.Context, asin string) (*Details, Source, bool) {
	if service.durable != nil {
		if lookup := service.durable.GetDetails(ctx, asin); lookup.Status == Hit {
			return lookup.Value, SourceDurable, true
		}
		return nil, "", false
	}

	if service.ephemeral != nil {
		if lookup := service.ephemeral.GetDetails(ctx, asin); lookup.Status == Hit {
			return lookup.Value, SourceEphemeral, true
		}
	}

	return nil, "", false
}

// persistDetails writes to the durable store when enabled, otherwise to the
// ephemeral cache. Never both.
func (service *Service) persistDetails(ctx context.Context, details *Details) {
	switch {
	case service.durable != nil:
		service.durable.SetDetails(ctx, details)
	case service.ephemeral != nil:
		service.ephemeral.SetDetails(ctx, details)
	}
}

func newDetailsResponse(details *Details, fromCache bool, source Source) *DetailsResponse {
	return &DetailsResponse{
		Details:  *details,
		Metadata: DetailsMetadata{FromCache: fromCache, Source: source},
	}
}

func newSearchResponse(keywords string, page int, items []SearchItem, fromCache bool) *SearchResponse {
	if items == nil {
		items = []SearchItem{}
	}
	return &SearchResponse{
		Query:    Query{Keywords: keywords, Page: page},
		Items:    items,
		Metadata: SearchMetadata{FromCache: fromCache},
	}
}
