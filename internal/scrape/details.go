// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taibuivan/bookscout/internal/core/book"
	"github.com/taibuivan/bookscout/internal/platform/constants"
	"github.com/taibuivan/bookscout/pkg/pointer"
	"github.com/taibuivan/bookscout/pkg/slice"
)

// DOM selectors of a product page.
const (
	selectorAuthors     = `li.authorLabel a, span.authorLabel a, a[href*="/author/"]`
	selectorNarrators   = `li.narratorLabel a, span.narratorLabel a, a[href*="/narrator/"]`
	selectorCategories  = `nav[aria-label="Breadcrumb"] a, .bc-breadcrumb a`
	selectorSeriesName  = `.seriesLabel a, a[href*="/series/"]`
	selectorSeriesLabel = `.seriesLabel`
	selectorRatingCount = `[data-qa="rating-count"]`
)

// ParseDetails extracts a details record from a product page.
//
// JSON-LD values win over the DOM for every field they provide. Narrators,
// categories, series and thumbnails only exist in the DOM. A missing title
// yields an empty Title; callers decide whether that is fatal.
func ParseDetails(asin, page string) book.Details {
	document := load(page)
	structured := findStructuredBook(document)
	if structured == nil {
		structured = &structuredBook{}
	}

	return book.Details{
		ASIN:           asin,
		Title:          detailsTitle(document, structured),
		Authors:        detailsAuthors(document, structured),
		Narrators:      texts(document.Find(selectorNarrators)),
		Publisher:      pointer.NonEmpty(structured.publisher),
		ReleaseDate:    pointer.NonEmpty(structured.releaseDate),
		Language:       pointer.NonEmpty(structured.language),
		RuntimeMinutes: structured.runtimeMinutes,
		Series:         detailsSeries(document),
		Categories:     nonEmpty(texts(document.Find(selectorCategories))),
		Rating:         pointer.Coalesce(structured.rating, decimal(detailsRatingLabel(document))),
		RatingCount:    pointer.Coalesce(structured.ratingCount, digits(detailsRatingCountText(document))),
		Description:    pointer.NonEmpty(detailsDescription(document, structured)),
		CoverURL:       pointer.NonEmpty(detailsCover(document, structured)),
		Thumbnails:     detailsThumbnails(document),
	}
}

func detailsTitle(document *goquery.Document, structured *structuredBook) string {
	return firstNonEmpty(
		structured.title,
		text(document.Find("h1").First()),
		attr(document.Find(`meta[property="og:title"]`), "content"),
	)
}

func detailsAuthors(document *goquery.Document, structured *structuredBook) []string {
	if len(structured.authors) > 0 {
		return slice.Unique(structured.authors)
	}
	return texts(document.Find(selectorAuthors))
}

func detailsDescription(document *goquery.Document, structured *structuredBook) string {
	return firstNonEmpty(
		structured.description,
		text(document.Find("#description")),
		attr(document.Find(`meta[name="description"]`), "content"),
	)
}

func detailsCover(document *goquery.Document, structured *structuredBook) string {
	return firstNonEmpty(
		structured.coverURL,
		attr(document.Find(`meta[property="og:image"]`), "content"),
		attr(document.Find("img#bookCover"), "src"),
	)
}

// detailsThumbnails keeps the first distinct https:// image sources in document order.
func detailsThumbnails(document *goquery.Document) []string {
	sources := document.Find("img[src]").Map(func(_ int, image *goquery.Selection) string {
		return image.AttrOr("src", "")
	})
	secure := slice.Filter(sources, func(source string) bool {
		return strings.HasPrefix(source, "https://")
	})

	return nonEmpty(slice.Take(slice.Unique(secure), constants.MaxThumbnails))
}

func detailsRatingLabel(document *goquery.Document) string {
	return firstNonEmpty(
		starLabel(document.Selection),
		attr(document.Find(`[itemprop="ratingValue"][content]`), "content"),
	)
}

func detailsRatingCountText(document *goquery.Document) string {
	return firstNonEmpty(
		attr(document.Find(`[itemprop="ratingCount"][content]`), "content"),
		text(document.Find(selectorRatingCount).First()),
	)
}

func detailsSeries(document *goquery.Document) *book.Series {
	name := text(document.Find(selectorSeriesName).First())
	if name == "" {
		return nil
	}

	return &book.Series{
		Name:     name,
		Position: digits(text(document.Find(selectorSeriesLabel))),
	}
}

// nonEmpty maps an empty list to nil so that the field is omitted.
func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
