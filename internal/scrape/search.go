// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taibuivan/bookscout/internal/catalog"
	"github.com/taibuivan/bookscout/internal/core/book"
	"github.com/taibuivan/bookscout/internal/platform/constants"
	"github.com/taibuivan/bookscout/pkg/pointer"
)

var (
	// asinPattern matches the usual B-prefixed catalog identifier.
	asinPattern = regexp.MustCompile(`\b(B[0-9A-Z]{9})\b`)
	// looseASINPattern matches any 10-character identifier (ISBN-10 for print-linked titles).
	looseASINPattern = regexp.MustCompile(`\b([A-Z0-9]{10})\b`)

	isoDatePattern    = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	frenchDatePattern = regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4})\b`)

	hoursPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:h|heure|hr)`)
	minutesPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:min|minutes)`)
)

// Selectors of a search result page.
const (
	selectorItemContainer   = `[data-asin], .productListItem, li`
	selectorItemRatingCount = `[data-qa="rating-count"], .ratingsLabel`
)

// ParseSearch extracts the results of a search page, in document order.
//
// Each product link yields at most one item per identifier (first wins).
// Item attributes are read from the link's nearest result container only.
// Relative links are resolved against baseURL.
// RatingCount is read from a dedicated count element only; the container's
// free text is never scanned for a number.
func ParseSearch(page, baseURL string) []book.SearchItem {
	document := load(page)
	items := make([]book.SearchItem, 0)
	seen := make(map[string]struct{})

	document.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		if !strings.Contains(href, constants.DetailsPathPrefix) {
			return
		}

		// 1. Identify the product
		asin := extractASIN(href)
		if asin == "" {
			return
		}
		if _, duplicate := seen[asin]; duplicate {
			return
		}

		// 2. Scope every lookup to the result container
		container := link.Closest(selectorItemContainer)
		title := firstNonEmpty(
			attr(link, "aria-label"),
			text(link),
			text(container.Find("h2, h3").First()),
		)
		if title == "" {
			return
		}

		containerText := text(container)
		releaseDate := extractReleaseDate(containerText)

		items = append(items, book.SearchItem{
			ASIN:           asin,
			Title:          title,
			Authors:        texts(container.Find(selectorAuthors)),
			Narrators:      texts(container.Find(selectorNarrators)),
			ReleaseDate:    pointer.NonEmpty(releaseDate),
			ReleaseYear:    releaseYear(releaseDate),
			RuntimeMinutes: extractRuntime(containerText),
			Rating:         decimal(starLabel(container)),
			RatingCount:    digits(text(container.Find(selectorItemRatingCount).First())),
			ThumbnailURL:   pointer.NonEmpty(attr(container.Find("img[src]"), "src")),
			DetailURL:      catalog.AbsoluteURL(baseURL, href),
		})
		seen[asin] = struct{}{}
	})

	return items
}

// extractASIN finds the identifier in a product href.
func extractASIN(href string) string {
	if match := asinPattern.FindStringSubmatch(href); match != nil {
		return match[1]
	}
	if match := looseASINPattern.FindStringSubmatch(href); match != nil {
		return match[1]
	}
	return ""
}

// extractReleaseDate returns the first YYYY-MM-DD date, or a DD/MM/YYYY date
// rewritten as YYYY-MM-DD.
func extractReleaseDate(content string) string {
	if match := isoDatePattern.FindStringSubmatch(content); match != nil {
		return match[1]
	}
	if match := frenchDatePattern.FindStringSubmatch(content); match != nil {
		return match[3] + "-" + match[2] + "-" + match[1]
	}
	return ""
}

func releaseYear(releaseDate string) *int {
	if len(releaseDate) < 4 {
		return nil
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return nil
	}
	return &year
}

// extractRuntime reads "1 h 30 min" style durations; zero is absent.
func extractRuntime(content string) *int {
	var hours, minutes int
	if match := hoursPattern.FindStringSubmatch(content); match != nil {
		hours, _ = strconv.Atoi(match[1])
	}
	if match := minutesPattern.FindStringSubmatch(content); match != nil {
		minutes, _ = strconv.Atoi(match[1])
	}
	return positive(hours*60 + minutes)
}
