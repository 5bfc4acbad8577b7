// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package scrape extracts book records from catalog HTML.

Extraction is heuristic and never fails: an attribute the page does not
expose is left absent. Two passes are combined on product pages:

  - Structured data: the first JSON-LD Book object, preferred when present.
  - DOM heuristics: fill whatever the structured data left absent.

Functions are pure and deterministic; they perform no I/O.
*/
package scrape

import "github.com/taibuivan/bookscout/internal/core/book"

// Parser adapts the package functions to [book.Parser].
type Parser struct{}

// NewParser returns the HTML parser used by the retrieval services.
func NewParser() Parser {
	return Parser{}
}

// ParseDetails implements [book.Parser].
func (Parser) ParseDetails(asin, html string) book.Details {
	return ParseDetails(asin, html)
}

// ParseSearch implements [book.Parser].
func (Parser) ParseSearch(html, baseURL string) []book.SearchItem {
	return ParseSearch(html, baseURL)
}

var _ book.Parser = Parser{}
