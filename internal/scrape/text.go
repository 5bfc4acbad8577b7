// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/taibuivan/bookscout/pkg/convert"
	"github.com/taibuivan/bookscout/pkg/pointer"
	"github.com/taibuivan/bookscout/pkg/textnorm"
)

// starMarkers identify rating labels such as "4,8 sur 5 étoiles" or "4.5 out of 5 stars".
var starMarkers = []string{"star", "étoile", "etoile"}

// load parses page into a document. Malformed markup is repaired by the HTML
// parser, so an error can only come from the reader; an empty document is
// used in that case.
func load(page string) *goquery.Document {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return document
}

// text returns the collapsed text of the selection.
func text(selection *goquery.Selection) string {
	return textnorm.Collapse(selection.Text())
}

// attr returns the collapsed attribute of the first element of the selection.
func attr(selection *goquery.Selection, name string) string {
	return textnorm.Collapse(selection.First().AttrOr(name, ""))
}

// texts returns the de-duplicated, non-empty texts of every element.
func texts(selection *goquery.Selection) []string {
	return textnorm.Unique(selection.Map(func(_ int, element *goquery.Selection) string {
		return element.Text()
	}))
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// starLabel returns the aria-label of the first element under scope whose
// label mentions a star marker, ignoring case and accents.
func starLabel(scope *goquery.Selection) string {
	var label string
	scope.Find("[aria-label]").EachWithBreak(func(_ int, element *goquery.Selection) bool {
		candidate := element.AttrOr("aria-label", "")
		if textnorm.ContainsAny(candidate, starMarkers...) {
			label = candidate
			return false
		}
		return true
	})
	return label
}

// decimal parses a locale-formatted decimal; nil when absent.
func decimal(s string) *float64 {
	if value, ok := convert.LocaleFloat(s); ok {
		return &value
	}
	return nil
}

// digits parses the digits of s as an integer; nil when absent.
func digits(s string) *int {
	if value, ok := convert.Digits(s); ok {
		return &value
	}
	return nil
}

// positive returns a pointer to n, or nil when n is not positive.
func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return pointer.To(n)
}
