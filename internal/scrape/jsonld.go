// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scrape

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/taibuivan/bookscout/pkg/pointer"
)

// durationPattern matches ISO-8601 time durations such as PT1H30M, PT2H or PT45M.
var durationPattern = regexp.MustCompile(`(?i)PT(?:(\d+)H)?(?:(\d+)M)?`)

// structuredBook holds the fields mapped from a JSON-LD Book object.
// Empty strings and nil pointers mean "not provided".
type structuredBook struct {
	title          string
	authors        []string
	description    string
	publisher      string
	releaseDate    string
	language       string
	coverURL       string
	rating         *float64
	ratingCount    *int
	runtimeMinutes *int
}

// findStructuredBook returns the first JSON-LD Book object with a title or
// at least one author, or nil when the page has none.
//
// # Rules
//
// 1. Every script[type="application/ld+json"] block is parsed independently.
// 2. Malformed blocks are skipped.
// 3. Top-level arrays are flattened; non-object entries are ignored.
func findStructuredBook(document *goquery.Document) *structuredBook {
	var found *structuredBook

	document.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		for _, object := range decodeObjects(script.Text()) {
			book, ok := mapStructuredBook(object)
			if ok && (book.title != "" || len(book.authors) > 0) {
				found = book
				return false
			}
		}
		return true
	})

	return found
}

// decodeObjects parses one JSON-LD block into its objects.
func decodeObjects(raw string) []map[string]any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}

	switch value := parsed.(type) {
	case map[string]any:
		return []map[string]any{value}
	case []any:
		objects := make([]map[string]any, 0, len(value))
		for _, entry := range value {
			if object, ok := entry.(map[string]any); ok {
				objects = append(objects, object)
			}
		}
		return objects
	default:
		return nil
	}
}

// mapStructuredBook maps a JSON-LD object. It reports false when @type does
// not mention "book".
func mapStructuredBook(object map[string]any) (*structuredBook, bool) {
	if !isBookType(object["@type"]) {
		return nil, false
	}

	book := &structuredBook{
		title:       scalar(object["name"]),
		authors:     authorNames(object["author"]),
		description: scalar(object["description"]),
		publisher:   nameOrScalar(object["publisher"]),
		releaseDate: scalar(object["datePublished"]),
		language:    scalar(object["inLanguage"]),
		coverURL:    firstScalar(object["image"]),
	}

	if rating, ok := object["aggregateRating"].(map[string]any); ok {
		book.rating = finite(rating["ratingValue"])
		if count := finite(rating["ratingCount"]); count != nil {
			book.ratingCount = pointer.To(int(*count))
		}
	}

	if duration, ok := object["duration"].(string); ok {
		book.runtimeMinutes = durationMinutes(duration)
	}

	return book, true
}

// isBookType reports whether @type (string or array of strings) contains "book".
func isBookType(value any) bool {
	var names []string

	switch typed := value.(type) {
	case string:
		names = append(names, typed)
	case []any:
		for _, entry := range typed {
			if name, ok := entry.(string); ok {
				names = append(names, name)
			}
		}
	}

	return strings.Contains(strings.ToLower(strings.Join(names, " ")), "book")
}

// authorNames accepts a string, an object with a name, or an array of either.
// Entries without a usable name are dropped.
func authorNames(value any) []string {
	entries, ok := value.([]any)
	if !ok {
		if value == nil {
			return []string{}
		}
		entries = []any{value}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		var name string
		switch typed := entry.(type) {
		case string:
			name = typed
		case map[string]any:
			name = strings.TrimSpace(scalar(typed["name"]))
		}
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

// scalar renders strings and numbers; anything else is empty.
func scalar(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}

// nameOrScalar reads an organization ({"name": ...}) or a plain value.
func nameOrScalar(value any) string {
	if object, ok := value.(map[string]any); ok {
		return strings.TrimSpace(scalar(object["name"]))
	}
	return scalar(value)
}

// firstScalar reads the first entry of an array, or the value itself.
func firstScalar(value any) string {
	if entries, ok := value.([]any); ok {
		if len(entries) == 0 {
			return ""
		}
		return scalar(entries[0])
	}
	return scalar(value)
}

// finite coerces a number or numeric string. Zero, empty and non-finite values are absent.
func finite(value any) *float64 {
	var number float64

	switch typed := value.(type) {
	case float64:
		number = typed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return nil
		}
		number = parsed
	default:
		return nil
	}

	if number == 0 || math.IsInf(number, 0) || math.IsNaN(number) {
		return nil
	}
	return &number
}

// durationMinutes converts a PT[nH][mM] token to minutes. A zero total or an
// unrecognized token is absent.
func durationMinutes(duration string) *int {
	match := durationPattern.FindStringSubmatch(duration)
	if match == nil {
		return nil
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])

	return positive(hours*60 + minutes)
}
