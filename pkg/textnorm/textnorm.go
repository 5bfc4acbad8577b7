// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm normalizes free text scraped from HTML documents.
//
// # Usage
//
// Scraped labels carry irregular whitespace and localized, accented markers
// (e.g., "4,8 étoiles"). This package collapses whitespace and folds accents
// so that marker matching does not depend on how the page was encoded.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// whitespace matches any run of Unicode whitespace, including NBSP.
var whitespace = regexp.MustCompile(`[\s\x{00A0}\x{202F}]+`)

// Collapse replaces every whitespace run with a single space and trims the result.
func Collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Fold returns a lowercase, accent-free copy of s.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (é → e + combining acute).
// 2. Removes combining marks.
// 3. Recomposes to NFC and lowercases.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(result)
}

// ContainsAny reports whether the folded form of s contains any of the folded markers.
func ContainsAny(s string, markers ...string) bool {
	folded := Fold(s)
	for _, marker := range markers {
		if marker != "" && strings.Contains(folded, Fold(marker)) {
			return true
		}
	}
	return false
}

// Unique collapses every value, drops empty results and removes duplicates,
// keeping the first occurrence of each value in input order.
func Unique(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, value := range values {
		clean := Collapse(value)
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		result = append(result, clean)
	}

	return result
}
