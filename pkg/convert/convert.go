// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant number extraction from free text.

Scraped labels mix numbers with localized words and separators ("4,8 étoiles",
"1 234 avis"). These helpers strip the noise and report whether a usable
number remained, so callers can distinguish "absent" from zero.
*/
package convert

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// nonDecimal matches every character that is neither a digit nor a separator.
	nonDecimal = regexp.MustCompile(`[^0-9.,]`)
	// nonDigit matches every character that is not an ASCII digit.
	nonDigit = regexp.MustCompile(`[^0-9]`)
	// decimalPrefix matches the leading number of a dot-separated string.
	decimalPrefix = regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)`)
)

// LocaleFloat parses a decimal written with either a comma or a period separator.
//
// # Algorithm
//
// 1. Drops every character except digits, '.' and ','.
// 2. Replaces the first ',' with '.'.
// 3. Parses the longest leading number; trailing garbage is ignored.
//
// It returns false when no finite number can be read.
func LocaleFloat(s string) (float64, bool) {
	cleaned := nonDecimal.ReplaceAllString(s, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	prefix := decimalPrefix.FindString(cleaned)
	if prefix == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}

	return value, true
}

// Digits concatenates every ASCII digit of s and parses the result as an int.
//
// It returns false when s has no digits or the number overflows.
func Digits(s string) (int, bool) {
	cleaned := nonDigit.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}

	return value, true
}
