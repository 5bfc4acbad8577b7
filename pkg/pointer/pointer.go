// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides helpers for optional values modelled as pointers.

Scraped records express "attribute not found" as a nil pointer so that JSON
encoding omits the field instead of emitting a misleading zero value.

Key Functions:
  - To: Creates a pointer from a value literal.
  - NonEmpty: Returns nil for the empty string.
  - Coalesce: Returns the first non-nil pointer.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// NonEmpty returns a pointer to s, or nil when s is empty.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Coalesce returns the first non-nil pointer, or nil if all of them are nil.
func Coalesce[T any](candidates ...*T) *T {
	for _, candidate := range candidates {
		if candidate != nil {
			return candidate
		}
	}
	return nil
}
