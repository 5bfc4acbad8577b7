// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and query
string parsing, so handlers only deal with plain values.
*/
package requestutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

/*
Param retrieves a named URL parameter from the request, trimmed.
*/
func Param(request *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(request, name))
}

/*
Query retrieves a query string value from the request, trimmed.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
QueryInt parses an integer query parameter.

Returns:
  - int: The parsed value, or def when the parameter is absent
  - bool: false when the parameter is present but not an integer
*/
func QueryInt(request *http.Request, name string, def int) (int, bool) {
	raw := Query(request, name)
	if raw == "" {
		return def, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def, false
	}

	return value, true
}
