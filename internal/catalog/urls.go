// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/url"
	"strconv"

	"github.com/taibuivan/bookscout/internal/platform/constants"
)

// BaseURL returns the catalog site origin.
func (client *Client) BaseURL() string {
	return client.baseURL.String()
}

// SearchURL builds the search page URL for keywords and page.
func (client *Client) SearchURL(keywords string, page int) string {
	target := client.baseURL.ResolveReference(&url.URL{Path: client.searchPath})

	query := target.Query()
	query.Set("keywords", keywords)
	query.Set("page", strconv.Itoa(page))
	target.RawQuery = query.Encode()

	return target.String()
}

// DetailsURL builds the product page URL of asin.
func (client *Client) DetailsURL(asin string) string {
	return client.baseURL.ResolveReference(&url.URL{Path: constants.DetailsPathPrefix + asin}).String()
}

// AbsoluteURL resolves href against base. The raw href is returned when
// either value cannot be parsed.
func AbsoluteURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	reference, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(reference).String()
}
