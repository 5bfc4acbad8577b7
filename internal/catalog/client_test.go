// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookscout/internal/catalog"
	"github.com/taibuivan/bookscout/internal/platform/apperr"
	"github.com/taibuivan/bookscout/internal/platform/outbound"
)

func newClient(t *testing.T, baseURL string) *catalog.Client {
	t.Helper()
	return newTimedClient(t, baseURL, 2*time.Second)
}

func newTimedClient(t *testing.T, baseURL string, timeout time.Duration) *catalog.Client {
	t.Helper()

	client, err := catalog.NewClient(catalog.Options{
		BaseURL:        baseURL,
		SearchPath:     "/search",
		Timeout:        timeout,
		UserAgent:      "bookscout-test",
		AcceptLanguage: "fr-FR",
	}, outbound.New(2, 0), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return client
}

/*
TestFetchHTML_Success verifies headers are sent and the body is returned verbatim.
*/
func TestFetchHTML_Success(t *testing.T) {
	const page = "  <html><body>Dune</body></html>\n"

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "bookscout-test", request.Header.Get("User-Agent"))
		assert.Equal(t, "fr-FR", request.Header.Get("Accept-Language"))
		assert.Contains(t, request.Header.Get("Accept"), "text/html")
		_, _ = io.WriteString(writer, page)
	}))
	defer server.Close()

	client := newClient(t, server.URL)
	body, err := client.FetchHTML(context.Background(), server.URL+"/pd/B012345678", catalog.FetchOptions{})

	require.NoError(t, err)
	assert.Equal(t, page, body)
}

/*
TestFetchHTML_StatusMapping covers 404 handling and upstream failures.
*/
func TestFetchHTML_StatusMapping(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		allowNotFound bool
		wantCode      string
		wantHTTP      int
	}{
		{"not_found_allowed", http.StatusNotFound, true, apperr.CodeNotFound, http.StatusNotFound},
		{"not_found_default", http.StatusNotFound, false, apperr.CodeUpstream, http.StatusBadGateway},
		{"server_error", http.StatusServiceUnavailable, true, apperr.CodeUpstream, http.StatusBadGateway},
		{"forbidden", http.StatusForbidden, false, apperr.CodeUpstream, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newClient(t, server.URL)
			_, err := client.FetchHTML(context.Background(), server.URL+"/pd/B012345678", catalog.FetchOptions{AllowNotFound: tt.allowNotFound})

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantCode, appError.Code)
			assert.Equal(t, tt.wantHTTP, appError.HTTPStatus)

			if tt.wantCode == apperr.CodeUpstream {
				assert.Equal(t, apperr.UpstreamDetails{StatusCode: tt.status}, appError.Details)
			}
		})
	}
}

/*
TestFetchHTML_TransportFailure ensures connection errors surface as UPSTREAM_ERROR.
*/
func TestFetchHTML_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	client := newClient(t, target)
	_, err := client.FetchHTML(context.Background(), target+"/search", catalog.FetchOptions{})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeUpstream, appError.Code)
	assert.Nil(t, appError.Details)
	assert.Error(t, appError.Cause)
}

/*
TestFetchHTML_RedirectLimit verifies redirect chains longer than three are refused.
*/
func TestFetchHTML_RedirectLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/short":
			http.Redirect(writer, request, "/hop1", http.StatusFound)
		case "/hop1":
			http.Redirect(writer, request, "/final", http.StatusFound)
		case "/final":
			_, _ = io.WriteString(writer, "ok")
		default:
			// Endless chain.
			http.Redirect(writer, request, request.URL.Path+"x", http.StatusFound)
		}
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	body, err := client.FetchHTML(context.Background(), server.URL+"/short", catalog.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", body)

	_, err = client.FetchHTML(context.Background(), server.URL+"/loop", catalog.FetchOptions{})
	assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
}

/*
TestFetchHTML_PhaseTimeouts verifies the header wait and the body read are each
bounded by the timeout on their own.
*/
func TestFetchHTML_PhaseTimeouts(t *testing.T) {
	const timeout = 300 * time.Millisecond

	tests := []struct {
		name        string
		headerDelay time.Duration
		bodyDelay   time.Duration
		wantErr     bool
	}{
		{"both_phases_within_bounds", 200 * time.Millisecond, 200 * time.Millisecond, false},
		{"slow_headers", 500 * time.Millisecond, 0, true},
		{"slow_body", 0, 500 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				pause := func(delay time.Duration) bool {
					select {
					case <-time.After(delay):
						return true
					case <-request.Context().Done():
						return false
					}
				}

				if !pause(tt.headerDelay) {
					return
				}
				writer.WriteHeader(http.StatusOK)
				_, _ = io.WriteString(writer, "<html>")
				writer.(http.Flusher).Flush()

				if !pause(tt.bodyDelay) {
					return
				}
				_, _ = io.WriteString(writer, "Dune</html>")
			}))
			defer server.Close()

			client := newTimedClient(t, server.URL, timeout)
			body, err := client.FetchHTML(context.Background(), server.URL+"/pd/B012345678", catalog.FetchOptions{})

			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeUpstream))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "<html>Dune</html>", body)
		})
	}
}

/*
TestURLBuilders checks search, details and absolute URL construction.
*/
func TestURLBuilders(t *testing.T) {
	client := newClient(t, "https://www.audible.fr")

	searchURL, err := url.Parse(client.SearchURL("le petit prince", 2))
	require.NoError(t, err)
	assert.Equal(t, "www.audible.fr", searchURL.Host)
	assert.Equal(t, "/search", searchURL.Path)
	assert.Equal(t, "le petit prince", searchURL.Query().Get("keywords"))
	assert.Equal(t, "2", searchURL.Query().Get("page"))

	assert.Equal(t, "https://www.audible.fr/pd/B012345678", client.DetailsURL("B012345678"))
	assert.Equal(t, "https://www.audible.fr", client.BaseURL())

	assert.Equal(t, "https://www.audible.fr/pd/Some-Title/B012345678",
		catalog.AbsoluteURL("https://www.audible.fr", "/pd/Some-Title/B012345678"))
	assert.Equal(t, "https://cdn.example.com/a.jpg",
		catalog.AbsoluteURL("https://www.audible.fr", "https://cdn.example.com/a.jpg"))
	assert.Equal(t, "%zz", catalog.AbsoluteURL("https://www.audible.fr", "%zz"))
}
