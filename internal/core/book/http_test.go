// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookscout/internal/core/book"
	"github.com/taibuivan/bookscout/internal/platform/apperr"
)

type errorBody struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details"`
}

func newRouter(f *fixture, ephemeral *memoryStore) http.Handler {
	router := chi.NewRouter()
	book.NewHandler(f.service(nil, ephemeral)).RegisterRoutes(router)
	return router
}

func serve(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

/*
TestHandler_SearchValidation rejects malformed search parameters before any fetch.
*/
func TestHandler_SearchValidation(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantField string
	}{
		{"missing_keywords", "/search", book.FieldKeywords},
		{"blank_keywords", "/search?keywords=%20%20", book.FieldKeywords},
		{"too_long", "/search?keywords=" + strings.Repeat("a", 201), book.FieldKeywords},
		{"page_not_integer", "/search?keywords=dune&page=two", book.FieldPage},
		{"page_zero", "/search?keywords=dune&page=0", book.FieldPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			recorder := serve(t, newRouter(f, nil), tt.target)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, apperr.CodeValidation, body.Code)
			require.NotEmpty(t, body.Details)
			assert.Equal(t, tt.wantField, body.Details[0].Field)
			assert.Zero(t, f.catalog.fetchCount())
		})
	}
}

/*
TestHandler_Search returns the success envelope with the query echoed back.
*/
func TestHandler_Search(t *testing.T) {
	f := newFixture()
	f.withSearchPage("dune", 1, "B0AAAAAAA1")

	recorder := serve(t, newRouter(f, nil), "/search?keywords=%20dune%20")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")

	var body struct {
		Data book.SearchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, book.Query{Keywords: "dune", Page: 1}, body.Data.Query)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "B0AAAAAAA1", body.Data.Items[0].ASIN)
	assert.False(t, body.Data.Metadata.FromCache)
}

/*
TestHandler_DetailsNormalizesASIN upper-cases the path parameter before lookup.
*/
func TestHandler_DetailsNormalizesASIN(t *testing.T) {
	f := newFixture()
	f.withDetailsPage("B012345678", "Live Title")

	recorder := serve(t, newRouter(f, nil), "/details/b012345678")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "B012345678", body.Data["asin"])
	assert.Equal(t, "Live Title", body.Data["title"])
	assert.Equal(t, map[string]any{"fromCache": false, "source": "scrape"}, body.Data["metadata"])
}

/*
TestHandler_DetailsErrors maps validation and service errors onto the error envelope.
*/
func TestHandler_DetailsErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(f *fixture)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid_asin",
			target:     "/details/B0-12",
			wantStatus: http.StatusBadRequest,
			wantCode:   apperr.CodeValidation,
		},
		{
			name:   "not_found",
			target: "/details/B000000000",
			setup: func(f *fixture) {
				f.catalog.errs[f.catalog.DetailsURL("B000000000")] = apperr.NotFound("Catalog page")
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apperr.CodeNotFound,
		},
		{
			name:   "upstream",
			target: "/details/B000000000",
			setup: func(f *fixture) {
				f.catalog.errs[f.catalog.DetailsURL("B000000000")] = apperr.Upstream(500, nil)
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   apperr.CodeUpstream,
		},
		{
			name:       "untitled_page",
			target:     "/details/B000000000",
			setup:      func(f *fixture) { f.withDetailsPage("B000000000", "") },
			wantStatus: http.StatusNotFound,
			wantCode:   apperr.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}

			recorder := serve(t, newRouter(f, nil), tt.target)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

/*
TestHandler_FindEmpty answers with an empty object when nothing matches.
*/
func TestHandler_FindEmpty(t *testing.T) {
	f := newFixture()
	f.withSearchPage("zzzz", 1)

	recorder := serve(t, newRouter(f, nil), "/find?keywords=zzzz")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{}}`, recorder.Body.String())
}

/*
TestHandler_Find returns the details of the first result.
*/
func TestHandler_Find(t *testing.T) {
	f := newFixture()
	f.withSearchPage("dune", 1, "B0AAAAAAA1")
	f.withDetailsPage("B0AAAAAAA1", "Dune")

	recorder := serve(t, newRouter(f, newMemoryStore()), "/find?keywords=dune")

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Dune", body.Data["title"])
}

/*
TestHandler_FindValidation requires keywords.
*/
func TestHandler_FindValidation(t *testing.T) {
	recorder := serve(t, newRouter(newFixture(), nil), "/find")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), apperr.CodeValidation)
}
