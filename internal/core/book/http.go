// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bookscout/internal/platform/request"
	"github.com/taibuivan/bookscout/internal/platform/respond"
	"github.com/taibuivan/bookscout/internal/platform/validate"
)

// maxKeywordsLength bounds the search text forwarded to the catalog.
const maxKeywordsLength = 200

// Handler exposes the retrieval services over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/search", handler.search)
	router.Get("/details/{asin}", handler.details)
	router.Get("/find", handler.find)
}

// search handles GET /search?keywords=&page=
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	keywords := requestutil.Query(request, FieldKeywords)
	page, pageOK := requestutil.QueryInt(request, FieldPage, 1)

	validator := &validate.Validator{}
	validator.
		Required(FieldKeywords, keywords).
		MaxLen(FieldKeywords, keywords, maxKeywordsLength).
		Custom(FieldPage, !pageOK, "Must be an integer")
	if pageOK {
		validator.Min(FieldPage, page, 1)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	response, err := handler.service.Search(request.Context(), keywords, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, response)
}

// details handles GET /details/{asin}
func (handler *Handler) details(writer http.ResponseWriter, request *http.Request) {
	asin := strings.ToUpper(requestutil.Param(request, FieldASIN))

	if err := (&validate.Validator{}).ASIN(FieldASIN, asin).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	response, err := handler.service.Details(request.Context(), asin)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, response)
}

// find handles GET /find?keywords=
//
// An empty search answers with an empty object.
func (handler *Handler) find(writer http.ResponseWriter, request *http.Request) {
	keywords := requestutil.Query(request, FieldKeywords)

	if err := (&validate.Validator{}).
		Required(FieldKeywords, keywords).
		MaxLen(FieldKeywords, keywords, maxKeywordsLength).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	response, err := handler.service.Find(request.Context(), keywords)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if response == nil {
		respond.OK(writer, struct{}{})
		return
	}
	respond.OK(writer, response)
}
