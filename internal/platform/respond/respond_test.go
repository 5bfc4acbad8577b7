// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookscout/internal/platform/apperr"
	"github.com/taibuivan/bookscout/internal/platform/respond"
)

/*
TestError_StatusAndEnvelope checks the error-kind to HTTP status mapping.
*/
func TestError_StatusAndEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperr.ValidationError("Invalid ASIN"), http.StatusBadRequest, apperr.CodeValidation},
		{"not_found", apperr.NotFound("Book details"), http.StatusNotFound, apperr.CodeNotFound},
		{"upstream", apperr.Upstream(503, nil), http.StatusBadGateway, apperr.CodeUpstream},
		{"unclassified", errors.New("nil map write"), http.StatusInternalServerError, apperr.CodeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/details/B012345678", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

/*
TestError_HidesCause ensures internal causes never reach the client.
*/
func TestError_HidesCause(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/search", nil)

	respond.Error(recorder, request, errors.New("secret upstream host unreachable"))

	assert.NotContains(t, recorder.Body.String(), "secret")
}

/*
TestOK_Envelope checks the success envelope shape.
*/
func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())
}
