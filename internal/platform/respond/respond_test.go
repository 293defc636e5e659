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

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
)

func TestOK_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.OK(recorder, map[string]int{"index": 3})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"index":3}}`, recorder.Body.String())
}

func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/series/missing", nil)

	respond.Error(recorder, request, apperr.NotFound("Series"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, apperr.CodeNotFound, body.Code)
	assert.Equal(t, "Series not found", body.Error)
}

func TestError_PlainErrorHidesCause(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: relation core.series does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "core.series")
}

func TestText(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Text(recorder, "google.com, pub-1, DIRECT")

	assert.Equal(t, "text/plain; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "google.com, pub-1, DIRECT", recorder.Body.String())
}

func TestError_RateLimitedSetsRetryAfter(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)

	respond.Error(recorder, request, apperr.RateLimited(900))

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "900", recorder.Header().Get("Retry-After"))
}
