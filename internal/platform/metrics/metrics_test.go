// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/truyenmoi/internal/platform/metrics"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(collector.Middleware)
	router.Get("/series/{slug}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})
	router.Handle("/metrics", collector.Handler())

	for _, slug := range []string{"a", "b", "c"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/series/"+slug, nil))
	}
	collector.ChapterViewed()
	collector.ChapterRead()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body, _ := io.ReadAll(recorder.Body)
	exposition := string(body)
	assert.Contains(t, exposition, `http_requests_total{method="GET",route="/series/{slug}",status="404"} 3`)
	assert.Contains(t, exposition, `reader_events_total{kind="view"} 1`)
	assert.Contains(t, exposition, `reader_events_total{kind="read"} 1`)
}
