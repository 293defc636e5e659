// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/pkg/pointer"
)

type countingEvents struct {
	views atomic.Int64
	reads atomic.Int64
}

func (events *countingEvents) ChapterViewed() { events.views.Add(1) }
func (events *countingEvents) ChapterRead()   { events.reads.Add(1) }

func newRouter(t *testing.T) (http.Handler, *memDB, *countingEvents) {
	t.Helper()

	service, db, _ := newService(t)
	events := &countingEvents{}
	handler := catalog.NewHandler(service, events)

	router := chi.NewRouter()
	router.Mount("/series", handler.SeriesRoutes())
	router.Mount("/chapters", handler.ChapterRoutes())
	router.Mount("/categories", handler.CategoryRoutes())
	router.Mount("/admin/series", handler.AdminSeriesRoutes())
	router.Mount("/admin/chapters", handler.AdminChapterRoutes())
	return router, db, events
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestHTTP_ResolveChapter(t *testing.T) {
	router, db, events := newRouter(t)
	series := db.addSeries("Reader", "reader", 0, 0)
	db.addChapter(series.ID, "One", 0, pointer.To("one-0"))
	db.addChapter(series.ID, "Two", 1, pointer.To("two-1"))

	recorder := serve(router, http.MethodGet, "/series/reader/chapters/two-1", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Chapter catalog.Chapter  `json:"chapter"`
			Prev    *catalog.Chapter `json:"prev"`
			Next    *catalog.Chapter `json:"next"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Chapter.Index)
	require.NotNil(t, body.Data.Prev)
	assert.Equal(t, "one-0", *body.Data.Prev.Slug)
	assert.Nil(t, body.Data.Next)
	assert.EqualValues(t, 1, events.views.Load())

	missing := serve(router, http.MethodGet, "/series/reader/chapters/nine-9", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), `"code":"NOT_FOUND"`)
	assert.EqualValues(t, 1, events.views.Load())
}

func TestHTTP_MarkAsRead(t *testing.T) {
	router, db, events := newRouter(t)
	series := db.addSeries("Reader", "reader", 0, 0)
	chapter := db.addChapter(series.ID, "One", 0, pointer.To("one-0"))

	recorder := serve(router, http.MethodPost, "/chapters/"+chapter.ID+"/read", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.EqualValues(t, 1, db.chapter(chapter.ID).ReadCount)
	assert.EqualValues(t, 1, events.reads.Load())

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/chapters/unknown/read", "").Code)
}

func TestHTTP_RankingRejectsUnknownPeriod(t *testing.T) {
	router, _, _ := newRouter(t)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/series/ranking/week", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/series/ranking/decade", "").Code)
}

func TestHTTP_SeriesSluggedRanking(t *testing.T) {
	router, db, _ := newRouter(t)
	series := db.addSeries("Ranking", "ranking", 0, 0)
	db.addChapter(series.ID, "One", 0, pointer.To("one-0"))
	db.addChapter(series.ID, "Two", 1, pointer.To("two-1"))

	recorder := serve(router, http.MethodGet, "/series/ranking/chapters", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []catalog.Chapter `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "one-0", *body.Data[0].Slug)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/series/ranking", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/series/ranking/chapters/two-1", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/series/ranking/day", "").Code)
}

func TestHTTP_UnknownCategoryIsEmpty(t *testing.T) {
	router, _, _ := newRouter(t)

	recorder := serve(router, http.MethodGet, "/categories/unknown/series", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"category":null,"series":[]}}`, recorder.Body.String())
}

func TestHTTP_CreateChapterRequiresIndex(t *testing.T) {
	router, db, _ := newRouter(t)
	series := db.addSeries("Admin", "admin", 0, 0)

	missingIndex := serve(router, http.MethodPost, "/admin/series/"+series.ID+"/chapters", `{"title":"No index"}`)
	assert.Equal(t, http.StatusBadRequest, missingIndex.Code)

	created := serve(router, http.MethodPost, "/admin/series/"+series.ID+"/chapters", `{"title":"Mở Màn","index":0}`)
	require.Equal(t, http.StatusCreated, created.Code)
	assert.Contains(t, created.Body.String(), `"slug":"mo-man-0"`)

	duplicate := serve(router, http.MethodPost, "/admin/series/"+series.ID+"/chapters", `{"title":"Again","index":0}`)
	assert.Equal(t, http.StatusConflict, duplicate.Code)
}
