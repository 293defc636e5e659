// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	requestutil "github.com/taibuivan/truyenmoi/internal/platform/request"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
)

// # Reading Endpoints

/*
GET /api/v1/series/{slug}/chapters.

Response:
  - 200: []Chapter ordered by index
  - 404: ErrSeriesNotFound
*/
func (handler *Handler) listChaptersBySlug(writer http.ResponseWriter, request *http.Request) {
	handler.writeChapters(writer, request, requestutil.Param(request, "slug"))
}

func (handler *Handler) writeChapters(writer http.ResponseWriter, request *http.Request, seriesSlug string) {
	chapters, err := handler.service.ListChaptersBySeriesSlug(request.Context(), seriesSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

/*
GET /api/v1/series/{slug}/chapters/{chapter}.

Description: Resolves a chapter by slug, or by id for legacy links, and
records a view.

Response:
  - 200: ChapterView
  - 404: ErrSeriesNotFound or ErrChapterNotFound
*/
func (handler *Handler) resolveChapter(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.ResolveChapter(request.Context(),
		requestutil.Param(request, "slug"),
		requestutil.Param(request, "chapter"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handler.events != nil {
		handler.events.ChapterViewed()
	}
	respond.OK(writer, view)
}

/*
POST /api/v1/chapters/{id}/read.

Description: Records one completed read for the chapter and its series.

Response:
  - 204: Recorded
  - 404: ErrChapterNotFound
*/
func (handler *Handler) markAsRead(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.IncrementRead(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if handler.events != nil {
		handler.events.ChapterRead()
	}
	respond.NoContent(writer)
}

// # Management Endpoints

// GET /api/v1/admin/series/{id}/chapters.
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	series, err := handler.service.GetSeries(request.Context(), requestutil.Param(request, "id"), FindOptions{IncludeChapters: true})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series.Chapters)
}

// GET /api/v1/admin/chapters/{id}.
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	chapter, err := handler.service.GetChapter(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

type createChapterRequest struct {
	Title   string   `json:"title"`
	Index   *int     `json:"index"`
	Summary *string  `json:"summary"`
	Pages   []string `json:"pages"`
}

type updateChapterRequest struct {
	Title   *string   `json:"title"`
	Index   *int      `json:"index"`
	Summary *string   `json:"summary"`
	Pages   *[]string `json:"pages"`
}

/*
POST /api/v1/admin/series/{id}/chapters.

Request (Body):
  - title: string
  - index: int (required, unique within the series)
  - summary: string
  - pages: []string (image URLs in reading order)

Response:
  - 201: Chapter
  - 404: ErrSeriesNotFound
  - 409: Index already used in this series
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input createChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Index == nil {
		respond.Error(writer, request, validateRequired(FieldIndex))
		return
	}

	chapter := &Chapter{
		Title:   input.Title,
		Index:   *input.Index,
		Summary: input.Summary,
		Pages:   input.Pages,
	}

	if err := handler.service.CreateChapter(request.Context(), requestutil.Param(request, "id"), chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

// PATCH /api/v1/admin/chapters/{id}.
func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	var input updateChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UpdateChapter(request.Context(), requestutil.Param(request, "id"), ChapterPatch{
		Title:   input.Title,
		Index:   input.Index,
		Summary: input.Summary,
		Pages:   input.Pages,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// DELETE /api/v1/admin/chapters/{id}.
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteChapter(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
