// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	requestutil "github.com/taibuivan/truyenmoi/internal/platform/request"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
)

// # Discovery Endpoints

/*
GET /api/v1/series.

Description: Landing page payload: the latest series, the trending strip
and the single featured series.

Request:
  - limit: int (size of the latest list, default 20)

Response:
  - 200: Home
*/
func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	home, err := handler.service.Home(request.Context(), requestutil.Limit(request, constants.DefaultSeriesLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, home)
}

/*
GET /api/v1/series/ranking/{period}.

Description: Shares its path shape with /series/{slug}/chapters, so
/series/ranking/chapters lists the chapters of the series slugged "ranking".

Request:
  - period: string (day, week, month)
  - limit: int (default 10)

Response:
  - 200: Ranking
  - 400: ValidationError: Unknown period
*/
func (handler *Handler) ranking(writer http.ResponseWriter, request *http.Request) {
	period := RankingPeriod(requestutil.Param(request, "period"))
	if period == chaptersSegment {
		handler.writeChapters(writer, request, rankingSegment)
		return
	}

	ranking, err := handler.service.ListRanking(request.Context(), period, requestutil.Limit(request, constants.RankingLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, ranking)
}

/*
GET /api/v1/series/{slug}.

Description: Series detail including its ordered chapter list.

Response:
  - 200: Series
  - 404: ErrSeriesNotFound
*/
func (handler *Handler) getSeriesBySlug(writer http.ResponseWriter, request *http.Request) {
	series, err := handler.service.ResolveSeriesBySlug(request.Context(), requestutil.Param(request, "slug"), FindOptions{IncludeChapters: true})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series)
}

// GET /api/v1/admin/series. Latest series for the management table.
func (handler *Handler) listSeriesAdmin(writer http.ResponseWriter, request *http.Request) {
	series, err := handler.service.ListRecent(request.Context(), requestutil.Limit(request, constants.MaxListLimit))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series)
}

// GET /api/v1/admin/series/{id}.
func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	series, err := handler.service.GetSeries(request.Context(), requestutil.Param(request, "id"), FindOptions{IncludeChapters: true})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series)
}

// # Request Payloads

// createSeriesRequest defines the inbound JSON schema for series creation.
type createSeriesRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Author      *string  `json:"author"`
	CoverImage  *string  `json:"cover_image"`
	Status      Status   `json:"status"`
	Tags        []string `json:"tags"`
	CategoryIDs []string `json:"category_ids"`
}

// updateSeriesRequest defines the partial update schema. Omitted fields are kept.
type updateSeriesRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Author      *string   `json:"author"`
	CoverImage  *string   `json:"cover_image"`
	Status      *Status   `json:"status"`
	Tags        *[]string `json:"tags"`
	CategoryIDs *[]string `json:"category_ids"`
}

// # Mutation Endpoints

/*
POST /api/v1/admin/series.

Description: Creates a series. The slug is derived from the title.

Request (Body):
  - createSeriesRequest: JSON object

Response:
  - 201: Series
  - 400: Validation failure or unknown category
  - 409: Slug already taken
*/
func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	var input createSeriesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.service.CreateSeries(request.Context(), &Series{
		Title:       input.Title,
		Description: input.Description,
		Author:      input.Author,
		CoverImage:  input.CoverImage,
		Status:      input.Status,
		Tags:        input.Tags,
		CategoryIDs: input.CategoryIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, series)
}

/*
PATCH /api/v1/admin/series/{id}.

Response:
  - 200: Series
  - 404: ErrSeriesNotFound
*/
func (handler *Handler) updateSeries(writer http.ResponseWriter, request *http.Request) {
	var input updateSeriesRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	series, err := handler.service.UpdateSeries(request.Context(), requestutil.Param(request, "id"), SeriesPatch{
		Title:       input.Title,
		Description: input.Description,
		Author:      input.Author,
		CoverImage:  input.CoverImage,
		Status:      input.Status,
		Tags:        input.Tags,
		CategoryIDs: input.CategoryIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, series)
}

/*
DELETE /api/v1/admin/series/{id}.

Description: Deletes the series with its chapters and comments. Stored
images are removed on a best-effort basis.

Response:
  - 204: Deleted
  - 404: ErrSeriesNotFound
*/
func (handler *Handler) deleteSeries(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteSeries(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
