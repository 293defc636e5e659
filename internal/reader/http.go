// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reader

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	requestutil "github.com/taibuivan/truyenmoi/internal/platform/request"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
)

// Handler serves the reading view.
type Handler struct {
	service *Service
	events  catalog.ReaderEvents
}

// NewHandler constructs a reader [Handler]. events may be nil.
func NewHandler(service *Service, events catalog.ReaderEvents) *Handler {
	return &Handler{service: service, events: events}
}

// Routes serves GET /{slug}/{chapter} under /read.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{slug}/{chapter}", handler.read)
	return router
}

/*
GET /api/v1/read/{slug}/{chapter}.

Description: Counts a view like the plain chapter endpoint and adds the
interleaved page and ad slots.

Response:
  - 200: View
  - 404: Series or chapter not found
*/
func (handler *Handler) read(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.Build(
		request.Context(),
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
