// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/truyenmoi/internal/platform/request"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
)

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves public comment threads under /comments. Posting is open to
// anonymous readers; a valid token attributes the comment to its account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/chapter/{chapterID}", handler.listForChapter)
	router.Post("/chapter/{chapterID}", handler.createForChapter)
	return router
}

// AdminRoutes serves moderation under /admin/comments.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Delete("/{id}", handler.deleteComment)
	return router
}

/*
GET /api/v1/comments/chapter/{chapterID}.

Response:
  - 200: []Comment newest first
*/
func (handler *Handler) listForChapter(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListForChapter(request.Context(), requestutil.Param(request, "chapterID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comments)
}

/*
POST /api/v1/comments/chapter/{chapterID}.

Request:
  - Body: CreateInput (content, author_name?)

Response:
  - 201: Comment
  - 400: Empty or oversized content
  - 404: Chapter not found
*/
func (handler *Handler) createForChapter(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateForChapter(
		request.Context(),
		requestutil.Param(request, "chapterID"),
		input,
		requestutil.OptionalUserID(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// deleteComment handles DELETE /api/v1/admin/comments/{id}.
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.SoftDelete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
