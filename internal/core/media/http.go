// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
)

// multipartOverhead leaves room for boundaries and part headers.
const multipartOverhead = 64 << 10

// Handler serves uploads.
type Handler struct {
	service *Service
}

// NewHandler constructs a media [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves POST / under /admin/upload.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.upload)
	return router
}

/*
POST /api/v1/admin/upload.

Request:
  - Body: multipart/form-data with a single "file" part

Response:
  - 201: filestore.Object {filename, url}
  - 400: Missing file, too large, or not an image
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadSize+multipartOverhead)

	if err := request.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.ValidationError("File is too large",
				apperr.FieldError{Field: FieldFile, Message: "must be at most 5 MiB"}))
			return
		}
		respond.Error(writer, request, apperr.ValidationError("Expected a multipart form"))
		return
	}
	defer request.MultipartForm.RemoveAll()

	file, _, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("No file uploaded",
			apperr.FieldError{Field: FieldFile, Message: "is required"}))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadSize+1))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Failed to read upload"))
		return
	}

	object, err := handler.service.Upload(request.Context(), data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, object)
}
