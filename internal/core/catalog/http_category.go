// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	requestutil "github.com/taibuivan/truyenmoi/internal/platform/request"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
	"github.com/taibuivan/truyenmoi/internal/platform/validate"
)

// GET /api/v1/categories.
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

/*
GET /api/v1/categories/{slug}/series.

Description: Accepts a slug or a display name. An unknown category yields
an empty listing with a null category, not a 404.

Request:
  - limit: int (default 50)

Response:
  - 200: CategoryListing
*/
func (handler *Handler) listSeriesByCategory(writer http.ResponseWriter, request *http.Request) {
	listing, err := handler.service.ListByCategory(request.Context(),
		requestutil.Param(request, "slug"),
		requestutil.Limit(request, constants.CategorySeriesLimit),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, listing)
}

// GET /api/v1/admin/categories/{id}.
func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetCategory(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

type categoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

/*
POST /api/v1/admin/categories.

Response:
  - 201: Category
  - 400: Missing name
  - 409: Name or slug already taken
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Name == nil {
		respond.Error(writer, request, validateRequired(FieldName))
		return
	}

	category := &Category{Name: *input.Name, Description: input.Description}
	if err := handler.service.CreateCategory(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

// PATCH /api/v1/admin/categories/{id}.
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), requestutil.Param(request, "id"), CategoryPatch{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

// DELETE /api/v1/admin/categories/{id}.
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCategory(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func validateRequired(field string) error {
	return validate.RequiredError(field, "This field is required")
}
