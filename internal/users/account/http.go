// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	requestutil "github.com/taibuivan/truyenmoi/internal/platform/request"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
	"github.com/taibuivan/truyenmoi/internal/platform/sec"
	"github.com/taibuivan/truyenmoi/pkg/pagination"
)

// # Handler Implementation

// Handler exposes account management to admins.
type Handler struct {
	service *Service
}

// NewHandler constructs an account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /admin/users router. The caller enforces the admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Get("/{id}", handler.getUser)
	router.Patch("/{id}", handler.updateUser)
	router.Delete("/{id}", handler.deleteUser)

	return router
}

/*
GET /api/v1/admin/users.

Request:
  - page: int
  - limit: int

Response:
  - 200: []User with pagination meta
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.service.ListUsers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params, total))
}

// GET /api/v1/admin/users/{id}.
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.service.GetUser(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

type createUserRequest struct {
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	DisplayName *string      `json:"display_name"`
	Role        sec.UserRole `json:"role"`
}

/*
POST /api/v1/admin/users.

Response:
  - 201: User
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), CreateInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Role:        input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

type updateUserRequest struct {
	Email       *string       `json:"email"`
	Password    *string       `json:"password"`
	DisplayName *string       `json:"display_name"`
	Role        *sec.UserRole `json:"role"`
	IsActive    *bool         `json:"is_active"`
}

// PATCH /api/v1/admin/users/{id}.
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUser(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Role:        input.Role,
		IsActive:    input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/admin/users/{id}.

Description: Admins cannot delete their own account.

Response:
  - 204: Deleted
  - 403: Self deletion
  - 404: ErrUserNotFound
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if claims := requestutil.Claims(request); claims != nil && claims.UserID == id {
		respond.Error(writer, request, apperr.Forbidden("You cannot delete your own account"))
		return
	}

	if err := handler.service.DeleteUser(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
