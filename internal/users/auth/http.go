// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/truyenmoi/internal/platform/middleware"
	requestutil "github.com/taibuivan/truyenmoi/internal/platform/request"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
)

// Handler implements the authentication endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns the /auth router.
//
// # Endpoints
//   - POST /login : Exchanges credentials for an access token.
//   - GET  /me    : Returns the caller's account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.With(middleware.RequireAuth).Get("/me", handler.me)

	return router
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/login.

Request:
  - Body: loginRequest (email, password)

Response:
  - 200: Session: Access token and account
  - 401: Invalid credentials
  - 403: Account disabled
  - 429: Too many failed attempts
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
GET /api/v1/auth/me.

Response:
  - 200: User
  - 401: Missing, invalid or orphaned token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
