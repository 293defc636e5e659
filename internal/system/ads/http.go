// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ads

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/truyenmoi/internal/platform/request"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
)

// Handler implements the HTTP layer for ads.
type Handler struct {
	service *Service
}

// NewHandler constructs an ads [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes serves the public ads surface under /ads.
//
// # Endpoints
//   - GET /inserts       : Enabled insert directives.
//   - GET /header-script : Script for the page header.
//   - GET /ads.txt       : Plain text ads.txt body.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/inserts", handler.inserts)
	router.Get("/header-script", handler.headerScript)
	router.Get("/ads.txt", handler.AdsTxt)
	return router
}

// AdminRoutes serves configuration management under /admin/ads.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.getConfig)
	router.Put("/", handler.updateConfig)
	router.Patch("/", handler.updateConfig)
	return router
}

func (handler *Handler) inserts(writer http.ResponseWriter, request *http.Request) {
	inserts, err := handler.service.EnabledInserts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"inserts": inserts})
}

func (handler *Handler) headerScript(writer http.ResponseWriter, request *http.Request) {
	script, err := handler.service.HeaderScript(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"script": script})
}

// AdsTxt writes the ads.txt body as text/plain. It is exported so the
// server can also mount it at the site root.
func (handler *Handler) AdsTxt(writer http.ResponseWriter, request *http.Request) {
	body, err := handler.service.AdsTxt(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Text(writer, body)
}

func (handler *Handler) getConfig(writer http.ResponseWriter, request *http.Request) {
	config, err := handler.service.GetConfig(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, config)
}

/*
PUT|PATCH /api/v1/admin/ads.

Request:
  - Body: ConfigPatch (ads_txt?, header_script?, ad_inserts?)

Response:
  - 200: Config
  - 400: Negative position or enabled insert without code
*/
func (handler *Handler) updateConfig(writer http.ResponseWriter, request *http.Request) {
	var patch ConfigPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	config, err := handler.service.UpdateConfig(request.Context(), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, config)
}
