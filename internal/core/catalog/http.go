// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"github.com/go-chi/chi/v5"
)

// # Handler Implementation

// ReaderEvents receives reading activity for instrumentation.
type ReaderEvents interface {
	ChapterViewed()
	ChapterRead()
}

// Handler implements the HTTP layer for the catalogue.
type Handler struct {
	service *Service
	events  ReaderEvents
}

// NewHandler constructs a catalogue [Handler]. events may be nil.
func NewHandler(service *Service, events ReaderEvents) *Handler {
	return &Handler{service: service, events: events}
}

// Static segments that overlap the /{slug}/chapters pattern.
const (
	rankingSegment  = "ranking"
	chaptersSegment = "chapters"
)

// # Public Routers

// SeriesRoutes serves discovery and reading under /series.
func (handler *Handler) SeriesRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.home)
	router.Get("/"+rankingSegment+"/{period}", handler.ranking)
	router.Get("/{slug}", handler.getSeriesBySlug)
	router.Get("/{slug}/chapters", handler.listChaptersBySlug)
	router.Get("/{slug}/chapters/{chapter}", handler.resolveChapter)

	return router
}

// ChapterRoutes serves reader interactions under /chapters.
func (handler *Handler) ChapterRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/{id}/read", handler.markAsRead)
	return router
}

// CategoryRoutes serves category browsing under /categories.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listCategories)
	router.Get("/{slug}/series", handler.listSeriesByCategory)
	return router
}

// # Management Routers
//
// The caller mounts these under an /admin group that already enforces
// the publisher role.

// AdminSeriesRoutes manages series and their chapters under /admin/series.
func (handler *Handler) AdminSeriesRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listSeriesAdmin)
	router.Post("/", handler.createSeries)
	router.Get("/{id}", handler.getSeries)
	router.Patch("/{id}", handler.updateSeries)
	router.Delete("/{id}", handler.deleteSeries)

	router.Get("/{id}/chapters", handler.listChapters)
	router.Post("/{id}/chapters", handler.createChapter)

	return router
}

// AdminChapterRoutes manages single chapters under /admin/chapters.
func (handler *Handler) AdminChapterRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.getChapter)
	router.Patch("/{id}", handler.updateChapter)
	router.Delete("/{id}", handler.deleteChapter)

	return router
}

// AdminCategoryRoutes manages categories under /admin/categories.
func (handler *Handler) AdminCategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Get("/{id}", handler.getCategory)
	router.Patch("/{id}", handler.updateCategory)
	router.Delete("/{id}", handler.deleteCategory)

	return router
}
