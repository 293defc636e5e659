// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"

	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// # Service Layer

// FileRemover is the slice of file storage the catalogue needs: removing
// covers and pages when a series goes away.
type FileRemover interface {
	Delete(context context.Context, key string) error
}

// Service orchestrates the catalogue: resolution, listings, counters and
// lifecycle of series, chapters and categories.
type Service struct {
	seriesRepo   SeriesRepository
	chapterRepo  ChapterRepository
	categoryRepo CategoryRepository
	files        FileRemover
	logger       *slog.Logger
}

// NewService constructs a new [Service]. files may be nil, in which case
// series deletion skips file cleanup.
func NewService(seriesRepo SeriesRepository, chapterRepo ChapterRepository, categoryRepo CategoryRepository, files FileRemover, logger *slog.Logger) *Service {
	return &Service{
		seriesRepo:   seriesRepo,
		chapterRepo:  chapterRepo,
		categoryRepo: categoryRepo,
		files:        files,
		logger:       logger,
	}
}

// clampLimit applies the listing default and upper bound.
func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > constants.MaxListLimit {
		return constants.MaxListLimit
	}
	return limit
}

// isID reports whether value can be compared against a UUID column.
func isID(value string) bool {
	return uuid.IsValid(value)
}
