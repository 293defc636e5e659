// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the reading catalogue: series, their chapters, and
the categories that group them.

Core Responsibility:

  - Resolution: series by slug, chapters by slug with a legacy id fallback,
    and prev/next siblings by ordinal index arithmetic.
  - Listings: bounded, ordered snapshots (recent, trending, featured,
    ranking, by category). Listings never touch counters.
  - Counters: view and read counts change only through atomic increments.
  - Lifecycle: deletes run as explicit ordered steps; series deletion also
    removes the cover and page files on a best-effort basis.
*/
package catalog

import (
	"time"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
)

// # Domain Errors

var (
	// ErrSeriesNotFound is returned when no series matches a slug or id.
	ErrSeriesNotFound = apperr.NotFound("Series")

	// ErrChapterNotFound is returned when no chapter matches within its series.
	ErrChapterNotFound = apperr.NotFound("Chapter")

	// ErrCategoryNotFound is returned by id lookups. Slug-or-name resolution
	// reports absence as a nil category instead.
	ErrCategoryNotFound = apperr.NotFound("Category")
)

// # Domain Enums

// Status is the free-form lifecycle label of a series.
type Status string

const (
	// StatusOngoing is assigned when a series is created without a status.
	StatusOngoing Status = "ongoing"

	// StatusCompleted marks a finished series.
	StatusCompleted Status = "completed"
)

// RankingPeriod labels a ranking board.
type RankingPeriod string

const (
	PeriodDay   RankingPeriod = "day"
	PeriodWeek  RankingPeriod = "week"
	PeriodMonth RankingPeriod = "month"
)

// SeriesOrder enumerates the orderings a listing can request.
type SeriesOrder int

const (
	// OrderRecent sorts by creation time, newest first.
	OrderRecent SeriesOrder = iota

	// OrderTrending sorts by view count, then read count.
	OrderTrending

	// OrderPopular sorts by read count, then view count. Featured and
	// ranking listings use it.
	OrderPopular
)

// # Core Entities

// Series is a serialised publication and the root of the catalogue.
type Series struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description *string     `json:"description,omitempty"`
	Author      *string     `json:"author,omitempty"`
	CoverImage  *string     `json:"cover_image,omitempty"`
	Status      Status      `json:"status"`
	Tags        []string    `json:"tags"`
	Categories  []*Category `json:"categories"`
	ViewCount   int64       `json:"view_count"`
	ReadCount   int64       `json:"read_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Chapters is populated only when requested through [FindOptions].
	Chapters []*Chapter `json:"chapters,omitempty"`

	// CategoryIDs is input only. nil leaves existing links untouched on update.
	CategoryIDs []string `json:"-"`
}

// # Query Options

// FindOptions controls which relations a series lookup loads.
type FindOptions struct {
	IncludeChapters bool
}

// ListOptions describes one bounded listing query.
type ListOptions struct {
	Order      SeriesOrder
	CategoryID string // empty means every category
	Limit      int
}

// # Aggregates

// Home is the landing page payload.
type Home struct {
	Series   []*Series `json:"series"`
	Trending []*Series `json:"trending"`
	Featured *Series   `json:"featured"`
}

// Ranking is a ranking board. Period is carried as metadata only.
type Ranking struct {
	Period RankingPeriod `json:"period"`
	Series []*Series     `json:"series"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldStatus      = "status"
	FieldCoverImage  = "cover_image"
	FieldCategoryIDs = "category_ids"
	FieldPeriod      = "period"
	FieldName        = "name"
	FieldIndex       = "index"
	FieldPages       = "pages"
)
