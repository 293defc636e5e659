// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"time"

	"github.com/taibuivan/truyenmoi/pkg/slug"
)

// Chapter is one installment of a [Series].
//
// (SeriesID, Index) is unique. Slug is nil only for legacy rows created
// before slugs existed; listings backfill it.
type Chapter struct {
	ID        string    `json:"id"`
	SeriesID  string    `json:"series_id"`
	Title     string    `json:"title"`
	Slug      *string   `json:"slug"`
	Index     int       `json:"index"`
	Summary   *string   `json:"summary,omitempty"`
	Pages     []string  `json:"pages"`
	ViewCount int64     `json:"view_count"`
	ReadCount int64     `json:"read_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DerivedSlug is the slug this chapter should carry: title slug plus index.
func (chapter *Chapter) DerivedSlug() string {
	return slug.WithIndex(chapter.Title, chapter.Index)
}

// ChapterView is the result of resolving a chapter for reading.
// Prev and Next are nil when no chapter sits at Index-1 or Index+1.
type ChapterView struct {
	Series  *Series  `json:"series"`
	Chapter *Chapter `json:"chapter"`
	Prev    *Chapter `json:"prev"`
	Next    *Chapter `json:"next"`
}
