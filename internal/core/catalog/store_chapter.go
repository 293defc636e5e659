// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters.
// Lookups that can miss return [ErrChapterNotFound].
type ChapterRepository interface {

	// ListBySeries returns every chapter of a series ordered by index ascending.
	ListBySeries(context context.Context, seriesID string) ([]*Chapter, error)

	// ListMissingSlug returns up to limit chapters across all series whose slug is unset.
	ListMissingSlug(context context.Context, limit int) ([]*Chapter, error)

	// FindBySlug matches a slug exactly within one series.
	FindBySlug(context context.Context, seriesID, slug string) (*Chapter, error)

	// FindByID matches a chapter id within one series.
	FindByID(context context.Context, seriesID, id string) (*Chapter, error)

	// Get returns a chapter by id regardless of its series.
	Get(context context.Context, id string) (*Chapter, error)

	// FindByIndex returns the chapter at exactly index within one series.
	FindByIndex(context context.Context, seriesID string, index int) (*Chapter, error)

	/*
		SetSlugIfMissing stores slug only when the chapter has none yet.

		Returns:
		  - bool: true when this call wrote the slug
		  - error: Store failures
	*/
	SetSlugIfMissing(context context.Context, id, slug string) (bool, error)

	Create(context context.Context, chapter *Chapter) error
	Update(context context.Context, chapter *Chapter) error

	// Delete removes the chapter's comments, then the chapter, in one transaction.
	Delete(context context.Context, id string) error

	// IncrementViewCount atomically adds delta to the chapter view counter.
	IncrementViewCount(context context.Context, id string, delta int64) error

	/*
		IncrementReadCount atomically adds delta to the chapter read counter.

		Returns:
		  - string: The owning series id, read back from the updated row
		  - error: ErrChapterNotFound when no row matched
	*/
	IncrementReadCount(context context.Context, id string, delta int64) (string, error)
}
