// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Series Data Access

// SeriesRepository defines the data access contract for series.
type SeriesRepository interface {

	/*
		List returns one bounded, ordered snapshot of series.

		Parameters:
		  - context: context.Context
		  - options: ListOptions (order, optional category, limit)

		Returns:
		  - []*Series: Hydrated series with categories, never nil
		  - error: Store failures
	*/
	List(context context.Context, options ListOptions) ([]*Series, error)

	// FindByID returns the series with the given id or [ErrSeriesNotFound].
	FindByID(context context.Context, id string) (*Series, error)

	// FindBySlug returns the series with the exact slug or [ErrSeriesNotFound].
	FindBySlug(context context.Context, slug string) (*Series, error)

	// Create inserts the series and its category links atomically.
	Create(context context.Context, series *Series) error

	// Update rewrites mutable fields. Category links are replaced only when
	// series.CategoryIDs is non-nil.
	Update(context context.Context, series *Series) error

	/*
		Delete removes a series and everything that hangs off it.

		Description: Runs in one transaction, in order: comments of the
		series' chapters, the chapters, category links, then the series row.

		Returns:
		  - error: ErrSeriesNotFound when the row is already gone
	*/
	Delete(context context.Context, id string) error

	// IncrementViewCount atomically adds delta to the series view counter.
	IncrementViewCount(context context.Context, id string, delta int64) error

	// IncrementReadCount atomically adds delta to the series read counter.
	IncrementReadCount(context context.Context, id string, delta int64) error
}
