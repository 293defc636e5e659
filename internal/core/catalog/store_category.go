// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {
	// List returns all categories ordered by name.
	List(context context.Context) ([]*Category, error)

	// FindBySlugOrName matches slug or name case-insensitively.
	// Returns [ErrCategoryNotFound] when neither matches.
	FindBySlugOrName(context context.Context, value string) (*Category, error)

	FindByID(context context.Context, id string) (*Category, error)
	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) error

	// Delete unlinks the category from every series, then removes it.
	Delete(context context.Context, id string) error
}
