// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "time"

// Category groups series by genre. Name and Slug are both unique.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListing is a category page. Category is nil when the requested
// slug or name matched nothing, in which case Series is empty.
type CategoryListing struct {
	Category *Category `json:"category"`
	Series   []*Series `json:"series"`
}
