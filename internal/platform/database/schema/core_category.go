// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreCategoryTable represents the 'core.category' table
type CoreCategoryTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreCategoryTable{
	Table:       "core.category",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "createdat",
}

// CoreSeriesCategoryTable represents the 'core.seriescategory' junction
type CoreSeriesCategoryTable struct {
	Table      string
	SeriesID   string
	CategoryID string
}

// CoreSeriesCategory is the schema definition for core.seriescategory
var CoreSeriesCategory = CoreSeriesCategoryTable{
	Table:      "core.seriescategory",
	SeriesID:   "seriesid",
	CategoryID: "categoryid",
}
