// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names every table and column the repositories touch, so
// queries are assembled from identifiers instead of string literals.
package schema

// CoreSeriesTable represents the 'core.series' table
type CoreSeriesTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Description string
	Author      string
	CoverImage  string
	Status      string
	Tags        string
	ViewCount   string
	ReadCount   string
	CreatedAt   string
	UpdatedAt   string
}

// CoreSeries is the schema definition for core.series
var CoreSeries = CoreSeriesTable{
	Table:       "core.series",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	Author:      "author",
	CoverImage:  "coverimage",
	Status:      "status",
	Tags:        "tags",
	ViewCount:   "viewcount",
	ReadCount:   "readcount",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
