// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table     string
	ID        string
	SeriesID  string
	Title     string
	Slug      string
	Index     string
	Summary   string
	Pages     string
	ViewCount string
	ReadCount string
	CreatedAt string
	UpdatedAt string
}

// CoreChapter is the schema definition for core.chapter.
// "index" is a reserved word, so the column is quoted.
var CoreChapter = CoreChapterTable{
	Table:     "core.chapter",
	ID:        "id",
	SeriesID:  "seriesid",
	Title:     "title",
	Slug:      "slug",
	Index:     `"index"`,
	Summary:   "summary",
	Pages:     "pages",
	ViewCount: "viewcount",
	ReadCount: "readcount",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
