// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table      string
	ID         string
	ChapterID  string
	UserID     string
	Content    string
	AuthorName string
	IsDeleted  string
	CreatedAt  string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:      "social.comment",
	ID:         "id",
	ChapterID:  "chapterid",
	UserID:     "userid",
	Content:    "content",
	AuthorName: "authorname",
	IsDeleted:  "isdeleted",
	CreatedAt:  "createdat",
}
