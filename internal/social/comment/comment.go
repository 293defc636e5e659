// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements reader comments on chapters.

Comments are append-only for readers. Moderators hide a comment by
setting its deleted flag; rows are never removed except when the owning
chapter is deleted.
*/
package comment

import (
	"context"
	"time"

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/users/account"
)

// ErrCommentNotFound is returned for unknown or already hidden comments.
var ErrCommentNotFound = apperr.NotFound("Comment")

const (
	// AnonymousAuthor is shown when neither the payload nor the account names the author.
	AnonymousAuthor = "Ẩn danh"

	// MaxContentLength caps a single comment body.
	MaxContentLength = 5000

	// MaxAuthorNameLength caps a self-declared author name.
	MaxAuthorNameLength = 100
)

const (
	FieldContent    = "content"
	FieldAuthorName = "author_name"
)

// Comment is a reader message attached to a chapter.
type Comment struct {
	ID         string    `json:"id"`
	ChapterID  string    `json:"chapter_id"`
	UserID     *string   `json:"user_id"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateInput carries the reader-supplied part of a new comment.
type CreateInput struct {
	Content    string  `json:"content"`
	AuthorName *string `json:"author_name"`
}

// CommentRepository is the persistence contract for comments.
type CommentRepository interface {
	// ListByChapter returns visible comments, newest first.
	ListByChapter(context context.Context, chapterID string) ([]*Comment, error)

	Create(context context.Context, comment *Comment) error

	// SoftDelete flags a visible comment as deleted. Returns ErrCommentNotFound
	// when nothing visible matched.
	SoftDelete(context context.Context, id string) error
}

// ChapterLookup confirms that a chapter exists.
type ChapterLookup interface {
	GetChapter(context context.Context, id string) (*catalog.Chapter, error)
}

// UserLookup resolves the account of an authenticated commenter.
type UserLookup interface {
	GetUser(context context.Context, id string) (*account.User, error)
}
