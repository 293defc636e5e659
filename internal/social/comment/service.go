// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/truyenmoi/internal/core/catalog"
	"github.com/taibuivan/truyenmoi/internal/platform/validate"
	"github.com/taibuivan/truyenmoi/internal/users/account"
	"github.com/taibuivan/truyenmoi/pkg/pointer"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// Service implements the comment use cases.
type Service struct {
	commentRepository CommentRepository
	chapters          ChapterLookup
	users             UserLookup
	logger            *slog.Logger
}

// NewService constructs a comment [Service].
func NewService(repository CommentRepository, chapters ChapterLookup, users UserLookup, logger *slog.Logger) *Service {
	return &Service{
		commentRepository: repository,
		chapters:          chapters,
		users:             users,
		logger:            logger,
	}
}

// ListForChapter returns the visible comments of a chapter, newest first.
// An unknown chapter simply has no comments.
func (service *Service) ListForChapter(context context.Context, chapterID string) ([]*Comment, error) {
	if !uuid.IsValid(chapterID) {
		return []*Comment{}, nil
	}
	return service.commentRepository.ListByChapter(context, chapterID)
}

/*
CreateForChapter posts a comment on a chapter.

Description: The author shown is the explicit name from the payload, else
the commenter's display name, else their email, else [AnonymousAuthor].
The user reference is stored only when userID names an existing account;
a token for a deleted account degrades to an anonymous comment.

Parameters:
  - context: context.Context
  - chapterID: string
  - input: CreateInput
  - userID: *string (nil for anonymous readers)

Returns:
  - *Comment: The stored comment
  - error: ValidationError, catalog.ErrChapterNotFound
*/
func (service *Service) CreateForChapter(context context.Context, chapterID string, input CreateInput, userID *string) (*Comment, error) {
	content := strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxContentLength)
	if input.AuthorName != nil {
		validator.MaxLen(FieldAuthorName, strings.TrimSpace(*input.AuthorName), MaxAuthorNameLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.chapters.GetChapter(context, chapterID); err != nil {
		return nil, err
	}

	user, err := service.commenter(context, userID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:         uuid.New(),
		ChapterID:  chapterID,
		Content:    content,
		AuthorName: authorName(input.AuthorName, user),
	}
	if user != nil {
		comment.UserID = &user.ID
	}

	if err := service.commentRepository.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("chapter_id", chapterID),
		slog.Bool("anonymous", comment.UserID == nil),
	)

	return comment, nil
}

// SoftDelete hides a comment from listings.
func (service *Service) SoftDelete(context context.Context, id string) error {
	if !uuid.IsValid(id) {
		return ErrCommentNotFound
	}

	if err := service.commentRepository.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", id))
	return nil
}

func (service *Service) commenter(context context.Context, userID *string) (*account.User, error) {
	if userID == nil || service.users == nil {
		return nil, nil
	}

	user, err := service.users.GetUser(context, *userID)
	if errors.Is(err, account.ErrUserNotFound) {
		return nil, nil
	}
	return user, err
}

func authorName(explicit *string, user *account.User) string {
	if name := pointer.Trimmed(explicit); name != nil {
		return *name
	}

	if user != nil {
		if name := pointer.Deref(pointer.Trimmed(user.DisplayName), user.Email); name != "" {
			return name
		}
	}

	return AnonymousAuthor
}

var (
	_ ChapterLookup = (*catalog.Service)(nil)
	_ UserLookup    = (*account.Service)(nil)
)
