// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/truyenmoi/internal/platform/database/schema"
	"github.com/taibuivan/truyenmoi/internal/platform/dberr"
)

// PostgresCommentRepository implements [CommentRepository] on social.comment.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository returns a PostgreSQL backed comment store.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

func scanComment(row pgx.Row) (*Comment, error) {
	var comment Comment
	if err := row.Scan(
		&comment.ID, &comment.ChapterID, &comment.UserID,
		&comment.Content, &comment.AuthorName, &comment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (repository *PostgresCommentRepository) ListByChapter(context context.Context, chapterID string) ([]*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s, ''), %s
		FROM %s
		WHERE %s = $1 AND NOT %s
		ORDER BY %s DESC
	`,
		schema.SocialComment.ID, schema.SocialComment.ChapterID, schema.SocialComment.UserID,
		schema.SocialComment.Content, schema.SocialComment.AuthorName, schema.SocialComment.CreatedAt,
		schema.SocialComment.Table,
		schema.SocialComment.ChapterID, schema.SocialComment.IsDeleted,
		schema.SocialComment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, dberr.Wrap(err, "list comments")
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan comment: %w", err), "list comments")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list comments")
	}
	return comments, nil
}

func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s
	`,
		schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.ChapterID, schema.SocialComment.UserID,
		schema.SocialComment.Content, schema.SocialComment.AuthorName,
		schema.SocialComment.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.ChapterID, comment.UserID, comment.Content, comment.AuthorName,
	).Scan(&comment.CreatedAt)

	return dberr.Wrap(err, "create comment")
}

func (repository *PostgresCommentRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = $1 AND NOT %s",
		schema.SocialComment.Table, schema.SocialComment.IsDeleted,
		schema.SocialComment.ID, schema.SocialComment.IsDeleted,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete comment")
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}
