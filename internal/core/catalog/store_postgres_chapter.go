// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/truyenmoi/internal/platform/database/schema"
	"github.com/taibuivan/truyenmoi/internal/platform/dberr"
)

// chapterRepository implements [ChapterRepository] using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

var chapterSelect = fmt.Sprintf(`
	SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
	FROM %s
`,
	schema.CoreChapter.ID, schema.CoreChapter.SeriesID, schema.CoreChapter.Title, schema.CoreChapter.Slug,
	schema.CoreChapter.Index, schema.CoreChapter.Summary, schema.CoreChapter.Pages,
	schema.CoreChapter.ViewCount, schema.CoreChapter.ReadCount, schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
	schema.CoreChapter.Table,
)

func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	err := row.Scan(
		&chapter.ID,
		&chapter.SeriesID,
		&chapter.Title,
		&chapter.Slug,
		&chapter.Index,
		&chapter.Summary,
		&chapter.Pages,
		&chapter.ViewCount,
		&chapter.ReadCount,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if chapter.Pages == nil {
		chapter.Pages = []string{}
	}
	return &chapter, nil
}

func (repository *chapterRepository) queryChapters(context context.Context, action, query string, args ...any) ([]*Chapter, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	chapters := []*Chapter{}
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan chapter: %w", err), action)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return chapters, nil
}

func (repository *chapterRepository) queryChapter(context context.Context, action, query string, args ...any) (*Chapter, error) {
	chapter, err := scanChapter(repository.pool.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.WrapNotFound(err, action, ErrChapterNotFound)
	}
	return chapter, nil
}

// ListBySeries returns the full reading order of a series.
func (repository *chapterRepository) ListBySeries(context context.Context, seriesID string) ([]*Chapter, error) {
	query := chapterSelect + fmt.Sprintf(" WHERE %s = $1 ORDER BY %s ASC", schema.CoreChapter.SeriesID, schema.CoreChapter.Index)
	return repository.queryChapters(context, "list chapters", query, seriesID)
}

// ListMissingSlug feeds the startup slug sweep.
func (repository *chapterRepository) ListMissingSlug(context context.Context, limit int) ([]*Chapter, error) {
	query := chapterSelect + fmt.Sprintf(" WHERE %s IS NULL ORDER BY %s, %s LIMIT $1",
		schema.CoreChapter.Slug, schema.CoreChapter.SeriesID, schema.CoreChapter.Index)
	return repository.queryChapters(context, "list chapters missing slug", query, limit)
}

func (repository *chapterRepository) FindBySlug(context context.Context, seriesID, slug string) (*Chapter, error) {
	query := chapterSelect + fmt.Sprintf(" WHERE %s = $1 AND %s = $2", schema.CoreChapter.SeriesID, schema.CoreChapter.Slug)
	return repository.queryChapter(context, "find chapter by slug", query, seriesID, slug)
}

func (repository *chapterRepository) FindByID(context context.Context, seriesID, id string) (*Chapter, error) {
	query := chapterSelect + fmt.Sprintf(" WHERE %s = $1 AND %s = $2", schema.CoreChapter.SeriesID, schema.CoreChapter.ID)
	return repository.queryChapter(context, "find chapter", query, seriesID, id)
}

func (repository *chapterRepository) Get(context context.Context, id string) (*Chapter, error) {
	query := chapterSelect + fmt.Sprintf(" WHERE %s = $1", schema.CoreChapter.ID)
	return repository.queryChapter(context, "get chapter", query, id)
}

func (repository *chapterRepository) FindByIndex(context context.Context, seriesID string, index int) (*Chapter, error) {
	query := chapterSelect + fmt.Sprintf(" WHERE %s = $1 AND %s = $2", schema.CoreChapter.SeriesID, schema.CoreChapter.Index)
	return repository.queryChapter(context, "find chapter by index", query, seriesID, index)
}

/*
SetSlugIfMissing performs the conditional backfill write.

Description: The IS NULL guard makes concurrent backfills converge: only
the first writer succeeds, later ones affect zero rows.

Returns:
  - bool: Whether this call stored the slug
  - error: Store failures
*/
func (repository *chapterRepository) SetSlugIfMissing(context context.Context, id, slug string) (bool, error) {
	query := fmt.Sprintf("UPDATE %s SET %s = $1 WHERE %s = $2 AND %s IS NULL",
		schema.CoreChapter.Table, schema.CoreChapter.Slug, schema.CoreChapter.ID, schema.CoreChapter.Slug)

	result, err := repository.pool.Exec(context, query, slug, id)
	if err != nil {
		return false, dberr.Wrap(err, "backfill chapter slug")
	}
	return result.RowsAffected() > 0, nil
}

// Create inserts a chapter. A duplicate (series, index) pair surfaces as a Conflict.
func (repository *chapterRepository) Create(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.SeriesID, schema.CoreChapter.Title, schema.CoreChapter.Slug,
		schema.CoreChapter.Index, schema.CoreChapter.Summary, schema.CoreChapter.Pages,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		chapter.ID, chapter.SeriesID, chapter.Title, chapter.Slug,
		chapter.Index, chapter.Summary, chapter.Pages,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)

	return dberr.Wrap(err, "create chapter")
}

func (repository *chapterRepository) Update(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreChapter.Table,
		schema.CoreChapter.Title, schema.CoreChapter.Slug, schema.CoreChapter.Index,
		schema.CoreChapter.Summary, schema.CoreChapter.Pages, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.ID,
		schema.CoreChapter.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		chapter.ID, chapter.Title, chapter.Slug, chapter.Index, chapter.Summary, chapter.Pages,
	).Scan(&chapter.UpdatedAt)

	return dberr.WrapNotFound(err, "update chapter", ErrChapterNotFound)
}

func (repository *chapterRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin chapter delete")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.SocialComment.Table, schema.SocialComment.ChapterID), id); err != nil {
		return dberr.Wrap(err, "delete chapter comments")
	}

	result, err := transaction.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreChapter.Table, schema.CoreChapter.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete chapter")
	}
	if result.RowsAffected() == 0 {
		return ErrChapterNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit chapter delete")
	}
	return nil
}

// IncrementViewCount performs an in-place counter update.
func (repository *chapterRepository) IncrementViewCount(context context.Context, id string, delta int64) error {
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1 WHERE %s = $2",
		schema.CoreChapter.Table, schema.CoreChapter.ViewCount, schema.CoreChapter.ViewCount, schema.CoreChapter.ID)

	result, err := repository.pool.Exec(context, query, delta, id)
	if err != nil {
		return dberr.Wrap(err, "increment chapter views")
	}
	if result.RowsAffected() == 0 {
		return ErrChapterNotFound
	}
	return nil
}

// IncrementReadCount performs an in-place counter update and reports the owning series.
func (repository *chapterRepository) IncrementReadCount(context context.Context, id string, delta int64) (string, error) {
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1 WHERE %s = $2 RETURNING %s",
		schema.CoreChapter.Table, schema.CoreChapter.ReadCount, schema.CoreChapter.ReadCount,
		schema.CoreChapter.ID, schema.CoreChapter.SeriesID)

	var seriesID string
	if err := repository.pool.QueryRow(context, query, delta, id).Scan(&seriesID); err != nil {
		return "", dberr.WrapNotFound(err, "increment chapter reads", ErrChapterNotFound)
	}
	return seriesID, nil
}
