// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/truyenmoi/internal/platform/database/schema"
	"github.com/taibuivan/truyenmoi/internal/platform/dberr"
)

// seriesRepository implements [SeriesRepository] using pgx.
type seriesRepository struct {
	pool *pgxpool.Pool
}

// NewSeriesRepository constructs a PostgreSQL backed series store.
func NewSeriesRepository(pool *pgxpool.Pool) SeriesRepository {
	return &seriesRepository{pool: pool}
}

// seriesSelect is the shared projection, aliased "s", including the
// aggregated category list.
var seriesSelect = fmt.Sprintf(`
	SELECT
		s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
		s.%s, s.%s, s.%s, s.%s,
		COALESCE((
			SELECT json_agg(json_build_object('id', c.%s, 'name', c.%s, 'slug', c.%s) ORDER BY c.%s)
			FROM %s c
			JOIN %s sc ON c.%s = sc.%s
			WHERE sc.%s = s.%s
		), '[]') AS categories
	FROM %s s
`,
	schema.CoreSeries.ID, schema.CoreSeries.Title, schema.CoreSeries.Slug, schema.CoreSeries.Description,
	schema.CoreSeries.Author, schema.CoreSeries.CoverImage, schema.CoreSeries.Status, schema.CoreSeries.Tags,
	schema.CoreSeries.ViewCount, schema.CoreSeries.ReadCount, schema.CoreSeries.CreatedAt, schema.CoreSeries.UpdatedAt,
	schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.Name,
	schema.CoreCategory.Table,
	schema.CoreSeriesCategory.Table, schema.CoreCategory.ID, schema.CoreSeriesCategory.CategoryID,
	schema.CoreSeriesCategory.SeriesID, schema.CoreSeries.ID,
	schema.CoreSeries.Table,
)

// orderClause maps a listing order onto its ORDER BY expression.
func orderClause(order SeriesOrder) string {
	switch order {
	case OrderTrending:
		return fmt.Sprintf("s.%s DESC, s.%s DESC, s.%s DESC", schema.CoreSeries.ViewCount, schema.CoreSeries.ReadCount, schema.CoreSeries.CreatedAt)
	case OrderPopular:
		return fmt.Sprintf("s.%s DESC, s.%s DESC, s.%s DESC", schema.CoreSeries.ReadCount, schema.CoreSeries.ViewCount, schema.CoreSeries.CreatedAt)
	default:
		return fmt.Sprintf("s.%s DESC, s.%s DESC", schema.CoreSeries.CreatedAt, schema.CoreSeries.ID)
	}
}

// scanSeries hydrates one row produced by [seriesSelect].
func scanSeries(row pgx.Row) (*Series, error) {
	var series Series
	err := row.Scan(
		&series.ID,
		&series.Title,
		&series.Slug,
		&series.Description,
		&series.Author,
		&series.CoverImage,
		&series.Status,
		&series.Tags,
		&series.ViewCount,
		&series.ReadCount,
		&series.CreatedAt,
		&series.UpdatedAt,
		&series.Categories,
	)
	if err != nil {
		return nil, err
	}

	if series.Tags == nil {
		series.Tags = []string{}
	}
	return &series, nil
}

/*
List returns one bounded listing.

Description: The category filter is an EXISTS probe against the link
table so a series linked to the category appears exactly once.

Parameters:
  - context: context.Context
  - options: ListOptions

Returns:
  - []*Series: Ordered listing, empty rather than nil
  - error: Store failures
*/
func (repository *seriesRepository) List(context context.Context, options ListOptions) ([]*Series, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(seriesSelect)

	if options.CategoryID != "" {
		args = append(args, options.CategoryID)
		queryBuilder.WriteString(fmt.Sprintf(
			" WHERE EXISTS (SELECT 1 FROM %s f WHERE f.%s = s.%s AND f.%s = $%d)",
			schema.CoreSeriesCategory.Table,
			schema.CoreSeriesCategory.SeriesID, schema.CoreSeries.ID,
			schema.CoreSeriesCategory.CategoryID, len(args),
		))
	}

	args = append(args, options.Limit)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s LIMIT $%d", orderClause(options.Order), len(args)))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list series")
	}
	defer rows.Close()

	result := []*Series{}
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan series: %w", err), "list series")
		}
		result = append(result, series)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list series")
	}

	return result, nil
}

// FindByID returns a single series by primary key.
func (repository *seriesRepository) FindByID(context context.Context, id string) (*Series, error) {
	query := seriesSelect + fmt.Sprintf(" WHERE s.%s = $1", schema.CoreSeries.ID)

	series, err := scanSeries(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find series", ErrSeriesNotFound)
	}
	return series, nil
}

// FindBySlug returns a single series by its exact slug.
func (repository *seriesRepository) FindBySlug(context context.Context, slug string) (*Series, error) {
	query := seriesSelect + fmt.Sprintf(" WHERE s.%s = $1", schema.CoreSeries.Slug)

	series, err := scanSeries(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find series", ErrSeriesNotFound)
	}
	return series, nil
}

/*
Create inserts a series with its category links.

Parameters:
  - context: context.Context
  - series: *Series (ID and Slug already assigned)

Returns:
  - error: Conflict on a duplicate slug, ValidationError on an unknown category
*/
func (repository *seriesRepository) Create(context context.Context, series *Series) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin series create")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s
	`,
		schema.CoreSeries.Table,
		schema.CoreSeries.ID, schema.CoreSeries.Title, schema.CoreSeries.Slug, schema.CoreSeries.Description,
		schema.CoreSeries.Author, schema.CoreSeries.CoverImage, schema.CoreSeries.Status, schema.CoreSeries.Tags,
		schema.CoreSeries.CreatedAt, schema.CoreSeries.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		series.ID, series.Title, series.Slug, series.Description,
		series.Author, series.CoverImage, series.Status, series.Tags,
	).Scan(&series.CreatedAt, &series.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create series")
	}

	if err := updateJunction(context, transaction, schema.CoreSeriesCategory.Table,
		schema.CoreSeriesCategory.SeriesID, schema.CoreSeriesCategory.CategoryID, series.ID, series.CategoryIDs); err != nil {
		return dberr.Wrap(err, "link series categories")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit series create")
	}
	return nil
}

// Update rewrites the mutable columns and, when requested, the category links.
func (repository *seriesRepository) Update(context context.Context, series *Series) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin series update")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreSeries.Table,
		schema.CoreSeries.Title, schema.CoreSeries.Slug, schema.CoreSeries.Description, schema.CoreSeries.Author,
		schema.CoreSeries.CoverImage, schema.CoreSeries.Status, schema.CoreSeries.Tags, schema.CoreSeries.UpdatedAt,
		schema.CoreSeries.ID,
		schema.CoreSeries.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		series.ID, series.Title, series.Slug, series.Description,
		series.Author, series.CoverImage, series.Status, series.Tags,
	).Scan(&series.UpdatedAt)
	if err != nil {
		return dberr.WrapNotFound(err, "update series", ErrSeriesNotFound)
	}

	if series.CategoryIDs != nil {
		if err := updateJunction(context, transaction, schema.CoreSeriesCategory.Table,
			schema.CoreSeriesCategory.SeriesID, schema.CoreSeriesCategory.CategoryID, series.ID, series.CategoryIDs); err != nil {
			return dberr.Wrap(err, "link series categories")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit series update")
	}
	return nil
}

// Delete removes the series and its dependants in one transaction.
func (repository *seriesRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin series delete")
	}
	defer transaction.Rollback(context)

	steps := []struct {
		action string
		query  string
	}{
		{
			action: "delete series comments",
			query: fmt.Sprintf("DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)",
				schema.SocialComment.Table, schema.SocialComment.ChapterID,
				schema.CoreChapter.ID, schema.CoreChapter.Table, schema.CoreChapter.SeriesID),
		},
		{
			action: "delete series chapters",
			query:  fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreChapter.Table, schema.CoreChapter.SeriesID),
		},
		{
			action: "unlink series categories",
			query:  fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreSeriesCategory.Table, schema.CoreSeriesCategory.SeriesID),
		},
	}

	for _, step := range steps {
		if _, err := transaction.Exec(context, step.query, id); err != nil {
			return dberr.Wrap(err, step.action)
		}
	}

	result, err := transaction.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreSeries.Table, schema.CoreSeries.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete series")
	}
	if result.RowsAffected() == 0 {
		return ErrSeriesNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit series delete")
	}
	return nil
}

// IncrementViewCount performs an in-place counter update.
func (repository *seriesRepository) IncrementViewCount(context context.Context, id string, delta int64) error {
	return repository.increment(context, schema.CoreSeries.ViewCount, id, delta)
}

// IncrementReadCount performs an in-place counter update.
func (repository *seriesRepository) IncrementReadCount(context context.Context, id string, delta int64) error {
	return repository.increment(context, schema.CoreSeries.ReadCount, id, delta)
}

func (repository *seriesRepository) increment(context context.Context, column, id string, delta int64) error {
	query := fmt.Sprintf("UPDATE %s SET %s = %s + $1 WHERE %s = $2", schema.CoreSeries.Table, column, column, schema.CoreSeries.ID)

	result, err := repository.pool.Exec(context, query, delta, id)
	if err != nil {
		return dberr.Wrap(err, "increment series "+column)
	}
	if result.RowsAffected() == 0 {
		return ErrSeriesNotFound
	}
	return nil
}
