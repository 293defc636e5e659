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

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository constructs a PostgreSQL backed category store.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

var categorySelect = fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s",
	schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug,
	schema.CoreCategory.Description, schema.CoreCategory.CreatedAt,
	schema.CoreCategory.Table,
)

func scanCategory(row pgx.Row) (*Category, error) {
	var category Category
	if err := row.Scan(&category.ID, &category.Name, &category.Slug, &category.Description, &category.CreatedAt); err != nil {
		return nil, err
	}
	return &category, nil
}

func (repository *categoryRepository) List(context context.Context) ([]*Category, error) {
	rows, err := repository.pool.Query(context, categorySelect+fmt.Sprintf(" ORDER BY %s ASC", schema.CoreCategory.Name))
	if err != nil {
		return nil, dberr.Wrap(err, "list categories")
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan category: %w", err), "list categories")
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list categories")
	}
	return categories, nil
}

// FindBySlugOrName prefers a slug match over a name match.
func (repository *categoryRepository) FindBySlugOrName(context context.Context, value string) (*Category, error) {
	query := categorySelect + fmt.Sprintf(`
		WHERE LOWER(%s) = LOWER($1) OR LOWER(%s) = LOWER($1)
		ORDER BY (LOWER(%s) = LOWER($1)) DESC
		LIMIT 1
	`, schema.CoreCategory.Slug, schema.CoreCategory.Name, schema.CoreCategory.Slug)

	category, err := scanCategory(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find category", ErrCategoryNotFound)
	}
	return category, nil
}

func (repository *categoryRepository) FindByID(context context.Context, id string) (*Category, error) {
	category, err := scanCategory(repository.pool.QueryRow(context,
		categorySelect+fmt.Sprintf(" WHERE %s = $1", schema.CoreCategory.ID), id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find category", ErrCategoryNotFound)
	}
	return category, nil
}

func (repository *categoryRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s",
		schema.CoreCategory.Table,
		schema.CoreCategory.ID, schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.Description,
		schema.CoreCategory.CreatedAt)

	err := repository.pool.QueryRow(context, query,
		category.ID, category.Name, category.Slug, category.Description,
	).Scan(&category.CreatedAt)

	return dberr.Wrap(err, "create category")
}

func (repository *categoryRepository) Update(context context.Context, category *Category) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1 RETURNING %s",
		schema.CoreCategory.Table,
		schema.CoreCategory.Name, schema.CoreCategory.Slug, schema.CoreCategory.Description,
		schema.CoreCategory.ID, schema.CoreCategory.CreatedAt)

	err := repository.pool.QueryRow(context, query,
		category.ID, category.Name, category.Slug, category.Description,
	).Scan(&category.CreatedAt)

	return dberr.WrapNotFound(err, "update category", ErrCategoryNotFound)
}

func (repository *categoryRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin category delete")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreSeriesCategory.Table, schema.CoreSeriesCategory.CategoryID), id); err != nil {
		return dberr.Wrap(err, "unlink category")
	}

	result, err := transaction.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.CoreCategory.Table, schema.CoreCategory.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete category")
	}
	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit category delete")
	}
	return nil
}
