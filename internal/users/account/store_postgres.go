// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/truyenmoi/internal/platform/database/schema"
	"github.com/taibuivan/truyenmoi/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed account store.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
	schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password, schema.UserAccount.DisplayName,
	schema.UserAccount.Role, schema.UserAccount.IsActive, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
)

func scanUser(row pgx.Row, extra ...any) (*User, error) {
	var user User
	dest := []any{
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &user, nil
}

/*
List returns a page of accounts.

Description: The total is computed with a window function so the page
and its count come back in one round-trip.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*User: The page, newest first
  - int: Total accounts
  - error: Store failures
*/
func (repository *PostgresUserRepository) List(context context.Context, limit, offset int) ([]*User, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`, userColumns, schema.UserAccount.Table, schema.UserAccount.CreatedAt)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list users")
	}
	defer rows.Close()

	users := []*User{}
	total := 0
	for rows.Next() {
		user, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to scan user: %w", err), "list users")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list users")
	}
	return users, total, nil
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find user", ErrUserNotFound)
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)", userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.WrapNotFound(err, "find user by email", ErrUserNotFound)
	}
	return user, nil
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.DisplayName, schema.UserAccount.Role, schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.Role, user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "create user")
}

func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.UserAccount.Table,
		schema.UserAccount.Email, schema.UserAccount.Password, schema.UserAccount.DisplayName,
		schema.UserAccount.Role, schema.UserAccount.IsActive, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.Role, user.IsActive,
	).Scan(&user.UpdatedAt)

	return dberr.WrapNotFound(err, "update user", ErrUserNotFound)
}

// Delete keeps authored comments by clearing their user link before the row goes.
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin user delete")
	}
	defer transaction.Rollback(context)

	detach := fmt.Sprintf("UPDATE %s SET %s = NULL WHERE %s = $1",
		schema.SocialComment.Table, schema.SocialComment.UserID, schema.SocialComment.UserID)
	if _, err := transaction.Exec(context, detach, id); err != nil {
		return dberr.Wrap(err, "detach user comments")
	}

	result, err := transaction.Exec(context,
		fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.UserAccount.Table, schema.UserAccount.ID), id)
	if err != nil {
		return dberr.Wrap(err, "delete user")
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit user delete")
	}
	return nil
}
