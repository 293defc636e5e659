// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies pgx errors into [apperr.AppError] values.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist and the
	// caller did not supply a resource-specific sentinel.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into an [apperr.AppError].
// Missing rows become [ErrNotFound]; see [WrapNotFound] for a custom sentinel.
func Wrap(err error, action string) error {
	return WrapNotFound(err, action, ErrNotFound)
}

// WrapNotFound is [Wrap] with the sentinel returned for pgx.ErrNoRows.
func WrapNotFound(err error, action string, notFound error) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	// 2. Already classified further down the stack
	if apperr.IsAppError(err) {
		return err
	}

	// 3. Constraint violations carry their SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict(conflictMessage(pgErr))
			conflict.Cause = err
			return conflict
		case pgerrcode.ForeignKeyViolation:
			invalid := apperr.ValidationError("Referenced resource does not exist")
			invalid.Cause = err
			return invalid
		}
	}

	// 4. Everything else is an unavailable store
	return apperr.StoreUnavailable(action, err)
}

// conflictMessage names the violated constraint without leaking the row values.
func conflictMessage(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return "Duplicate value violates " + pgErr.ConstraintName
	}
	return "Resource already exists"
}
