// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages staff and reader accounts.

Accounts carry a role in the admin > publisher > reader hierarchy. Admins
manage accounts through the /admin/users endpoints; a default admin can be
seeded at startup with [Service.EnsureAdmin].

Deleting an account keeps the comments it wrote: their author link is
cleared first, then the account row is removed.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/platform/sec"
)

// ErrUserNotFound is returned when no account matches an id or email.
var ErrUserNotFound = apperr.NotFound("User")

// # Domain Entities

// User is a registered account.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  *string      `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldRole        = "role"
)

// # Repository Contracts

// UserRepository defines the persistence contract for accounts.
type UserRepository interface {
	/*
		List returns one page of accounts, newest first.

		Returns:
		  - []*User: The page
		  - int: Total number of accounts
		  - error: Store failures
	*/
	List(context context.Context, limit, offset int) ([]*User, int, error)

	// FindByID returns the account or [ErrUserNotFound].
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail matches case-insensitively and returns [ErrUserNotFound] on a miss.
	FindByEmail(context context.Context, email string) (*User, error)

	// Create inserts an account. A taken email surfaces as a Conflict.
	Create(context context.Context, user *User) error

	// Update rewrites every mutable column including the password hash.
	Update(context context.Context, user *User) error

	// Delete detaches the account's comments, then removes the account.
	Delete(context context.Context, id string) error
}
