// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/truyenmoi/internal/platform/sec"
	"github.com/taibuivan/truyenmoi/internal/platform/validate"
	"github.com/taibuivan/truyenmoi/pkg/pagination"
	"github.com/taibuivan/truyenmoi/pkg/pointer"
	"github.com/taibuivan/truyenmoi/pkg/uuid"
)

// # Service Layer

// Service orchestrates account management.
type Service struct {
	userRepository UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service].
func NewService(userRepo UserRepository, logger *slog.Logger) *Service {
	return &Service{userRepository: userRepo, logger: logger}
}

// CreateInput holds the data required to create an account.
type CreateInput struct {
	Email       string
	Password    string
	DisplayName *string
	Role        sec.UserRole
}

// UpdateInput is a partial account update. nil fields are kept.
type UpdateInput struct {
	Email       *string
	Password    *string
	DisplayName *string
	Role        *sec.UserRole
	IsActive    *bool
}

// # Lookups

// ListUsers returns one page of accounts and the total count.
func (service *Service) ListUsers(context context.Context, params pagination.Params) ([]*User, int, error) {
	return service.userRepository.List(context, params.Limit, params.Offset())
}

// GetUser returns an account by id.
func (service *Service) GetUser(context context.Context, id string) (*User, error) {
	if !uuid.IsValid(id) {
		return nil, ErrUserNotFound
	}
	return service.userRepository.FindByID(context, id)
}

// FindByEmail returns the account registered under email, including its hash.
func (service *Service) FindByEmail(context context.Context, email string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrUserNotFound
	}
	return service.userRepository.FindByEmail(context, email)
}

// # Account Management

/*
CreateUser validates, hashes and stores a new account.

Parameters:
  - context: context.Context
  - input: CreateInput (Role defaults to reader)

Returns:
  - *User: The created account
  - error: ValidationError, or Conflict when the email is taken
*/
func (service *Service) CreateUser(context context.Context, input CreateInput) (*User, error) {
	if input.Role == "" {
		input.Role = sec.RoleReader
	}
	input.Email = normalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	validator.MinLen(FieldPassword, input.Password, sec.MinPasswordLength).MaxLen(FieldPassword, input.Password, sec.MaxPasswordLength)
	validator.Custom(FieldRole, !input.Role.IsValid(), "Must be one of: admin, publisher, reader")
	if input.DisplayName != nil {
		validator.MaxLen(FieldDisplayName, *input.DisplayName, 100)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		DisplayName:  pointer.Trimmed(input.DisplayName),
		Role:         input.Role,
		IsActive:     true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// UpdateUser applies a partial update. A new password is re-hashed.
func (service *Service) UpdateUser(context context.Context, id string, input UpdateInput) (*User, error) {
	user, err := service.GetUser(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}

	if input.Email != nil {
		user.Email = normalizeEmail(*input.Email)
		validator.Required(FieldEmail, user.Email).Email(FieldEmail, user.Email)
	}
	if input.DisplayName != nil {
		validator.MaxLen(FieldDisplayName, *input.DisplayName, 100)
		user.DisplayName = pointer.Trimmed(input.DisplayName)
	}
	if input.Role != nil {
		validator.Custom(FieldRole, !input.Role.IsValid(), "Must be one of: admin, publisher, reader")
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		validator.MinLen(FieldPassword, *input.Password, sec.MinPasswordLength).MaxLen(FieldPassword, *input.Password, sec.MaxPasswordLength)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Password != nil {
		if user.PasswordHash, err = sec.HashPassword(*input.Password); err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("user_id", user.ID))
	return user, nil
}

// DeleteUser removes an account. Its comments stay, without an author link.
func (service *Service) DeleteUser(context context.Context, id string) error {
	if !uuid.IsValid(id) {
		return ErrUserNotFound
	}

	if err := service.userRepository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.String("user_id", id))
	return nil
}

/*
EnsureAdmin seeds an admin account when none exists under email.

Description: Used at startup. An existing account with that email is left
untouched whatever its role, so restarts never reset a changed password.

Returns:
  - bool: true when the account was created by this call
  - error: Validation or store failures
*/
func (service *Service) EnsureAdmin(context context.Context, email, password string) (bool, error) {
	_, err := service.FindByEmail(context, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}

	if _, err := service.CreateUser(context, CreateInput{Email: email, Password: password, Role: sec.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
