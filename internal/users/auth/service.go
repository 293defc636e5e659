// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/internal/platform/sec"
	"github.com/taibuivan/truyenmoi/internal/platform/validate"
	"github.com/taibuivan/truyenmoi/internal/users/account"
)

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")

	// ErrAccountDisabled is returned for deactivated accounts with a correct password.
	ErrAccountDisabled = apperr.Forbidden("Account is disabled")
)

// Service implements the login use cases.
type Service struct {
	accounts Accounts
	tokens   TokenProvider
	attempts AttemptStore
	logger   *slog.Logger
}

// NewService constructs the auth [Service]. attempts may be nil to disable
// failed login throttling.
func NewService(accounts Accounts, tokens TokenProvider, attempts AttemptStore, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, tokens: tokens, attempts: attempts, logger: logger}
}

/*
Login verifies credentials and issues an access token.

Description: Unknown emails and wrong passwords produce the same error.
Each failure increments the per-email counter; a locked email is refused
before the password is checked. Counter store failures are logged and do
not block login.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *Session: Token and account
  - error: ErrInvalidCredentials, ErrAccountDisabled, RateLimited
*/
func (service *Service) Login(context context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if locked, retryAfter := service.locked(context, email); locked {
		return nil, apperr.RateLimited(retryAfter)
	}

	user, err := service.accounts.FindByEmail(context, email)
	if errors.Is(err, account.ErrUserNotFound) {
		service.recordFailure(context, email)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		service.recordFailure(context, email)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_failed: %w", err)
	}

	if service.attempts != nil {
		if err := service.attempts.Reset(context, email); err != nil {
			service.logger.Warn("login_attempts_reset_failed", slog.String("error", err.Error()))
		}
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return &Session{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(constants.AccessTokenTTL.Seconds()),
		User:        user,
	}, nil
}

// Me returns the account behind a verified token.
func (service *Service) Me(context context.Context, userID string) (*account.User, error) {
	user, err := service.accounts.GetUser(context, userID)
	if errors.Is(err, account.ErrUserNotFound) {
		return nil, apperr.Unauthorized("Account no longer exists")
	}
	return user, err
}

// locked reports whether email is over the failure limit and, if so, the
// whole seconds until its window lapses.
func (service *Service) locked(context context.Context, email string) (bool, int) {
	if service.attempts == nil {
		return false, 0
	}

	count, remaining, err := service.attempts.Count(context, email)
	if err != nil {
		service.logger.Warn("login_attempts_read_failed", slog.String("error", err.Error()))
		return false, 0
	}
	if count < constants.MaxLoginAttempts {
		return false, 0
	}
	if remaining <= 0 {
		remaining = constants.LoginAttemptWindow
	}
	return true, int(math.Ceil(remaining.Seconds()))
}

func (service *Service) recordFailure(context context.Context, email string) {
	if service.attempts == nil {
		return
	}

	count, err := service.attempts.Increment(context, email)
	if err != nil {
		service.logger.Warn("login_attempts_write_failed", slog.String("error", err.Error()))
		return
	}
	if count == constants.MaxLoginAttempts {
		service.logger.Warn("login_locked", slog.Int64("attempts", count))
	}
}
