// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements login and caller identity.

Login exchanges an email and password for an RS256 access token. Failed
attempts are counted per email in Redis; once the count reaches
[constants.MaxLoginAttempts] the email is refused until the counter
expires. Tokens are stateless: there is no refresh flow and no session
table, an access token is valid until it expires.
*/
package auth

import (
	"context"
	"time"

	"github.com/taibuivan/truyenmoi/internal/users/account"
)

// # Contracts

// Accounts is the slice of the account service that login needs.
type Accounts interface {
	FindByEmail(context context.Context, email string) (*account.User, error)
	GetUser(context context.Context, id string) (*account.User, error)
}

// TokenProvider signs access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// AttemptStore counts failed logins per email.
type AttemptStore interface {
	// Count returns the current number of failed attempts for email and the
	// time left before the counter expires (zero when it has no expiry).
	Count(context context.Context, email string) (int64, time.Duration, error)

	// Increment records one failure and starts the expiry window on the first.
	Increment(context context.Context, email string) (int64, error)

	// Reset clears the counter after a successful login.
	Reset(context context.Context, email string) error
}

// # Results

// Session is the result of a successful login.
type Session struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        *account.User `json:"user"`
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
)
