// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/internal/platform/ctxutil"
	"github.com/taibuivan/truyenmoi/internal/platform/sec"
	"github.com/taibuivan/truyenmoi/internal/users/account"
	"github.com/taibuivan/truyenmoi/internal/users/auth"
)

type fakeAccounts struct {
	users map[string]*account.User
}

func (accounts *fakeAccounts) FindByEmail(_ context.Context, email string) (*account.User, error) {
	for _, user := range accounts.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, account.ErrUserNotFound
}

func (accounts *fakeAccounts) GetUser(_ context.Context, id string) (*account.User, error) {
	if user, ok := accounts.users[id]; ok {
		return user, nil
	}
	return nil, account.ErrUserNotFound
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, email, role string, _ time.Duration) (string, error) {
	return "token:" + userID + ":" + role, nil
}

type memAttempts struct {
	mu        sync.Mutex
	counts    map[string]int64
	remaining time.Duration
	broken    bool
}

func (store *memAttempts) Count(_ context.Context, email string) (int64, time.Duration, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.broken {
		return 0, 0, errors.New("connection refused")
	}
	return store.counts[email], store.remaining, nil
}

func (store *memAttempts) Increment(_ context.Context, email string) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.broken {
		return 0, errors.New("connection refused")
	}
	store.counts[email]++
	return store.counts[email], nil
}

func (store *memAttempts) Reset(_ context.Context, email string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.counts, email)
	return nil
}

func newAuthService(t *testing.T) (*auth.Service, *fakeAccounts, *memAttempts) {
	t.Helper()

	hash, err := sec.HashPassword("secret-pass")
	require.NoError(t, err)

	accounts := &fakeAccounts{users: map[string]*account.User{
		"u-1": {ID: "u-1", Email: "reader@example.com", PasswordHash: hash, Role: sec.RoleReader, IsActive: true},
		"u-2": {ID: "u-2", Email: "gone@example.com", PasswordHash: hash, Role: sec.RoleReader, IsActive: false},
	}}
	attempts := &memAttempts{counts: map[string]int64{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return auth.NewService(accounts, fakeTokens{}, attempts, logger), accounts, attempts
}

func TestLogin(t *testing.T) {
	service, _, attempts := newAuthService(t)
	attempts.counts["reader@example.com"] = 2

	session, err := service.Login(context.Background(), "  Reader@Example.com ", "secret-pass")
	require.NoError(t, err)

	assert.Equal(t, "token:u-1:reader", session.AccessToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, int64(constants.AccessTokenTTL.Seconds()), session.ExpiresIn)
	assert.Equal(t, "u-1", session.User.ID)
	assert.Zero(t, attempts.counts["reader@example.com"])
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{"wrong password", "reader@example.com", "nope", http.StatusUnauthorized},
		{"unknown email", "nobody@example.com", "secret-pass", http.StatusUnauthorized},
		{"disabled account", "gone@example.com", "secret-pass", http.StatusForbidden},
		{"missing password", "reader@example.com", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newAuthService(t)

			_, err := service.Login(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, tt.status, apperr.As(err).HTTPStatus)
		})
	}
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	service, _, attempts := newAuthService(t)
	ctx := context.Background()

	for i := 0; i < constants.MaxLoginAttempts; i++ {
		_, err := service.Login(ctx, "reader@example.com", "wrong")
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	}
	assert.Equal(t, int64(constants.MaxLoginAttempts), attempts.counts["reader@example.com"])

	// The correct password is refused while the counter is live.
	_, err := service.Login(ctx, "reader@example.com", "secret-pass")
	assert.Equal(t, http.StatusTooManyRequests, apperr.As(err).HTTPStatus)
	assert.Equal(t, int(constants.LoginAttemptWindow.Seconds()), apperr.As(err).RetryAfter,
		"a counter without expiry falls back to the full window")
}

func TestLogin_LockoutReportsTimeLeft(t *testing.T) {
	service, _, attempts := newAuthService(t)
	attempts.counts["reader@example.com"] = constants.MaxLoginAttempts
	attempts.remaining = 90*time.Second + 200*time.Millisecond

	_, err := service.Login(context.Background(), "reader@example.com", "secret-pass")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusTooManyRequests, appErr.HTTPStatus)
	assert.Equal(t, 91, appErr.RetryAfter)
}

func TestLogin_AttemptStoreDownDoesNotBlock(t *testing.T) {
	service, _, attempts := newAuthService(t)
	attempts.broken = true

	session, err := service.Login(context.Background(), "reader@example.com", "secret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
}

func TestMe(t *testing.T) {
	service, _, _ := newAuthService(t)

	user, err := service.Me(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", user.Email)

	_, err = service.Me(context.Background(), "u-404")
	assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
}

func TestHTTP_LoginAndMe(t *testing.T) {
	service, _, _ := newAuthService(t)
	handler := auth.NewHandler(service)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Header.Get("X-Test-User") != "" {
				claims := &sec.AuthClaims{UserID: request.Header.Get("X-Test-User")}
				request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/auth", handler.Routes())

	body := strings.NewReader(`{"email":"reader@example.com","password":"secret-pass"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/auth/login", body))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"token_type":"Bearer"`)
	assert.NotContains(t, recorder.Body.String(), "password")

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("X-Test-User", "u-1")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"email":"reader@example.com"`)
}
