// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/truyenmoi/internal/platform/apperr"
	"github.com/taibuivan/truyenmoi/internal/platform/constants"
	"github.com/taibuivan/truyenmoi/internal/platform/ctxutil"
	"github.com/taibuivan/truyenmoi/internal/platform/respond"
	"github.com/taibuivan/truyenmoi/internal/platform/sec"
)

var (
	errMalformedAuth = apperr.Unauthorized("Invalid authorization format")
	errBadToken      = apperr.Unauthorized("Invalid or expired token")
	errAuthRequired  = apperr.Unauthorized("Authentication required")
	errForbidden     = apperr.Forbidden("Insufficient permissions")
)

// TokenVerifier turns a bearer token into caller claims.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

// bearerToken returns the token from "Bearer <token>". present is false when
// the header is absent; ok is false when it is present but malformed.
func bearerToken(header string) (token string, present, ok bool) {
	if header == "" {
		return "", false, false
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	return token, true, found && strings.EqualFold(scheme, "bearer") && token != ""
}

/*
Authenticate resolves the caller from the Authorization header.

Description: Requests without the header continue anonymously. A malformed
header or a token that fails verification is rejected with 401. Verified
claims and a logger tagged with user_id and role are put in the context.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, present, ok := bearerToken(request.Header.Get(constants.HeaderAuthorization))
			if !present {
				next.ServeHTTP(writer, request)
				return
			}
			if !ok {
				respond.Error(writer, request, errMalformedAuth)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).Debug("token_rejected", slog.String("error", err.Error()))
				respond.Error(writer, request, errBadToken)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(
				slog.String("user_id", claims.UserID),
				slog.String("role", claims.Role),
			))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests. Register it after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, errAuthRequired)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole admits callers whose role is at least role in the
// admin > publisher > reader order. Anonymous callers get 401.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if !sec.UserRole(claims.Role).AtLeast(role) {
				ctxutil.GetLogger(request.Context()).Warn("access_denied",
					slog.String("path", request.URL.Path),
					slog.String("required_role", string(role)),
				)
				respond.Error(writer, request, errForbidden)
				return
			}
			next.ServeHTTP(writer, request)
		}))
	}
}
