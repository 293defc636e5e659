// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/truyenmoi/internal/platform/ctxutil"
	"github.com/taibuivan/truyenmoi/internal/platform/sec"
)

func TestRequestScopedValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctxutil.WithRequestID(ctx, "req-42"), logger)

	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

func TestAuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))
	assert.Nil(t, ctxutil.UserID(ctx))

	claims := &sec.AuthClaims{UserID: "u-1", Email: "bientap@truyenmoi.vn", Role: string(sec.RolePublisher)}
	ctx = ctxutil.WithAuthUser(ctx, claims)

	assert.Same(t, claims, ctxutil.GetAuthUser(ctx))
	id := ctxutil.UserID(ctx)
	require.NotNil(t, id)
	assert.Equal(t, "u-1", *id)
}

func TestUserID_EmptyClaims(t *testing.T) {
	ctx := ctxutil.WithAuthUser(context.Background(), &sec.AuthClaims{})
	assert.Nil(t, ctxutil.UserID(ctx))
}
