// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/truyenmoi/internal/platform/constants"
)

// RedisAttemptStore implements [AttemptStore] with expiring Redis counters.
type RedisAttemptStore struct {
	client *redis.Client
	window time.Duration
}

// NewAttemptStore creates a Redis-backed failed login counter.
func NewAttemptStore(client *redis.Client) *RedisAttemptStore {
	return &RedisAttemptStore{client: client, window: constants.LoginAttemptWindow}
}

func attemptKey(email string) string {
	return constants.RedisKeyLoginAttempts + email
}

// Count reads the counter and its PTTL in one round trip. A missing key
// means no failures.
func (store *RedisAttemptStore) Count(context context.Context, email string) (int64, time.Duration, error) {
	key := attemptKey(email)

	var get *redis.StringCmd
	var ttl *redis.DurationCmd
	_, err := store.client.Pipelined(context, func(pipe redis.Pipeliner) error {
		get = pipe.Get(context, key)
		ttl = pipe.PTTL(context, key)
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}

	count, err := get.Int64()
	if err != nil {
		return 0, 0, fmt.Errorf("redis_login_attempts_decode_failed: %w", err)
	}
	return count, max(ttl.Val(), 0), nil
}

/*
Increment adds one failure.

Description: INCR and EXPIRE NX run in one MULTI block, so the window is
anchored at the first failure and later failures do not extend it.

Returns:
  - int64: The count after this failure
  - error: Execution errors
*/
func (store *RedisAttemptStore) Increment(context context.Context, email string) (int64, error) {
	key := attemptKey(email)

	var incr *redis.IntCmd
	_, err := store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(context, key)
		pipe.ExpireNX(context, key, store.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_login_attempts_incr_failed: %w", err)
	}
	return incr.Val(), nil
}

// Reset deletes the counter.
func (store *RedisAttemptStore) Reset(context context.Context, email string) error {
	if err := store.client.Del(context, attemptKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_del_failed: %w", err)
	}
	return nil
}
