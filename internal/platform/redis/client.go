// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the Redis client shared by the volatile stores.

Two features keep state here: the ads configuration cache and the failed
login counters. Both tolerate Redis being unavailable, so the client is a
hard startup dependency only to surface misconfiguration early.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/truyenmoi/internal/platform/constants"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 500 * time.Millisecond
	writeTimeout = 500 * time.Millisecond
	pingTimeout  = 2 * time.Second
)

/*
NewClient parses a Redis URL and returns a client that answered a ping.

Description: Read and write timeouts are short because every caller falls
back to Postgres or skips the feature on error; a slow Redis must not hold
a request.

Parameters:
  - context: Context for the initial ping
  - redisURL: redis:// or rediss:// URL
  - poolSize: Maximum socket connections
  - logger: Structured logger for connection events
*/
func NewClient(context stdctx.Context, redisURL string, poolSize int, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.ClientName = constants.AppName
	options.PoolSize = poolSize
	options.MinIdleConns = min(2, poolSize)
	options.MaxIdleConns = max(poolSize/2, options.MinIdleConns)

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis client connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
