// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens and probes the PostgreSQL connection pool shared by
// every repository.
//
// Repositories receive the [*pgxpool.Pool] directly and build their SQL from
// the schema package; this package owns only connection lifecycle.
package postgres

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/truyenmoi/internal/platform/constants"
)

const (
	// maxConnLifetime ensures connections are periodically recycled.
	maxConnLifetime = 60 * time.Minute
	// maxConnIdleTime closes connections that have been idle too long.
	maxConnIdleTime = 10 * time.Minute
	// healthCheckPeriod is the frequency of background connection health checks.
	healthCheckPeriod = 1 * time.Minute
	// connectTimeout is the maximum time allowed to establish a new connection.
	connectTimeout = 5 * time.Second
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// PoolSize bounds the number of physical connections.
type PoolSize struct {
	MaxConns int32
	MinConns int32
}

/*
NewPool creates and validates a PostgreSQL connection pool.

Description: Every new connection gets a statement timeout equal to the
request deadline and reports the application name, so slow queries show
up attributed in pg_stat_activity.

Parameters:
  - context: Context for the initial connection attempt
  - dsn: A libpq-compatible connection string or postgres:// URL
  - size: Pool bounds
  - logger: Structured logger for pool-level events

Returns:
  - *pgxpool.Pool: A pool that answered a ping
  - error: Invalid DSN or unreachable database
*/
func NewPool(context stdctx.Context, dsn string, size PoolSize, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = size.MaxConns
	poolConfig.MinConns = size.MinConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = constants.AppName

	statementTimeout := fmt.Sprintf("SET statement_timeout = '%ds'", int(constants.GlobalRequestTimeout.Seconds()))
	poolConfig.AfterConnect = func(connectContext stdctx.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(connectContext, statementTimeout)
		return err
	}

	pool, err := pgxpool.NewWithConfig(context, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(context, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres pool connected",
		slog.Int("max_conns", int(size.MaxConns)),
		slog.Int("min_conns", int(size.MinConns)),
		slog.Int("total_conns", int(pool.Stat().TotalConns())),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(context stdctx.Context, pool *pgxpool.Pool) error {
	pingContext, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingContext); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}
