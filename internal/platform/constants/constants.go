// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, header names and cache keys that
are shared between different layers of the system.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "truyenmoi-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads of up to MaxUploadSize must fit in it.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds connection, migration and seeding work before serving.
	StartupTimeout = 60 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "truyenmoi.vn"

	// AccessTokenTTL is how long an issued access token stays valid.
	AccessTokenTTL = 7 * 24 * time.Hour

	// MaxLoginAttempts is the number of failed logins tolerated per email
	// within LoginAttemptWindow before further attempts are refused.
	MaxLoginAttempts = 5

	// LoginAttemptWindow is the lifetime of a failed login counter.
	LoginAttemptWindow = 15 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Listing Limits

const (
	// DefaultSeriesLimit is the home page "latest" listing size.
	DefaultSeriesLimit = 20

	// TrendingLimit is the size of the trending strip.
	TrendingLimit = 8

	// RankingLimit is the default size of a ranking board.
	RankingLimit = 10

	// CategorySeriesLimit is the default size of a category page.
	CategorySeriesLimit = 50

	// MaxListLimit caps any client-supplied limit.
	MaxListLimit = 100
)

// # Uploads

const (
	// MaxUploadSize is the largest accepted image upload (5 MiB).
	MaxUploadSize = 5 << 20

	// UploadRoutePrefix is the public path under which local uploads are served.
	UploadRoutePrefix = "/uploads"
)

// # Redis Keys (Cache Taxonomy)

const (
	// RedisKeyAdsConfig caches the serialized ads singleton.
	RedisKeyAdsConfig = "ads:config"

	// AdsConfigCacheTTL bounds how stale a cached ads config may be.
	AdsConfigCacheTTL = 5 * time.Minute

	// RedisKeyLoginAttempts prefixes the failed login counter of an email.
	RedisKeyLoginAttempts = "auth:login_attempts:"
)
