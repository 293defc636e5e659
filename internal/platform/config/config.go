// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded the configuration is read-only and is passed to components through
their constructors.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"5"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL      string `env:"REDIS_URL,required"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// RSA key pair used to sign access tokens
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// File storage for covers and chapter pages
	StorageDriver    string `env:"STORAGE_DRIVER"     envDefault:"local"`
	UploadDir        string `env:"UPLOAD_DIR"         envDefault:"./uploads"`
	PublicUploadBase string `env:"PUBLIC_UPLOAD_BASE" envDefault:"http://localhost:8080"`

	// Object Storage (S3-compatible), used when StorageDriver is "s3"
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"   envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`

	// Cross-Origin Resource Sharing
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Default administrator seeded at startup when both are set
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// SlugBackfillOnStartup runs a one-shot chapter slug sweep before serving.
	SlugBackfillOnStartup bool `env:"SLUG_BACKFILL_ON_STARTUP" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field constraints that struct tags cannot express.
func (c *Config) validate() error {
	if c.DBMinConns < 0 || c.DBMaxConns < 1 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("config: DB_MIN_CONNS (%d) must be between 0 and DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}

	switch c.StorageDriver {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SeedAdmin reports whether a default administrator should be ensured.
func (c *Config) SeedAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}
