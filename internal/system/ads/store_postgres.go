// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ads

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/truyenmoi/internal/platform/database/schema"
	"github.com/taibuivan/truyenmoi/internal/platform/dberr"
)

// singletonID is the fixed primary key of the configuration row.
const singletonID = 1

// PostgresConfigRepository implements [ConfigRepository] on system.adsconfig.
type PostgresConfigRepository struct {
	pool *pgxpool.Pool
}

// NewConfigRepository returns a PostgreSQL backed configuration store.
func NewConfigRepository(pool *pgxpool.Pool) *PostgresConfigRepository {
	return &PostgresConfigRepository{pool: pool}
}

func (repository *PostgresConfigRepository) Get(context context.Context) (*Config, error) {
	ensure := fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1) ON CONFLICT (%s) DO NOTHING",
		schema.SystemAdsConfig.Table, schema.SystemAdsConfig.ID, schema.SystemAdsConfig.ID)

	if _, err := repository.pool.Exec(context, ensure, singletonID); err != nil {
		return nil, dberr.Wrap(err, "ensure ads config")
	}

	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s WHERE %s = $1",
		schema.SystemAdsConfig.AdsTxt, schema.SystemAdsConfig.HeaderScript,
		schema.SystemAdsConfig.AdInserts, schema.SystemAdsConfig.UpdatedAt,
		schema.SystemAdsConfig.Table, schema.SystemAdsConfig.ID)

	var config Config
	err := repository.pool.QueryRow(context, query, singletonID).Scan(
		&config.AdsTxt, &config.HeaderScript, &config.AdInserts, &config.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get ads config")
	}

	if config.AdInserts == nil {
		config.AdInserts = []Insert{}
	}
	return &config, nil
}

// Save stamps a strictly increasing updatedat, which versions cached copies.
func (repository *PostgresConfigRepository) Save(context context.Context, config *Config) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s AS current (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (%[2]s) DO UPDATE
		SET %[3]s = EXCLUDED.%[3]s, %[4]s = EXCLUDED.%[4]s, %[5]s = EXCLUDED.%[5]s,
		    %[6]s = GREATEST(NOW(), current.%[6]s + INTERVAL '1 microsecond')
		RETURNING %[6]s
	`,
		schema.SystemAdsConfig.Table, schema.SystemAdsConfig.ID,
		schema.SystemAdsConfig.AdsTxt, schema.SystemAdsConfig.HeaderScript,
		schema.SystemAdsConfig.AdInserts, schema.SystemAdsConfig.UpdatedAt,
	)

	inserts := config.AdInserts
	if inserts == nil {
		inserts = []Insert{}
	}

	err := repository.pool.QueryRow(context, query,
		singletonID, config.AdsTxt, config.HeaderScript, inserts,
	).Scan(&config.UpdatedAt)

	return dberr.Wrap(err, "save ads config")
}
