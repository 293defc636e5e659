// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/truyenmoi/internal/platform/constants"
)

// storeAttempts bounds retries of a contended Store.
const storeAttempts = 3

// RedisConfigCache implements [ConfigCache] as a JSON value under a single key.
type RedisConfigCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewConfigCache creates a Redis configuration cache.
func NewConfigCache(client *redis.Client) *RedisConfigCache {
	return &RedisConfigCache{client: client, ttl: constants.AdsConfigCacheTTL}
}

func (cache *RedisConfigCache) Get(context context.Context) (*Config, error) {
	payload, err := cache.client.Get(context, constants.RedisKeyAdsConfig).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis_ads_config_get_failed: %w", err)
	}

	var config Config
	if err := json.Unmarshal(payload, &config); err != nil {
		return nil, fmt.Errorf("redis_ads_config_decode_failed: %w", err)
	}
	return &config, nil
}

/*
Store writes config unless the cached copy is newer.

Description: The compare and the write run as a WATCH/MULTI transaction on
the key. When another writer changes the key in between, the comparison is
repeated against the new value.
*/
func (cache *RedisConfigCache) Store(context context.Context, config *Config) error {
	payload, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("redis_ads_config_encode_failed: %w", err)
	}

	store := func(tx *redis.Tx) error {
		current, err := tx.Get(context, constants.RedisKeyAdsConfig).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var cached Config
			if json.Unmarshal(current, &cached) == nil && cached.UpdatedAt.After(config.UpdatedAt) {
				return nil
			}
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, constants.RedisKeyAdsConfig, payload, cache.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < storeAttempts; attempt++ {
		err = cache.client.Watch(context, store, constants.RedisKeyAdsConfig)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("redis_ads_config_set_failed: %w", err)
	}
	return nil
}

func (cache *RedisConfigCache) Invalidate(context context.Context) error {
	if err := cache.client.Del(context, constants.RedisKeyAdsConfig).Err(); err != nil {
		return fmt.Errorf("redis_ads_config_del_failed: %w", err)
	}
	return nil
}
