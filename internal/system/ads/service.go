// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ads

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/truyenmoi/internal/platform/validate"
	"github.com/taibuivan/truyenmoi/pkg/slice"
)

// Service implements the ads use cases.
type Service struct {
	repository ConfigRepository
	cache      ConfigCache
	logger     *slog.Logger
}

// NewService constructs the ads [Service]. cache may be nil.
func NewService(repository ConfigRepository, cache ConfigCache, logger *slog.Logger) *Service {
	return &Service{repository: repository, cache: cache, logger: logger}
}

/*
GetConfig returns the current configuration.

Description: Reads go through the cache when one is configured. Cache
failures are logged and the store is consulted instead, so Redis being
down never breaks the reading view.

Returns:
  - *Config: Never nil on success; an empty configuration on first use
  - error: StoreUnavailable
*/
func (service *Service) GetConfig(context context.Context) (*Config, error) {
	if service.cache != nil {
		cached, err := service.cache.Get(context)
		if err != nil {
			service.logger.Warn("ads_config_cache_read_failed", slog.String("error", err.Error()))
		}
		if cached != nil {
			return cached, nil
		}
	}

	config, err := service.repository.Get(context)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Store(context, config); err != nil {
			service.logger.Warn("ads_config_cache_write_failed", slog.String("error", err.Error()))
		}
	}
	return config, nil
}

// EnabledInserts returns the enabled directives in stored order.
func (service *Service) EnabledInserts(context context.Context) ([]Insert, error) {
	config, err := service.GetConfig(context)
	if err != nil {
		return nil, err
	}

	enabled := slice.Filter(config.AdInserts, func(insert Insert) bool { return insert.Enabled })
	if enabled == nil {
		enabled = []Insert{}
	}
	return enabled, nil
}

// AdsTxt returns the ads.txt body.
func (service *Service) AdsTxt(context context.Context) (string, error) {
	config, err := service.GetConfig(context)
	if err != nil {
		return "", err
	}
	return config.AdsTxt, nil
}

// HeaderScript returns the script injected into every page header.
func (service *Service) HeaderScript(context context.Context) (string, error) {
	config, err := service.GetConfig(context)
	if err != nil {
		return "", err
	}
	return config.HeaderScript, nil
}

/*
UpdateConfig applies a partial update.

Description: The patch is applied to the stored row, not the cached copy.
A provided insert list replaces the previous one entirely. The saved row is
written through to the cache; when that fails the cached copy is dropped.

Returns:
  - *Config: The saved configuration
  - error: ValidationError, StoreUnavailable
*/
func (service *Service) UpdateConfig(context context.Context, patch ConfigPatch) (*Config, error) {
	if patch.AdInserts != nil {
		if err := validateInserts(*patch.AdInserts); err != nil {
			return nil, err
		}
	}

	config, err := service.repository.Get(context)
	if err != nil {
		return nil, err
	}

	if patch.AdsTxt != nil {
		config.AdsTxt = *patch.AdsTxt
	}
	if patch.HeaderScript != nil {
		config.HeaderScript = *patch.HeaderScript
	}
	if patch.AdInserts != nil {
		config.AdInserts = append([]Insert{}, *patch.AdInserts...)
	}

	if err := service.repository.Save(context, config); err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.refreshCache(context, config)
	}

	service.logger.Info("ads_config_updated", slog.Int("inserts", len(config.AdInserts)))
	return config, nil
}

func (service *Service) refreshCache(context context.Context, config *Config) {
	err := service.cache.Store(context, config)
	if err == nil {
		return
	}
	service.logger.Warn("ads_config_cache_write_failed", slog.String("error", err.Error()))

	if err := service.cache.Invalidate(context); err != nil {
		service.logger.Error("ads_config_cache_invalidate_failed", slog.String("error", err.Error()))
	}
}

func validateInserts(inserts []Insert) error {
	validator := &validate.Validator{}
	for i, insert := range inserts {
		field := fmt.Sprintf("%s[%d]", FieldAdInserts, i)
		validator.NonNegative(field+".position", insert.Position)
		validator.Custom(field+".code", insert.Enabled && strings.TrimSpace(insert.Code) == "", "is required for an enabled insert")
	}
	return validator.Err()
}
