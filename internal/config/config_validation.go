// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-soup-sync/models"
)

// validate checks source-independent invariants of the merged config.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenDuration < 0 || cfg.Server.RequestTimeout < 0 ||
		cfg.Adapter.RequestTimeout < 0 || cfg.Workers.SyncInterval < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidAppConfigs)
	}
	if cfg.Sync.PageSize < 0 {
		return fmt.Errorf("%w: page size must not be negative", ErrInvalidSyncConfigs)
	}
	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidServerConfigs)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return fmt.Errorf("%w: token sign key and issuer are required", ErrInvalidAppConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	u, err := url.Parse(cfg.Adapter.BaseURL)
	if cfg.Adapter.BaseURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q", ErrInvalidAdapterConfigs, cfg.Adapter.BaseURL)
	}
	if cfg.Adapter.Token == "" {
		return fmt.Errorf("%w: missing token", ErrInvalidAdapterConfigs)
	}

	if cfg.Sync.PageSize < 1 || cfg.Sync.PageSize > maxPageSize {
		return fmt.Errorf("%w: page size %d", ErrInvalidSyncConfigs, cfg.Sync.PageSize)
	}
	switch cfg.Sync.MergeMode {
	case models.MergeLeaveIfChanged, models.MergeOverwrite:
	default:
		return fmt.Errorf("%w: merge mode %q", ErrInvalidSyncConfigs, cfg.Sync.MergeMode)
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
