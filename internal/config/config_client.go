// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-soup-sync/models"
)

const (
	defaultPageSize     = 100
	maxPageSize         = 1000
	defaultSyncInterval = 5 * time.Minute
	defaultTimeout      = 30 * time.Second
	defaultLogFile      = "soup-sync.log"
)

type ClientApp struct {
	ClientID string
}

// ClientAdapter holds the REST endpoint used by the sync engine.
type ClientAdapter struct {
	BaseURL        string
	Token          string
	RequestTimeout time.Duration
}

// ClientDB contains the path of the local soup database.
type ClientDB struct {
	DSN string
}

type ClientStorage struct {
	DB ClientDB
}

// ClientSync holds sync engine defaults.
type ClientSync struct {
	PageSize  int
	MergeMode models.MergeMode
}

type ClientWorkers struct {
	SyncInterval time.Duration
}

type ClientLog struct {
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers
	Log     ClientLog
}

// GetClientConfig builds and validates the client configuration from the
// merged structured configuration, filling defaults for optional settings.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps cfg onto a [ClientConfig] and applies defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{ClientID: cfg.App.ClientID},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			Token:          cfg.Adapter.Token,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Sync: ClientSync{
			PageSize:  cfg.Sync.PageSize,
			MergeMode: models.MergeMode(cfg.Sync.MergeMode),
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Log: ClientLog{
			FilePath:   cfg.Log.FilePath,
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		},
	}

	if clientCfg.Sync.PageSize == 0 {
		clientCfg.Sync.PageSize = defaultPageSize
	}
	if clientCfg.Sync.MergeMode == "" {
		clientCfg.Sync.MergeMode = models.MergeLeaveIfChanged
	}
	if clientCfg.Workers.SyncInterval == 0 {
		clientCfg.Workers.SyncInterval = defaultSyncInterval
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = defaultTimeout
	}
	if clientCfg.Log.FilePath == "" {
		clientCfg.Log.FilePath = defaultLogFile
	}
	if clientCfg.Log.MaxSizeMB == 0 {
		clientCfg.Log.MaxSizeMB = 10
	}
	if clientCfg.Log.MaxBackups == 0 {
		clientCfg.Log.MaxBackups = 3
	}

	return clientCfg
}
