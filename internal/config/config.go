// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration shared by the sync
// server and the client. Each binary reads the groups it needs; the client
// works through the [ClientConfig] view.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name of a scalar field.
type StructuredConfig struct {
	// App holds token parameters and the client identity.
	App App `envPrefix:"APP_"`

	// Storage holds the database DSN: a PostgreSQL URI on the server, a
	// SQLite file path on the client.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and request timeout of the REST API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the REST API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds page size and merge mode defaults of the sync engine.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the log file rotation settings of the client.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file, set
	// via CONFIG or -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// App holds token and identity settings.
type App struct {
	// TokenSignKey signs and verifies bearer tokens. Server only.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of tokens the server issues.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// ClientID names the device; the server issues its development token
	// for it and the client stamps it into logs.
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// Version is reported by GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

type Server struct {
	// HTTPAddress is the "host:port" the REST API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds each inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

type DB struct {
	// DSN is the database connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds outbound settings of the client.
type Adapter struct {
	// BaseURL is the REST API root, e.g. "http://localhost:8080".
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the bearer token sent with every request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds each outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

type Sync struct {
	// PageSize is the number of records requested per sync-down page.
	// Env: SYNC_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// MergeMode is "leaveIfChanged" or "overwrite".
	// Env: SYNC_MERGE_MODE
	MergeMode string `env:"MERGE_MODE"`
}

type Workers struct {
	// SyncInterval is the period of the background sync-up-down job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

type Log struct {
	// FilePath is the client log file; rotated by size.
	// Env: LOG_FILE_PATH
	FilePath string `env:"FILE_PATH"`

	// MaxSizeMB is the size at which the log file is rotated.
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB"`

	// MaxBackups is the number of rotated files kept.
	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS"`
}

// GetStructuredConfig loads, merges and validates the configuration from
// all sources, later sources winning for non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// GetServerConfig returns the merged configuration after checking the
// settings the sync server cannot start without.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.validateServer()
}
