// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
)

// ClientStorages groups the client-side stores that share one SQLite
// database.
type ClientStorages struct {
	Soups      SoupStore
	SyncStates SyncStateStore

	db *DB
}

// NewClientStorages opens the SQLite database at cfg.DB.DSN, creating it if
// needed, applies the soup migrations and wires the stores.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Soups:      NewSoupStore(db, logger),
		SyncStates: NewSyncStateStore(db, logger),
		db:         db,
	}, nil
}

func (s *ClientStorages) Close() error {
	return s.db.Close()
}
