// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/models"
)

type syncStateStore struct {
	*DB
	logger *logger.Logger
}

// NewSyncStateStore constructs a [SyncStateStore] on the client database.
func NewSyncStateStore(db *DB, logger *logger.Logger) SyncStateStore {
	return &syncStateStore{DB: db, logger: logger}
}

func (s *syncStateStore) SaveSync(ctx context.Context, state models.SyncState) (models.SyncState, error) {
	doc, err := json.Marshal(state)
	if err != nil {
		return state, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := s.builder.Insert(syncStatesTable).
		Columns("name", "doc").
		Values(state.Name, string(doc)).
		Suffix("ON CONFLICT (name) DO UPDATE SET doc = excluded.doc RETURNING id").
		ToSql()
	if err != nil {
		return state, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = s.QueryRowContext(ctx, query, args...).Scan(&state.ID); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncStateStore.SaveSync").
			Str("sync", state.Name).
			Msg("failed to save sync state")
		return state, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return state, nil
}

func (s *syncStateStore) GetSyncByName(ctx context.Context, name string) (models.SyncState, error) {
	return s.get(ctx, sq.Eq{"name": name})
}

func (s *syncStateStore) GetSync(ctx context.Context, id int64) (models.SyncState, error) {
	return s.get(ctx, sq.Eq{"id": id})
}

func (s *syncStateStore) get(ctx context.Context, where sq.Eq) (models.SyncState, error) {
	query, args, err := s.builder.Select("id", "doc").From(syncStatesTable).Where(where).ToSql()
	if err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		id  int64
		doc string
	)
	err = s.QueryRowContext(ctx, query, args...).Scan(&id, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncState{}, fmt.Errorf("%w: %v", ErrSyncNotFound, where)
	}
	if err != nil {
		return models.SyncState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var state models.SyncState
	if err = json.Unmarshal([]byte(doc), &state); err != nil {
		return models.SyncState{}, fmt.Errorf("%w: sync %d: %w", ErrCorruptEntry, id, err)
	}
	state.ID = id
	return state, nil
}
