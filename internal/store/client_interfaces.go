// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-soup-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SoupStore is the local record database: named soups of JSON documents
// with expression indexes on selected paths.
type SoupStore interface {
	// RegisterSoup creates the soup if needed and indexes the given paths.
	// Registering an existing soup updates its indexes.
	RegisterSoup(ctx context.Context, name string, indexes []string) error
	SoupExists(ctx context.Context, name string) (bool, error)

	// Upsert inserts rec when SoupEntryID is zero and replaces the stored
	// entry otherwise. It stamps SoupLastModified and returns the saved copy.
	Upsert(ctx context.Context, soup string, rec *models.Record) (*models.Record, error)
	Retrieve(ctx context.Context, soup string, entryID int64) (*models.Record, error)
	ByExternalID(ctx context.Context, soup, externalID string) (*models.Record, error)
	ByServerID(ctx context.Context, soup, id string) (*models.Record, error)

	Query(ctx context.Context, spec models.QuerySpec) ([]*models.Record, error)
	Count(ctx context.Context, spec models.QuerySpec) (int, error)
	Delete(ctx context.Context, soup string, entryIDs ...int64) error

	// DirtyRecords returns every entry with __local__ set, deleted ones
	// included, in insertion order.
	DirtyRecords(ctx context.Context, soup string) ([]*models.Record, error)
	// ServerIDs returns the server ids of every entry that has one.
	ServerIDs(ctx context.Context, soup string) ([]string, error)
}

// SyncStateStore persists named syncs so a re-sync can resume from the
// last seen timestamp.
type SyncStateStore interface {
	// SaveSync inserts or replaces the state with the same name and returns
	// it with ID set.
	SaveSync(ctx context.Context, state models.SyncState) (models.SyncState, error)
	GetSyncByName(ctx context.Context, name string) (models.SyncState, error)
	GetSync(ctx context.Context, id int64) (models.SyncState, error)
}
