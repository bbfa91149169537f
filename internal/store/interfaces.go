// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-soup-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordRepository is the server-side record table. Records are keyed by
// (object type, id); deletes are soft so a later query can tell them apart
// from records that never existed.
type RecordRepository interface {
	Query(ctx context.Context, q models.RecordQuery) ([]*models.Record, error)
	// Count ignores q.After and q.Limit.
	Count(ctx context.Context, q models.RecordQuery) (int, error)
	Get(ctx context.Context, objectType, id string) (*models.Record, error)
	GetByExternalID(ctx context.Context, objectType, externalID string) (*models.Record, error)
	// Insert stores rec and returns it with LastModifiedDate stamped.
	Insert(ctx context.Context, rec *models.Record, createdBy string) (*models.Record, error)
	// Update merges fields into the stored ones and bumps LastModifiedDate.
	Update(ctx context.Context, objectType, id string, fields models.Fields) (*models.Record, error)
	Delete(ctx context.Context, objectType, id string) error
	// LastModified returns LastModifiedDate by id for the live records
	// among ids.
	LastModified(ctx context.Context, objectType string, ids []string) (map[string]time.Time, error)
}
