// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-soup-sync/models"
)

// QueryRequest selects one page of server records.
type QueryRequest struct {
	Object string
	// Fields projects each record; empty returns every field.
	Fields []string
	Since  time.Time
	// Cursor is the NextCursor of the previous page.
	Cursor string
	Limit  int
}

// RecordService is the server side of the record API.
type RecordService interface {
	Query(ctx context.Context, req QueryRequest) (models.QueryResponse, error)
	Retrieve(ctx context.Context, object, id string, fields []string) (map[string]any, error)
	// Create stores a new record. A create carrying an external id that is
	// already stored returns the existing record instead, so a retried
	// sync-up never duplicates.
	Create(ctx context.Context, req models.RecordRequest) (models.SaveResult, error)
	Update(ctx context.Context, req models.RecordRequest) (models.SaveResult, error)
	Delete(ctx context.Context, object, id string) error
	LastModified(ctx context.Context, object string, req models.LastModifiedRequest) (models.LastModifiedResponse, error)
}

type AuthService interface {
	// CreateToken issues a bearer token for clientID.
	CreateToken(ctx context.Context, clientID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}

// RecordServiceWrapper defines middleware composition for RecordService.
// Implementations wrap an existing RecordService to add behavior such as
// logging or validating.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService // returns a decorated RecordService applying additional behavior
}
