// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the record REST API.
//
// [RemoteAdapter] is what the sync engine talks to: cursor paged queries,
// record CRUD and the modification-stamp check used by the leaveIfChanged
// merge mode. [Network] forwards arbitrary requests through the same
// authenticated client for callers that need an endpoint the adapter does
// not model.
//
// Non-2xx responses are mapped by mapHTTPError to the sentinels in
// errors.go so callers can use [errors.Is] (e.g. [ErrNotFound] for 404).
package adapter

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/go-soup-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter reads and writes server records of any object type.
type RemoteAdapter interface {
	// Query returns one page of records of req.Object modified after
	// req.Since. Pass the previous page's NextCursor to continue.
	Query(ctx context.Context, req QueryRequest) (models.QueryResponse, error)

	// Retrieve fetches a single record; ErrNotFound when it does not exist
	// or was deleted.
	Retrieve(ctx context.Context, object, id string, fields []string) (map[string]any, error)

	// Create inserts a record and returns its server id and stamp. A body
	// carrying an external id the server already knows returns the
	// existing record instead of a duplicate.
	Create(ctx context.Context, object string, fields map[string]any) (models.SaveResult, error)

	// Update merges fields into an existing record.
	Update(ctx context.Context, object, id string, fields map[string]any) (models.SaveResult, error)

	Delete(ctx context.Context, object, id string) error

	// LastModified returns the current LastModifiedDate of each id the
	// server still has. Unknown and deleted ids are absent from the map.
	LastModified(ctx context.Context, object string, ids []string) (map[string]time.Time, error)
}

// QueryRequest selects a page of records.
type QueryRequest struct {
	Object string
	// Fields limits the returned fields; bookkeeping fields are always
	// included.
	Fields []string
	// Since filters on LastModifiedDate > Since; zero means everything.
	Since  time.Time
	Cursor string
	// Limit is the page size; zero lets the server choose.
	Limit int
}

// CredentialProvider supplies the bearer token attached to every request.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// Network sends raw requests through the authenticated client.
type Network interface {
	Send(ctx context.Context, req NetworkRequest) (NetworkResponse, error)
}

type NetworkRequest struct {
	Method string
	// Path is relative to the adapter base url.
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is encoded as JSON when not nil.
	Body any
}

type NetworkResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}
