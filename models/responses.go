// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// QueryResponse is one page of a record query.
type QueryResponse struct {
	// TotalSize is the number of records matching the query across all
	// pages.
	TotalSize int `json:"totalSize"`

	// Done is true when this is the last page.
	Done bool `json:"done"`

	// NextCursor is passed back as the cursor parameter to fetch the next
	// page. Empty when Done is true.
	NextCursor string `json:"nextCursor,omitempty"`

	// Records holds the raw record documents, each with Id,
	// LastModifiedDate and an attributes.type entry.
	Records []map[string]any `json:"records"`
}

// SaveResult is returned by record create and update calls.
type SaveResult struct {
	ID               string    `json:"id"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
}

// LastModifiedRequest asks for the current modification stamps of ids.
type LastModifiedRequest struct {
	IDs []string `json:"ids"`
}

// LastModifiedResponse maps record id to its LastModifiedDate. Ids unknown
// to the server or deleted there are absent.
type LastModifiedResponse struct {
	Records map[string]time.Time `json:"records"`
}

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
