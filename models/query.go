// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// SortOrder is the sort direction of a soup query.
type SortOrder string

const (
	Ascending  SortOrder = "ASC"
	Descending SortOrder = "DESC"
)

// QuerySpec selects entries of one soup.
//
// Match and Like keys are JSON paths into the soup document, e.g. "Name" or
// "attributes.type". Match compares for equality, Like uses SQL LIKE
// patterns. Entries flagged __locally_deleted__ are excluded unless
// IncludeDeleted is set.
type QuerySpec struct {
	Soup      string
	OrderPath string
	Order     SortOrder
	PageSize  int
	// Page is zero based.
	Page int

	Match          map[string]any
	Like           map[string]string
	IncludeDeleted bool
	// OnlyLocal restricts the result to entries with __local__ set.
	OnlyLocal bool
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes the LIKE wildcards in s so it matches literally inside
// a Like pattern. The escape character is a backslash.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Limit returns the effective page size: DefaultPageSize when unset, never
// above MaxPageSize.
func (q QuerySpec) Limit() int {
	switch {
	case q.PageSize <= 0:
		return DefaultPageSize
	case q.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return q.PageSize
}

func (q QuerySpec) Offset() int {
	if q.Page < 0 {
		return 0
	}
	return q.Page * q.Limit()
}

// RecordQuery selects live server records of one object type in
// (LastModifiedDate, Id) order.
type RecordQuery struct {
	ObjectType string
	// Since keeps records modified strictly after it.
	Since time.Time
	// After resumes a paged query behind the last record of the previous
	// page.
	After *Cursor
	Limit int
}

// Cursor is the position of a record in (LastModifiedDate, Id) order.
type Cursor struct {
	LastModified time.Time
	ID           string
}

var ErrInvalidCursor = errors.New("invalid cursor")

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := c.LastModified.UTC().Format(time.RFC3339Nano) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func ParseCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	ts, id, ok := strings.Cut(string(raw), "|")
	if !ok || id == "" {
		return Cursor{}, ErrInvalidCursor
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{LastModified: t, ID: id}, nil
}
