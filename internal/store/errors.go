// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the stores to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntryNotFound is returned when a soup entry looked up by entry id,
	// external id or server id does not exist.
	ErrEntryNotFound = errors.New("soup entry not found")

	// ErrSoupNotRegistered is returned when an operation names a soup that
	// was never registered.
	ErrSoupNotRegistered = errors.New("soup is not registered")

	// ErrInvalidPath is returned when a soup name, index path or order path
	// is not a plain dotted identifier.
	ErrInvalidPath = errors.New("invalid soup path")

	// ErrCorruptEntry is returned when a stored soup document cannot be
	// decoded.
	ErrCorruptEntry = errors.New("corrupt soup entry")

	// ErrSyncNotFound is returned when no sync state has the requested name
	// or id.
	ErrSyncNotFound = errors.New("sync state not found")

	// ErrRecordNotFound is returned by the server repository when a record
	// does not exist or was deleted.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateExternalID is returned when a second entry claims an
	// external id already used in the same soup or object type.
	ErrDuplicateExternalID = errors.New("duplicate external id")

	// ErrStoreUnavailable is returned when the database keeps failing with
	// a transient error after every retry.
	ErrStoreUnavailable = errors.New("store temporarily unavailable")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")
)
