// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrRecordNotFound      = errors.New("record not found")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)

// Client side.
var (
	// ErrSyncFailed is returned when a sync ends in the FAILED status. The
	// terminal state is returned alongside it.
	ErrSyncFailed      = errors.New("sync failed")
	ErrSyncNotFound    = errors.New("sync not found")
	ErrInvalidSyncType = errors.New("invalid sync type")

	// ErrEntityNotSaved is returned when a local update or delete names an
	// entity that has no soup entry yet.
	ErrEntityNotSaved = errors.New("entity is not saved locally")
	ErrEntityNotFound = errors.New("entity not found")
)
