// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrIllegalTransition is returned when a record state change is not allowed
// from the record's current state.
var ErrIllegalTransition = errors.New("illegal record state transition")

// RecordState is the reconciliation state of a soup entry.
//
//	Clean -> PendingCreate | PendingUpdate | PendingDelete -> Syncing -> Clean | Conflict | Failed
//
// Conflict and Failed records keep their local flags and are picked up again
// by the next sync-up.
type RecordState string

const (
	StateClean         RecordState = "clean"
	StatePendingCreate RecordState = "pending_create"
	StatePendingUpdate RecordState = "pending_update"
	StatePendingDelete RecordState = "pending_delete"
	StateSyncing       RecordState = "syncing"
	StateConflict      RecordState = "conflict"
	StateFailed        RecordState = "failed"
)

// IsPending reports whether the state carries an unsynced local change.
func (s RecordState) IsPending() bool {
	switch s {
	case StatePendingCreate, StatePendingUpdate, StatePendingDelete, StateConflict, StateFailed:
		return true
	}
	return false
}

func (r *Record) state() RecordState {
	if r.State == "" {
		return StateClean
	}
	return r.State
}

func (r *Record) illegal(op string) error {
	return fmt.Errorf("%w: %s from %s", ErrIllegalTransition, op, r.state())
}

// MarkCreated flags a brand new, never synced record.
func (r *Record) MarkCreated() error {
	if r.state() != StateClean || r.ID != "" {
		return r.illegal("create")
	}
	r.LocallyCreated = true
	r.recompute()
	return nil
}

// MarkUpdated flags a local edit. Editing a locally created record keeps it
// pending creation.
func (r *Record) MarkUpdated() error {
	switch r.state() {
	case StateClean, StatePendingCreate, StatePendingUpdate, StateConflict, StateFailed:
	default:
		return r.illegal("update")
	}
	if r.LocallyDeleted {
		return r.illegal("update")
	}
	r.LocallyUpdated = true
	r.recompute()
	return nil
}

// MarkDeleted flags a local delete. LocallyUpdated is kept so a record that
// was edited and then deleted is still distinguishable.
func (r *Record) MarkDeleted() error {
	switch r.state() {
	case StateClean, StatePendingCreate, StatePendingUpdate, StateConflict, StateFailed:
	default:
		return r.illegal("delete")
	}
	r.LocallyDeleted = true
	r.recompute()
	return nil
}

// Undelete reverts a pending delete; the state falls back to whatever the
// remaining flags say.
func (r *Record) Undelete() error {
	if !r.LocallyDeleted || r.state() == StateSyncing {
		return r.illegal("undelete")
	}
	r.LocallyDeleted = false
	r.recompute()
	return nil
}

// BeginSync moves a record with pending changes into Syncing.
func (r *Record) BeginSync() error {
	if !r.state().IsPending() || !r.Local {
		return r.illegal("begin sync")
	}
	r.State = StateSyncing
	return nil
}

// MarkSynced completes a sync: flags are cleared and the server id and
// modification stamp are recorded.
func (r *Record) MarkSynced(id string, lastModified time.Time) error {
	if r.state() != StateSyncing {
		return r.illegal("synced")
	}
	if id != "" {
		r.ID = id
	}
	if !lastModified.IsZero() {
		r.LastModifiedDate = lastModified
	}
	r.LocallyCreated, r.LocallyUpdated, r.LocallyDeleted = false, false, false
	r.LastError = ""
	r.recompute()
	return nil
}

func (r *Record) MarkFailed(cause error) error {
	if r.state() != StateSyncing {
		return r.illegal("failed")
	}
	r.State = StateFailed
	if cause != nil {
		r.LastError = cause.Error()
	}
	return nil
}

func (r *Record) MarkConflict(reason string) error {
	if r.state() != StateSyncing {
		return r.illegal("conflict")
	}
	r.State = StateConflict
	r.LastError = reason
	return nil
}

// ApplyRemote replaces the record content with the server version and clears
// every local flag. Sync-down uses it when the merge mode lets server data
// win.
func (r *Record) ApplyRemote(remote *Record) {
	r.ID = remote.ID
	r.ObjectType = remote.ObjectType
	r.LastModifiedDate = remote.LastModifiedDate
	if remote.ExternalID != "" {
		r.ExternalID = remote.ExternalID
	}
	r.Fields = remote.Fields.Clone()
	r.LocallyCreated, r.LocallyUpdated, r.LocallyDeleted = false, false, false
	r.LastError = ""
	r.recompute()
}

// recompute derives Local and the pending state from the flags.
func (r *Record) recompute() {
	r.Local = r.LocallyCreated || r.LocallyUpdated || r.LocallyDeleted
	switch {
	case r.LocallyDeleted:
		r.State = StatePendingDelete
	case r.LocallyCreated:
		r.State = StatePendingCreate
	case r.LocallyUpdated:
		r.State = StatePendingUpdate
	default:
		r.State = StateClean
	}
}

// CheckInvariants verifies that Local mirrors the flags and that a record
// awaiting creation has no server id.
func (r *Record) CheckInvariants() error {
	if r.Local != (r.LocallyCreated || r.LocallyUpdated || r.LocallyDeleted) {
		return fmt.Errorf("record %s: local flag out of sync with locally-* flags", r.ExternalID)
	}
	if r.LocallyCreated && r.ID != "" {
		return fmt.Errorf("record %s: locally created record already has id %s", r.ExternalID, r.ID)
	}
	if r.state() == StateClean && r.Local {
		return fmt.Errorf("record %s: clean record marked local", r.ExternalID)
	}
	return nil
}
