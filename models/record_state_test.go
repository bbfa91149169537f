// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func newLocal(t *testing.T) *Record {
	t.Helper()
	r := NewRecord(ContactObject, "ext-1", Fields{"LastName": "Doe"})
	require.NoError(t, r.MarkCreated())
	return r
}

func clean(id string) *Record {
	r := NewRecord(ContactObject, "ext-1", Fields{"LastName": "Doe"})
	r.ID = id
	return r
}

func assertInvariants(t *testing.T, r *Record) {
	t.Helper()
	assert.Equal(t, r.LocallyCreated || r.LocallyUpdated || r.LocallyDeleted, r.Local, "local must mirror flags")
	require.NoError(t, r.CheckInvariants())
}

// ─────────────────────────────────────────────────────────────────────────────
// Transitions
// ─────────────────────────────────────────────────────────────────────────────

func TestRecord_MarkCreated(t *testing.T) {
	r := newLocal(t)

	assert.Equal(t, StatePendingCreate, r.State)
	assert.True(t, r.Local)
	assert.True(t, r.LocallyCreated)
	assert.Empty(t, r.ID)
	assertInvariants(t, r)

	err := r.MarkCreated()
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestRecord_MarkCreated_RejectsServerRecord(t *testing.T) {
	err := clean("001").MarkCreated()
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestRecord_MarkUpdated(t *testing.T) {
	t.Run("clean becomes pending update", func(t *testing.T) {
		r := clean("001")
		require.NoError(t, r.MarkUpdated())
		assert.Equal(t, StatePendingUpdate, r.State)
		assertInvariants(t, r)
	})

	t.Run("pending create stays pending create", func(t *testing.T) {
		r := newLocal(t)
		require.NoError(t, r.MarkUpdated())
		assert.Equal(t, StatePendingCreate, r.State)
		assert.True(t, r.LocallyUpdated)
		assertInvariants(t, r)
	})

	t.Run("pending delete is rejected", func(t *testing.T) {
		r := clean("001")
		require.NoError(t, r.MarkDeleted())
		assert.ErrorIs(t, r.MarkUpdated(), ErrIllegalTransition)
	})

	t.Run("syncing is rejected", func(t *testing.T) {
		r := newLocal(t)
		require.NoError(t, r.BeginSync())
		assert.ErrorIs(t, r.MarkUpdated(), ErrIllegalTransition)
	})
}

func TestRecord_MarkDeletedAndUndelete(t *testing.T) {
	r := clean("001")
	require.NoError(t, r.MarkUpdated())
	require.NoError(t, r.MarkDeleted())

	assert.Equal(t, StatePendingDelete, r.State)
	assert.True(t, r.LocallyUpdated, "edit survives the delete")
	assertInvariants(t, r)

	require.NoError(t, r.Undelete())
	assert.Equal(t, StatePendingUpdate, r.State)
	assert.False(t, r.LocallyDeleted)
	assertInvariants(t, r)

	assert.ErrorIs(t, r.Undelete(), ErrIllegalTransition)
}

func TestRecord_Undelete_CleanRecord(t *testing.T) {
	r := clean("001")
	require.NoError(t, r.MarkDeleted())
	require.NoError(t, r.Undelete())

	assert.Equal(t, StateClean, r.State)
	assert.False(t, r.Local)
}

func TestRecord_SyncLifecycle(t *testing.T) {
	modified := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	r := newLocal(t)
	require.NoError(t, r.BeginSync())
	assert.Equal(t, StateSyncing, r.State)
	assert.Empty(t, r.ID, "no id before the server answers")

	require.NoError(t, r.MarkSynced("003XX0001", modified))
	assert.Equal(t, StateClean, r.State)
	assert.Equal(t, "003XX0001", r.ID)
	assert.Equal(t, modified, r.LastModifiedDate)
	assert.False(t, r.Local)
	assert.False(t, r.LocallyCreated)
	assertInvariants(t, r)
}

func TestRecord_FailedAndConflictKeepFlags(t *testing.T) {
	t.Run("failed", func(t *testing.T) {
		r := newLocal(t)
		require.NoError(t, r.BeginSync())
		require.NoError(t, r.MarkFailed(errors.New("boom")))

		assert.Equal(t, StateFailed, r.State)
		assert.Equal(t, "boom", r.LastError)
		assert.True(t, r.LocallyCreated)
		assertInvariants(t, r)

		require.NoError(t, r.BeginSync(), "failed records are retried by the next sync")
	})

	t.Run("conflict", func(t *testing.T) {
		r := clean("001")
		require.NoError(t, r.MarkUpdated())
		require.NoError(t, r.BeginSync())
		require.NoError(t, r.MarkConflict("modified on server"))

		assert.Equal(t, StateConflict, r.State)
		assert.True(t, r.LocallyUpdated)
		assertInvariants(t, r)

		require.NoError(t, r.MarkUpdated())
		assert.Equal(t, StatePendingUpdate, r.State)
	})
}

func TestRecord_IllegalSyncTransitions(t *testing.T) {
	r := clean("001")

	assert.ErrorIs(t, r.BeginSync(), ErrIllegalTransition)
	assert.ErrorIs(t, r.MarkSynced("x", time.Time{}), ErrIllegalTransition)
	assert.ErrorIs(t, r.MarkFailed(nil), ErrIllegalTransition)
	assert.ErrorIs(t, r.MarkConflict(""), ErrIllegalTransition)
}

func TestRecord_ApplyRemote(t *testing.T) {
	local := clean("001")
	require.NoError(t, local.MarkUpdated())
	local.Fields["Title"] = "local"

	remote := clean("001")
	remote.Fields["Title"] = "server"
	remote.LastModifiedDate = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	local.ApplyRemote(remote)

	assert.Equal(t, "server", local.Fields["Title"])
	assert.Equal(t, StateClean, local.State)
	assert.Equal(t, remote.LastModifiedDate, local.LastModifiedDate)
	assertInvariants(t, local)
}

// TestRecord_LocalMirrorsFlags walks every transition sequence of length
// three and checks the local flag after each step.
func TestRecord_LocalMirrorsFlags(t *testing.T) {
	steps := map[string]func(r *Record) error{
		"create":   (*Record).MarkCreated,
		"update":   (*Record).MarkUpdated,
		"delete":   (*Record).MarkDeleted,
		"undelete": (*Record).Undelete,
		"begin":    (*Record).BeginSync,
		"synced":   func(r *Record) error { return r.MarkSynced("001", time.Now()) },
		"failed":   func(r *Record) error { return r.MarkFailed(errors.New("x")) },
		"conflict": func(r *Record) error { return r.MarkConflict("x") },
	}

	for a, stepA := range steps {
		for b, stepB := range steps {
			for c, stepC := range steps {
				r := NewRecord(ContactObject, "ext", nil)
				for _, step := range []func(*Record) error{stepA, stepB, stepC} {
					_ = step(r)
					if err := r.CheckInvariants(); err != nil {
						t.Fatalf("%s→%s→%s: %v", a, b, c, err)
					}
				}
			}
		}
	}
}
