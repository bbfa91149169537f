// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-soup-sync/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

var (
	fetchedAt = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	newerAt   = fetchedAt.Add(time.Hour)
)

// dirty builds a record in one of the local states used by the matrix.
func dirty(t *testing.T, id string, state string) *models.Record {
	t.Helper()

	rec := models.NewRecord(models.ContactObject, "ext-"+id, models.Fields{"LastName": "Doe"})
	if state == "created" || state == "created+deleted" {
		require.NoError(t, rec.MarkCreated())
	} else {
		rec.ID = id
		rec.LastModifiedDate = fetchedAt
	}

	switch state {
	case "updated":
		require.NoError(t, rec.MarkUpdated())
	case "deleted", "created+deleted":
		require.NoError(t, rec.MarkDeleted())
	}
	return rec
}

func ids(recs []*models.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ExternalID)
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// BuildSyncUpPlan: decision matrix (table-driven)
// ─────────────────────────────────────────────────────────────────────────────

func TestBuildSyncUpPlan_DecisionMatrix(t *testing.T) {
	tests := []struct {
		name    string
		state   string
		mode    models.MergeMode
		stamp   time.Time
		wantBin string
	}{
		{"clean → skipped", "clean", models.MergeLeaveIfChanged, time.Time{}, ""},
		{"created → Create", "created", models.MergeLeaveIfChanged, time.Time{}, "create"},
		{"created+deleted → Purge", "created+deleted", models.MergeLeaveIfChanged, time.Time{}, "purge"},

		{"updated/unchanged on server → Update", "updated", models.MergeLeaveIfChanged, fetchedAt, "update"},
		{"updated/changed on server → Conflict", "updated", models.MergeLeaveIfChanged, newerAt, "conflict"},
		{"updated/changed on server/overwrite → Update", "updated", models.MergeOverwrite, newerAt, "update"},
		{"updated/not on server → Update", "updated", models.MergeLeaveIfChanged, time.Time{}, "update"},

		{"deleted/unchanged on server → Delete", "deleted", models.MergeLeaveIfChanged, fetchedAt, "delete"},
		{"deleted/changed on server → Conflict", "deleted", models.MergeLeaveIfChanged, newerAt, "conflict"},
		{"deleted/changed on server/overwrite → Delete", "deleted", models.MergeOverwrite, newerAt, "delete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := dirty(t, "1", tt.state)
			stamps := map[string]time.Time{}
			if !tt.stamp.IsZero() {
				stamps["1"] = tt.stamp
			}

			plan, err := BuildSyncUpPlan(context.Background(), []*models.Record{rec}, tt.mode, stamps)
			require.NoError(t, err)

			bins := map[string][]*models.Record{
				"create":   plan.Create,
				"update":   plan.Update,
				"delete":   plan.Delete,
				"purge":    plan.Purge,
				"conflict": plan.Conflicts,
			}
			for name, bin := range bins {
				if name == tt.wantBin {
					assert.Len(t, bin, 1, name)
				} else {
					assert.Empty(t, bin, name)
				}
			}
			if tt.wantBin == "" {
				assert.Zero(t, plan.Len())
			}
		})
	}
}

func TestBuildSyncUpPlan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildSyncUpPlan(ctx, []*models.Record{dirty(t, "1", "updated")}, models.MergeOverwrite, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildSyncUpPlan_MissingRecordDateNeverConflicts(t *testing.T) {
	rec := dirty(t, "1", "updated")
	rec.LastModifiedDate = time.Time{}

	plan, err := BuildSyncUpPlan(context.Background(), []*models.Record{rec}, models.MergeLeaveIfChanged,
		map[string]time.Time{"1": newerAt})

	require.NoError(t, err)
	assert.Len(t, plan.Update, 1)
}

// ─────────────────────────────────────────────────────────────────────────────
// BuildSyncUpPlan: mixed soup
// ─────────────────────────────────────────────────────────────────────────────

// TestBuildSyncUpPlan_MixedScenario classifies a soup in which every record
// falls into a different bin:
//
//	"1" created locally                      → Create
//	"2" edited, server untouched             → Update
//	"3" edited, server edited since fetch    → Conflict
//	"4" deleted, server untouched            → Delete
//	"5" created then deleted offline         → Purge
//	"6" clean                                → skipped
func TestBuildSyncUpPlan_MixedScenario(t *testing.T) {
	recs := []*models.Record{
		dirty(t, "1", "created"),
		dirty(t, "2", "updated"),
		dirty(t, "3", "updated"),
		dirty(t, "4", "deleted"),
		dirty(t, "5", "created+deleted"),
		dirty(t, "6", "clean"),
	}
	stamps := map[string]time.Time{"2": fetchedAt, "3": newerAt, "4": fetchedAt}

	assert.ElementsMatch(t, []string{"2", "3", "4", "6"}, StampCheckIDs(recs), "created records are never checked")

	plan, err := BuildSyncUpPlan(context.Background(), recs, models.MergeLeaveIfChanged, stamps)

	require.NoError(t, err)
	assert.Equal(t, []string{"ext-1"}, ids(plan.Create), "Create")
	assert.Equal(t, []string{"ext-2"}, ids(plan.Update), "Update")
	assert.Equal(t, []string{"ext-3"}, ids(plan.Conflicts), "Conflicts")
	assert.Equal(t, []string{"ext-4"}, ids(plan.Delete), "Delete")
	assert.Equal(t, []string{"ext-5"}, ids(plan.Purge), "Purge")
	assert.Equal(t, 5, plan.Len())
}
