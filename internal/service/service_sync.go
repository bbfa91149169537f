// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-soup-sync/models"
)

// SyncUpPlan sorts the dirty records of a soup by the call each one needs.
type SyncUpPlan struct {
	// Purge holds records created and deleted locally before they ever
	// reached the server. They are dropped without a call.
	Purge  []*models.Record
	Create []*models.Record
	Update []*models.Record
	Delete []*models.Record
	// Conflicts holds updates and deletes of records modified on the server
	// after they were last fetched. They are left for the user to resolve.
	Conflicts []*models.Record
}

// Len is the number of records the plan touches.
func (p SyncUpPlan) Len() int {
	return len(p.Purge) + len(p.Create) + len(p.Update) + len(p.Delete) + len(p.Conflicts)
}

// StampCheckIDs returns the server ids whose current LastModifiedDate decides
// between update, delete and conflict.
func StampCheckIDs(dirty []*models.Record) []string {
	ids := make([]string, 0, len(dirty))
	for _, rec := range dirty {
		if rec.ID != "" && !rec.LocallyCreated {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

// BuildSyncUpPlan classifies dirty in one pass. Under leaveIfChanged an
// update or delete is a conflict when serverStamps holds a LastModifiedDate
// newer than the one the record was fetched with; under overwrite
// serverStamps is ignored.
//
// ctx is checked before each record so a large soup can be abandoned.
func BuildSyncUpPlan(ctx context.Context, dirty []*models.Record, mode models.MergeMode, serverStamps map[string]time.Time) (SyncUpPlan, error) {
	var plan SyncUpPlan

	changedOnServer := func(rec *models.Record) bool {
		if mode != models.MergeLeaveIfChanged || rec.LastModifiedDate.IsZero() {
			return false
		}
		stamp, ok := serverStamps[rec.ID]
		return ok && stamp.After(rec.LastModifiedDate)
	}

	for _, rec := range dirty {
		if err := ctx.Err(); err != nil {
			return SyncUpPlan{}, err
		}

		switch {
		case !rec.Local:
			// Clean entries are not dirty; nothing to push.

		case rec.LocallyDeleted && (rec.LocallyCreated || rec.ID == ""):
			plan.Purge = append(plan.Purge, rec)

		case rec.LocallyCreated && rec.ID == "":
			plan.Create = append(plan.Create, rec)

		case changedOnServer(rec):
			plan.Conflicts = append(plan.Conflicts, rec)

		case rec.LocallyDeleted:
			plan.Delete = append(plan.Delete, rec)

		default:
			plan.Update = append(plan.Update, rec)
		}
	}

	return plan, nil
}
