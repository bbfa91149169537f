// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MergeMode decides how sync reconciles server data with local changes.
type MergeMode string

const (
	// MergeLeaveIfChanged keeps local changes: sync-down skips records with
	// pending local changes, sync-up refuses to overwrite a record modified
	// on the server since it was last fetched.
	MergeLeaveIfChanged MergeMode = "leaveIfChanged"
	// MergeOverwrite lets the side being written win.
	MergeOverwrite MergeMode = "overwrite"
)

type SyncType string

const (
	SyncDown SyncType = "syncDown"
	SyncUp   SyncType = "syncUp"
)

type SyncStatus string

const (
	SyncStatusNew     SyncStatus = "NEW"
	SyncStatusRunning SyncStatus = "RUNNING"
	SyncStatusDone    SyncStatus = "DONE"
	SyncStatusFailed  SyncStatus = "FAILED"
)

// SyncOptions configures one named sync.
type SyncOptions struct {
	MergeMode       MergeMode `json:"mergeMode"`
	FieldList       []string  `json:"fieldList,omitempty"`
	CreateFieldList []string  `json:"createFieldList,omitempty"`
	UpdateFieldList []string  `json:"updateFieldList,omitempty"`
}

// SyncState is the persisted progress of a named sync.
type SyncState struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Type    SyncType    `json:"type"`
	Soup    string      `json:"soup"`
	Object  string      `json:"object"`
	Status  SyncStatus  `json:"status"`
	Options SyncOptions `json:"options"`

	// Progress is a percentage, 100 once the sync is done.
	Progress  int `json:"progress"`
	TotalSize int `json:"totalSize"`
	// Skipped counts records left alone: undecodable server records on
	// sync-down, conflicts on sync-up.
	Skipped int `json:"skipped"`

	// MaxTimeStamp is the newest LastModifiedDate seen by a sync-down; the
	// next re-sync only asks for records modified after it.
	MaxTimeStamp time.Time `json:"maxTimeStamp"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Error        string    `json:"error,omitempty"`
}

// IsTerminal reports whether the sync has finished, successfully or not.
func (s SyncState) IsTerminal() bool {
	return s.Status == SyncStatusDone || s.Status == SyncStatusFailed
}

func (s SyncState) IsDone() bool { return s.Status == SyncStatusDone }

// SyncDownName and SyncUpName are the conventional names of an object's
// syncs.
func SyncDownName(object string) string { return "syncDown_" + object }
func SyncUpName(object string) string   { return "syncUp_" + object }
