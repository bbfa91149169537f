// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RecordRequest is a write to the record API: a create when ID is empty,
// an update otherwise.
type RecordRequest struct {
	Object string
	ID     string
	Fields Fields
}
