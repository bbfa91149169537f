// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-soup-sync/models"

type contactsLoadedMsg struct {
	contacts []*models.Contact
	err      error
}

type ordersLoadedMsg struct {
	orders []models.Order
	err    error
}

type syncDoneMsg struct {
	state models.SyncState
	err   error
}

type contactSavedMsg struct {
	contact *models.Contact
	err     error
}

type contactDeletedMsg struct {
	err error
}

type contactUndeletedMsg struct {
	err error
}

type orderCompletedMsg struct {
	err error
}

type copiedMsg struct {
	what string
	err  error
}

type clearStatusMsg struct{}
