// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-soup-sync/internal/service"
	"github.com/MKhiriev/go-soup-sync/internal/validators"
	"github.com/MKhiriev/go-soup-sync/models"
)

// fakeContacts records the calls the explorer makes.
type fakeContacts struct {
	items    []*models.Contact
	queryErr error
	syncErr  error

	filters   []service.QueryFilter
	created   []*models.Contact
	updated   []*models.Contact
	deleted   []*models.Contact
	undeleted []*models.Contact
	synced    int
}

func (f *fakeContacts) Query(_ context.Context, q service.QueryFilter) ([]*models.Contact, error) {
	f.filters = append(f.filters, q)
	return f.items, f.queryErr
}

func (f *fakeContacts) LocallyCreate(_ context.Context, c *models.Contact) (*models.Contact, error) {
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeContacts) LocallyUpdate(_ context.Context, c *models.Contact) (*models.Contact, error) {
	f.updated = append(f.updated, c)
	return c, nil
}

func (f *fakeContacts) LocallyDelete(_ context.Context, c *models.Contact) (*models.Contact, error) {
	f.deleted = append(f.deleted, c)
	return c, nil
}

func (f *fakeContacts) LocallyUndelete(_ context.Context, c *models.Contact) (*models.Contact, error) {
	f.undeleted = append(f.undeleted, c)
	return c, nil
}

func (f *fakeContacts) SyncUpDown(context.Context) (models.SyncState, error) {
	f.synced++
	if f.syncErr != nil {
		return models.SyncState{Status: models.SyncStatusFailed}, f.syncErr
	}
	return models.SyncState{Status: models.SyncStatusDone}, nil
}

type fakeOrders struct {
	service.OrderService

	orders    []models.Order
	completed []models.Order
	err       error
}

func (f *fakeOrders) CurrentOrders(context.Context) ([]models.Order, error) {
	return f.orders, nil
}

func (f *fakeOrders) CompleteOrder(_ context.Context, o models.Order) error {
	f.completed = append(f.completed, o)
	return f.err
}

func (f *fakeOrders) SyncUpDownOrders(context.Context) error {
	return f.err
}

var errBoom = errors.New("boom")

func contact(t *testing.T, first, last string) *models.Contact {
	t.Helper()
	c := &models.Contact{}
	rec := models.NewRecord(models.ContactObject, "ext-"+last, models.Fields{"FirstName": first, "LastName": last})
	rec.ID = "003" + last
	require.NoError(t, c.Bind(rec))
	return c
}

func newTestModel(t *testing.T, contacts *fakeContacts, orders *fakeOrders) model {
	t.Helper()
	if orders == nil {
		orders = &fakeOrders{}
	}
	m := newModel(context.Background(), contacts, orders, validators.NewContactValidator(), models.NewAppBuildInfo("1.2.3", "", ""))
	next, _ := m.Update(m.loadContacts()())
	return next.(model)
}

// press feeds one key to the model and returns the new model and command.
func press(t *testing.T, m model, k string) (model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(model)
}
