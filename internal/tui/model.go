// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-soup-sync/internal/service"
	"github.com/MKhiriev/go-soup-sync/internal/validators"
	"github.com/MKhiriev/go-soup-sync/models"
)

type screen int

const (
	screenContacts screen = iota
	screenDetail
	screenForm
	screenOrders
)

const statusTTL = 3 * time.Second

// model is the root of the program. Each screen keeps its state in its own
// field; the root routes messages and draws overlays.
type model struct {
	ctx       context.Context
	contacts  ContactStore
	orders    service.OrderService
	validator validators.Validator
	build     models.AppBuildInfo

	screen    screen
	list      contactList
	form      contactForm
	orderList orderList

	spinner spinner.Model
	busy    bool
	status  string

	confirm    *confirmModel
	errOverlay *errorOverlayModel

	quitting bool
}

func newModel(ctx context.Context, contacts ContactStore, orders service.OrderService, v validators.Validator, build models.AppBuildInfo) model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return model{
		ctx:       ctx,
		contacts:  contacts,
		orders:    orders,
		validator: v,
		build:     build,
		list:      newContactList(),
		spinner:   s,
		busy:      true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadContacts())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case contactsLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.list.setItems(msg.contacts)
		return m, nil

	case ordersLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.orderList.setItems(msg.orders)
		return m, nil

	case syncDoneMsg:
		m.busy = false
		if msg.err != nil {
			m = m.showError(msg.err)
		} else {
			m.status = fmt.Sprintf("sync %s", msg.state.Status)
		}
		return m, tea.Batch(m.reload(), clearStatusAfter())

	case contactSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.form.err = msg.err
			return m, nil
		}
		m.screen = screenContacts
		m.status = "saved locally, press s to sync"
		return m, tea.Batch(m.loadContacts(), clearStatusAfter())

	case contactDeletedMsg:
		m.busy = false
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.screen = screenContacts
		m.status = "deleted locally, u to undo, s to sync"
		return m, tea.Batch(m.loadContacts(), clearStatusAfter())

	case contactUndeletedMsg:
		m.busy = false
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.status = "delete undone"
		return m, tea.Batch(m.loadContacts(), clearStatusAfter())

	case orderCompletedMsg:
		m.busy = false
		if msg.err != nil {
			m = m.showError(msg.err)
		} else {
			m.status = "order completed"
		}
		return m, tea.Batch(m.loadOrders(), clearStatusAfter())

	case copiedMsg:
		if msg.err != nil {
			return m.showError(msg.err), nil
		}
		m.status = msg.what + " copied"
		return m, clearStatusAfter()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == screenForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.errOverlay != nil {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.errOverlay = nil
		}
		return m, nil
	}

	if m.confirm != nil {
		switch {
		case key.Matches(msg, keys.yes):
			action := m.confirm.action
			m.confirm = nil
			if action == confirmDiscard {
				m.screen = screenContacts
				return m, nil
			}
			return m.deleteCurrent()
		case key.Matches(msg, keys.no, keys.esc):
			m.confirm = nil
		}
		return m, nil
	}

	switch m.screen {
	case screenContacts:
		return m.updateContacts(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenOrders:
		return m.updateOrders(msg)
	}
	return m, nil
}

func (m model) showError(err error) model {
	m.errOverlay = &errorOverlayModel{message: humanizeError(err)}
	return m
}

func (m model) reload() tea.Cmd {
	if m.screen == screenOrders {
		return m.loadOrders()
	}
	return m.loadContacts()
}

func (m model) View() string {
	if m.errOverlay != nil {
		return appStyle.Render(m.errOverlay.View())
	}
	if m.confirm != nil {
		return appStyle.Render(m.confirm.View())
	}

	var body string
	switch m.screen {
	case screenContacts:
		body = m.list.view(m.header("Contacts"))
	case screenDetail:
		body = m.detailView()
	case screenForm:
		body = m.form.view()
	case screenOrders:
		body = m.orderList.view(m.header("Orders"))
	}

	if m.status != "" {
		body += "\n\n" + helpStyle.Render(m.status)
	}
	return appStyle.Render(body)
}

func (m model) header(title string) string {
	out := title
	if m.busy {
		out += " " + m.spinner.View()
	}
	if v := m.build.BuildVersion(); v != "" && v != "N/A" {
		out += helpStyle.Render("  v" + v)
	}
	return out
}

func clearStatusAfter() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m model) syncContacts() tea.Cmd {
	ctx, store := m.ctx, m.contacts
	return func() tea.Msg {
		state, err := store.SyncUpDown(ctx)
		return syncDoneMsg{state: state, err: err}
	}
}

func (m model) syncOrders() tea.Cmd {
	ctx, orders := m.ctx, m.orders
	return func() tea.Msg {
		err := orders.SyncUpDownOrders(ctx)
		state := models.SyncState{Status: models.SyncStatusDone}
		if err != nil {
			state.Status = models.SyncStatusFailed
		}
		return syncDoneMsg{state: state, err: err}
	}
}
