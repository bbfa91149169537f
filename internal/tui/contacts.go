// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-soup-sync/internal/service"
	"github.com/MKhiriev/go-soup-sync/models"
)

type contactList struct {
	items     []*models.Contact
	idx       int
	search    textinput.Model
	searching bool
}

func newContactList() contactList {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "last name"
	return contactList{search: in}
}

func (l *contactList) setItems(items []*models.Contact) {
	l.items = items
	if l.idx >= len(items) {
		l.idx = max(len(items)-1, 0)
	}
}

func (l contactList) current() (*models.Contact, bool) {
	if len(l.items) == 0 || l.idx < 0 || l.idx >= len(l.items) {
		return nil, false
	}
	return l.items[l.idx], true
}

func (l *contactList) move(delta int) {
	if len(l.items) == 0 {
		return
	}
	l.idx = (l.idx + delta + len(l.items)) % len(l.items)
}

// filter matches contacts whose last name contains the search text.
// Pending deletes stay listed so they can be undone.
func (l contactList) filter() service.QueryFilter {
	f := service.QueryFilter{IncludeDeleted: true}
	if q := strings.TrimSpace(l.search.Value()); q != "" {
		f.Like = map[string]string{"LastName": "%" + models.EscapeLike(q) + "%"}
	}
	return f
}

func (l contactList) view(header string) string {
	var b strings.Builder
	if l.searching || l.search.Value() != "" {
		b.WriteString(l.search.View())
		b.WriteString("\n\n")
	}

	if len(l.items) == 0 {
		b.WriteString("No contacts")
	}
	for i, c := range l.items {
		cursor := "  "
		if i == l.idx {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, stateMarker(c.State()), fitText(c.FullName(), 32), helpStyle.Render(fitText(c.Title, 24)))
	}

	return renderPage(header, strings.TrimRight(b.String(), "\n"),
		"enter open  n new  e edit  d delete  u undelete  / search  s sync  o orders  q quit")
}

func (m model) updateContacts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.searching {
		switch {
		case key.Matches(msg, keys.enter):
			m.list.searching = false
			m.list.search.Blur()
			m.list.idx = 0
			return m, m.loadContacts()
		case key.Matches(msg, keys.esc):
			m.list.searching = false
			m.list.search.Blur()
			m.list.search.SetValue("")
			return m, m.loadContacts()
		}
		var cmd tea.Cmd
		m.list.search, cmd = m.list.search.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.up):
		m.list.move(-1)
	case key.Matches(msg, keys.down):
		m.list.move(1)
	case key.Matches(msg, keys.enter):
		if _, ok := m.list.current(); ok {
			m.screen = screenDetail
		}
	case key.Matches(msg, keys.newItem):
		m.form = newContactForm(nil)
		m.screen = screenForm
		return m, textinput.Blink
	case key.Matches(msg, keys.edit):
		if c, ok := m.list.current(); ok {
			return m.edit(c)
		}
	case key.Matches(msg, keys.delete):
		if c, ok := m.list.current(); ok {
			return m.askDelete(c)
		}
	case key.Matches(msg, keys.undelete):
		if c, ok := m.list.current(); ok {
			return m.undelete(c)
		}
	case key.Matches(msg, keys.search):
		m.list.searching = true
		return m, m.list.search.Focus()
	case key.Matches(msg, keys.sync):
		m.busy = true
		return m, m.syncContacts()
	case key.Matches(msg, keys.orders):
		m.screen = screenOrders
		m.busy = true
		return m, m.loadOrders()
	}
	return m, nil
}

func (m model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c, ok := m.list.current()
	if !ok {
		m.screen = screenContacts
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.esc, keys.quit):
		m.screen = screenContacts
	case key.Matches(msg, keys.edit):
		return m.edit(c)
	case key.Matches(msg, keys.delete):
		return m.askDelete(c)
	case key.Matches(msg, keys.undelete):
		return m.undelete(c)
	case key.Matches(msg, keys.copy):
		return m, copyCmd("email", c.Email)
	}
	return m, nil
}

func (m model) detailView() string {
	c, ok := m.list.current()
	if !ok {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title:        %s\n", valueOrDash(c.Title))
	fmt.Fprintf(&b, "Department:   %s\n", valueOrDash(c.Department))
	fmt.Fprintf(&b, "Email:        %s\n", valueOrDash(c.Email))
	fmt.Fprintf(&b, "Mobile phone: %s\n", valueOrDash(c.MobilePhone))
	fmt.Fprintf(&b, "Home phone:   %s\n", valueOrDash(c.HomePhone))
	fmt.Fprintf(&b, "\nState:        %s", c.State())
	if rec := c.Meta(); rec != nil && rec.LastError != "" {
		fmt.Fprintf(&b, "\nLast error:   %s", errorStyle.Render(rec.LastError))
	}

	help := "e edit  d delete  c copy email  esc back"
	if c.IsLocallyDeleted() {
		help = "u undelete  c copy email  esc back"
	}
	return renderPage(c.FullName(), b.String(), help)
}

func (m model) loadContacts() tea.Cmd {
	ctx, store, f := m.ctx, m.contacts, m.list.filter()
	return func() tea.Msg {
		items, err := store.Query(ctx, f)
		return contactsLoadedMsg{contacts: items, err: err}
	}
}

func (m model) edit(c *models.Contact) (tea.Model, tea.Cmd) {
	if c.IsLocallyDeleted() {
		m.status = "deleted contacts cannot be edited, u to undo the delete"
		return m, clearStatusAfter()
	}
	m.form = newContactForm(c)
	m.screen = screenForm
	return m, textinput.Blink
}

func (m model) askDelete(c *models.Contact) (tea.Model, tea.Cmd) {
	if c.IsLocallyDeleted() {
		m.status = "already deleted, u to undo"
		return m, clearStatusAfter()
	}
	m.confirm = &confirmModel{action: confirmDelete, message: c.FullName()}
	return m, nil
}

func (m model) undelete(c *models.Contact) (tea.Model, tea.Cmd) {
	if !c.IsLocallyDeleted() {
		return m, nil
	}

	m.busy = true
	ctx, store := m.ctx, m.contacts
	return m, func() tea.Msg {
		_, err := store.LocallyUndelete(ctx, c)
		return contactUndeletedMsg{err: err}
	}
}

func (m model) deleteCurrent() (tea.Model, tea.Cmd) {
	c, ok := m.list.current()
	if !ok {
		return m, nil
	}

	m.busy = true
	ctx, store := m.ctx, m.contacts
	return m, func() tea.Msg {
		_, err := store.LocallyDelete(ctx, c)
		return contactDeletedMsg{err: err}
	}
}

func copyCmd(what, value string) tea.Cmd {
	return func() tea.Msg {
		if value == "" {
			return copiedMsg{what: what, err: fmt.Errorf("%s is empty", what)}
		}
		return copiedMsg{what: what, err: writeClipboard(value)}
	}
}
