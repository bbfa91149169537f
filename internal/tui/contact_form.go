// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-soup-sync/internal/validators"
	"github.com/MKhiriev/go-soup-sync/models"
)

var formFields = []struct {
	name  string
	label string
}{
	{validators.FieldFirstName, "First name"},
	{validators.FieldLastName, "Last name"},
	{validators.FieldTitle, "Title"},
	{validators.FieldDepartment, "Department"},
	{validators.FieldEmail, "Email"},
	{validators.FieldMobilePhone, "Mobile phone"},
	{validators.FieldHomePhone, "Home phone"},
}

// contactForm edits a copy of the contact; the original is only replaced
// once the local save succeeds.
type contactForm struct {
	editing *models.Contact
	inputs  []textinput.Model
	initial []string
	focus   int
	err     error
}

func newContactForm(c *models.Contact) contactForm {
	values := map[string]string{}
	if c != nil {
		values = map[string]string{
			validators.FieldFirstName:   c.FirstName,
			validators.FieldLastName:    c.LastName,
			validators.FieldTitle:       c.Title,
			validators.FieldDepartment:  c.Department,
			validators.FieldEmail:       c.Email,
			validators.FieldMobilePhone: c.MobilePhone,
			validators.FieldHomePhone:   c.HomePhone,
		}
	}

	inputs := make([]textinput.Model, len(formFields))
	initial := make([]string, len(formFields))
	for i, f := range formFields {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-13s ", f.label+":")
		in.CharLimit = 80
		in.SetValue(values[f.name])
		inputs[i] = in
		initial[i] = in.Value()
	}
	inputs[0].Focus()

	return contactForm{editing: c, inputs: inputs, initial: initial}
}

// dirty reports whether any input differs from the value it was opened with.
func (f contactForm) dirty() bool {
	for i, in := range f.inputs {
		if in.Value() != f.initial[i] {
			return true
		}
	}
	return false
}

func (f contactForm) value(field string) string {
	for i, ff := range formFields {
		if ff.name == field {
			return strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return ""
}

// contact returns the edited contact. An existing contact keeps its record
// so unknown fields and sync flags survive the edit.
func (f contactForm) contact() (*models.Contact, error) {
	c := &models.Contact{}
	if f.editing != nil && f.editing.Meta() != nil {
		if err := c.Bind(f.editing.Meta().Clone()); err != nil {
			return nil, err
		}
	}
	c.FirstName = f.value(validators.FieldFirstName)
	c.LastName = f.value(validators.FieldLastName)
	c.Title = f.value(validators.FieldTitle)
	c.Department = f.value(validators.FieldDepartment)
	c.Email = f.value(validators.FieldEmail)
	c.MobilePhone = f.value(validators.FieldMobilePhone)
	c.HomePhone = f.value(validators.FieldHomePhone)
	return c, nil
}

func (f *contactForm) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f contactForm) update(msg tea.Msg) (contactForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f contactForm) fieldError(field string) string {
	var fe *validators.FieldError
	for _, err := range unjoin(f.err) {
		if errors.As(err, &fe) && fe.Field == field {
			return fe.Reason
		}
	}
	return ""
}

func (f contactForm) view() string {
	title := "New contact"
	if f.editing != nil {
		title = "Edit " + f.editing.FullName()
	}

	var b strings.Builder
	for i, ff := range formFields {
		b.WriteString(f.inputs[i].View())
		if reason := f.fieldError(ff.name); reason != "" {
			b.WriteString("  " + errorStyle.Render(reason))
		}
		b.WriteString("\n")
	}

	var fe *validators.FieldError
	if f.err != nil && !errors.As(f.err, &fe) {
		b.WriteString("\n" + errorStyle.Render(humanizeError(f.err)))
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "tab next  shift+tab prev  ctrl+s save  esc cancel")
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		if m.form.dirty() {
			m.confirm = &confirmModel{action: confirmDiscard}
			return m, nil
		}
		m.screen = screenContacts
		return m, nil
	case key.Matches(msg, keys.tab), msg.Type == tea.KeyDown:
		return m, m.form.setFocus(m.form.focus + 1)
	case key.Matches(msg, keys.backtab), msg.Type == tea.KeyUp:
		return m, m.form.setFocus(m.form.focus - 1)
	case key.Matches(msg, keys.enter):
		if m.form.focus < len(m.form.inputs)-1 {
			return m, m.form.setFocus(m.form.focus + 1)
		}
		return m.saveForm()
	case key.Matches(msg, keys.save):
		return m.saveForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m model) saveForm() (tea.Model, tea.Cmd) {
	c, err := m.form.contact()
	if err != nil {
		m.form.err = err
		return m, nil
	}
	if err = m.validator.Validate(m.ctx, c); err != nil {
		m.form.err = err
		return m, nil
	}
	m.form.err = nil
	m.busy = true

	ctx, store, isNew := m.ctx, m.contacts, m.form.editing == nil
	return m, func() tea.Msg {
		var (
			saved *models.Contact
			err   error
		)
		if isNew {
			saved, err = store.LocallyCreate(ctx, c)
		} else {
			saved, err = store.LocallyUpdate(ctx, c)
		}
		return contactSavedMsg{contact: saved, err: err}
	}
}

// unjoin flattens errors built with errors.Join.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
