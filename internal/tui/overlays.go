// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

type confirmAction int

const (
	confirmDelete confirmAction = iota
	confirmDiscard
)

// confirmModel asks a yes/no question before a destructive action.
type confirmModel struct {
	action  confirmAction
	message string
}

func (m confirmModel) View() string {
	var content string
	switch m.action {
	case confirmDiscard:
		content = "Discard unsaved changes?\n\n"
	default:
		content = "Delete \"" + m.message + "\"?\n\n"
	}
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := errorStyle.Render("Error") + "\n\n" + m.message + "\n\nenter / esc close"
	return overlayBoxStyle.Render(content)
}
