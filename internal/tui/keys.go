// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	newItem  key.Binding
	sync     key.Binding
	edit     key.Binding
	delete   key.Binding
	undelete key.Binding
	copy     key.Binding
	search   key.Binding
	orders   key.Binding
	complete key.Binding
	save     key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	newItem:  key.NewBinding(key.WithKeys("n")),
	sync:     key.NewBinding(key.WithKeys("s")),
	edit:     key.NewBinding(key.WithKeys("e")),
	delete:   key.NewBinding(key.WithKeys("d")),
	undelete: key.NewBinding(key.WithKeys("u")),
	copy:     key.NewBinding(key.WithKeys("c")),
	search:   key.NewBinding(key.WithKeys("/")),
	orders:   key.NewBinding(key.WithKeys("o")),
	complete: key.NewBinding(key.WithKeys("c")),
	save:     key.NewBinding(key.WithKeys("ctrl+s")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n")),
}
