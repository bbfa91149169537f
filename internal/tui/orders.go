// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-soup-sync/models"
)

type orderList struct {
	items []models.Order
	idx   int
}

func (l *orderList) setItems(items []models.Order) {
	l.items = items
	if l.idx >= len(items) {
		l.idx = max(len(items)-1, 0)
	}
}

func (l orderList) current() (models.Order, bool) {
	if len(l.items) == 0 || l.idx < 0 || l.idx >= len(l.items) {
		return models.Order{}, false
	}
	return l.items[l.idx], true
}

func (l orderList) view(header string) string {
	var b strings.Builder
	if len(l.items) == 0 {
		b.WriteString("No orders waiting")
	}

	for i, o := range l.items {
		cursor := "  "
		if i == l.idx {
			cursor = "> "
		}
		total := 0.0
		if o.Quote != nil {
			total = o.Quote.NetAmount
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, stateMarker(o.Opportunity.State()), fitText(o.Opportunity.Name, 32), formatMoney(total))

		if i != l.idx {
			continue
		}
		for _, item := range o.Items {
			fmt.Fprintf(&b, "      %d x %s\n", item.Quantity, describeItem(item))
		}
	}

	return renderPage(header, strings.TrimRight(b.String(), "\n"), "c complete  s sync  esc contacts  q quit")
}

// describeItem lists the product followed by its chosen options.
func describeItem(item models.CartItem) string {
	name := "?"
	if item.Product != nil {
		name = item.Product.Name
	}

	var opts []string
	for _, o := range item.Options {
		if o.Option == nil {
			continue
		}
		label := o.Option.ProductName
		if label == "" {
			label = o.Option.Name
		}
		if o.Quantity > 1 {
			label = fmt.Sprintf("%s x%d", label, o.Quantity)
		}
		opts = append(opts, label)
	}
	if len(opts) == 0 {
		return name
	}
	return name + " (" + strings.Join(opts, ", ") + ")"
}

func (m model) updateOrders(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.esc):
		m.screen = screenContacts
		m.busy = true
		return m, m.loadContacts()
	case key.Matches(msg, keys.up):
		if m.orderList.idx > 0 {
			m.orderList.idx--
		}
	case key.Matches(msg, keys.down):
		if m.orderList.idx < len(m.orderList.items)-1 {
			m.orderList.idx++
		}
	case key.Matches(msg, keys.sync):
		m.busy = true
		return m, m.syncOrders()
	case key.Matches(msg, keys.complete):
		order, ok := m.orderList.current()
		if !ok {
			return m, nil
		}
		m.busy = true
		ctx, orders := m.ctx, m.orders
		return m, func() tea.Msg {
			return orderCompletedMsg{err: orders.CompleteOrder(ctx, order)}
		}
	}
	return m, nil
}

func (m model) loadOrders() tea.Cmd {
	ctx, orders := m.ctx, m.orders
	return func() tea.Msg {
		items, err := orders.CurrentOrders(ctx)
		return ordersLoadedMsg{orders: items, err: err}
	}
}
