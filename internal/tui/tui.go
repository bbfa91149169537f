// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/service"
	"github.com/MKhiriev/go-soup-sync/internal/validators"
	"github.com/MKhiriev/go-soup-sync/models"
)

// ContactStore is the part of the contacts ObjectStore the explorer uses.
type ContactStore interface {
	Query(ctx context.Context, f service.QueryFilter) ([]*models.Contact, error)
	LocallyCreate(ctx context.Context, c *models.Contact) (*models.Contact, error)
	LocallyUpdate(ctx context.Context, c *models.Contact) (*models.Contact, error)
	LocallyDelete(ctx context.Context, c *models.Contact) (*models.Contact, error)
	LocallyUndelete(ctx context.Context, c *models.Contact) (*models.Contact, error)
	SyncUpDown(ctx context.Context) (models.SyncState, error)
}

// writeClipboard is swapped in tests; CI machines have no clipboard.
var writeClipboard = clipboard.WriteAll

type TUI struct {
	contacts  ContactStore
	orders    service.OrderService
	validator validators.Validator
	build     models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, build models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	return &TUI{
		contacts:  services.Stores.Contacts,
		orders:    services.Orders,
		validator: validators.NewContactValidator(),
		build:     build,
		logger:    logger,
	}, nil
}

// Run shows the explorer until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	m := newModel(ctx, t.contacts, t.orders, t.validator, t.build)
	finalModel, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.Run").Msg("terminal program failed")
		return err
	}

	if result, ok := finalModel.(model); ok && result.quitting {
		return ErrUserQuit
	}
	return nil
}
