// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/tui"
)

type App struct {
	stores  StoreSet
	ui      UI
	workers Workers
	logger  *logger.Logger
}

func NewApp(stores StoreSet, ui UI, workers Workers, logger *logger.Logger) (*App, error) {
	if stores == nil || ui == nil || workers == nil {
		return nil, ErrMissingDependency
	}
	return &App{stores: stores, ui: ui, workers: workers, logger: logger}, nil
}

// Run registers the soups, tries one full sync and hands the terminal to
// the UI. A failed first sync is logged and the app runs offline.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	if err := a.stores.Setup(ctx); err != nil {
		return fmt.Errorf("setup soups: %w", err)
	}

	if err := a.stores.SyncAll(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.Run").Msg("initial sync failed, starting offline")
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	err := a.ui.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}
