// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-soup-sync/internal/adapter"
	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
)

// ClientServices is the client's dependency container. Each call to
// NewClientServices builds an independent graph, so tests and multiple
// accounts never share state.
type ClientServices struct {
	SyncManager SyncManager
	Stores      *Stores
	Cart        CartService
	Orders      OrderService
	SyncJob     SyncJob
}

func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteAdapter, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	locks := NewSoupLocks()
	syncs := NewSyncManager(storages, remote, locks, cfg.Sync, logger)
	stores := NewStores(storages.Soups, syncs, locks, utils.NewUUIDGenerator(), cfg.Sync, logger)

	return &ClientServices{
		SyncManager: syncs,
		Stores:      stores,
		Cart:        NewCartService(stores, logger),
		Orders:      NewOrderService(stores, logger),
		SyncJob:     NewSyncJob(stores, cfg.Workers.SyncInterval),
	}
}
