// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
)

// syncable is the untyped view of an ObjectStore used to set up and sync
// every store alike.
type syncable interface {
	Schema() models.Schema
	Setup(ctx context.Context) error
	SyncUp(ctx context.Context) (models.SyncState, error)
	SyncDown(ctx context.Context) (models.SyncState, error)
}

// Stores holds one ObjectStore per synced object. Everything is built from
// the dependencies passed to NewStores; there are no package-level
// instances.
type Stores struct {
	Contacts        *ObjectStore[models.Contact, *models.Contact]
	Accounts        *ObjectStore[models.Account, *models.Account]
	Pricebooks      *ObjectStore[models.Pricebook, *models.Pricebook]
	Products        *ObjectStore[models.Product, *models.Product]
	ProductOptions  *ObjectStore[models.ProductOption, *models.ProductOption]
	Opportunities   *ObjectStore[models.Opportunity, *models.Opportunity]
	Quotes          *ObjectStore[models.Quote, *models.Quote]
	QuoteLineGroups *ObjectStore[models.QuoteLineGroup, *models.QuoteLineGroup]
	QuoteLineItems  *ObjectStore[models.QuoteLineItem, *models.QuoteLineItem]

	logger *logger.Logger
}

func NewStores(soups store.SoupStore, syncs SyncManager, locks *SoupLocks, ids utils.IDGenerator, cfg config.ClientSync, logger *logger.Logger) *Stores {
	return &Stores{
		Contacts:        NewObjectStore[models.Contact](soups, syncs, locks, ids, cfg, logger),
		Accounts:        NewObjectStore[models.Account](soups, syncs, locks, ids, cfg, logger),
		Pricebooks:      NewObjectStore[models.Pricebook](soups, syncs, locks, ids, cfg, logger),
		Products:        NewObjectStore[models.Product](soups, syncs, locks, ids, cfg, logger),
		ProductOptions:  NewObjectStore[models.ProductOption](soups, syncs, locks, ids, cfg, logger),
		Opportunities:   NewObjectStore[models.Opportunity](soups, syncs, locks, ids, cfg, logger),
		Quotes:          NewObjectStore[models.Quote](soups, syncs, locks, ids, cfg, logger),
		QuoteLineGroups: NewObjectStore[models.QuoteLineGroup](soups, syncs, locks, ids, cfg, logger),
		QuoteLineItems:  NewObjectStore[models.QuoteLineItem](soups, syncs, locks, ids, cfg, logger),
		logger:          logger,
	}
}

// all lists the stores parents first, so a sync-up never pushes a child
// before the record it references.
func (s *Stores) all() []syncable {
	return []syncable{
		s.Contacts, s.Accounts, s.Pricebooks, s.Products, s.ProductOptions,
		s.Opportunities, s.Quotes, s.QuoteLineGroups, s.QuoteLineItems,
	}
}

// Setup registers every soup.
func (s *Stores) Setup(ctx context.Context) error {
	for _, st := range s.all() {
		if err := st.Setup(ctx); err != nil {
			return err
		}
	}
	return nil
}

// SyncAll pushes local changes of every store in dependency order, then
// syncs every store down concurrently. Failures do not stop the other
// stores; they are joined into the returned error.
func (s *Stores) SyncAll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var errs []error
	for _, st := range s.all() {
		if _, err := st.SyncUp(ctx); err != nil {
			log.Err(err).Str("func", "Stores.SyncAll").Str("object", st.Schema().Object).Msg("sync-up failed")
			errs = append(errs, err)
		}
	}

	downErrs := make([]error, len(s.all()))
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range s.all() {
		g.Go(func() error {
			if _, err := st.SyncDown(gctx); err != nil {
				log.Err(err).Str("func", "Stores.SyncAll").Str("object", st.Schema().Object).Msg("sync-down failed")
				downErrs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(append(errs, downErrs...)...); err != nil {
		return fmt.Errorf("sync all: %w", err)
	}
	return nil
}

// SyncDownAll fetches every object concurrently and fails fast.
func (s *Stores) SyncDownAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, st := range s.all() {
		g.Go(func() error {
			_, err := st.SyncDown(gctx)
			return err
		})
	}
	return g.Wait()
}
