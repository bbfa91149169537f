// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
)

// QueryFilter narrows a store query. Keys of Match and Like are soup paths
// such as "AccountId". OrderPath defaults to the schema's order path.
type QueryFilter struct {
	Match          map[string]any
	Like           map[string]string
	OrderPath      string
	Order          models.SortOrder
	Page           int
	PageSize       int
	IncludeDeleted bool
	OnlyLocal      bool
}

// ObjectStore is the typed façade over one soup: local reads, optimistic
// local writes and the syncs of its object.
//
// Writes take the soup lock shared with the sync manager, so an entry is
// never rewritten by a local edit while a sync of the soup is running.
type ObjectStore[T any, P models.EntityPtr[T]] struct {
	schema models.Schema
	soups  store.SoupStore
	syncs  SyncManager
	locks  *SoupLocks
	ids    utils.IDGenerator
	opts   models.SyncOptions

	logger *logger.Logger
}

// NewObjectStore builds the store of P's schema. Syncs use the merge mode
// of cfg for both directions.
func NewObjectStore[T any, P models.EntityPtr[T]](soups store.SoupStore, syncs SyncManager, locks *SoupLocks, ids utils.IDGenerator, cfg config.ClientSync, logger *logger.Logger) *ObjectStore[T, P] {
	schema := P(new(T)).Schema()
	return &ObjectStore[T, P]{
		schema: schema,
		soups:  soups,
		syncs:  syncs,
		locks:  locks,
		ids:    ids,
		opts: models.SyncOptions{
			MergeMode:       cfg.MergeMode,
			FieldList:       schema.ReadFields,
			CreateFieldList: schema.CreateFields,
			UpdateFieldList: schema.UpdateFields,
		},
		logger: logger,
	}
}

func (s *ObjectStore[T, P]) Schema() models.Schema { return s.schema }

// Setup registers the soup and its indexes.
func (s *ObjectStore[T, P]) Setup(ctx context.Context) error {
	if err := s.soups.RegisterSoup(ctx, s.schema.Soup, s.schema.Indexes); err != nil {
		return fmt.Errorf("register soup %s: %w", s.schema.Soup, err)
	}
	return nil
}

// ── reads ───────────────────────────────────────────────────────────────────

// Records returns one page of live entities in the schema's order.
func (s *ObjectStore[T, P]) Records(ctx context.Context, page int) ([]P, error) {
	return s.Query(ctx, QueryFilter{Page: page})
}

func (s *ObjectStore[T, P]) Query(ctx context.Context, f QueryFilter) ([]P, error) {
	recs, err := s.soups.Query(ctx, s.spec(f))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.schema.Soup, err)
	}

	out := make([]P, 0, len(recs))
	for _, rec := range recs {
		e, err := s.bind(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// First returns the first entity matching f, or ErrEntityNotFound.
func (s *ObjectStore[T, P]) First(ctx context.Context, f QueryFilter) (P, error) {
	f.PageSize, f.Page = 1, 0
	found, err := s.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, s.schema.Object)
	}
	return found[0], nil
}

func (s *ObjectStore[T, P]) Count(ctx context.Context, f QueryFilter) (int, error) {
	n, err := s.soups.Count(ctx, s.spec(f))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.schema.Soup, err)
	}
	return n, nil
}

// Record returns the entity at position index of the default order.
func (s *ObjectStore[T, P]) Record(ctx context.Context, index int) (P, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: negative index", ErrInvalidDataProvided)
	}
	found, err := s.Query(ctx, QueryFilter{Page: index, PageSize: 1})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s #%d", ErrEntityNotFound, s.schema.Object, index)
	}
	return found[0], nil
}

func (s *ObjectStore[T, P]) RecordByID(ctx context.Context, id string) (P, error) {
	rec, err := s.soups.ByServerID(ctx, s.schema.Soup, id)
	if err != nil {
		return nil, s.lookupErr(err, id)
	}
	return s.bind(rec)
}

func (s *ObjectStore[T, P]) RecordByExternalID(ctx context.Context, externalID string) (P, error) {
	rec, err := s.soups.ByExternalID(ctx, s.schema.Soup, externalID)
	if err != nil {
		return nil, s.lookupErr(err, externalID)
	}
	return s.bind(rec)
}

// RecordByKey resolves a reference that is either a server id or, before
// the referenced record was synced up, its external id.
func (s *ObjectStore[T, P]) RecordByKey(ctx context.Context, key string) (P, error) {
	e, err := s.RecordByID(ctx, key)
	if errors.Is(err, ErrEntityNotFound) {
		return s.RecordByExternalID(ctx, key)
	}
	return e, err
}

// ── local writes ────────────────────────────────────────────────────────────

// UpsertNewEntries saves entities as locally created without syncing.
func (s *ObjectStore[T, P]) UpsertNewEntries(ctx context.Context, entities ...P) ([]P, error) {
	out := make([]P, 0, len(entities))
	for _, e := range entities {
		saved, err := s.LocallyCreate(ctx, e)
		if err != nil {
			return out, err
		}
		out = append(out, saved)
	}
	return out, nil
}

// LocallyCreate validates e, assigns an external id when it has none and
// saves it flagged as locally created. e is rebound to the saved entry.
func (s *ObjectStore[T, P]) LocallyCreate(ctx context.Context, e P) (P, error) {
	unlock := s.locks.Lock(s.schema.Soup)
	defer unlock()

	rec := e.Record().Clone()
	if rec.SoupEntryID != 0 {
		return nil, fmt.Errorf("%w: %s is already saved", ErrInvalidDataProvided, rec.ExternalID)
	}
	if rec.ExternalID == "" {
		rec.ExternalID = s.ids.Generate()
	}
	rec.ObjectType = s.schema.Object

	if err := s.schema.Validate(rec.Fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := rec.MarkCreated(); err != nil {
		return nil, err
	}
	return s.save(ctx, e, rec)
}

// LocallyUpdate applies e's fields to the stored entry and flags it as
// locally updated.
func (s *ObjectStore[T, P]) LocallyUpdate(ctx context.Context, e P) (P, error) {
	return s.mutate(ctx, e, true, (*models.Record).MarkUpdated)
}

// LocallyDelete flags the stored entry of e as locally deleted. Queries
// skip it from now on; sync-up deletes it on the server.
func (s *ObjectStore[T, P]) LocallyDelete(ctx context.Context, e P) (P, error) {
	return s.mutate(ctx, e, false, (*models.Record).MarkDeleted)
}

func (s *ObjectStore[T, P]) LocallyUndelete(ctx context.Context, e P) (P, error) {
	return s.mutate(ctx, e, false, (*models.Record).Undelete)
}

// mutate reloads the stored entry of e, applies e's fields when withFields
// is set, runs transition and saves the result. Bookkeeping always comes
// from the stored entry, so a stale entity cannot undo a sync.
func (s *ObjectStore[T, P]) mutate(ctx context.Context, e P, withFields bool, transition func(*models.Record) error) (P, error) {
	unlock := s.locks.Lock(s.schema.Soup)
	defer unlock()

	current, err := s.stored(ctx, e.Record())
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if withFields {
		next.Fields = e.Record().Fields.Clone()
		if err = s.schema.Validate(next.Fields); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}
	if err = transition(next); err != nil {
		return nil, err
	}
	return s.save(ctx, e, next)
}

func (s *ObjectStore[T, P]) stored(ctx context.Context, rec *models.Record) (*models.Record, error) {
	var (
		current *models.Record
		err     error
	)
	switch {
	case rec.SoupEntryID != 0:
		current, err = s.soups.Retrieve(ctx, s.schema.Soup, rec.SoupEntryID)
	case rec.ExternalID != "":
		current, err = s.soups.ByExternalID(ctx, s.schema.Soup, rec.ExternalID)
	case rec.ID != "":
		current, err = s.soups.ByServerID(ctx, s.schema.Soup, rec.ID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrEntityNotSaved, s.schema.Object)
	}
	if errors.Is(err, store.ErrEntryNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotSaved, s.schema.Object)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.schema.Object, err)
	}
	return current, nil
}

func (s *ObjectStore[T, P]) save(ctx context.Context, e P, rec *models.Record) (P, error) {
	saved, err := s.soups.Upsert(ctx, s.schema.Soup, rec)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", s.schema.Object, err)
	}
	if err = e.Bind(saved); err != nil {
		return nil, err
	}
	return e, nil
}

// ── write then sync ─────────────────────────────────────────────────────────

// CreateEntry saves e locally, then syncs the soup up and, once the
// sync-up is done, down. cb receives the terminal state of the last sync
// that ran, exactly once. The returned entity carries the server id when
// the sync-up succeeded.
func (s *ObjectStore[T, P]) CreateEntry(ctx context.Context, e P, cb SyncCallback) (P, error) {
	saved, err := s.LocallyCreate(ctx, e)
	if err != nil {
		return nil, err
	}
	return s.syncEntry(ctx, saved, cb)
}

func (s *ObjectStore[T, P]) UpdateEntry(ctx context.Context, e P, cb SyncCallback) (P, error) {
	saved, err := s.LocallyUpdate(ctx, e)
	if err != nil {
		return nil, err
	}
	return s.syncEntry(ctx, saved, cb)
}

func (s *ObjectStore[T, P]) DeleteEntry(ctx context.Context, e P, cb SyncCallback) error {
	if _, err := s.LocallyDelete(ctx, e); err != nil {
		return err
	}
	_, err := s.syncUpDown(ctx, cb)
	return err
}

func (s *ObjectStore[T, P]) syncEntry(ctx context.Context, e P, cb SyncCallback) (P, error) {
	if _, err := s.syncUpDown(ctx, cb); err != nil {
		return e, err
	}

	// server records often carry no external id; the soup entry id is
	// stable across both syncs
	rec, err := s.soups.Retrieve(ctx, s.schema.Soup, e.Record().SoupEntryID)
	if err != nil {
		return e, s.lookupErr(err, e.Key())
	}
	return s.bind(rec)
}

// SyncUp pushes the local changes of the soup.
func (s *ObjectStore[T, P]) SyncUp(ctx context.Context) (models.SyncState, error) {
	return s.syncs.SyncUp(ctx, SyncTarget{Schema: s.schema}, s.opts, nil)
}

// SyncDown fetches the object's records into the soup.
func (s *ObjectStore[T, P]) SyncDown(ctx context.Context) (models.SyncState, error) {
	return s.syncs.SyncDown(ctx, SyncTarget{Schema: s.schema}, s.opts, nil)
}

// SyncUpDown runs a sync-up and, when it is done, a sync-down.
func (s *ObjectStore[T, P]) SyncUpDown(ctx context.Context) (models.SyncState, error) {
	return s.syncUpDown(ctx, nil)
}

func (s *ObjectStore[T, P]) syncUpDown(ctx context.Context, cb SyncCallback) (models.SyncState, error) {
	up, err := s.syncs.SyncUp(ctx, SyncTarget{Schema: s.schema}, s.opts, nil)
	if err != nil || !up.IsDone() {
		if cb != nil {
			cb(up)
		}
		return up, err
	}
	return s.syncs.SyncDown(ctx, SyncTarget{Schema: s.schema}, s.opts, cb)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func (s *ObjectStore[T, P]) spec(f QueryFilter) models.QuerySpec {
	orderPath := f.OrderPath
	if orderPath == "" {
		orderPath = s.schema.OrderPath
	}
	order := f.Order
	if order == "" {
		order = models.Ascending
	}
	return models.QuerySpec{
		Soup:           s.schema.Soup,
		OrderPath:      orderPath,
		Order:          order,
		PageSize:       f.PageSize,
		Page:           f.Page,
		Match:          f.Match,
		Like:           f.Like,
		IncludeDeleted: f.IncludeDeleted,
		OnlyLocal:      f.OnlyLocal,
	}
}

// bind decodes rec strictly; a stored entry that no longer matches the
// schema is an error, not a zero-valued entity.
func (s *ObjectStore[T, P]) bind(rec *models.Record) (P, error) {
	e := P(new(T))
	if err := e.Bind(rec); err != nil {
		return nil, fmt.Errorf("decode %s entry %d: %w", s.schema.Object, rec.SoupEntryID, err)
	}
	return e, nil
}

func (s *ObjectStore[T, P]) lookupErr(err error, key string) error {
	if errors.Is(err, store.ErrEntryNotFound) {
		return fmt.Errorf("%w: %s %s", ErrEntityNotFound, s.schema.Object, key)
	}
	return fmt.Errorf("look up %s %s: %w", s.schema.Object, key, err)
}
