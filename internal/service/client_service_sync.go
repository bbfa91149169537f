// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-soup-sync/internal/adapter"
	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/models"
)

const conflictReason = "record was modified on the server after it was fetched"

type syncManager struct {
	soups  store.SoupStore
	states store.SyncStateStore
	remote adapter.RemoteAdapter
	locks  *SoupLocks

	pageSize  int
	mergeMode models.MergeMode
	now       func() time.Time

	logger *logger.Logger
}

// NewSyncManager wires a SyncManager over the client storages. locks must
// be the instance shared with the object stores.
func NewSyncManager(storages *store.ClientStorages, remote adapter.RemoteAdapter, locks *SoupLocks, cfg config.ClientSync, logger *logger.Logger) SyncManager {
	mode := cfg.MergeMode
	if mode == "" {
		mode = models.MergeLeaveIfChanged
	}
	return &syncManager{
		soups:     storages.Soups,
		states:    storages.SyncStates,
		remote:    remote,
		locks:     locks,
		pageSize:  cfg.PageSize,
		mergeMode: mode,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

func (m *syncManager) SyncDown(ctx context.Context, target SyncTarget, opts models.SyncOptions, cb SyncCallback) (models.SyncState, error) {
	state, err := m.newState(target, models.SyncDown, opts)
	if err != nil {
		return models.SyncState{}, err
	}
	return m.runDown(ctx, target.Schema, state, time.Time{}, cb)
}

func (m *syncManager) SyncUp(ctx context.Context, target SyncTarget, opts models.SyncOptions, cb SyncCallback) (models.SyncState, error) {
	state, err := m.newState(target, models.SyncUp, opts)
	if err != nil {
		return models.SyncState{}, err
	}
	return m.runUp(ctx, target.Schema, state, cb)
}

func (m *syncManager) ReSync(ctx context.Context, name string, cb SyncCallback) (models.SyncState, error) {
	state, err := m.GetSyncStatus(ctx, name)
	if err != nil {
		return models.SyncState{}, err
	}
	schema := schemaFor(state)

	switch state.Type {
	case models.SyncDown:
		return m.runDown(ctx, schema, state, state.MaxTimeStamp, cb)
	case models.SyncUp:
		return m.runUp(ctx, schema, state, cb)
	}
	return state, fmt.Errorf("%w: %q", ErrInvalidSyncType, state.Type)
}

func (m *syncManager) GetSyncStatus(ctx context.Context, name string) (models.SyncState, error) {
	state, err := m.states.GetSyncByName(ctx, name)
	if errors.Is(err, store.ErrSyncNotFound) {
		return models.SyncState{}, fmt.Errorf("%w: %s", ErrSyncNotFound, name)
	}
	if err != nil {
		return models.SyncState{}, fmt.Errorf("get sync %s: %w", name, err)
	}
	return state, nil
}

func (m *syncManager) CleanResyncGhosts(ctx context.Context, name string) (int, error) {
	log := logger.FromContext(ctx)

	state, err := m.GetSyncStatus(ctx, name)
	if err != nil {
		return 0, err
	}
	if state.Type != models.SyncDown {
		return 0, fmt.Errorf("%w: ghosts are cleaned for sync-downs only", ErrInvalidSyncType)
	}

	unlock := m.locks.Lock(state.Soup)
	defer unlock()

	remoteIDs := make(map[string]struct{})
	req := adapter.QueryRequest{Object: state.Object, Fields: []string{models.FieldID}, Limit: m.pageSize}
	for {
		page, err := m.remote.Query(ctx, req)
		if err != nil {
			return 0, fmt.Errorf("list remote ids of %s: %w", state.Object, err)
		}
		for _, doc := range page.Records {
			if id, ok, _ := models.Fields(doc).String(models.FieldID); ok {
				remoteIDs[id] = struct{}{}
			}
		}
		if page.Done || page.NextCursor == "" || len(page.Records) == 0 {
			break
		}
		req.Cursor = page.NextCursor
	}

	localIDs, err := m.soups.ServerIDs(ctx, state.Soup)
	if err != nil {
		return 0, fmt.Errorf("list local ids of %s: %w", state.Soup, err)
	}

	var ghosts []int64
	for _, id := range localIDs {
		if _, ok := remoteIDs[id]; ok {
			continue
		}
		rec, err := m.soups.ByServerID(ctx, state.Soup, id)
		if err != nil {
			return 0, fmt.Errorf("load %s: %w", id, err)
		}
		// Local changes are kept; sync-up reports them.
		if !rec.Local {
			ghosts = append(ghosts, rec.SoupEntryID)
		}
	}

	if len(ghosts) == 0 {
		return 0, nil
	}
	if err = m.soups.Delete(ctx, state.Soup, ghosts...); err != nil {
		return 0, fmt.Errorf("delete ghosts of %s: %w", state.Soup, err)
	}

	log.Info().Str("sync", name).Int("removed", len(ghosts)).Msg("resync ghosts cleaned")
	return len(ghosts), nil
}

// ── sync-down ───────────────────────────────────────────────────────────────

func (m *syncManager) runDown(ctx context.Context, schema models.Schema, state models.SyncState, since time.Time, cb SyncCallback) (models.SyncState, error) {
	unlock := m.locks.Lock(schema.Soup)
	defer unlock()

	state, err := m.start(ctx, schema, state)
	if err != nil {
		return m.finish(ctx, state, err, cb)
	}

	fields := state.Options.FieldList
	if len(fields) == 0 {
		fields = schema.ReadFields
	}

	req := adapter.QueryRequest{Object: schema.Object, Fields: fields, Since: since, Limit: m.pageSize}
	processed := 0
	for {
		if err = ctx.Err(); err != nil {
			return m.finish(ctx, state, err, cb)
		}

		page, err := m.remote.Query(ctx, req)
		if err != nil {
			return m.finish(ctx, state, fmt.Errorf("query %s: %w", schema.Object, err), cb)
		}
		if processed == 0 {
			state.TotalSize = page.TotalSize
		}

		for _, doc := range page.Records {
			stamp, skipped, err := m.mergeDown(ctx, schema, state.Options.MergeMode, doc)
			if err != nil {
				return m.finish(ctx, state, err, cb)
			}
			processed++
			if skipped {
				state.Skipped++
				continue
			}
			if stamp.After(state.MaxTimeStamp) {
				state.MaxTimeStamp = stamp
			}
		}

		state.Progress = progress(processed, state.TotalSize)
		m.report(ctx, &state, cb)

		if page.Done || page.NextCursor == "" || len(page.Records) == 0 {
			break
		}
		req.Cursor = page.NextCursor
	}

	return m.finish(ctx, state, nil, cb)
}

// mergeDown stores one server document. Documents that do not decode
// against the schema are reported as skipped and never stored.
func (m *syncManager) mergeDown(ctx context.Context, schema models.Schema, mode models.MergeMode, doc map[string]any) (time.Time, bool, error) {
	log := logger.FromContext(ctx)

	remote, err := models.RecordFromRemote(schema.Object, doc)
	if err == nil {
		err = schema.Validate(remote.Fields)
	}
	if err != nil {
		log.Warn().Err(err).Str("func", "syncManager.mergeDown").Str("object", schema.Object).
			Any("id", doc[models.FieldID]).Msg("skipping malformed record")
		return time.Time{}, true, nil
	}

	local, err := m.findLocal(ctx, schema.Soup, remote.ID, remote.ExternalID)
	if err != nil {
		return time.Time{}, false, err
	}

	switch {
	case local == nil:
		local = remote
	case local.Local && mode == models.MergeLeaveIfChanged:
		return remote.LastModifiedDate, false, nil
	default:
		local.ApplyRemote(remote)
	}

	if _, err = m.soups.Upsert(ctx, schema.Soup, local); err != nil {
		return time.Time{}, false, fmt.Errorf("save %s %s: %w", schema.Object, remote.ID, err)
	}
	return remote.LastModifiedDate, false, nil
}

func (m *syncManager) findLocal(ctx context.Context, soup, id, externalID string) (*models.Record, error) {
	rec, err := m.soups.ByServerID(ctx, soup, id)
	if errors.Is(err, store.ErrEntryNotFound) && externalID != "" {
		rec, err = m.soups.ByExternalID(ctx, soup, externalID)
	}
	if errors.Is(err, store.ErrEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", id, err)
	}
	return rec, nil
}

// ── sync-up ─────────────────────────────────────────────────────────────────

func (m *syncManager) runUp(ctx context.Context, schema models.Schema, state models.SyncState, cb SyncCallback) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	unlock := m.locks.Lock(schema.Soup)
	defer unlock()

	state, err := m.start(ctx, schema, state)
	if err != nil {
		return m.finish(ctx, state, err, cb)
	}

	dirty, err := m.soups.DirtyRecords(ctx, schema.Soup)
	if err != nil {
		return m.finish(ctx, state, fmt.Errorf("list dirty records: %w", err), cb)
	}
	state.TotalSize = len(dirty)

	var stamps map[string]time.Time
	if ids := StampCheckIDs(dirty); len(ids) > 0 && state.Options.MergeMode == models.MergeLeaveIfChanged {
		stamps, err = m.remote.LastModified(ctx, schema.Object, ids)
		if err != nil {
			return m.finish(ctx, state, fmt.Errorf("check server stamps: %w", err), cb)
		}
	}

	plan, err := BuildSyncUpPlan(ctx, dirty, state.Options.MergeMode, stamps)
	if err != nil {
		return m.finish(ctx, state, err, cb)
	}

	processed, failed := 0, 0
	done := func(ok bool) {
		processed++
		if !ok {
			failed++
		}
		state.Progress = progress(processed, state.TotalSize)
	}

	if len(plan.Purge) > 0 {
		ids := make([]int64, 0, len(plan.Purge))
		for _, rec := range plan.Purge {
			ids = append(ids, rec.SoupEntryID)
		}
		if err = m.soups.Delete(ctx, schema.Soup, ids...); err != nil {
			return m.finish(ctx, state, fmt.Errorf("purge local-only records: %w", err), cb)
		}
		processed += len(ids)
	}

	for _, rec := range plan.Conflicts {
		if err = m.transition(ctx, schema.Soup, rec, func(r *models.Record) error {
			return r.MarkConflict(conflictReason)
		}); err != nil {
			return m.finish(ctx, state, err, cb)
		}
		log.Warn().Str("object", schema.Object).Str("id", rec.ID).Msg("sync-up conflict, local change kept")
		state.Skipped++
		processed++
	}

	createList := state.Options.CreateFieldList
	if len(createList) == 0 {
		createList = schema.CreateFields
	}
	updateList := state.Options.UpdateFieldList
	if len(updateList) == 0 {
		updateList = schema.UpdateFields
	}

	push := func(rec *models.Record, call func(*models.Record) (models.SaveResult, error)) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rec.BeginSync(); err != nil {
			return err
		}
		res, callErr := call(rec)
		if callErr != nil {
			log.Err(callErr).Str("func", "syncManager.runUp").Str("object", schema.Object).
				Str("externalId", rec.ExternalID).Msg("record sync-up failed")
			done(false)
			return m.save(ctx, schema.Soup, rec, rec.MarkFailed(callErr))
		}
		done(true)
		return m.save(ctx, schema.Soup, rec, rec.MarkSynced(res.ID, res.LastModifiedDate))
	}

	for _, rec := range plan.Create {
		if err = push(rec, func(r *models.Record) (models.SaveResult, error) {
			return m.remote.Create(ctx, schema.Object, r.Payload(createList))
		}); err != nil {
			return m.finish(ctx, state, err, cb)
		}
	}
	m.report(ctx, &state, cb)

	for _, rec := range plan.Update {
		if err = push(rec, func(r *models.Record) (models.SaveResult, error) {
			return m.remote.Update(ctx, schema.Object, r.ID, r.Patch(updateList))
		}); err != nil {
			return m.finish(ctx, state, err, cb)
		}
	}
	m.report(ctx, &state, cb)

	for _, rec := range plan.Delete {
		if err = ctx.Err(); err != nil {
			return m.finish(ctx, state, err, cb)
		}
		callErr := m.remote.Delete(ctx, schema.Object, rec.ID)
		if callErr != nil && !errors.Is(callErr, adapter.ErrNotFound) {
			log.Err(callErr).Str("func", "syncManager.runUp").Str("object", schema.Object).
				Str("id", rec.ID).Msg("record delete failed")
			done(false)
			if err = m.transition(ctx, schema.Soup, rec, func(r *models.Record) error {
				return r.MarkFailed(callErr)
			}); err != nil {
				return m.finish(ctx, state, err, cb)
			}
			continue
		}
		if err = m.soups.Delete(ctx, schema.Soup, rec.SoupEntryID); err != nil {
			return m.finish(ctx, state, fmt.Errorf("remove deleted record: %w", err), cb)
		}
		done(true)
	}

	if failed > 0 {
		return m.finish(ctx, state, fmt.Errorf("%d of %d records failed", failed, len(dirty)), cb)
	}
	return m.finish(ctx, state, nil, cb)
}

// transition moves rec through Syncing into the state set by next and
// saves it.
func (m *syncManager) transition(ctx context.Context, soup string, rec *models.Record, next func(*models.Record) error) error {
	if err := rec.BeginSync(); err != nil {
		return err
	}
	return m.save(ctx, soup, rec, next(rec))
}

func (m *syncManager) save(ctx context.Context, soup string, rec *models.Record, transitionErr error) error {
	if transitionErr != nil {
		return transitionErr
	}
	if _, err := m.soups.Upsert(ctx, soup, rec); err != nil {
		return fmt.Errorf("save %s: %w", rec.ExternalID, err)
	}
	return nil
}

// ── state bookkeeping ───────────────────────────────────────────────────────

func (m *syncManager) newState(target SyncTarget, typ models.SyncType, opts models.SyncOptions) (models.SyncState, error) {
	schema := target.Schema
	if schema.Object == "" || schema.Soup == "" {
		return models.SyncState{}, fmt.Errorf("%w: sync target needs an object and a soup", ErrInvalidDataProvided)
	}

	name := target.Name
	if name == "" {
		if typ == models.SyncDown {
			name = models.SyncDownName(schema.Object)
		} else {
			name = models.SyncUpName(schema.Object)
		}
	}
	if opts.MergeMode == "" {
		opts.MergeMode = m.mergeMode
	}

	return models.SyncState{
		Name:    name,
		Type:    typ,
		Soup:    schema.Soup,
		Object:  schema.Object,
		Status:  models.SyncStatusNew,
		Options: opts,
	}, nil
}

// start registers the soup when needed and persists the RUNNING state.
func (m *syncManager) start(ctx context.Context, schema models.Schema, state models.SyncState) (models.SyncState, error) {
	if err := ctx.Err(); err != nil {
		return state, err
	}
	exists, err := m.soups.SoupExists(ctx, schema.Soup)
	if err != nil {
		return state, fmt.Errorf("check soup %s: %w", schema.Soup, err)
	}
	if !exists {
		if err = m.soups.RegisterSoup(ctx, schema.Soup, schema.Indexes); err != nil {
			return state, fmt.Errorf("register soup %s: %w", schema.Soup, err)
		}
	}

	state.Status = models.SyncStatusRunning
	state.Progress, state.TotalSize, state.Skipped = 0, 0, 0
	state.StartTime = m.now()
	state.EndTime = time.Time{}
	state.Error = ""

	saved, err := m.states.SaveSync(ctx, state)
	if err != nil {
		return state, fmt.Errorf("save sync %s: %w", state.Name, err)
	}
	return saved, nil
}

// report persists a RUNNING snapshot and hands it to cb.
func (m *syncManager) report(ctx context.Context, state *models.SyncState, cb SyncCallback) {
	saved, err := m.states.SaveSync(ctx, *state)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "syncManager.report").Str("sync", state.Name).Msg("saving sync progress failed")
	} else {
		*state = saved
	}
	if cb != nil {
		cb(*state)
	}
}

// finish records the terminal state, calls cb with it once and returns
// ErrSyncFailed when cause is set.
func (m *syncManager) finish(ctx context.Context, state models.SyncState, cause error, cb SyncCallback) (models.SyncState, error) {
	log := logger.FromContext(ctx)

	state.EndTime = m.now()
	if cause != nil {
		state.Status = models.SyncStatusFailed
		state.Error = cause.Error()
	} else {
		state.Status = models.SyncStatusDone
		state.Progress = 100
	}

	saved, err := m.states.SaveSync(context.WithoutCancel(ctx), state)
	if err != nil {
		log.Err(err).Str("func", "syncManager.finish").Str("sync", state.Name).Msg("saving sync state failed")
	} else {
		state = saved
	}

	if cb != nil {
		cb(state)
	}

	if cause != nil {
		log.Err(cause).Str("sync", state.Name).Msg("sync failed")
		return state, fmt.Errorf("%w: %s: %w", ErrSyncFailed, state.Name, cause)
	}
	log.Debug().Str("sync", state.Name).Int("total", state.TotalSize).Int("skipped", state.Skipped).Msg("sync done")
	return state, nil
}

func progress(processed, total int) int {
	if total <= 0 {
		return 100
	}
	p := processed * 100 / total
	if p > 100 {
		return 100
	}
	return p
}

// schemaFor resolves the schema of a saved sync, falling back to a bare
// schema for objects the client has no typed model of.
func schemaFor(state models.SyncState) models.Schema {
	if s, ok := models.LookupSchema(state.Object); ok && s.Soup == state.Soup {
		return s
	}
	s := models.BaseSchema()
	s.Object = state.Object
	s.Soup = state.Soup
	return s
}
