// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-soup-sync/internal/adapter"
	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
)

// ─────────────────────────────────────────────────────────────────────────────
// fakeRemote: an in-memory record server
// ─────────────────────────────────────────────────────────────────────────────

type fakeRow struct {
	id         string
	externalID string
	fields     models.Fields
	modified   time.Time
	deleted    bool
}

// fakeRemote behaves like the record API: server ids, modification stamps,
// idempotent creates by external id and soft deletes. Payloads are passed
// through JSON the way they cross the wire. failCreate, failUpdate and
// failDelete inject errors per object.
type fakeRemote struct {
	mu    sync.Mutex
	seq   int
	clock time.Time
	rows  map[string]map[string]*fakeRow

	failCreate map[string]error
	failUpdate map[string]error
	failDelete map[string]error

	creates map[string]int
}

var _ adapter.RemoteAdapter = (*fakeRemote)(nil)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		clock:      time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		rows:       make(map[string]map[string]*fakeRow),
		failCreate: make(map[string]error),
		failUpdate: make(map[string]error),
		failDelete: make(map[string]error),
		creates:    make(map[string]int),
	}
}

func (f *fakeRemote) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRemote) table(object string) map[string]*fakeRow {
	t, ok := f.rows[object]
	if !ok {
		t = make(map[string]*fakeRow)
		f.rows[object] = t
	}
	return t
}

// seed stores a record as if another client had created it and returns its
// id.
func (f *fakeRemote) seed(object string, fields models.Fields) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("srv-%03d", f.seq)
	f.table(object)[id] = &fakeRow{id: id, fields: wire(fields), modified: f.tick()}
	return id
}

// edit changes a record on the server and bumps its stamp.
func (f *fakeRemote) edit(object, id string, fields models.Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row := f.table(object)[id]
	for k, v := range wire(fields) {
		row.fields[k] = v
	}
	row.modified = f.tick()
}

func (f *fakeRemote) remove(object, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.table(object)[id].deleted = true
}

func (f *fakeRemote) row(object, id string) (fakeRow, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.table(object)[id]
	if !ok {
		return fakeRow{}, false
	}
	return *row, true
}

// live returns the non-deleted rows of object.
func (f *fakeRemote) live(object string) []fakeRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeRow
	for _, row := range f.table(object) {
		if !row.deleted {
			out = append(out, *row)
		}
	}
	return out
}

func (f *fakeRemote) createCount(object string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates[object]
}

func (f *fakeRemote) Query(_ context.Context, req adapter.QueryRequest) (models.QueryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*fakeRow
	for _, row := range f.table(req.Object) {
		if !row.deleted && row.modified.After(req.Since) {
			matched = append(matched, row)
		}
	}
	slices.SortFunc(matched, func(a, b *fakeRow) int {
		if c := a.modified.Compare(b.modified); c != 0 {
			return c
		}
		return compareStrings(a.id, b.id)
	})

	offset := 0
	if req.Cursor != "" {
		n, err := strconv.Atoi(req.Cursor)
		if err != nil {
			return models.QueryResponse{}, fmt.Errorf("%w: cursor", adapter.ErrBadRequest)
		}
		offset = n
	}
	limit := req.Limit
	if limit <= 0 {
		limit = models.DefaultPageSize
	}
	end := min(offset+limit, len(matched))

	resp := models.QueryResponse{TotalSize: len(matched), Done: end >= len(matched)}
	if !resp.Done {
		resp.NextCursor = strconv.Itoa(end)
	}
	for _, row := range matched[offset:end] {
		resp.Records = append(resp.Records, row.doc(req.Object, req.Fields))
	}
	return resp, nil
}

func (f *fakeRemote) Retrieve(_ context.Context, object, id string, fields []string) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.table(object)[id]
	if !ok || row.deleted {
		return nil, fmt.Errorf("%w: %s/%s", adapter.ErrNotFound, object, id)
	}
	return row.doc(object, fields), nil
}

func (f *fakeRemote) Create(_ context.Context, object string, fields map[string]any) (models.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failCreate[object]; err != nil {
		return models.SaveResult{}, err
	}

	body := wire(fields)
	ext, _, _ := body.String(models.FieldExternalID)
	if ext != "" {
		for _, row := range f.table(object) {
			if row.externalID == ext {
				return models.SaveResult{ID: row.id, LastModifiedDate: row.modified}, nil
			}
		}
	}

	f.seq++
	f.creates[object]++
	row := &fakeRow{
		id:         fmt.Sprintf("srv-%03d", f.seq),
		externalID: ext,
		fields:     models.StripBookkeeping(body),
		modified:   f.tick(),
	}
	f.table(object)[row.id] = row
	return models.SaveResult{ID: row.id, LastModifiedDate: row.modified}, nil
}

func (f *fakeRemote) Update(_ context.Context, object, id string, fields map[string]any) (models.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failUpdate[object]; err != nil {
		return models.SaveResult{}, err
	}
	row, ok := f.table(object)[id]
	if !ok || row.deleted {
		return models.SaveResult{}, fmt.Errorf("%w: %s/%s", adapter.ErrNotFound, object, id)
	}
	for k, v := range models.StripBookkeeping(wire(fields)) {
		if v == nil {
			delete(row.fields, k)
			continue
		}
		row.fields[k] = v
	}
	row.modified = f.tick()
	return models.SaveResult{ID: row.id, LastModifiedDate: row.modified}, nil
}

func (f *fakeRemote) Delete(_ context.Context, object, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failDelete[object]; err != nil {
		return err
	}
	row, ok := f.table(object)[id]
	if !ok || row.deleted {
		return fmt.Errorf("%w: %s/%s", adapter.ErrNotFound, object, id)
	}
	row.deleted = true
	row.modified = f.tick()
	return nil
}

func (f *fakeRemote) LastModified(_ context.Context, object string, ids []string) (map[string]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]time.Time, len(ids))
	for _, id := range ids {
		if row, ok := f.table(object)[id]; ok && !row.deleted {
			out[id] = row.modified
		}
	}
	return out, nil
}

func (r *fakeRow) doc(object string, fields []string) map[string]any {
	body := r.fields.Clone()
	if len(fields) > 0 {
		body = models.Project(r.fields, fields)
	}
	rec := models.NewRecord(object, r.externalID, body)
	rec.ID = r.id
	rec.LastModifiedDate = r.modified
	return wire(rec.RemoteDoc())
}

// wire returns a copy of m as it looks after a JSON round trip.
func wire(m map[string]any) models.Fields {
	raw, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	var out models.Fields
	if err = json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	if out == nil {
		out = models.Fields{}
	}
	return out
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ─────────────────────────────────────────────────────────────────────────────
// client harness
// ─────────────────────────────────────────────────────────────────────────────

type testClient struct {
	storages *store.ClientStorages
	syncs    SyncManager
	stores   *Stores
}

// newTestClient wires the client services over a fresh SQLite file and
// remote.
func newTestClient(t *testing.T, remote adapter.RemoteAdapter) *testClient {
	t.Helper()

	storages, err := store.NewClientStorages(testContext(), config.ClientStorage{
		DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "soups.db")},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	cfg := config.ClientSync{PageSize: 2, MergeMode: models.MergeLeaveIfChanged}
	locks := NewSoupLocks()
	syncs := NewSyncManager(storages, remote, locks, cfg, logger.Nop())
	stores := NewStores(storages.Soups, syncs, locks, utils.NewSequenceGenerator("ext"), cfg, logger.Nop())
	require.NoError(t, stores.Setup(testContext()))

	return &testClient{storages: storages, syncs: syncs, stores: stores}
}

// recorder collects the states handed to a SyncCallback.
type recorder struct {
	mu     sync.Mutex
	states []models.SyncState
}

func (r *recorder) callback(s models.SyncState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

// terminal returns the terminal states seen, in order.
func (r *recorder) terminal() []models.SyncState {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SyncState
	for _, s := range r.states {
		if s.IsTerminal() {
			out = append(out, s)
		}
	}
	return out
}
