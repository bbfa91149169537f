// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/models"
)

// soupStore is the SQLite implementation of [SoupStore]. Each entry is one
// row of soup_entries; the record is stored as its soup JSON document in
// doc, and the columns duplicate the bookkeeping needed for lookups.
type soupStore struct {
	*DB
	logger *logger.Logger

	mu    sync.RWMutex
	soups map[string]struct{}

	now func() time.Time
}

// NewSoupStore constructs a [SoupStore] on an SQLite connection.
func NewSoupStore(db *DB, logger *logger.Logger) SoupStore {
	return &soupStore{
		DB:     db,
		logger: logger,
		soups:  make(map[string]struct{}),
		now:    time.Now,
	}
}

func (s *soupStore) RegisterSoup(ctx context.Context, name string, indexes []string) error {
	log := logger.FromContext(ctx)

	if err := validateSoupName(name); err != nil {
		return err
	}
	statements := make([]string, 0, len(indexes))
	for _, path := range indexes {
		stmt, err := buildCreateIndexStatement(name, path)
		if err != nil {
			return err
		}
		statements = append(statements, stmt)
	}

	rawIndexes, err := json.Marshal(indexes)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	query, args, err := s.builder.Insert(soupsTable).
		Columns("name", "indexes", "created_at").
		Values(name, string(rawIndexes), s.now().UnixMilli()).
		Suffix("ON CONFLICT (name) DO UPDATE SET indexes = excluded.indexes").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "soupStore.RegisterSoup").Str("soup", name).Msg("failed to register soup")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	for _, stmt := range statements {
		if _, err = s.ExecContext(ctx, stmt); err != nil {
			log.Err(err).Str("func", "soupStore.RegisterSoup").Str("soup", name).Msg("failed to create soup index")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	s.mu.Lock()
	s.soups[name] = struct{}{}
	s.mu.Unlock()

	log.Debug().Str("func", "soupStore.RegisterSoup").Str("soup", name).Strs("indexes", indexes).Msg("soup registered")
	return nil
}

func (s *soupStore) SoupExists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	_, ok := s.soups[name]
	s.mu.RUnlock()
	if ok {
		return true, nil
	}

	query, args, err := s.builder.Select("1").From(soupsTable).Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = s.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	s.mu.Lock()
	s.soups[name] = struct{}{}
	s.mu.Unlock()
	return true, nil
}

func (s *soupStore) ensureSoup(ctx context.Context, name string) error {
	ok, err := s.SoupExists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSoupNotRegistered, name)
	}
	return nil
}

func (s *soupStore) Upsert(ctx context.Context, soup string, rec *models.Record) (*models.Record, error) {
	log := logger.FromContext(ctx)

	if err := s.ensureSoup(ctx, soup); err != nil {
		return nil, err
	}
	if err := rec.CheckInvariants(); err != nil {
		return nil, err
	}

	saved := rec.Clone()
	saved.SoupLastModified = s.now().UTC().Truncate(time.Millisecond)

	doc, err := saved.MarshalSoup()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	values := map[string]any{
		"soup":            soup,
		"server_id":       nullString(saved.ID),
		"external_id":     nullString(saved.ExternalID),
		"local":           saved.Local,
		"locally_deleted": saved.LocallyDeleted,
		"state":           string(saved.State),
		"doc":             string(doc),
		"last_modified":   saved.SoupLastModified.UnixMilli(),
	}

	if saved.SoupEntryID == 0 {
		query, args, err := s.builder.Insert(soupEntriesTable).
			SetMap(values).
			Suffix("RETURNING soup_entry_id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if err = s.QueryRowContext(ctx, query, args...).Scan(&saved.SoupEntryID); err != nil {
			if isSQLiteUniqueViolation(err) {
				return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateExternalID, saved.ExternalID, soup)
			}
			log.Err(err).Str("func", "soupStore.Upsert").Str("soup", soup).Msg("failed to insert soup entry")
			return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return saved, nil
	}

	query, args, err := s.builder.Update(soupEntriesTable).
		SetMap(values).
		Where(sq.Eq{"soup": soup, "soup_entry_id": saved.SoupEntryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateExternalID, saved.ExternalID, soup)
		}
		log.Err(err).Str("func", "soupStore.Upsert").Str("soup", soup).Int64("entry", saved.SoupEntryID).Msg("failed to update soup entry")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s/%d", ErrEntryNotFound, soup, saved.SoupEntryID)
	}
	return saved, nil
}

func (s *soupStore) Retrieve(ctx context.Context, soup string, entryID int64) (*models.Record, error) {
	return s.findOne(ctx, soup, sq.Eq{"soup_entry_id": entryID})
}

func (s *soupStore) ByExternalID(ctx context.Context, soup, externalID string) (*models.Record, error) {
	return s.findOne(ctx, soup, sq.Eq{"external_id": externalID})
}

func (s *soupStore) ByServerID(ctx context.Context, soup, id string) (*models.Record, error) {
	return s.findOne(ctx, soup, sq.Eq{"server_id": id})
}

func (s *soupStore) findOne(ctx context.Context, soup string, where sq.Eq) (*models.Record, error) {
	query, args, err := s.builder.Select("soup_entry_id", "doc").
		From(soupEntriesTable).
		Where(sq.Eq{"soup": soup}).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		entryID int64
		doc     string
	)
	err = s.QueryRowContext(ctx, query, args...).Scan(&entryID, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %v", ErrEntryNotFound, soup, where)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return decodeEntry(entryID, doc)
}

func (s *soupStore) Query(ctx context.Context, spec models.QuerySpec) ([]*models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSoupQuery(s.builder, spec)
	if err != nil {
		log.Err(err).Str("func", "soupStore.Query").Str("soup", spec.Soup).Msg("failed to create query")
		return nil, err
	}
	return s.queryEntries(ctx, query, args...)
}

func (s *soupStore) Count(ctx context.Context, spec models.QuerySpec) (int, error) {
	query, args, err := buildSoupCountQuery(s.builder, spec)
	if err != nil {
		return 0, err
	}

	var n int
	if err = s.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func (s *soupStore) Delete(ctx context.Context, soup string, entryIDs ...int64) error {
	if len(entryIDs) == 0 {
		return nil
	}

	query, args, err := s.builder.Delete(soupEntriesTable).
		Where(sq.Eq{"soup": soup, "soup_entry_id": entryIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "soupStore.Delete").
			Str("soup", soup).
			Int("count", len(entryIDs)).
			Msg("failed to delete soup entries")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *soupStore) DirtyRecords(ctx context.Context, soup string) ([]*models.Record, error) {
	query, args, err := s.builder.Select("soup_entry_id", "doc").
		From(soupEntriesTable).
		Where(sq.Eq{"soup": soup, "local": true}).
		OrderBy("soup_entry_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.queryEntries(ctx, query, args...)
}

func (s *soupStore) ServerIDs(ctx context.Context, soup string) ([]string, error) {
	query, args, err := s.builder.Select("server_id").
		From(soupEntriesTable).
		Where(sq.Eq{"soup": soup}).
		Where(sq.NotEq{"server_id": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0, 64)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return ids, nil
}

// queryEntries reads every row before returning so the single SQLite
// connection is free for the caller's next statement.
func (s *soupStore) queryEntries(ctx context.Context, query string, args ...any) ([]*models.Record, error) {
	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]*models.Record, 0, 32)
	for rows.Next() {
		var (
			entryID int64
			doc     string
		)
		if err = rows.Scan(&entryID, &doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		rec, err := decodeEntry(entryID, doc)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return records, nil
}

func decodeEntry(entryID int64, doc string) (*models.Record, error) {
	rec, err := models.UnmarshalSoup([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: entry %d: %w", ErrCorruptEntry, entryID, err)
	}
	rec.SoupEntryID = entryID
	return rec, nil
}
