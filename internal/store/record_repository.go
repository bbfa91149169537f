// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository] over the "records" table.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *recordRepository) Query(ctx context.Context, q models.RecordQuery) ([]*models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecordQuery(r.builder, q)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.Query").Str("object", q.ObjectType).Msg("failed to create query")
		return nil, err
	}

	var rows *sql.Rows
	err = r.withRetry(ctx, "recordRepository.Query", func() (err error) {
		rows, err = r.QueryContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "recordRepository.Query").Str("object", q.ObjectType).Msg("failed to execute query")
		return nil, r.dbError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]*models.Record, 0, 50)
	for rows.Next() {
		rec, err := scanRecord(rows, q.ObjectType)
		if err != nil {
			log.Err(err).Str("func", "recordRepository.Query").Str("object", q.ObjectType).Msg("failed to scan record")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

func (r *recordRepository) Count(ctx context.Context, q models.RecordQuery) (int, error) {
	query, args, err := buildRecordCountQuery(r.builder, q)
	if err != nil {
		return 0, err
	}

	var n int
	err = r.withRetry(ctx, "recordRepository.Count", func() error {
		return r.QueryRowContext(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordRepository.Count").Str("object", q.ObjectType).Msg("failed to count records")
		return 0, r.dbError(ErrExecutingQuery, err)
	}
	return n, nil
}

func (r *recordRepository) Get(ctx context.Context, objectType, id string) (*models.Record, error) {
	return r.getOne(ctx, objectType, sq.Eq{"id": id})
}

func (r *recordRepository) GetByExternalID(ctx context.Context, objectType, externalID string) (*models.Record, error) {
	return r.getOne(ctx, objectType, sq.Eq{"external_id": externalID})
}

func (r *recordRepository) getOne(ctx context.Context, objectType string, where sq.Eq) (*models.Record, error) {
	query, args, err := buildGetRecordQuery(r.builder, objectType, where)
	if err != nil {
		return nil, err
	}

	var rec *models.Record
	err = r.withRetry(ctx, "recordRepository.getOne", func() (err error) {
		rec, err = scanRecord(r.QueryRowContext(ctx, query, args...), objectType)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %v", ErrRecordNotFound, objectType, where)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordRepository.getOne").Str("object", objectType).Msg("failed to get record")
		return nil, r.dbError(ErrScanningRow, err)
	}
	return rec, nil
}

func (r *recordRepository) Insert(ctx context.Context, rec *models.Record, createdBy string) (*models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertRecordQuery(r.builder, rec, createdBy)
	if err != nil {
		return nil, err
	}

	saved := rec.Clone()
	err = r.withRetry(ctx, "recordRepository.Insert", func() error {
		return r.QueryRowContext(ctx, query, args...).Scan(&saved.LastModifiedDate)
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateExternalID, rec.ExternalID)
		}
		log.Err(err).
			Str("func", "recordRepository.Insert").
			Str("object", rec.ObjectType).
			Str("external_id", rec.ExternalID).
			Msg("failed to insert record")
		return nil, r.dbError(ErrExecutingStatement, err)
	}
	saved.LastModifiedDate = saved.LastModifiedDate.UTC()

	log.Debug().Str("func", "recordRepository.Insert").Str("object", rec.ObjectType).Str("id", rec.ID).Msg("record inserted")
	return saved, nil
}

func (r *recordRepository) Update(ctx context.Context, objectType, id string, fields models.Fields) (*models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateRecordQuery(r.builder, objectType, id, fields)
	if err != nil {
		return nil, err
	}

	var rec *models.Record
	err = r.withRetry(ctx, "recordRepository.Update", func() (err error) {
		rec, err = scanRecord(r.QueryRowContext(ctx, query, args...), objectType)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, objectType, id)
	}
	if err != nil {
		log.Err(err).Str("func", "recordRepository.Update").Str("object", objectType).Str("id", id).Msg("failed to update record")
		return nil, r.dbError(ErrExecutingStatement, err)
	}
	return rec, nil
}

func (r *recordRepository) Delete(ctx context.Context, objectType, id string) error {
	query, args, err := buildDeleteRecordQuery(r.builder, objectType, id)
	if err != nil {
		return err
	}

	var res sql.Result
	err = r.withRetry(ctx, "recordRepository.Delete", func() (err error) {
		res, err = r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordRepository.Delete").Str("object", objectType).Str("id", id).Msg("failed to delete record")
		return r.dbError(ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, objectType, id)
	}
	return nil
}

func (r *recordRepository) LastModified(ctx context.Context, objectType string, ids []string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := buildLastModifiedQuery(r.builder, objectType, ids)
	if err != nil {
		return nil, err
	}

	var rows *sql.Rows
	err = r.withRetry(ctx, "recordRepository.LastModified", func() (err error) {
		rows, err = r.QueryContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return nil, r.dbError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			ts time.Time
		)
		if err = rows.Scan(&id, &ts); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out[id] = ts.UTC()
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, objectType string) (*models.Record, error) {
	var (
		id         string
		externalID sql.NullString
		rawFields  []byte
		modified   time.Time
	)
	if err := row.Scan(&id, &externalID, &rawFields, &modified); err != nil {
		return nil, err
	}

	rec := models.NewRecord(objectType, externalID.String, nil)
	if err := json.Unmarshal(rawFields, &rec.Fields); err != nil {
		return nil, fmt.Errorf("decode fields of %s/%s: %w", objectType, id, err)
	}
	rec.ID = id
	rec.LastModifiedDate = modified.UTC()
	return rec, nil
}
