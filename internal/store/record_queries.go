// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-soup-sync/models"
)

const recordsTable = "records"

var recordColumns = []string{"id", "external_id", "fields", "last_modified"}

func recordFilter(b sq.SelectBuilder, q models.RecordQuery) sq.SelectBuilder {
	b = b.Where(sq.Eq{"object_type": q.ObjectType, "deleted": false})
	if !q.Since.IsZero() {
		b = b.Where(sq.Gt{"last_modified": q.Since})
	}
	return b
}

func buildRecordQuery(builder sq.StatementBuilderType, q models.RecordQuery) (string, []any, error) {
	b := recordFilter(builder.Select(recordColumns...).From(recordsTable), q)
	if q.After != nil {
		b = b.Where(sq.Expr("(last_modified, id) > (?, ?)", q.After.LastModified, q.After.ID))
	}

	limit := q.Limit
	if limit <= 0 || limit > models.MaxPageSize {
		limit = models.DefaultPageSize
	}

	query, args, err := b.OrderBy("last_modified", "id").Limit(uint64(limit)).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildRecordCountQuery(builder sq.StatementBuilderType, q models.RecordQuery) (string, []any, error) {
	query, args, err := recordFilter(builder.Select("COUNT(*)").From(recordsTable), q).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetRecordQuery(builder sq.StatementBuilderType, objectType string, where sq.Eq) (string, []any, error) {
	query, args, err := builder.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"object_type": objectType, "deleted": false}).
		Where(where).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertRecordQuery(builder sq.StatementBuilderType, rec *models.Record, createdBy string) (string, []any, error) {
	fields, err := json.Marshal(withoutNulls(rec.Fields))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := builder.Insert(recordsTable).
		Columns("object_type", "id", "external_id", "fields", "created_by", "last_modified").
		Values(rec.ObjectType, rec.ID, nullString(rec.ExternalID), sq.Expr("?::jsonb", string(fields)), createdBy, sq.Expr("clock_timestamp()")).
		Suffix("RETURNING last_modified").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateRecordQuery merges the patch into the stored jsonb; fields
// missing from the patch keep their values and null fields are removed.
func buildUpdateRecordQuery(builder sq.StatementBuilderType, objectType, id string, patch models.Fields) (string, []any, error) {
	raw, err := json.Marshal(patch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := builder.Update(recordsTable).
		Set("fields", sq.Expr("jsonb_strip_nulls(fields || ?::jsonb)", string(raw))).
		Set("last_modified", sq.Expr("clock_timestamp()")).
		Where(sq.Eq{"object_type": objectType, "id": id, "deleted": false}).
		Suffix("RETURNING id, external_id, fields, last_modified").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteRecordQuery(builder sq.StatementBuilderType, objectType, id string) (string, []any, error) {
	query, args, err := builder.Update(recordsTable).
		Set("deleted", true).
		Set("last_modified", sq.Expr("clock_timestamp()")).
		Where(sq.Eq{"object_type": objectType, "id": id, "deleted": false}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildLastModifiedQuery(builder sq.StatementBuilderType, objectType string, ids []string) (string, []any, error) {
	query, args, err := builder.Select("id", "last_modified").
		From(recordsTable).
		Where(sq.Eq{"object_type": objectType, "deleted": false, "id": ids}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func withoutNulls(fields models.Fields) models.Fields {
	out := make(models.Fields, len(fields))
	for k, v := range fields {
		if v != nil {
			out[k] = v
		}
	}
	return out
}
