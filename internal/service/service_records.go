// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
)

// recordService serves the record API on top of the record table. It owns
// id assignment and the idempotency of creates.
type recordService struct {
	records store.RecordRepository
	ids     utils.IDGenerator
	logger  *logger.Logger
}

func NewRecordService(records store.RecordRepository, ids utils.IDGenerator, logger *logger.Logger) RecordService {
	return &recordService{
		records: records,
		ids:     ids,
		logger:  logger,
	}
}

// Query returns one page of records modified after req.Since in
// (LastModifiedDate, Id) order. The repository is asked for one record more
// than the page holds so Done is known without a second round trip.
func (r *recordService) Query(ctx context.Context, req QueryRequest) (models.QueryResponse, error) {
	log := logger.FromContext(ctx)

	q := models.RecordQuery{
		ObjectType: req.Object,
		Since:      req.Since,
	}
	if req.Cursor != "" {
		cursor, err := models.ParseCursor(req.Cursor)
		if err != nil {
			return models.QueryResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		q.After = &cursor
	}

	limit := pageLimit(req.Limit)
	q.Limit = limit + 1

	total, err := r.records.Count(ctx, q)
	if err != nil {
		log.Err(err).Str("func", "recordService.Query").Str("object", req.Object).Msg("count failed")
		return models.QueryResponse{}, err
	}

	page, err := r.records.Query(ctx, q)
	if err != nil {
		log.Err(err).Str("func", "recordService.Query").Str("object", req.Object).Msg("query failed")
		return models.QueryResponse{}, err
	}

	resp := models.QueryResponse{
		TotalSize: total,
		Done:      len(page) <= limit,
		Records:   make([]map[string]any, 0, min(len(page), limit)),
	}
	if !resp.Done {
		page = page[:limit]
		last := page[len(page)-1]
		resp.NextCursor = models.Cursor{LastModified: last.LastModifiedDate, ID: last.ID}.Encode()
	}
	for _, rec := range page {
		resp.Records = append(resp.Records, projectDoc(rec, req.Fields))
	}

	return resp, nil
}

func (r *recordService) Retrieve(ctx context.Context, object, id string, fields []string) (map[string]any, error) {
	rec, err := r.records.Get(ctx, object, id)
	if err != nil {
		return nil, mapRecordError(err)
	}
	return projectDoc(rec, fields), nil
}

// Create inserts a record under a fresh id. A create carrying an external
// id that is already stored returns the stored record instead, so a client
// that lost the first response can safely retry.
func (r *recordService) Create(ctx context.Context, req models.RecordRequest) (models.SaveResult, error) {
	log := logger.FromContext(ctx)

	externalID, _, err := req.Fields.String(models.FieldExternalID)
	if err != nil {
		return models.SaveResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if externalID != "" {
		existing, err := r.records.GetByExternalID(ctx, req.Object, externalID)
		if err == nil {
			log.Info().Str("func", "recordService.Create").Str("object", req.Object).Str("id", existing.ID).Msg("create replayed")
			return saveResult(existing), nil
		}
		if !errors.Is(err, store.ErrRecordNotFound) {
			return models.SaveResult{}, err
		}
	}

	rec := models.NewRecord(req.Object, externalID, models.StripBookkeeping(req.Fields))
	rec.ID = r.ids.Generate()

	clientID, _ := utils.GetClientIDFromContext(ctx)
	saved, err := r.records.Insert(ctx, rec, clientID)
	if errors.Is(err, store.ErrDuplicateExternalID) {
		// a concurrent retry won the insert
		saved, err = r.records.GetByExternalID(ctx, req.Object, externalID)
	}
	if err != nil {
		log.Err(err).Str("func", "recordService.Create").Str("object", req.Object).Msg("insert failed")
		return models.SaveResult{}, err
	}

	return saveResult(saved), nil
}

func (r *recordService) Update(ctx context.Context, req models.RecordRequest) (models.SaveResult, error) {
	saved, err := r.records.Update(ctx, req.Object, req.ID, models.StripBookkeeping(req.Fields))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordService.Update").Str("object", req.Object).Str("id", req.ID).Msg("update failed")
		return models.SaveResult{}, mapRecordError(err)
	}
	return saveResult(saved), nil
}

func (r *recordService) Delete(ctx context.Context, object, id string) error {
	if err := r.records.Delete(ctx, object, id); err != nil {
		return mapRecordError(err)
	}
	return nil
}

func (r *recordService) LastModified(ctx context.Context, object string, req models.LastModifiedRequest) (models.LastModifiedResponse, error) {
	stamps, err := r.records.LastModified(ctx, object, req.IDs)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordService.LastModified").Str("object", object).Msg("stamp check failed")
		return models.LastModifiedResponse{}, err
	}
	return models.LastModifiedResponse{Records: stamps}, nil
}

func pageLimit(limit int) int {
	switch {
	case limit <= 0:
		return models.DefaultPageSize
	case limit > models.MaxPageSize:
		return models.MaxPageSize
	}
	return limit
}

// projectDoc renders rec with only the requested business fields. An empty
// list keeps them all; Id, LastModifiedDate and attributes are always sent.
func projectDoc(rec *models.Record, fields []string) map[string]any {
	if len(fields) == 0 {
		return rec.RemoteDoc()
	}
	cp := rec.Clone()
	cp.Fields = models.Project(rec.Fields, fields)
	return cp.RemoteDoc()
}

func saveResult(rec *models.Record) models.SaveResult {
	return models.SaveResult{ID: rec.ID, LastModifiedDate: rec.LastModifiedDate}
}

func mapRecordError(err error) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrRecordNotFound, err)
	}
	return err
}
