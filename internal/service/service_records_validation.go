// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-soup-sync/internal/validators"
	"github.com/MKhiriev/go-soup-sync/models"
)

// RecordValidationService rejects malformed requests before they reach the
// wrapped RecordService. Every rejection wraps ErrInvalidDataProvided.
type RecordValidationService struct {
	inner     RecordService
	validator validators.Validator
}

func NewRecordValidationService() RecordServiceWrapper {
	return &RecordValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *RecordValidationService) Query(ctx context.Context, req QueryRequest) (models.QueryResponse, error) {
	if err := validators.ValidateObjectName(req.Object); err != nil {
		return models.QueryResponse{}, invalid(err)
	}
	if req.Limit < 0 {
		return models.QueryResponse{}, fmt.Errorf("%w: negative limit %d", ErrInvalidDataProvided, req.Limit)
	}
	return v.inner.Query(ctx, req)
}

func (v *RecordValidationService) Retrieve(ctx context.Context, object, id string, fields []string) (map[string]any, error) {
	if err := validators.ValidateObjectName(object); err != nil {
		return nil, invalid(err)
	}
	if err := validators.ValidateRecordID(id); err != nil {
		return nil, invalid(err)
	}
	return v.inner.Retrieve(ctx, object, id, fields)
}

func (v *RecordValidationService) Create(ctx context.Context, req models.RecordRequest) (models.SaveResult, error) {
	if req.ID != "" {
		return models.SaveResult{}, fmt.Errorf("%w: create must not carry an id", ErrInvalidDataProvided)
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.SaveResult{}, invalid(err)
	}
	return v.inner.Create(ctx, req)
}

func (v *RecordValidationService) Update(ctx context.Context, req models.RecordRequest) (models.SaveResult, error) {
	if err := v.validator.Validate(ctx, req,
		validators.FieldObject, validators.FieldRecordID, validators.FieldRecordFields, validators.FieldSchemaTypes,
	); err != nil {
		return models.SaveResult{}, invalid(err)
	}
	return v.inner.Update(ctx, req)
}

func (v *RecordValidationService) Delete(ctx context.Context, object, id string) error {
	if err := validators.ValidateObjectName(object); err != nil {
		return invalid(err)
	}
	if err := validators.ValidateRecordID(id); err != nil {
		return invalid(err)
	}
	return v.inner.Delete(ctx, object, id)
}

func (v *RecordValidationService) LastModified(ctx context.Context, object string, req models.LastModifiedRequest) (models.LastModifiedResponse, error) {
	if err := validators.ValidateObjectName(object); err != nil {
		return models.LastModifiedResponse{}, invalid(err)
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.LastModifiedResponse{}, invalid(err)
	}
	return v.inner.LastModified(ctx, object, req)
}

func (v *RecordValidationService) Wrap(inner RecordService) RecordService {
	v.inner = inner
	return v
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}
