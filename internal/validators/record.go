// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-soup-sync/models"
)

// Field name constants that scope RecordValidator checks.
const (
	// FieldObject targets the object type name of a request.
	FieldObject = "object"

	// FieldRecordID targets the server id of an update or delete.
	FieldRecordID = "id"

	// FieldRecordFields requires a non-empty field bag.
	FieldRecordFields = "fields"

	// FieldSchema decodes the field bag against the object's schema,
	// required fields included. Objects without a schema pass.
	FieldSchema = "schema"

	// FieldSchemaTypes checks only the kinds of the fields present, for
	// partial updates.
	FieldSchemaTypes = "schema types"

	// FieldIDs targets the id list of a last-modified check.
	FieldIDs = "ids"
)

var (
	objectNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,79}$`)
	recordIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// RecordValidator checks inputs of the record API: RecordRequest for
// writes and LastModifiedRequest for stamp checks.
type RecordValidator struct{}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate supports models.RecordRequest and models.LastModifiedRequest in
// value and pointer form. Default fields:
//   - RecordRequest with empty ID (create): object, fields, schema.
//   - RecordRequest with ID (update): object, id, fields, schema types.
//   - LastModifiedRequest: ids.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RecordRequest:
		return v.validateRecordRequest(ctx, value, fields...)
	case *models.RecordRequest:
		return v.validateRecordRequest(ctx, *value, fields...)

	case models.LastModifiedRequest:
		return v.validateLastModified(ctx, value, fields...)
	case *models.LastModifiedRequest:
		return v.validateLastModified(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecordRequest(_ context.Context, req models.RecordRequest, fields ...string) error {
	if len(fields) == 0 {
		if req.ID == "" {
			fields = []string{FieldObject, FieldRecordFields, FieldSchema}
		} else {
			fields = []string{FieldObject, FieldRecordID, FieldRecordFields, FieldSchemaTypes}
		}
	}

	for _, f := range fields {
		switch f {
		case FieldObject:
			if err := ValidateObjectName(req.Object); err != nil {
				return err
			}
		case FieldRecordID:
			if err := ValidateRecordID(req.ID); err != nil {
				return err
			}
		case FieldRecordFields:
			if len(req.Fields) == 0 {
				return ErrNoFieldsProvided
			}
		case FieldSchema:
			if schema, ok := models.LookupSchema(req.Object); ok {
				if err := schema.Validate(req.Fields); err != nil {
					return err
				}
			}
		case FieldSchemaTypes:
			if schema, ok := models.LookupSchema(req.Object); ok {
				if err := schema.ValidatePresent(req.Fields); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *RecordValidator) validateLastModified(_ context.Context, req models.LastModifiedRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIDs}
	}

	for _, f := range fields {
		switch f {
		case FieldIDs:
			if len(req.IDs) == 0 {
				return ErrEmptyIDs
			}
			if len(req.IDs) > models.MaxPageSize {
				return fmt.Errorf("%w: %d, limit %d", ErrTooManyIDs, len(req.IDs), models.MaxPageSize)
			}
			for i, id := range req.IDs {
				if err := ValidateRecordID(id); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

// ValidateObjectName accepts API object names such as "Contact" or
// "SBQQ__Quote__c".
func ValidateObjectName(name string) error {
	if !objectNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidObjectName, name)
	}
	return nil
}

func ValidateRecordID(id string) error {
	if !recordIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidRecordID, id)
	}
	return nil
}
