// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-soup-sync/models"
)

// ---------------------------------------------------------------------------
// RecordRequest
// ---------------------------------------------------------------------------

func TestRecordValidator_RecordRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RecordRequest
		wantErr error
	}{
		{
			name: "create known object",
			req:  models.RecordRequest{Object: models.ContactObject, Fields: models.Fields{"LastName": "Doe"}},
		},
		{
			name: "create unknown object passes schema",
			req:  models.RecordRequest{Object: "Lead", Fields: models.Fields{"Anything": 1.0}},
		},
		{
			name:    "create missing required",
			req:     models.RecordRequest{Object: models.ContactObject, Fields: models.Fields{"FirstName": "Jane"}},
			wantErr: models.ErrMissingField,
		},
		{
			name:    "bad object name",
			req:     models.RecordRequest{Object: "Contact; DROP", Fields: models.Fields{"LastName": "Doe"}},
			wantErr: ErrInvalidObjectName,
		},
		{
			name:    "no fields",
			req:     models.RecordRequest{Object: models.ContactObject},
			wantErr: ErrNoFieldsProvided,
		},
		{
			name: "partial update",
			req:  models.RecordRequest{Object: models.ContactObject, ID: "003-1", Fields: models.Fields{"Title": "CTO"}},
		},
		{
			name:    "update wrong type",
			req:     models.RecordRequest{Object: models.ContactObject, ID: "003-1", Fields: models.Fields{"Email": true}},
			wantErr: models.ErrTypeMismatch,
		},
		{
			name:    "update bad id",
			req:     models.RecordRequest{Object: models.ContactObject, ID: "../etc", Fields: models.Fields{"Title": "CTO"}},
			wantErr: ErrInvalidRecordID,
		},
	}

	v := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordValidator_FieldScoping(t *testing.T) {
	v := NewRecordValidator()
	req := &models.RecordRequest{Object: models.ContactObject, ID: "bad id"}

	require.NoError(t, v.Validate(context.Background(), req, FieldObject))
	assert.ErrorIs(t, v.Validate(context.Background(), req, FieldRecordID), ErrInvalidRecordID)
	assert.ErrorIs(t, v.Validate(context.Background(), req, "owner"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// LastModifiedRequest
// ---------------------------------------------------------------------------

func TestRecordValidator_LastModified(t *testing.T) {
	tooMany := make([]string, models.MaxPageSize+1)
	for i := range tooMany {
		tooMany[i] = "id"
	}

	tests := []struct {
		name    string
		ids     []string
		wantErr error
	}{
		{"valid", []string{"a", "b-2"}, nil},
		{"empty", nil, ErrEmptyIDs},
		{"too many", tooMany, ErrTooManyIDs},
		{"blank id", []string{"a", ""}, ErrInvalidRecordID},
	}

	v := NewRecordValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), models.LastModifiedRequest{IDs: tt.ids})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateObjectName(t *testing.T) {
	assert.NoError(t, ValidateObjectName("SBQQ__QuoteLineGroup__c"))
	assert.Error(t, ValidateObjectName(""))
	assert.Error(t, ValidateObjectName("1Contact"))
	assert.Error(t, ValidateObjectName(strings.Repeat("a", 81)))
}

func TestRecordValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewRecordValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}
