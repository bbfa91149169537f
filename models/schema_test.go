// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Field lists are additive across the hierarchy
// ─────────────────────────────────────────────────────────────────────────────

func TestSchemas_FieldListsExtendBase(t *testing.T) {
	base := BaseSchema()
	assert.Equal(t, []string{FieldExternalID}, base.CreateFields)
	assert.Empty(t, base.UpdateFields)

	schemas := []Schema{
		ContactSchema, AccountSchema, OpportunitySchema, QuoteSchema,
		QuoteLineGroupSchema, QuoteLineItemSchema, ProductSchema,
		ProductOptionSchema, PricebookSchema,
	}

	for _, s := range schemas {
		t.Run(s.Object, func(t *testing.T) {
			assert.Subset(t, s.ReadFields, base.ReadFields)
			assert.Subset(t, s.CreateFields, base.CreateFields)
			assert.Subset(t, s.UpdateFields, base.UpdateFields)
			assert.Subset(t, s.Indexes, base.Indexes)
			assert.NotEmpty(t, s.Soup)
		})
	}
}

func TestExtend_SubtypeOfSubtype(t *testing.T) {
	special := Extend(ContactSchema, Schema{
		ReadFields:   []string{"Nickname", "LastName"},
		UpdateFields: []string{"Nickname"},
		Fields:       []Field{{Name: "Nickname", Kind: KindString}},
	})

	assert.Equal(t, ContactObject, special.Object)
	assert.Equal(t, "contacts", special.Soup)
	assert.Subset(t, special.ReadFields, ContactSchema.ReadFields)
	assert.Subset(t, special.UpdateFields, ContactSchema.UpdateFields)
	assert.Len(t, special.ReadFields, len(ContactSchema.ReadFields)+1, "duplicates are dropped")
	assert.Equal(t, "Nickname", special.ReadFields[len(special.ReadFields)-1])
}

// ─────────────────────────────────────────────────────────────────────────────
// Strict decoding
// ─────────────────────────────────────────────────────────────────────────────

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name      string
		fields    Fields
		wantField string
		wantIs    error
	}{
		{"valid", Fields{"LastName": "Doe", "Email": "a@b.c"}, "", nil},
		{"missing required", Fields{"FirstName": "Jane"}, "LastName", ErrMissingField},
		{"null required", Fields{"LastName": nil}, "LastName", ErrMissingField},
		{"wrong type", Fields{"LastName": "Doe", "Email": 42.0}, "Email", ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ContactSchema.Validate(tt.fields)
			if tt.wantIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantIs)

			var missing *MissingFieldError
			var mismatch *TypeMismatchError
			switch {
			case errors.As(err, &missing):
				assert.Equal(t, tt.wantField, missing.Field)
				assert.Equal(t, ContactObject, missing.Object)
			case errors.As(err, &mismatch):
				assert.Equal(t, tt.wantField, mismatch.Field)
				assert.Equal(t, ContactObject, mismatch.Object)
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}

func TestFields_TypedAccessors(t *testing.T) {
	f := Fields{
		"s":    "text",
		"n":    2.5,
		"i":    3.0,
		"b":    true,
		"t":    "2026-02-03T04:05:06.000+0000",
		"d":    "2026-02-03",
		"null": nil,
	}

	s, ok, err := f.String("s")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "text", s)

	_, ok, err = f.String("null")
	require.NoError(t, err)
	assert.False(t, ok, "null is absent")

	_, ok, err = f.String("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	i, _, err := f.Int("i")
	require.NoError(t, err)
	assert.EqualValues(t, 3, i)

	_, _, err = f.Int("n")
	assert.ErrorIs(t, err, ErrTypeMismatch, "2.5 is not an integer")

	_, _, err = f.Bool("s")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	ts, ok, err := f.Time("t")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC), ts.UTC())

	d, _, err := f.Time("d")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Day())

	_, err = f.RequiredString("absent")
	assert.ErrorIs(t, err, ErrMissingField)
}

// ─────────────────────────────────────────────────────────────────────────────
// Soup codec
// ─────────────────────────────────────────────────────────────────────────────

func TestRecord_SoupRoundTrip(t *testing.T) {
	r := NewRecord(ContactObject, "ext-9", Fields{"LastName": "Doe"})
	require.NoError(t, r.MarkCreated())
	r.SoupEntryID = 7
	r.SoupLastModified = time.UnixMilli(1_700_000_000_000).UTC()

	raw, err := r.MarshalSoup()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, true, doc[FieldLocal])
	assert.Equal(t, true, doc[FieldLocallyCreated])
	assert.Equal(t, "ext-9", doc[FieldExternalID])
	assert.Equal(t, map[string]any{"type": ContactObject}, doc[FieldAttributes])
	assert.NotContains(t, doc, FieldID, "no id before sync-up")

	back, err := UnmarshalSoup(raw)
	require.NoError(t, err)
	assert.Equal(t, r.ExternalID, back.ExternalID)
	assert.Equal(t, r.SoupEntryID, back.SoupEntryID)
	assert.Equal(t, r.SoupLastModified, back.SoupLastModified)
	assert.Equal(t, StatePendingCreate, back.State)
	assert.Equal(t, Fields{"LastName": "Doe"}, back.Fields)
	require.NoError(t, back.CheckInvariants())
}

func TestUnmarshalSoup_InterruptedSyncIsPendingAgain(t *testing.T) {
	raw := []byte(`{"LastName":"Doe","__local__":true,"__locally_updated__":true,"__sync_state__":"syncing","Id":"001"}`)

	r, err := UnmarshalSoup(raw)

	require.NoError(t, err)
	assert.Equal(t, StatePendingUpdate, r.State)
}

func TestUnmarshalSoup_RejectsMistypedFlags(t *testing.T) {
	_, err := UnmarshalSoup([]byte(`{"__local__":"yes"}`))

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, FieldLocal, mismatch.Field)
}

func TestRecordFromRemote(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := RecordFromRemote(AccountObject, map[string]any{
			"Id":               "001",
			"LastModifiedDate": "2026-01-01T00:00:00Z",
			"Name":             "Acme",
			"attributes":       map[string]any{"type": AccountObject},
		})
		require.NoError(t, err)
		assert.Equal(t, "001", r.ID)
		assert.Equal(t, AccountObject, r.ObjectType)
		assert.Equal(t, Fields{"Name": "Acme"}, r.Fields)
		assert.False(t, r.Local)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := RecordFromRemote(AccountObject, map[string]any{"Name": "Acme"})
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		_, err := RecordFromRemote(AccountObject, map[string]any{"Id": "001", "LastModifiedDate": "yesterday"})
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestRecord_Payload(t *testing.T) {
	r := NewRecord(QuoteLineGroupObject, "ext-1", Fields{
		"Name":              "Latte",
		"SBQQ__Quote__c":    "a0Q1",
		"SBQQ__NetTotal__c": 3.5,
	})
	r.ID = "should-not-be-sent"

	payload := r.Payload(QuoteLineGroupSchema.CreateFields)

	assert.Equal(t, map[string]any{
		"Name":                "Latte",
		"SBQQ__Quote__c":      "a0Q1",
		"MobileExternalId__c": "ext-1",
	}, payload)
}

// ─────────────────────────────────────────────────────────────────────────────
// Entities
// ─────────────────────────────────────────────────────────────────────────────

func TestContact_BindAndRecord(t *testing.T) {
	rec := NewRecord(ContactObject, "ext", Fields{"FirstName": "Jane", "LastName": "Doe", "Unknown": "kept"})

	var c Contact
	require.NoError(t, c.Bind(rec))
	assert.Equal(t, "Jane Doe", c.FullName())

	c.Title = "CTO"
	out := c.Record()
	assert.Same(t, rec, out)
	assert.Equal(t, "CTO", out.Fields["Title"])
	assert.Equal(t, "Jane Doe", out.Fields["Name"])
	assert.Equal(t, "kept", out.Fields["Unknown"], "unknown fields survive a round trip")
}

func TestEntity_BindStrict(t *testing.T) {
	var line QuoteLineItem
	err := line.Bind(NewRecord(QuoteLineItemObject, "x", Fields{
		"SBQQ__Product__c":  "01t1",
		"SBQQ__Quantity__c": "two",
	}))

	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorIs(t, err, ErrMissingField, "SBQQ__Number__c is required")
	assert.Nil(t, line.Meta(), "a failed bind leaves the entity unbound")
}

func TestBase_Key(t *testing.T) {
	var g QuoteLineGroup
	rec := g.Record()
	rec.ExternalID = "ext-group"
	assert.Equal(t, "ext-group", g.Key())

	rec.ID = "a0R1"
	assert.Equal(t, "a0R1", g.Key())
}

func TestLookupSchema(t *testing.T) {
	s, ok := LookupSchema(QuoteLineItemObject)
	require.True(t, ok)
	assert.Equal(t, QuoteLineItemSchema.Soup, s.Soup)

	_, ok = LookupSchema("Lead")
	assert.False(t, ok)
}

func TestSchema_ValidatePresent(t *testing.T) {
	require.NoError(t, ContactSchema.ValidatePresent(Fields{"Title": "CTO"}), "required LastName may be absent")

	err := ContactSchema.ValidatePresent(Fields{"Email": 42.0})
	assert.ErrorIs(t, err, ErrTypeMismatch)

	require.NoError(t, ContactSchema.ValidatePresent(Fields{"Title": nil}), "optional fields may be cleared")
	assert.ErrorIs(t, ContactSchema.ValidatePresent(Fields{"LastName": nil}), ErrMissingField)
}

func TestRecord_Patch(t *testing.T) {
	r := NewRecord(ContactObject, "ext-1", Fields{"LastName": "Doe", "Title": "CTO"})
	r.ID = "003"

	assert.Equal(t, map[string]any{
		"LastName":            "Doe",
		"Title":               "CTO",
		"FirstName":           nil,
		"MobilePhone":         nil,
		"MobileExternalId__c": "ext-1",
	}, r.Patch([]string{FieldID, FieldExternalID, "LastName", "Title", "FirstName", "MobilePhone"}))

	assert.NotContains(t, r.Payload([]string{"FirstName"}), "FirstName", "creates never send nulls")
}
