// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is one soup entry: the business field bag plus the bookkeeping the
// sync engine needs to reconcile it with the server.
type Record struct {
	// SoupEntryID is the local primary key; zero until the first upsert.
	SoupEntryID int64
	// ID is the server id. It stays empty for a locally created record
	// until sync-up assigns one.
	ID string
	// ExternalID is minted on local creation and lets sync-up responses
	// and child records find the entry before it has a server id.
	ExternalID string
	ObjectType string

	Local          bool
	LocallyCreated bool
	LocallyUpdated bool
	LocallyDeleted bool
	State          RecordState

	LastModifiedDate time.Time
	SoupLastModified time.Time
	LastError        string

	Fields Fields
}

// NewRecord returns a clean, unsaved record of objectType.
func NewRecord(objectType, externalID string, fields Fields) *Record {
	if fields == nil {
		fields = Fields{}
	}
	return &Record{
		ExternalID: externalID,
		ObjectType: objectType,
		State:      StateClean,
		Fields:     fields,
	}
}

// Clone returns a deep copy of the bookkeeping and a shallow copy of the
// field values.
func (r *Record) Clone() *Record {
	cp := *r
	cp.Fields = r.Fields.Clone()
	return &cp
}

// Payload builds the request body for a create or update from list. Id and
// LastModifiedDate are server controlled and never sent.
func (r *Record) Payload(list []string) map[string]any {
	out := map[string]any(Project(r.Fields, list))
	for _, name := range list {
		if name == FieldExternalID && r.ExternalID != "" {
			out[FieldExternalID] = r.ExternalID
		}
	}
	return out
}

// Patch builds an update body from list like Payload, and sends every
// field of list missing from the record as null so the server clears it.
func (r *Record) Patch(list []string) map[string]any {
	out := r.Payload(list)
	for _, name := range list {
		if isBookkeeping(name) {
			continue
		}
		if _, ok := out[name]; !ok {
			out[name] = nil
		}
	}
	return out
}

type soupAttributes struct {
	Type string `json:"type"`
}

// MarshalSoup encodes the record as the JSON document stored in the soup.
func (r *Record) MarshalSoup() ([]byte, error) {
	doc := make(map[string]any, len(r.Fields)+12)
	for k, v := range r.Fields {
		doc[k] = v
	}
	if r.ID != "" {
		doc[FieldID] = r.ID
	}
	if r.ExternalID != "" {
		doc[FieldExternalID] = r.ExternalID
	}
	if !r.LastModifiedDate.IsZero() {
		doc[FieldLastModifiedDate] = FormatTime(r.LastModifiedDate)
	}
	if r.SoupEntryID != 0 {
		doc[FieldSoupEntryID] = r.SoupEntryID
	}
	if !r.SoupLastModified.IsZero() {
		doc[FieldSoupLastModified] = r.SoupLastModified.UnixMilli()
	}
	if r.LastError != "" {
		doc[FieldLastError] = r.LastError
	}
	doc[FieldLocal] = r.Local
	doc[FieldLocallyCreated] = r.LocallyCreated
	doc[FieldLocallyUpdated] = r.LocallyUpdated
	doc[FieldLocallyDeleted] = r.LocallyDeleted
	doc[FieldState] = string(r.state())
	doc[FieldAttributes] = soupAttributes{Type: r.ObjectType}

	return json.Marshal(doc)
}

// UnmarshalSoup decodes a soup document. Bookkeeping keys are validated
// strictly; everything else lands in Fields.
func UnmarshalSoup(data []byte) (*Record, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode soup entry: %w", err)
	}

	r, err := recordFromDoc(doc)
	if err != nil {
		return nil, err
	}

	bag := Fields(doc)
	for _, flag := range []struct {
		name string
		dst  *bool
	}{
		{FieldLocal, &r.Local},
		{FieldLocallyCreated, &r.LocallyCreated},
		{FieldLocallyUpdated, &r.LocallyUpdated},
		{FieldLocallyDeleted, &r.LocallyDeleted},
	} {
		v, _, err := bag.Bool(flag.name)
		if err != nil {
			return nil, err
		}
		*flag.dst = v
	}

	if entryID, ok, err := bag.Int(FieldSoupEntryID); err != nil {
		return nil, err
	} else if ok {
		r.SoupEntryID = entryID
	}
	if ms, ok, err := bag.Int(FieldSoupLastModified); err != nil {
		return nil, err
	} else if ok {
		r.SoupLastModified = time.UnixMilli(ms).UTC()
	}
	if r.LastError, _, err = bag.String(FieldLastError); err != nil {
		return nil, err
	}
	state, ok, err := bag.String(FieldState)
	if err != nil {
		return nil, err
	}
	// a sync interrupted mid-flight leaves the record pending again
	if ok && RecordState(state) != StateSyncing {
		r.State = RecordState(state)
	} else {
		r.recompute()
	}

	r.Fields = StripBookkeeping(doc)
	return r, nil
}

// RecordFromRemote decodes a record returned by the server. Id is required;
// the object type falls back to objectType when attributes are absent.
func RecordFromRemote(objectType string, doc map[string]any) (*Record, error) {
	r, err := recordFromDoc(doc)
	if err != nil {
		return nil, err
	}
	if r.ID == "" {
		return nil, &MissingFieldError{Object: objectType, Field: FieldID}
	}
	if r.ObjectType == "" {
		r.ObjectType = objectType
	}
	r.State = StateClean
	r.Fields = StripBookkeeping(doc)
	return r, nil
}

// RemoteDoc renders the record as the server returns it.
func (r *Record) RemoteDoc() map[string]any {
	doc := make(map[string]any, len(r.Fields)+4)
	for k, v := range r.Fields {
		doc[k] = v
	}
	doc[FieldID] = r.ID
	if r.ExternalID != "" {
		doc[FieldExternalID] = r.ExternalID
	}
	if !r.LastModifiedDate.IsZero() {
		doc[FieldLastModifiedDate] = FormatTime(r.LastModifiedDate)
	}
	doc[FieldAttributes] = map[string]any{"type": r.ObjectType}
	return doc
}

func recordFromDoc(doc map[string]any) (*Record, error) {
	bag := Fields(doc)
	r := &Record{}

	var err error
	if r.ID, _, err = bag.String(FieldID); err != nil {
		return nil, err
	}
	if r.ExternalID, _, err = bag.String(FieldExternalID); err != nil {
		return nil, err
	}
	if r.LastModifiedDate, _, err = bag.Time(FieldLastModifiedDate); err != nil {
		return nil, err
	}

	if raw, ok := bag.Get(FieldAttributes); ok {
		attrs, isMap := raw.(map[string]any)
		if !isMap {
			return nil, &TypeMismatchError{Field: FieldAttributes, Want: "object", Got: raw}
		}
		if r.ObjectType, _, err = Fields(attrs).String("type"); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// StripBookkeeping copies doc without the sync and soup bookkeeping keys.
func StripBookkeeping(doc map[string]any) Fields {
	out := make(Fields, len(doc))
	for k, v := range doc {
		if !isBookkeeping(k) {
			out[k] = v
		}
	}
	return out
}
