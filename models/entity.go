// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"time"
)

// Entity is a typed view over a [Record].
//
// Bind decodes the record's field bag into the typed fields and keeps the
// record for bookkeeping; Record encodes the typed fields back into the bag
// and returns the bound record, creating one on first use.
type Entity interface {
	Schema() Schema
	Bind(rec *Record) error
	Record() *Record
}

// EntityPtr constrains a type parameter to a pointer implementing Entity,
// so generic stores can allocate values with new(T).
type EntityPtr[T any] interface {
	*T
	Entity
}

// Base carries the bound record of an entity and exposes its bookkeeping.
type Base struct {
	rec *Record
}

func (b *Base) bind(rec *Record) {
	if rec.Fields == nil {
		rec.Fields = Fields{}
	}
	b.rec = rec
}

func (b *Base) ensure(objectType string) *Record {
	if b.rec == nil {
		b.rec = NewRecord(objectType, "", nil)
	}
	if b.rec.ObjectType == "" {
		b.rec.ObjectType = objectType
	}
	return b.rec
}

// Meta returns the bound record, nil for an entity never saved or bound.
func (b *Base) Meta() *Record { return b.rec }

func (b *Base) ID() string {
	if b.rec == nil {
		return ""
	}
	return b.rec.ID
}

func (b *Base) ExternalID() string {
	if b.rec == nil {
		return ""
	}
	return b.rec.ExternalID
}

// Key returns the server id, or the external id before the first sync-up.
// Child records reference their parent by Key.
func (b *Base) Key() string {
	if id := b.ID(); id != "" {
		return id
	}
	return b.ExternalID()
}

func (b *Base) IsLocal() bool          { return b.rec != nil && b.rec.Local }
func (b *Base) IsLocallyCreated() bool { return b.rec != nil && b.rec.LocallyCreated }
func (b *Base) IsLocallyUpdated() bool { return b.rec != nil && b.rec.LocallyUpdated }
func (b *Base) IsLocallyDeleted() bool { return b.rec != nil && b.rec.LocallyDeleted }

func (b *Base) State() RecordState {
	if b.rec == nil {
		return StateClean
	}
	return b.rec.state()
}

// fieldReader decodes typed fields and collects every problem, filling in
// the object name and the schema's required flags.
type fieldReader struct {
	schema Schema
	f      Fields
	errs   []error
}

func newFieldReader(s Schema, rec *Record) *fieldReader {
	return &fieldReader{schema: s, f: rec.Fields}
}

func (r *fieldReader) check(name string, ok bool, err error) {
	if err != nil {
		var mismatch *TypeMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Object = r.schema.Object
		}
		r.errs = append(r.errs, err)
		return
	}
	if f, declared := r.schema.Field(name); !ok && declared && f.Required {
		r.errs = append(r.errs, &MissingFieldError{Object: r.schema.Object, Field: name})
	}
}

func (r *fieldReader) String(name string) string {
	v, ok, err := r.f.String(name)
	r.check(name, ok, err)
	return v
}

func (r *fieldReader) Float(name string) float64 {
	v, ok, err := r.f.Float(name)
	r.check(name, ok, err)
	return v
}

func (r *fieldReader) Int(name string) int {
	v, ok, err := r.f.Int(name)
	r.check(name, ok, err)
	return int(v)
}

func (r *fieldReader) Bool(name string) bool {
	v, ok, err := r.f.Bool(name)
	r.check(name, ok, err)
	return v
}

func (r *fieldReader) Time(name string) time.Time {
	v, ok, err := r.f.Time(name)
	r.check(name, ok, err)
	return v
}

func (r *fieldReader) Err() error {
	return errors.Join(r.errs...)
}

// setString stores s, clearing the field when s is empty.
func setString(f Fields, name, s string) {
	if s == "" {
		delete(f, name)
		return
	}
	f[name] = s
}

func setDate(f Fields, name string, t time.Time) {
	if t.IsZero() {
		delete(f, name)
		return
	}
	f[name] = t.UTC().Format(DateLayout)
}
