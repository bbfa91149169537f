// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"slices"
)

// FieldKind is the declared JSON type of a schema field.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
	KindInteger
	KindBool
	KindDateTime
	// KindReference holds the id of another record. Before sync-up it may
	// carry the external id of a locally created parent.
	KindReference
)

func (k FieldKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindDateTime:
		return "datetime"
	case KindReference:
		return "reference"
	default:
		return "string"
	}
}

// Field describes one business field of an object type.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// Bookkeeping field names shared by every object type.
const (
	FieldID               = "Id"
	FieldExternalID       = "MobileExternalId__c"
	FieldLastModifiedDate = "LastModifiedDate"
	FieldSoupEntryID      = "_soupEntryId"
	FieldSoupLastModified = "_soupLastModifiedDate"
	FieldLocal            = "__local__"
	FieldLocallyCreated   = "__locally_created__"
	FieldLocallyUpdated   = "__locally_updated__"
	FieldLocallyDeleted   = "__locally_deleted__"
	FieldState            = "__sync_state__"
	FieldLastError        = "__last_error__"
	FieldAttributes       = "attributes"
)

// Schema describes how an object type is stored locally and synced.
//
// ReadFields, CreateFields and UpdateFields list the fields that take part in
// sync-down, create and update respectively. They are additive across the
// type hierarchy: build subtypes with [Extend].
type Schema struct {
	// Object is the server-side object name, e.g. "SBQQ__Quote__c".
	Object string
	// Soup is the local table name; defaults to Object.
	Soup string
	// OrderPath is the field local queries sort by.
	OrderPath string
	// Indexes are the soup paths indexed for exact and like queries.
	Indexes []string

	Fields       []Field
	ReadFields   []string
	CreateFields []string
	UpdateFields []string
}

// BaseSchema is the schema every object type extends.
func BaseSchema() Schema {
	base := []string{FieldID, FieldLastModifiedDate, FieldExternalID}
	return Schema{
		OrderPath: FieldID,
		Indexes:   []string{FieldID, FieldExternalID, FieldLocal},
		Fields: []Field{
			{Name: FieldID, Kind: KindReference},
			{Name: FieldLastModifiedDate, Kind: KindDateTime},
			{Name: FieldExternalID, Kind: KindString},
		},
		ReadFields:   slices.Clone(base),
		CreateFields: []string{FieldExternalID},
		UpdateFields: []string{},
	}
}

// Extend returns sub layered on top of base. Object, Soup and OrderPath come
// from sub when set; field lists, fields and indexes are base followed by
// sub, de-duplicated in order.
func Extend(base, sub Schema) Schema {
	out := Schema{
		Object:       firstNonEmpty(sub.Object, base.Object),
		Soup:         firstNonEmpty(sub.Soup, sub.Object, base.Soup),
		OrderPath:    firstNonEmpty(sub.OrderPath, base.OrderPath),
		Indexes:      appendUnique(base.Indexes, sub.Indexes),
		ReadFields:   appendUnique(base.ReadFields, sub.ReadFields),
		CreateFields: appendUnique(base.CreateFields, sub.CreateFields),
		UpdateFields: appendUnique(base.UpdateFields, sub.UpdateFields),
	}

	out.Fields = slices.Clone(base.Fields)
	for _, f := range sub.Fields {
		if i := slices.IndexFunc(out.Fields, func(x Field) bool { return x.Name == f.Name }); i >= 0 {
			out.Fields[i] = f
			continue
		}
		out.Fields = append(out.Fields, f)
	}
	return out
}

// Field returns the declaration of name.
func (s Schema) Field(name string) (Field, bool) {
	i := slices.IndexFunc(s.Fields, func(f Field) bool { return f.Name == name })
	if i < 0 {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Validate checks every declared field of fields against its kind and
// required flag. Bookkeeping fields carried by [Record] are skipped. All
// problems are joined; errors.As yields the first of each kind.
func (s Schema) Validate(fields Fields) error {
	var errs []error
	for _, f := range s.Fields {
		if isBookkeeping(f.Name) {
			continue
		}
		if err := s.checkField(fields, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidatePresent checks the declared fields present in fields, which suits
// partial updates: a required field may be absent but not null.
func (s Schema) ValidatePresent(fields Fields) error {
	var errs []error
	for _, f := range s.Fields {
		if isBookkeeping(f.Name) {
			continue
		}
		if _, ok := fields[f.Name]; !ok {
			continue
		}
		if err := s.checkField(fields, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s Schema) checkField(fields Fields, f Field) error {
	var (
		ok  bool
		err error
	)
	switch f.Kind {
	case KindNumber:
		_, ok, err = fields.Float(f.Name)
	case KindInteger:
		_, ok, err = fields.Int(f.Name)
	case KindBool:
		_, ok, err = fields.Bool(f.Name)
	case KindDateTime:
		_, ok, err = fields.Time(f.Name)
	default:
		_, ok, err = fields.String(f.Name)
	}

	if err != nil {
		var mismatch *TypeMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Object = s.Object
		}
		return err
	}
	if !ok && f.Required {
		return &MissingFieldError{Object: s.Object, Field: f.Name}
	}
	return nil
}

// Project copies the listed non-bookkeeping fields present in fields.
func Project(fields Fields, list []string) Fields {
	out := make(Fields, len(list))
	for _, name := range list {
		if isBookkeeping(name) {
			continue
		}
		if v, ok := fields.Get(name); ok {
			out[name] = v
		}
	}
	return out
}

func isBookkeeping(name string) bool {
	switch name {
	case FieldID, FieldExternalID, FieldLastModifiedDate, FieldSoupEntryID, FieldSoupLastModified,
		FieldLocal, FieldLocallyCreated, FieldLocallyUpdated, FieldLocallyDeleted,
		FieldState, FieldLastError, FieldAttributes:
		return true
	}
	return false
}

func appendUnique(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, name := range list {
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
