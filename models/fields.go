// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"time"
)

// ErrMissingField and ErrTypeMismatch are the sentinels wrapped by
// [MissingFieldError] and [TypeMismatchError] so callers can match either
// with errors.Is without caring about the concrete field.
var (
	ErrMissingField = errors.New("missing field")
	ErrTypeMismatch = errors.New("type mismatch")
)

// MissingFieldError reports a required field that is absent or null.
type MissingFieldError struct {
	Object string
	Field  string
}

func (e *MissingFieldError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("missing field %q", e.Field)
	}
	return fmt.Sprintf("%s: missing field %q", e.Object, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// TypeMismatchError reports a present field whose JSON type does not match
// the declared kind.
type TypeMismatchError struct {
	Object string
	Field  string
	Want   string
	Got    any
}

func (e *TypeMismatchError) Error() string {
	prefix := ""
	if e.Object != "" {
		prefix = e.Object + ": "
	}
	return fmt.Sprintf("%sfield %q: want %s, got %T", prefix, e.Field, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// Fields is the untyped field bag of a soup entry.
//
// Values follow JSON decoding conventions: strings, float64 numbers, bools,
// nested maps and slices. The typed accessors return ok=false for absent or
// null fields and a *TypeMismatchError when a value is present with the
// wrong type; they never silently default.
type Fields map[string]any

// Get returns the raw value; a JSON null counts as absent.
func (f Fields) Get(name string) (any, bool) {
	v, ok := f[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Set stores v under name. A nil value removes the field.
func (f Fields) Set(name string, v any) {
	if v == nil {
		delete(f, name)
		return
	}
	f[name] = v
}

func (f Fields) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

func (f Fields) String(name string) (string, bool, error) {
	v, ok := f.Get(name)
	if !ok {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, &TypeMismatchError{Field: name, Want: "string", Got: v}
	}
	return s, true, nil
}

func (f Fields) Float(name string) (float64, bool, error) {
	v, ok := f.Get(name)
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case float32:
		return float64(n), true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, false, &TypeMismatchError{Field: name, Want: "number", Got: v}
		}
		return x, true, nil
	}
	return 0, false, &TypeMismatchError{Field: name, Want: "number", Got: v}
}

// Int accepts integral numbers only; 1.5 is a type mismatch.
func (f Fields) Int(name string) (int64, bool, error) {
	x, ok, err := f.Float(name)
	if err != nil || !ok {
		if err != nil {
			err = &TypeMismatchError{Field: name, Want: "integer", Got: f[name]}
		}
		return 0, false, err
	}
	if x != math.Trunc(x) {
		return 0, false, &TypeMismatchError{Field: name, Want: "integer", Got: f[name]}
	}
	return int64(x), true, nil
}

func (f Fields) Bool(name string) (bool, bool, error) {
	v, ok := f.Get(name)
	if !ok {
		return false, false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, false, &TypeMismatchError{Field: name, Want: "bool", Got: v}
	}
	return b, true, nil
}

// Time parses RFC 3339 timestamps, the org's "2006-01-02T15:04:05.000-0700"
// layout and plain dates.
func (f Fields) Time(name string) (time.Time, bool, error) {
	v, ok := f.Get(name)
	if !ok {
		return time.Time{}, false, nil
	}
	switch t := v.(type) {
	case time.Time:
		return t, true, nil
	case string:
		parsed, err := ParseTime(t)
		if err != nil {
			return time.Time{}, false, &TypeMismatchError{Field: name, Want: "datetime", Got: v}
		}
		return parsed, true, nil
	}
	return time.Time{}, false, &TypeMismatchError{Field: name, Want: "datetime", Got: v}
}

func (f Fields) RequiredString(name string) (string, error) {
	s, ok, err := f.String(name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &MissingFieldError{Field: name}
	}
	return s, nil
}

func (f Fields) RequiredFloat(name string) (float64, error) {
	x, ok, err := f.Float(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &MissingFieldError{Field: name}
	}
	return x, nil
}

func (f Fields) RequiredTime(name string) (time.Time, error) {
	t, ok, err := f.Time(name)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, &MissingFieldError{Field: name}
	}
	return t, nil
}

// DateLayout is the layout of date-only fields such as CloseDate.
const DateLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05.000Z0700",
	DateLayout,
}

// ParseTime parses any of the timestamp layouts accepted in field bags.
func ParseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatTime renders t the way LastModifiedDate travels over the wire.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
