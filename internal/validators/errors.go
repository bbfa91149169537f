// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidObjectName = errors.New("invalid object name")
	ErrInvalidRecordID   = errors.New("invalid record id")
	ErrNoFieldsProvided  = errors.New("at least one field must be provided")
	ErrEmptyIDs          = errors.New("IDs list cannot be empty")
	ErrTooManyIDs        = errors.New("too many IDs requested")

	// ErrInvalidField is matched by every *FieldError.
	ErrInvalidField = errors.New("invalid field")
)

// FieldError names the form field that failed validation, so a UI can
// flag it.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }
