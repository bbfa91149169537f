// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-soup-sync/models"
)

// Contact form fields, named after the record fields they edit.
const (
	FieldFirstName   = "FirstName"
	FieldLastName    = "LastName"
	FieldTitle       = "Title"
	FieldDepartment  = "Department"
	FieldEmail       = "Email"
	FieldMobilePhone = "MobilePhone"
	FieldHomePhone   = "HomePhone"
)

var contactFields = []string{
	FieldFirstName, FieldLastName, FieldTitle, FieldDepartment,
	FieldEmail, FieldMobilePhone, FieldHomePhone,
}

// ContactValidator checks a contact before it is saved locally. Every
// failing field is reported as a *FieldError; the errors are joined.
type ContactValidator struct{}

func NewContactValidator() Validator {
	return &ContactValidator{}
}

func (v *ContactValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Contact:
		return v.validateContact(ctx, &value, fields...)
	case *models.Contact:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateContact(ctx, value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ContactValidator) validateContact(_ context.Context, c *models.Contact, fields ...string) error {
	if len(fields) == 0 {
		fields = contactFields
	}

	var errs []error
	for _, f := range fields {
		switch f {
		case FieldFirstName:
			errs = append(errs, singleLine(f, c.FirstName))
		case FieldLastName:
			if strings.TrimSpace(c.LastName) == "" {
				errs = append(errs, &FieldError{Field: f, Reason: "is required"})
				continue
			}
			errs = append(errs, singleLine(f, c.LastName))
		case FieldTitle:
			errs = append(errs, singleLine(f, c.Title))
		case FieldDepartment:
			errs = append(errs, singleLine(f, c.Department))
		case FieldEmail:
			if c.Email != "" && !validEmail(c.Email) {
				errs = append(errs, &FieldError{Field: f, Reason: "is not an email address"})
			}
		case FieldMobilePhone:
			errs = append(errs, phone(f, c.MobilePhone))
		case FieldHomePhone:
			errs = append(errs, phone(f, c.HomePhone))
		default:
			return ErrUnknownField
		}
	}
	return errors.Join(errs...)
}

func singleLine(field, s string) error {
	if strings.ContainsAny(s, "\n\r\t") {
		return &FieldError{Field: field, Reason: "must be a single line"}
	}
	return nil
}

func validEmail(s string) bool {
	local, domain, ok := strings.Cut(s, "@")
	return ok && local != "" && domain != "" && !strings.ContainsAny(s, " \t\n")
}

func phone(field, s string) error {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case strings.ContainsRune("+-() .", r):
		default:
			return &FieldError{Field: field, Reason: "has characters other than digits and separators"}
		}
	}
	return nil
}
