// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinels returned (wrapped) by every adapter call. mapHTTPError picks
// one from the response status so callers can branch with errors.Is.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("client unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrServerError  = errors.New("server error")

	// ErrNoCredentials is returned when the credential provider has no
	// token to attach.
	ErrNoCredentials = errors.New("no credentials available")

	ErrInvalidBaseURL = errors.New("invalid adapter base url")
)
