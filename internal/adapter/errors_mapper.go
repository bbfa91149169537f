// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-soup-sync/models"
)

// mapHTTPError returns nil for 2xx and a sentinel wrapped with the server
// message otherwise.
func mapHTTPError(status int, body []byte) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	msg := errorMessage(status, body)

	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case status == http.StatusConflict, status == http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: http %d: %s", ErrServerError, status, msg)
	default:
		return fmt.Errorf("http %d: %s", status, msg)
	}
}

// errorMessage prefers the "error" field of a JSON error body and falls
// back to the raw body, then to the status text.
func errorMessage(status int, body []byte) string {
	var resp models.ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return resp.Error
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}
