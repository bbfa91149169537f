// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/service"
	"github.com/MKhiriev/go-soup-sync/internal/store"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
)

// errorStatusMap holds one status per sentinel. No two sentinels may be
// wrapped into the same error with different statuses.
var errorStatusMap = map[error]int{
	ErrInvalidJSON:                     http.StatusBadRequest,
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrRecordNotFound:          http.StatusNotFound,

	models.ErrMissingField: http.StatusBadRequest,
	models.ErrTypeMismatch: http.StatusBadRequest,

	store.ErrRecordNotFound:      http.StatusNotFound,
	store.ErrDuplicateExternalID: http.StatusConflict,
	store.ErrStoreUnavailable:    http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its status. Server errors are
// reported by status text only.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	utils.WriteError(w, err.Error(), status)
}
