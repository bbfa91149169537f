// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-soup-sync/internal/service"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
)

// queryRecords serves GET /api/sobjects/{object}?fields=&since=&cursor=&limit=.
func (h *Handler) queryRecords(w http.ResponseWriter, r *http.Request) {
	req, err := queryRequestFromURL(chi.URLParam(r, "object"), r.URL.Query())
	if err != nil {
		writeError(w, r, "*Handler.queryRecords", err)
		return
	}

	page, err := h.services.RecordService.Query(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.queryRecords", err)
		return
	}

	_, _ = utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) retrieveRecord(w http.ResponseWriter, r *http.Request) {
	doc, err := h.services.RecordService.Retrieve(r.Context(),
		chi.URLParam(r, "object"), chi.URLParam(r, "id"), splitFields(r.URL.Query().Get("fields")))
	if err != nil {
		writeError(w, r, "*Handler.retrieveRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	var fields models.Fields
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, r, "*Handler.createRecord", err)
		return
	}

	result, err := h.services.RecordService.Create(r.Context(), models.RecordRequest{
		Object: chi.URLParam(r, "object"),
		Fields: fields,
	})
	if err != nil {
		writeError(w, r, "*Handler.createRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	var fields models.Fields
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, r, "*Handler.updateRecord", err)
		return
	}

	result, err := h.services.RecordService.Update(r.Context(), models.RecordRequest{
		Object: chi.URLParam(r, "object"),
		ID:     chi.URLParam(r, "id"),
		Fields: fields,
	})
	if err != nil {
		writeError(w, r, "*Handler.updateRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	err := h.services.RecordService.Delete(r.Context(), chi.URLParam(r, "object"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.deleteRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lastModified serves POST /api/sobjects/{object}/lastmodified.
func (h *Handler) lastModified(w http.ResponseWriter, r *http.Request) {
	var req models.LastModifiedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.lastModified", err)
		return
	}

	resp, err := h.services.RecordService.LastModified(r.Context(), chi.URLParam(r, "object"), req)
	if err != nil {
		writeError(w, r, "*Handler.lastModified", err)
		return
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

// ── request decoding ────────────────────────────────────────────────────────

func queryRequestFromURL(object string, values url.Values) (service.QueryRequest, error) {
	req := service.QueryRequest{
		Object: object,
		Fields: splitFields(values.Get("fields")),
		Cursor: values.Get("cursor"),
	}

	if raw := values.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return service.QueryRequest{}, fmt.Errorf("%w: since: %w", service.ErrInvalidDataProvided, err)
		}
		req.Since = since
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return service.QueryRequest{}, fmt.Errorf("%w: limit: %w", service.ErrInvalidDataProvided, err)
		}
		req.Limit = limit
	}

	return req, nil
}

// splitFields parses a comma separated field list; blanks are dropped.
func splitFields(raw string) []string {
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
