// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
	"github.com/MKhiriev/go-soup-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	sobjectsPath     = "/api/sobjects/{object}"
	sobjectPath      = "/api/sobjects/{object}/{id}"
	lastModifiedPath = "/api/sobjects/{object}/lastmodified"
)

type httpRemoteAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs the REST implementation of
// [RemoteAdapter]. Every request carries the token returned by creds.
//
// Returns [ErrInvalidBaseURL] if cfg.BaseURL is empty or cannot be parsed.
func NewHTTPRemoteAdapter(cfg config.ClientAdapter, creds CredentialProvider, log *logger.Logger) (RemoteAdapter, error) {
	client, err := newAuthedClient(cfg, creds, log)
	if err != nil {
		return nil, err
	}
	return &httpRemoteAdapter{client: client, logger: log}, nil
}

func newAuthedClient(cfg config.ClientAdapter, creds CredentialProvider, log *logger.Logger) (*utils.HTTPClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBaseURL(baseURL)
	client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		token, err := creds.Token(r.Context())
		if err != nil {
			return err
		}
		r.SetHeader("Authorization", "Bearer "+token)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("took", resp.Time()).
			Msg("remote call")
		return nil
	})
	return client, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Query implements [RemoteAdapter]. GET /api/sobjects/{object}.
func (h *httpRemoteAdapter) Query(ctx context.Context, req QueryRequest) (models.QueryResponse, error) {
	var page models.QueryResponse

	r := h.client.R().
		SetContext(ctx).
		SetPathParam("object", req.Object).
		SetResult(&page)
	if len(req.Fields) > 0 {
		r.SetQueryParam("fields", strings.Join(req.Fields, ","))
	}
	if !req.Since.IsZero() {
		r.SetQueryParam("since", req.Since.UTC().Format(time.RFC3339Nano))
	}
	if req.Cursor != "" {
		r.SetQueryParam("cursor", req.Cursor)
	}
	if req.Limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(req.Limit))
	}

	resp, err := r.Get(sobjectsPath)
	if err != nil {
		return models.QueryResponse{}, fmt.Errorf("query %s request: %w", req.Object, err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return models.QueryResponse{}, fmt.Errorf("query %s: %w", req.Object, err)
	}
	return page, nil
}

// Retrieve implements [RemoteAdapter]. GET /api/sobjects/{object}/{id}.
func (h *httpRemoteAdapter) Retrieve(ctx context.Context, object, id string, fields []string) (map[string]any, error) {
	var doc map[string]any

	r := h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"object": object, "id": id}).
		SetResult(&doc)
	if len(fields) > 0 {
		r.SetQueryParam("fields", strings.Join(fields, ","))
	}

	resp, err := r.Get(sobjectPath)
	if err != nil {
		return nil, fmt.Errorf("retrieve %s/%s request: %w", object, id, err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return nil, fmt.Errorf("retrieve %s/%s: %w", object, id, err)
	}
	return doc, nil
}

// Create implements [RemoteAdapter]. POST /api/sobjects/{object}.
func (h *httpRemoteAdapter) Create(ctx context.Context, object string, fields map[string]any) (models.SaveResult, error) {
	var result models.SaveResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("object", object).
		SetBody(fields).
		SetResult(&result).
		Post(sobjectsPath)
	if err != nil {
		return models.SaveResult{}, fmt.Errorf("create %s request: %w", object, err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return models.SaveResult{}, fmt.Errorf("create %s: %w", object, err)
	}
	return result, nil
}

// Update implements [RemoteAdapter]. PATCH /api/sobjects/{object}/{id}.
func (h *httpRemoteAdapter) Update(ctx context.Context, object, id string, fields map[string]any) (models.SaveResult, error) {
	var result models.SaveResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"object": object, "id": id}).
		SetBody(fields).
		SetResult(&result).
		Patch(sobjectPath)
	if err != nil {
		return models.SaveResult{}, fmt.Errorf("update %s/%s request: %w", object, id, err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return models.SaveResult{}, fmt.Errorf("update %s/%s: %w", object, id, err)
	}
	return result, nil
}

// Delete implements [RemoteAdapter]. DELETE /api/sobjects/{object}/{id}.
func (h *httpRemoteAdapter) Delete(ctx context.Context, object, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"object": object, "id": id}).
		Delete(sobjectPath)
	if err != nil {
		return fmt.Errorf("delete %s/%s request: %w", object, id, err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return fmt.Errorf("delete %s/%s: %w", object, id, err)
	}
	return nil
}

// LastModified implements [RemoteAdapter].
// POST /api/sobjects/{object}/lastmodified.
func (h *httpRemoteAdapter) LastModified(ctx context.Context, object string, ids []string) (map[string]time.Time, error) {
	if len(ids) == 0 {
		return map[string]time.Time{}, nil
	}

	var result models.LastModifiedResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("object", object).
		SetBody(models.LastModifiedRequest{IDs: ids}).
		SetResult(&result).
		Post(lastModifiedPath)
	if err != nil {
		return nil, fmt.Errorf("last modified %s request: %w", object, err)
	}
	if err = mapHTTPError(resp.StatusCode(), resp.Body()); err != nil {
		return nil, fmt.Errorf("last modified %s: %w", object, err)
	}
	if result.Records == nil {
		result.Records = map[string]time.Time{}
	}
	return result.Records, nil
}
