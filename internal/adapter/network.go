// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-soup-sync/internal/config"
	"github.com/MKhiriev/go-soup-sync/internal/logger"
	"github.com/MKhiriev/go-soup-sync/internal/utils"
)

type httpNetwork struct {
	client *utils.HTTPClient
}

// NewHTTPNetwork returns a [Network] sharing the base url and credentials
// of the remote adapter.
func NewHTTPNetwork(cfg config.ClientAdapter, creds CredentialProvider, log *logger.Logger) (Network, error) {
	client, err := newAuthedClient(cfg, creds, log)
	if err != nil {
		return nil, err
	}
	return &httpNetwork{client: client}, nil
}

// Send implements [Network]. The response is returned for every status so
// callers can inspect the body; a non-2xx status is also reported as an
// error.
func (n *httpNetwork) Send(ctx context.Context, req NetworkRequest) (NetworkResponse, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	r := n.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers)
	if req.Query != nil {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(method, req.Path)
	if err != nil {
		return NetworkResponse{}, fmt.Errorf("%s %s request: %w", method, req.Path, err)
	}

	out := NetworkResponse{
		StatusCode: resp.StatusCode(),
		Headers:    resp.Header(),
		Body:       resp.Body(),
	}
	return out, mapHTTPError(out.StatusCode, out.Body)
}
