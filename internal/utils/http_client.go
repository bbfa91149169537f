// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client so adapters can share one configured
// client.
//
// Example usage:
//
//	client := utils.NewHTTPClient(10 * time.Second)
//	resp, err := client.R().Get("https://example.com/api/version")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with JSON headers and the given request
// timeout; zero leaves resty's default.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPClient{Client: c}
}
