// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"strings"
	"sync"
)

// StaticCredentials hands out a fixed bearer token, e.g. the development
// token printed by the server at startup.
type StaticCredentials struct {
	mu    sync.RWMutex
	token string
}

func NewStaticCredentials(token string) *StaticCredentials {
	return &StaticCredentials{token: strings.TrimSpace(token)}
}

func (c *StaticCredentials) Token(ctx context.Context) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == "" {
		return "", ErrNoCredentials
	}
	return c.token, nil
}

// SetToken replaces the token used by subsequent requests.
func (c *StaticCredentials) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}
