// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides helpers shared across packages: typed context
// keys, id generation, JSON response writing, the resty HTTP client and JWT
// handling.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// string keys of other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// ClientIDCtxKey stores the authenticated client id on request contexts.
var ClientIDCtxKey = contextKey("clientID")

// WithClientID returns a copy of ctx carrying clientID.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ClientIDCtxKey, clientID)
}

// GetClientIDFromContext returns the client id stored by the auth
// middleware; ok is false when it is missing or empty.
func GetClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(ClientIDCtxKey).(string)
	return clientID, ok && clientID != ""
}
