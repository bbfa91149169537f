// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive front end; Run blocks until the user leaves.
type UI interface {
	Run(ctx context.Context) error
}

// StoreSet prepares the local soups and syncs them.
type StoreSet interface {
	Setup(ctx context.Context) error
	SyncAll(ctx context.Context) error
}

// Workers runs the background jobs while the UI is open.
type Workers interface {
	Start(ctx context.Context)
	Stop()
}
