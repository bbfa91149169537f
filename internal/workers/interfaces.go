// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the client as one unit.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start launches the job and returns without blocking; the job runs until
// ctx is cancelled or Stop is called. Stop blocks until the job has exited
// and is safe to call on a job that is not running.
//
// Example implementation:
//
//	type heartbeat struct{ cancel context.CancelFunc }
//
//	func (h *heartbeat) Start(ctx context.Context) { /* spawn goroutine */ }
//	func (h *heartbeat) Stop()                     { /* cancel and wait */ }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
