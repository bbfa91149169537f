// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

// syncAller is the part of Stores the job drives.
type syncAller interface {
	SyncAll(ctx context.Context) error
}

type syncJob struct {
	stores   syncAller
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that calls stores.SyncAll every interval. If
// interval is zero or negative it defaults to 5 minutes. The job is idle
// until Start is called.
func NewSyncJob(stores syncAller, interval time.Duration) SyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &syncJob{stores: stores, interval: interval}
}

// Start stops any previous run, then launches a goroutine that syncs on a
// ticker until ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.stores.SyncAll(jobCtx); err != nil && jobCtx.Err() == nil {
					logger.FromContext(jobCtx).Err(err).Str("func", "syncJob.Start").Msg("background sync failed")
				}
			}
		}
	}()
}

// Stop cancels the goroutine and blocks until it has exited. Safe to call
// when the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
