// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
)

// recordingWorker appends "start:<id>" and "stop:<id>" to a shared log.
type recordingWorker struct {
	id  string
	log *[]string
	ctx context.Context
}

func (r *recordingWorker) Start(ctx context.Context) {
	r.ctx = ctx
	*r.log = append(*r.log, "start:"+r.id)
}

func (r *recordingWorker) Stop() {
	*r.log = append(*r.log, "stop:"+r.id)
}

func TestWorkers_StartInOrderStopInReverse(t *testing.T) {
	var log []string
	a := &recordingWorker{id: "a", log: &log}
	b := &recordingWorker{id: "b", log: &log}
	c := &recordingWorker{id: "c", log: &log}

	ws := NewWorkers(a, b, c)
	ws.Start(context.Background())
	ws.Stop()

	expected := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(log) != len(expected) {
		t.Fatalf("expected %d events, got %v", len(expected), log)
	}
	for i, v := range expected {
		if log[i] != v {
			t.Errorf("expected log[%d]=%s, got %s", i, v, log[i])
		}
	}
}

func TestWorkers_StartPassesContext(t *testing.T) {
	var log []string
	w := &recordingWorker{id: "a", log: &log}
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	NewWorkers(w).Start(ctx)

	if w.ctx.Value(key{}) != "v" {
		t.Error("expected the worker to receive the start context")
	}
}

func TestNewWorkers_DropsNil(t *testing.T) {
	var log []string
	ws := NewWorkers(nil, &recordingWorker{id: "a", log: &log}, nil)

	if len(ws.workers) != 1 {
		t.Fatalf("expected 1 worker, got %d", len(ws.workers))
	}
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on an empty group
	ws.Start(context.Background())
	ws.Stop()
}
