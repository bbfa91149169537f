// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package saga runs a sequence of dependent steps and undoes the completed
// ones when a later step fails.
//
// Each [Step] pairs an action with an optional compensation. [Saga.Run]
// executes the actions in order; on the first failure it runs the
// compensations of the steps that already succeeded, newest first, and
// returns an [*Error] describing what failed and what could not be undone.
package saga

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
)

// Step is one unit of a saga. Compensate may be nil for steps with no
// remote side effects.
type Step struct {
	Name       string
	Do         func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

type Saga struct {
	Name  string
	Steps []Step
}

func New(name string, steps ...Step) *Saga {
	return &Saga{Name: name, Steps: steps}
}

// Add appends a step and returns the saga for chaining.
func (s *Saga) Add(name string, do, compensate func(ctx context.Context) error) *Saga {
	s.Steps = append(s.Steps, Step{Name: name, Do: do, Compensate: compensate})
	return s
}

// Run executes the steps in order. Compensations run with a context that
// is not cancelled together with ctx, so a cancelled request still gets its
// partial work undone.
func (s *Saga) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return s.fail(ctx, i, step.Name, err)
		}
		if step.Do == nil {
			continue
		}

		if err := step.Do(ctx); err != nil {
			log.Err(err).
				Str("func", "Saga.Run").
				Str("saga", s.Name).
				Str("step", step.Name).
				Msg("saga step failed")
			return s.fail(ctx, i, step.Name, err)
		}

		log.Debug().
			Str("func", "Saga.Run").
			Str("saga", s.Name).
			Str("step", step.Name).
			Msg("saga step done")
	}
	return nil
}

// fail compensates steps [0, failed) in reverse order.
func (s *Saga) fail(ctx context.Context, failed int, stepName string, cause error) error {
	log := logger.FromContext(ctx)
	compensateCtx := context.WithoutCancel(ctx)

	sagaErr := &Error{Saga: s.Name, Step: stepName, Err: cause}
	for i := failed - 1; i >= 0; i-- {
		step := s.Steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(compensateCtx); err != nil {
			log.Err(err).
				Str("func", "Saga.fail").
				Str("saga", s.Name).
				Str("step", step.Name).
				Msg("compensation failed")
			sagaErr.CompensationErrs = append(sagaErr.CompensationErrs,
				fmt.Errorf("compensate %s: %w", step.Name, err))
			continue
		}
		sagaErr.Compensated = append(sagaErr.Compensated, step.Name)
	}
	return sagaErr
}

// Error reports a failed saga. Err is the failure of Step; compensation
// failures never replace it.
type Error struct {
	Saga string
	Step string
	Err  error

	// Compensated lists the steps undone successfully, newest first.
	Compensated      []string
	CompensationErrs []error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("saga %s: step %s: %v", e.Saga, e.Step, e.Err)
	if len(e.CompensationErrs) > 0 {
		msg += fmt.Sprintf(" (%d compensations failed: %v)", len(e.CompensationErrs), errors.Join(e.CompensationErrs...))
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// FullyCompensated reports whether every compensation succeeded.
func (e *Error) FullyCompensated() bool {
	return len(e.CompensationErrs) == 0
}
