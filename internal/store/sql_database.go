// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-soup-sync/internal/logger"
)

// DB wraps a *sql.DB with the statement builder of its dialect and the
// error classifier used to decide whether a failure is transient.
type DB struct {
	*sql.DB
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	// retryDelays are the pauses before each repeated attempt of an
	// operation that failed with a retryable error.
	retryDelays []time.Duration
	logger      *logger.Logger
	migrate            func(*sql.DB) error
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate() error {
	if db.migrate == nil {
		return fmt.Errorf("no migrations for this connection")
	}
	return db.migrate(db.DB)
}

// ErrorClassificator decides whether a database error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// withRetry runs op again after each retryable failure until the retry
// delays run out or ctx is done. The last error is returned as is.
func (db *DB) withRetry(ctx context.Context, funcName string, op func() error) error {
	err := op()
	for attempt, delay := range db.retryDelays {
		if err == nil || db.classify(err) != Retryable {
			return err
		}
		db.logger.Warn().Err(err).Str("func", funcName).Int("attempt", attempt+1).Msg("transient database error, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		err = op()
	}
	return err
}

// dbError wraps err in ErrStoreUnavailable when it is transient and in
// sentinel otherwise.
func (db *DB) dbError(sentinel, err error) error {
	if db.classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
