// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateServer_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// goose talks to the db itself; sqlmock rejects every unexpected call
	err = MigrateServer(db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	for name, fn := range map[string]func(*sql.DB) error{
		"client": MigrateClient,
		"server": MigrateServer,
	} {
		t.Run(name, func(t *testing.T) {
			err := fn(db)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "db is nil")
		})
	}
}

func TestMigrateClient_CreatesSoupTables(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "soups.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, MigrateClient(db))
	require.NoError(t, MigrateClient(db), "migrations are idempotent")

	for _, table := range []string{"soups", "soup_entries", "sync_states"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}
