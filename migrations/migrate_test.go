// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the DB on its own, no expectations are set

	err = Migrate(db, "postgres")
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, "postgres")
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "oracle")
	require.ErrorIs(t, err, ErrUnknownDialect)
}

func TestEmbeddedMigrations_BothDialectsDefineSameTables(t *testing.T) {
	tables := []string{"users", "auth_tokens", "sessions", "subscriptions"}

	for _, dir := range []string{"postgres", "sqlite"} {
		t.Run(dir, func(t *testing.T) {
			body, err := fs.ReadFile(embedMigrations, dir+"/00001_init.sql")
			require.NoError(t, err)

			script := strings.ToLower(string(body))
			assert.Contains(t, script, "-- +goose up")
			assert.Contains(t, script, "-- +goose down")
			for _, table := range tables {
				assert.Contains(t, script, "create table if not exists "+table)
			}
			assert.Contains(t, script, "token_hash text")
			assert.Contains(t, script, "primary key (user_id, mode)")
		})
	}
}
