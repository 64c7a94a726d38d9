// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package dbtest opens throwaway databases for tests. It depends only on
// package db so store's own tests can use it.
package dbtest

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/daily-ballot/db"
)

// PostgresURLEnv names the PostgreSQL server used by Postgres; tests skip when it is unset
const PostgresURLEnv = "TEST_DATABASE_URL"

// SQLite opens a fresh SQLite database in a temp dir with the full schema.
// The connection is closed when the test ends.
func SQLite(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, "file:"+filepath.Join(t.TempDir(), "ballot.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// Postgres creates a private schema on the TEST_DATABASE_URL server,
// builds the tables inside it and drops it when the test ends
func Postgres(t *testing.T) *sql.DB {
	t.Helper()

	baseURL := os.Getenv(PostgresURLEnv)
	if baseURL == "" {
		t.Skip(PostgresURLEnv + " not set")
	}

	admin, err := db.Open(db.TypePostgres, baseURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec("CREATE SCHEMA " + schema); err != nil {
		admin.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec("DROP SCHEMA " + schema + " CASCADE"); err != nil {
			t.Logf("Failed to drop test schema %s: %v", schema, err)
		}
		admin.Close()
	})

	// lib/pq sends unknown URL parameters as run-time settings, so every
	// pooled connection starts in the test schema
	conn, err := db.Open(db.TypePostgres, withParam(baseURL, "search_path", schema))
	if err != nil {
		t.Fatalf("Failed to open test schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

func withParam(url, key, value string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + key + "=" + value
}
