// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "schema.db")
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	conn, err := Open(TypeSQLite, openTestDB(t))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, CreateSchema(conn))
	require.NoError(t, CreateSchema(conn))

	var tables int
	err = conn.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('voter', 'ballot')
	`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 2, tables)
}

func TestBallotUniquePerVoterAndDay(t *testing.T) {
	conn, err := Open(TypeSQLite, openTestDB(t))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, CreateSchema(conn))

	now := time.Now().UTC()
	_, err = conn.Exec(`
		INSERT INTO voter (id, username, email, password_hash, created_at)
		VALUES ('v1', 'alice', 'alice@example.com', 'x', ?)
	`, now)
	require.NoError(t, err)

	_, err = conn.Exec(`
		INSERT INTO ballot (id, voter_id, choice, cast_day, cast_at)
		VALUES ('b1', 'v1', 'republican', '2026-01-01', ?)
	`, now)
	require.NoError(t, err)

	_, err = conn.Exec(`
		INSERT INTO ballot (id, voter_id, choice, cast_day, cast_at)
		VALUES ('b2', 'v1', 'democrat', '2026-01-01', ?)
	`, now)
	assert.Error(t, err, "second ballot for the same day must violate the unique constraint")

	_, err = conn.Exec(`
		INSERT INTO ballot (id, voter_id, choice, cast_day, cast_at)
		VALUES ('b3', 'v1', 'democrat', '2026-01-02', ?)
	`, now)
	assert.NoError(t, err, "a different day is a different slot")
}

func TestBallotRejectsUnknownChoiceAndVoter(t *testing.T) {
	conn, err := Open(TypeSQLite, openTestDB(t))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, CreateSchema(conn))

	_, err = conn.Exec(`
		INSERT INTO ballot (id, voter_id, choice, cast_day, cast_at)
		VALUES ('b1', 'nobody', 'republican', '2026-01-01', ?)
	`, time.Now().UTC())
	assert.Error(t, err, "foreign keys must be enforced")

	_, err = conn.Exec(`
		INSERT INTO voter (id, username, email, password_hash, created_at)
		VALUES ('v1', 'alice', 'alice@example.com', 'x', ?)
	`, time.Now().UTC())
	require.NoError(t, err)

	_, err = conn.Exec(`
		INSERT INTO ballot (id, voter_id, choice, cast_day, cast_at)
		VALUES ('b2', 'v1', 'green', '2026-01-01', ?)
	`, time.Now().UTC())
	assert.Error(t, err, "choice is a closed enumeration")
}

func TestOpenUnsupportedType(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}
