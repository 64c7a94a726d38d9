// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open registers both drivers and pings the database:

	conn, err := db.Open(db.TypeSQLite, "file:votes.db")

SQLite connections get foreign keys, a busy timeout and WAL journaling,
and are limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - voter: registered individuals and their password hashes
  - ballot: one row per cast vote

# Uniqueness

ballot carries UNIQUE (voter_id, cast_day), where cast_day is the UTC date
of cast_at. The constraint is what makes "one ballot per voter per day"
hold when two requests from the same voter race each other.

# Relationships

	voter 1──* ballot

The foreign key uses ON DELETE CASCADE.
*/
package db
