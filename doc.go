// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the daily ballot API server.

Registered voters may cast one ballot per UTC calendar day for one of
two choices (republican or democrat). Running totals and percentages
are public.

# Starting the Server

The server reads CLI flags, then environment variables, then an optional
.env file in the working directory:

	VOTER_TOKEN_SALT=... DATABASE_URL=file:ballot.db go run .

Or with flags:

	go run . -p 8086 -t postgres -d "postgres://..." -token-salt ...

# Configuration

Required settings:

  - VOTER_TOKEN_SALT (-token-salt): Secret for voter token HMAC
  - DATABASE_URL (-d): Connection string, unless DATABASE_TYPE is memory

Optional settings:

  - PORT (-p): Server port (default: 8086)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - REQUEST_TIMEOUT (-timeout): Per-request storage deadline (default: 5s)
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)
  - LOG_FORMAT (-log-format): text or json (default: text)

# Architecture

  - handlers: HTTP request handlers (voters, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, voter token check, JSON helpers
  - voting: One-ballot-per-day rule and result tallies
  - store: SQL and in-memory ballot storage
  - metrics: Prometheus counters and histograms
  - models: Request/response and domain types
  - auth: Password hashing and voter tokens
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
