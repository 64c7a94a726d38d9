// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type (sqlite, postgres, memory)
	-timeout     Per-request storage timeout
	-log-level   debug, info, warn, error
	-log-format  text or json
	-token-salt  Voter token salt

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	REQUEST_TIMEOUT  → -timeout
	LOG_LEVEL        → -log-level
	LOG_FORMAT       → -log-format
	VOTER_TOKEN_SALT → -token-salt

CLI flags take precedence over environment variables, which take
precedence over a .env file in the working directory.

# Validation

ParseFlags returns an error if:

  - VOTER_TOKEN_SALT is missing
  - DATABASE_URL is missing and the type is not memory
  - the database type, log level or log format is unknown
  - PORT or REQUEST_TIMEOUT cannot be parsed
*/
package cliparse
