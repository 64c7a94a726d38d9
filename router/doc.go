// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the daily ballot API.

# Route Registration

NewRouter builds the voting service and handlers and returns the mux
wrapped in CORS:

	h := router.NewRouter(s, m, cfg)

# Endpoints

Health:

	GET /health

Voter accounts:

	POST /voters   - Register, returns voter_token
	POST /sessions - Log in, returns voter_token

Voting (requires X-Voter-Token):

	POST /votes       - Cast today's ballot
	GET  /votes/today - Whether the voter has voted today

Results (public):

	GET /results - Counts and percentages

Operations:

	GET /metrics - Prometheus metrics (omitted when m is nil)
*/
package router
