// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the daily ballot API.

# Handler Types

  - VoterHandler: registration and login
  - VotingHandler: casting a ballot and checking today's status
  - ResultsHandler: running tally and health check

Handlers are created via constructor functions:

	svc := voting.NewService(s)
	votingHandler := handlers.NewVotingHandler(svc, cfg)

Every storage call runs under cfg.RequestTimeout.

# Voter Flow

	POST /voters   → Register (returns voter_token)
	POST /sessions → Login (returns voter_token)
	POST /votes    → CastVote (one per UTC day)
	GET /votes/today → HasVotedToday

Voting operations require the X-Voter-Token header.

# Status Codes

CastVote maps the voting errors onto HTTP:

	voting.ErrAlreadyVoted       → 409 Conflict
	voting.ErrInvalidChoice      → 400 Bad Request
	voting.ErrUnknownVoter       → 401 Unauthorized
	voting.ErrStorageUnavailable → 503 Service Unavailable (Retry-After)

# Results

	GET /results → GetResults

Counts and percentages for both choices; percentages are rounded to one
decimal and are 0 when no ballots exist.
*/
package handlers
