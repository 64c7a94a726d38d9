// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: username, email, password
  - LoginRequest: username, password
  - CastVoteRequest: choice

# Response Types

Types for JSON responses:

  - VoterSessionResponse: voter_id, voter_token
  - CastVoteResponse: success, message, vote_id, choice, cast_at
  - HasVotedResponse: has_voted, next_vote_at, next_vote_in
  - HealthResponse: status, service, timestamp
  - ErrorResponse: error, message

# Domain Types

  - Voter: registered individual (credentials stay inside the server)
  - Ballot: one cast vote, immutable once stored
  - VotingResult: counts and percentages, recomputed on every query

# Calendar Days

A voter may cast one ballot per UTC calendar day. CalendarDay turns a
timestamp into the YYYY-MM-DD key the store enforces uniqueness on:

	day := models.CalendarDay(time.Now())

# Choices

	ChoiceRepublican = "republican"
	ChoiceDemocrat   = "democrat"
*/
package models
