// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting enforces the one-ballot-per-day rule and computes results.

# Operations

	svc := voting.NewService(store, voting.WithLogger(logger))

	ballot, err := svc.CastVote(ctx, voterID, models.ChoiceDemocrat)
	voted, err := svc.HasVotedToday(ctx, voterID)
	result, err := svc.GetResults(ctx)

# Days

A day is the UTC calendar date. CastVote and HasVotedToday derive it the
same way, so a voter who passes HasVotedToday is not then refused by
CastVote because of a different boundary. There is no timezone setting.

# Concurrency

The service holds no locks and no cache. CastVote hands the whole
decision to the store's InsertIfAbsentForDay; two concurrent casts for
the same voter and day yield one ballot and one ErrAlreadyVoted.

# Errors

  - ErrAlreadyVoted: expected outcome, surface to the voter
  - ErrStorageUnavailable: store failure or timeout, retry is safe
  - ErrInvalidChoice, ErrUnknownVoter: caller bugs, not retried

Storage errors wrap both ErrStorageUnavailable and the underlying cause.
*/
package voting
