// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists voters and ballots.

# Implementations

  - SQLStore: PostgreSQL or SQLite through database/sql
  - MemoryStore: in-process maps behind a single mutex

# Conditional Insert

InsertIfAbsentForDay is the only way a ballot is written. It returns
(ballot, true, nil) when the ballot was created and (zero, false, nil)
when the voter already had one for that day:

	ballot, created, err := s.InsertIfAbsentForDay(ctx, voterID, day, choice, now)

SQLStore issues a single INSERT ... ON CONFLICT (voter_id, cast_day) DO NOTHING
and reads the affected row count. MemoryStore does its check and write under
one lock. Callers must not pair HasBallotForDay with a later insert as a
substitute.

# Errors

  - ErrNotFound: no voter with that username
  - ErrDuplicate: username or email already registered
  - ErrUnknownVoter: ballot references a voter that does not exist
*/
package store
