// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/daily-ballot/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrUnknownVoter = errors.New("unknown voter")
)

// Store is the persistence contract for voters and ballots
type Store interface {
	// HasBallotForDay reports whether the voter has a ballot for day (YYYY-MM-DD).
	// It is a hint; InsertIfAbsentForDay is what enforces uniqueness.
	HasBallotForDay(ctx context.Context, voterID, day string) (bool, error)

	// InsertIfAbsentForDay atomically creates a ballot unless the voter already
	// has one for day. A false result with a nil error means a ballot existed.
	InsertIfAbsentForDay(ctx context.Context, voterID, day string, choice models.Choice, at time.Time) (models.Ballot, bool, error)

	// CountsByChoice returns the number of ballots per choice
	CountsByChoice(ctx context.Context) (map[models.Choice]int, error)

	VoterExists(ctx context.Context, voterID string) (bool, error)
	CreateVoter(ctx context.Context, username, email, passwordHash string) (models.Voter, error)
	VoterByUsername(ctx context.Context, username string) (models.Voter, error)

	Close() error
}
