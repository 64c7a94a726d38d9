// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/daily-ballot/metrics"
	"github.com/danielhkuo/daily-ballot/models"
	"github.com/danielhkuo/daily-ballot/store"
)

var (
	// ErrAlreadyVoted is the expected outcome for a second cast on the same UTC day
	ErrAlreadyVoted = errors.New("voter has already voted today")

	// ErrStorageUnavailable wraps any store failure; callers may retry
	ErrStorageUnavailable = errors.New("ballot storage unavailable")

	ErrInvalidChoice = errors.New("invalid choice")
	ErrUnknownVoter  = errors.New("unknown voter")
)

// BallotStore is the subset of store.Store the voting core needs
type BallotStore interface {
	HasBallotForDay(ctx context.Context, voterID, day string) (bool, error)
	InsertIfAbsentForDay(ctx context.Context, voterID, day string, choice models.Choice, at time.Time) (models.Ballot, bool, error)
	CountsByChoice(ctx context.Context) (map[models.Choice]int, error)
	VoterExists(ctx context.Context, voterID string) (bool, error)
}

// Service enforces one ballot per voter per UTC day and tallies results.
// It keeps no mutable state; all shared state lives in the store.
type Service struct {
	store   BallotStore
	logger  *slog.Logger
	metrics *metrics.VotingMetrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.VotingMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock replaces time.Now, mainly for tests that cross day boundaries
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(bs BallotStore, opts ...Option) *Service {
	s := &Service{
		store:  bs,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now reads the service clock in UTC
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// Today returns the current UTC calendar day
func (s *Service) Today() string {
	return models.CalendarDay(s.now())
}

// NextVoteAt returns when a voter who has voted today may vote again
func (s *Service) NextVoteAt() time.Time {
	return models.StartOfNextDay(s.now())
}

// CastVote records a ballot for voterID unless one already exists for today.
// The store's conditional insert is the only uniqueness check.
func (s *Service) CastVote(ctx context.Context, voterID string, choice models.Choice) (models.Ballot, error) {
	if !choice.Valid() {
		s.metrics.VoteRejected(metrics.ReasonInvalidChoice)
		return models.Ballot{}, fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}

	start := time.Now()
	exists, err := s.store.VoterExists(ctx, voterID)
	s.metrics.ObserveStore("voter_exists", start)
	if err != nil {
		s.metrics.VoteRejected(metrics.ReasonStorage)
		return models.Ballot{}, s.storageError("voter lookup failed", err, "voter_id", voterID)
	}
	if !exists {
		s.metrics.VoteRejected(metrics.ReasonUnknownVoter)
		return models.Ballot{}, fmt.Errorf("%w: %s", ErrUnknownVoter, voterID)
	}

	now := s.now().UTC()
	day := models.CalendarDay(now)

	start = time.Now()
	ballot, created, err := s.store.InsertIfAbsentForDay(ctx, voterID, day, choice, now)
	s.metrics.ObserveStore("insert_if_absent", start)
	if errors.Is(err, store.ErrUnknownVoter) {
		s.metrics.VoteRejected(metrics.ReasonUnknownVoter)
		return models.Ballot{}, fmt.Errorf("%w: %s", ErrUnknownVoter, voterID)
	}
	if err != nil {
		s.metrics.VoteRejected(metrics.ReasonStorage)
		return models.Ballot{}, s.storageError("ballot insert failed", err, "voter_id", voterID, "day", day)
	}

	if !created {
		s.metrics.VoteRejected(metrics.ReasonAlreadyVoted)
		s.logger.Warn("duplicate ballot rejected", "voter_id", voterID, "day", day)
		return models.Ballot{}, ErrAlreadyVoted
	}

	s.metrics.VoteCast(string(choice))
	s.logger.Info("ballot cast", "ballot_id", ballot.ID, "voter_id", voterID, "day", day)
	return ballot, nil
}

// HasVotedToday uses the same UTC day as CastVote
func (s *Service) HasVotedToday(ctx context.Context, voterID string) (bool, error) {
	day := s.Today()

	start := time.Now()
	has, err := s.store.HasBallotForDay(ctx, voterID, day)
	s.metrics.ObserveStore("has_ballot_for_day", start)
	if err != nil {
		return false, s.storageError("ballot lookup failed", err, "voter_id", voterID, "day", day)
	}
	return has, nil
}

// GetResults folds the per-choice counts into percentages
func (s *Service) GetResults(ctx context.Context) (models.VotingResult, error) {
	start := time.Now()
	counts, err := s.store.CountsByChoice(ctx)
	s.metrics.ObserveStore("counts_by_choice", start)
	if err != nil {
		return models.VotingResult{}, s.storageError("ballot count failed", err)
	}

	return models.NewVotingResult(
		counts[models.ChoiceRepublican],
		counts[models.ChoiceDemocrat],
	), nil
}

func (s *Service) storageError(msg string, err error, args ...any) error {
	s.logger.Error(msg, append([]any{"error", err}, args...)...)
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}
