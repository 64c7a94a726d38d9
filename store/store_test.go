// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/daily-ballot/db"
	"github.com/danielhkuo/daily-ballot/models"
	"github.com/danielhkuo/daily-ballot/testutil/dbtest"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()

	return NewSQLStore(dbtest.SQLite(t), db.TypeSQLite)
}

// newPostgresStore skips unless TEST_DATABASE_URL points at a server
func newPostgresStore(t *testing.T) Store {
	t.Helper()
	return NewSQLStore(dbtest.Postgres(t), db.TypePostgres)
}

func newMemoryStore(t *testing.T) Store {
	t.Helper()
	return NewMemoryStore()
}

// forEachSQLStore runs a test against the database-backed stores only
func forEachSQLStore(t *testing.T, test func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) { test(t, newSQLiteStore(t)) })
	t.Run("postgres", func(t *testing.T) { test(t, newPostgresStore(t)) })
}

// forEachStore runs the same contract test against every implementation
func forEachStore(t *testing.T, test func(t *testing.T, s Store)) {
	backends := []struct {
		name string
		open func(t *testing.T) Store
	}{
		{"memory", newMemoryStore},
		{"sqlite", newSQLiteStore},
		{"postgres", newPostgresStore},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			test(t, b.open(t))
		})
	}
}

func createVoter(t *testing.T, s Store, username string) models.Voter {
	t.Helper()
	voter, err := s.CreateVoter(context.Background(), username, username+"@example.com", "hash")
	require.NoError(t, err)
	return voter
}

func TestInsertIfAbsentForDay(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		voter := createVoter(t, s, "alice")
		at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
		day := models.CalendarDay(at)

		ballot, created, err := s.InsertIfAbsentForDay(ctx, voter.ID, day, models.ChoiceRepublican, at)
		require.NoError(t, err)
		require.True(t, created)
		assert.NotEmpty(t, ballot.ID)
		assert.Equal(t, voter.ID, ballot.VoterID)
		assert.Equal(t, models.ChoiceRepublican, ballot.Choice)
		assert.True(t, at.Equal(ballot.CastAt))

		// Same day, different choice: conflict, not an error
		second, created, err := s.InsertIfAbsentForDay(ctx, voter.ID, day, models.ChoiceDemocrat, at.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, second.ID)

		// Next day is a fresh slot
		tomorrow := at.Add(24 * time.Hour)
		_, created, err = s.InsertIfAbsentForDay(ctx, voter.ID, models.CalendarDay(tomorrow), models.ChoiceDemocrat, tomorrow)
		require.NoError(t, err)
		assert.True(t, created)

		counts, err := s.CountsByChoice(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts[models.ChoiceRepublican])
		assert.Equal(t, 1, counts[models.ChoiceDemocrat])
	})
}

func TestInsertIfAbsentForDayUnknownVoter(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		now := time.Now().UTC()
		_, created, err := s.InsertIfAbsentForDay(context.Background(), "no-such-voter", models.CalendarDay(now), models.ChoiceDemocrat, now)
		assert.ErrorIs(t, err, ErrUnknownVoter)
		assert.False(t, created)
	})
}

func TestHasBallotForDay(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		voter := createVoter(t, s, "bob")
		now := time.Now().UTC()
		day := models.CalendarDay(now)

		has, err := s.HasBallotForDay(ctx, voter.ID, day)
		require.NoError(t, err)
		assert.False(t, has)

		_, created, err := s.InsertIfAbsentForDay(ctx, voter.ID, day, models.ChoiceDemocrat, now)
		require.NoError(t, err)
		require.True(t, created)

		has, err = s.HasBallotForDay(ctx, voter.ID, day)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = s.HasBallotForDay(ctx, voter.ID, models.CalendarDay(now.Add(-24*time.Hour)))
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestCountsByChoiceEmpty(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		counts, err := s.CountsByChoice(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, counts[models.ChoiceRepublican])
		assert.Equal(t, 0, counts[models.ChoiceDemocrat])
	})
}

// TestConcurrentInsertSameVoter verifies that racing inserts for one
// voter and day produce exactly one ballot
func TestConcurrentInsertSameVoter(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		voter := createVoter(t, s, "racer")
		now := time.Now().UTC()
		day := models.CalendarDay(now)

		const attempts = 20
		var created atomic.Int32
		var wg sync.WaitGroup

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				choice := models.Choices[i%len(models.Choices)]
				_, ok, err := s.InsertIfAbsentForDay(ctx, voter.ID, day, choice, now)
				if err != nil {
					t.Errorf("insert failed: %v", err)
					return
				}
				if ok {
					created.Add(1)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), created.Load())

		counts, err := s.CountsByChoice(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts[models.ChoiceRepublican]+counts[models.ChoiceDemocrat])
	})
}

func TestCreateVoter(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		voter, err := s.CreateVoter(ctx, "carol", "carol@example.com", "hash")
		require.NoError(t, err)
		assert.NotEmpty(t, voter.ID)

		exists, err := s.VoterExists(ctx, voter.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = s.VoterExists(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)

		found, err := s.VoterByUsername(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, voter.ID, found.ID)
		assert.Equal(t, "hash", found.PasswordHash)

		_, err = s.CreateVoter(ctx, "carol", "other@example.com", "hash")
		assert.ErrorIs(t, err, ErrDuplicate)

		_, err = s.CreateVoter(ctx, "carol2", "carol@example.com", "hash")
		assert.ErrorIs(t, err, ErrDuplicate)

		_, err = s.VoterByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCanceledContext(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		voter := createVoter(t, s, "dave")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		now := time.Now().UTC()
		_, created, err := s.InsertIfAbsentForDay(ctx, voter.ID, models.CalendarDay(now), models.ChoiceDemocrat, now)
		assert.Error(t, err)
		assert.False(t, created)

		has, err := s.HasBallotForDay(context.Background(), voter.ID, models.CalendarDay(now))
		require.NoError(t, err)
		assert.False(t, has, "a canceled insert must not leave a ballot behind")
	})
}

func TestRebind(t *testing.T) {
	sqliteStore := &SQLStore{dbType: db.TypeSQLite}
	pgStore := &SQLStore{dbType: db.TypePostgres}

	query := "SELECT 1 FROM ballot WHERE voter_id = $1 AND cast_day = $2 AND x = $10"

	assert.Equal(t, "SELECT 1 FROM ballot WHERE voter_id = ? AND cast_day = ? AND x = ?", sqliteStore.rebind(query))
	assert.Equal(t, query, pgStore.rebind(query))
}

// TestInsertRejectsUnknownChoice checks that a CHECK failure is a storage
// error rather than being mistaken for a missing voter
func TestInsertRejectsUnknownChoice(t *testing.T) {
	forEachSQLStore(t, func(t *testing.T, s Store) {
		voter := createVoter(t, s, "erin")
		now := time.Now().UTC()

		_, created, err := s.InsertIfAbsentForDay(context.Background(), voter.ID, models.CalendarDay(now), models.Choice("independent"), now)
		require.Error(t, err)
		assert.False(t, created)
		assert.NotErrorIs(t, err, ErrUnknownVoter)
		assert.NotErrorIs(t, err, ErrDuplicate)
	})
}

func TestConstraintClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
	}{
		{"pq unique", &pq.Error{Code: "23505"}, true, false},
		{"pq foreign key", &pq.Error{Code: "23503"}, false, true},
		{"pq check", &pq.Error{Code: "23514"}, false, false},
		{"pq not null", &pq.Error{Code: "23502"}, false, false},
		{"wrapped pq unique", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true, false},
		{"plain error", context.DeadlineExceeded, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyViolation(tt.err))
		})
	}
}
