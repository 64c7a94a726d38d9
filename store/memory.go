// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/daily-ballot/models"
)

type ballotKey struct {
	voterID string
	day     string
}

// MemoryStore keeps everything in process behind one mutex.
// It is a single-writer store for development and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	voters     map[string]models.Voter
	byUsername map[string]string
	byEmail    map[string]string
	ballots    map[ballotKey]models.Ballot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		voters:     make(map[string]models.Voter),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		ballots:    make(map[ballotKey]models.Ballot),
	}
}

func (m *MemoryStore) HasBallotForDay(ctx context.Context, voterID, day string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.ballots[ballotKey{voterID: voterID, day: day}]
	return ok, nil
}

func (m *MemoryStore) InsertIfAbsentForDay(ctx context.Context, voterID, day string, choice models.Choice, at time.Time) (models.Ballot, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Ballot{}, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.voters[voterID]; !ok {
		return models.Ballot{}, false, ErrUnknownVoter
	}

	key := ballotKey{voterID: voterID, day: day}
	if _, ok := m.ballots[key]; ok {
		return models.Ballot{}, false, nil
	}

	ballot := models.Ballot{
		ID:      uuid.NewString(),
		VoterID: voterID,
		Choice:  choice,
		CastAt:  at.UTC(),
	}
	m.ballots[key] = ballot
	return ballot, true, nil
}

func (m *MemoryStore) CountsByChoice(ctx context.Context) (map[models.Choice]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[models.Choice]int, len(models.Choices))
	for _, b := range m.ballots {
		counts[b.Choice]++
	}
	return counts, nil
}

func (m *MemoryStore) VoterExists(ctx context.Context, voterID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.voters[voterID]
	return ok, nil
}

func (m *MemoryStore) CreateVoter(ctx context.Context, username, email, passwordHash string) (models.Voter, error) {
	if err := ctx.Err(); err != nil {
		return models.Voter{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byUsername[username]; taken {
		return models.Voter{}, ErrDuplicate
	}
	if _, taken := m.byEmail[email]; taken {
		return models.Voter{}, ErrDuplicate
	}

	voter := models.Voter{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.voters[voter.ID] = voter
	m.byUsername[username] = voter.ID
	m.byEmail[email] = voter.ID
	return voter, nil
}

func (m *MemoryStore) VoterByUsername(ctx context.Context, username string) (models.Voter, error) {
	if err := ctx.Err(); err != nil {
		return models.Voter{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byUsername[username]
	if !ok {
		return models.Voter{}, ErrNotFound
	}
	return m.voters[id], nil
}

func (m *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
