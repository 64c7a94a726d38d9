// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/daily-ballot/db"
	"github.com/danielhkuo/daily-ballot/models"
)

// SQLStore implements Store on PostgreSQL or SQLite
type SQLStore struct {
	db     *sql.DB
	dbType string
}

func NewSQLStore(conn *sql.DB, dbType string) *SQLStore {
	return &SQLStore{db: conn, dbType: dbType}
}

func (s *SQLStore) HasBallotForDay(ctx context.Context, voterID, day string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT EXISTS(
			SELECT 1 FROM ballot
			WHERE voter_id = $1 AND cast_day = $2
		)
	`), voterID, day).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check ballot for day: %w", err)
	}
	return exists, nil
}

// InsertIfAbsentForDay relies on UNIQUE (voter_id, cast_day): the database
// decides in a single statement whether the row goes in.
func (s *SQLStore) InsertIfAbsentForDay(ctx context.Context, voterID, day string, choice models.Choice, at time.Time) (models.Ballot, bool, error) {
	ballot := models.Ballot{
		ID:      uuid.NewString(),
		VoterID: voterID,
		Choice:  choice,
		CastAt:  at.UTC(),
	}

	res, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO ballot (id, voter_id, choice, cast_day, cast_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (voter_id, cast_day) DO NOTHING
	`), ballot.ID, ballot.VoterID, string(ballot.Choice), day, ballot.CastAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Ballot{}, false, ErrUnknownVoter
		}
		return models.Ballot{}, false, fmt.Errorf("failed to insert ballot: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Ballot{}, false, fmt.Errorf("failed to read inserted rows: %w", err)
	}
	if n == 0 {
		return models.Ballot{}, false, nil
	}

	return ballot, true, nil
}

func (s *SQLStore) CountsByChoice(ctx context.Context) (map[models.Choice]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT choice, COUNT(*) FROM ballot GROUP BY choice
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count ballots: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Choice]int, len(models.Choices))
	for rows.Next() {
		var choice string
		var count int
		if err := rows.Scan(&choice, &count); err != nil {
			return nil, fmt.Errorf("failed to scan ballot count: %w", err)
		}
		counts[models.Choice(choice)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ballot counts: %w", err)
	}

	return counts, nil
}

func (s *SQLStore) VoterExists(ctx context.Context, voterID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT EXISTS(SELECT 1 FROM voter WHERE id = $1)
	`), voterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check voter: %w", err)
	}
	return exists, nil
}

func (s *SQLStore) CreateVoter(ctx context.Context, username, email, passwordHash string) (models.Voter, error) {
	voter := models.Voter{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO voter (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`), voter.ID, voter.Username, voter.Email, voter.PasswordHash, voter.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Voter{}, ErrDuplicate
		}
		return models.Voter{}, fmt.Errorf("failed to insert voter: %w", err)
	}

	return voter, nil
}

func (s *SQLStore) VoterByUsername(ctx context.Context, username string) (models.Voter, error) {
	var voter models.Voter
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, username, email, password_hash, created_at
		FROM voter
		WHERE username = $1
	`), username).Scan(&voter.ID, &voter.Username, &voter.Email, &voter.PasswordHash, &voter.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Voter{}, ErrNotFound
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}

	voter.CreatedAt = voter.CreatedAt.UTC()
	return voter, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind turns $N placeholders into ? for SQLite.
// Queries must use each placeholder once, in ascending order.
func (s *SQLStore) rebind(query string) string {
	if s.dbType != db.TypeSQLite {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// isUniqueViolation matches unique and primary key failures from either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}

// isForeignKeyViolation matches a row referencing a missing parent.
// CHECK and NOT NULL failures match neither helper and surface as storage errors.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	return false
}

var _ Store = (*SQLStore)(nil)
