// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"math"
	"time"
)

// Choice is one of the two fixed ballot options
type Choice string

const (
	ChoiceRepublican Choice = "republican"
	ChoiceDemocrat   Choice = "democrat"
)

// Choices lists every valid choice in display order
var Choices = []Choice{ChoiceRepublican, ChoiceDemocrat}

// Valid reports whether c is one of the enumerated choices
func (c Choice) Valid() bool {
	return c == ChoiceRepublican || c == ChoiceDemocrat
}

// dayLayout is the calendar-day key stored alongside every ballot
const dayLayout = "2006-01-02"

// CalendarDay returns the UTC date of t as YYYY-MM-DD.
// Both casting and the has-voted check use this, so they agree on day boundaries.
func CalendarDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// StartOfNextDay returns midnight UTC following t
func StartOfNextDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}

// Request types

type RegisterVoterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CastVoteRequest struct {
	Choice Choice `json:"choice"`
}

// Response types

type VoterSessionResponse struct {
	VoterID    string `json:"voter_id"`
	VoterToken string `json:"voter_token"`
}

type CastVoteResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	VoteID  string    `json:"vote_id"`
	Choice  Choice    `json:"choice"`
	CastAt  time.Time `json:"cast_at"`
}

// NextVoteAt and NextVoteIn are only set once the voter has voted today
type HasVotedResponse struct {
	HasVoted   bool       `json:"has_voted"`
	NextVoteAt *time.Time `json:"next_vote_at,omitempty"`
	NextVoteIn string     `json:"next_vote_in,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// Domain types

type Voter struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Ballot struct {
	ID      string    `json:"id"`
	VoterID string    `json:"-"` // Never expose in JSON
	Choice  Choice    `json:"choice"`
	CastAt  time.Time `json:"cast_at"`
}

// VotingResult is derived from the ballot counts on every query and never stored
type VotingResult struct {
	RepublicanVotes      int     `json:"republican_votes"`
	DemocratVotes        int     `json:"democrat_votes"`
	TotalVotes           int     `json:"total_votes"`
	RepublicanPercentage float64 `json:"republican_percentage"`
	DemocratPercentage   float64 `json:"democrat_percentage"`
}

// NewVotingResult computes totals and percentages from raw counts.
// Percentages are rounded to one decimal; with no votes both are 0.
func NewVotingResult(republican, democrat int) VotingResult {
	total := republican + democrat
	return VotingResult{
		RepublicanVotes:      republican,
		DemocratVotes:        democrat,
		TotalVotes:           total,
		RepublicanPercentage: percentage(republican, total),
		DemocratPercentage:   percentage(democrat, total),
	}
}

func percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)*1000/float64(total)) / 10
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
