// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/daily-ballot/cliparse"
	"github.com/danielhkuo/daily-ballot/middleware"
	"github.com/danielhkuo/daily-ballot/models"
	"github.com/danielhkuo/daily-ballot/voting"
)

type VotingHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewVotingHandler(svc *voting.Service, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: svc, cfg: cfg}
}

// CastVote handles POST /votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voterID, ok := middleware.VoterIDFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.VoterTokenHeader+" header required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	ballot, err := h.svc.CastVote(ctx, voterID, req.Choice)
	switch {
	case err == nil:
	case errors.Is(err, voting.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted today")
		return
	case errors.Is(err, voting.ErrInvalidChoice):
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice must be 'republican' or 'democrat'")
		return
	case errors.Is(err, voting.ErrUnknownVoter):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown voter")
		return
	default:
		w.Header().Set("Retry-After", "1")
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Ballot storage unavailable, try again")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Success: true,
		Message: "Vote cast successfully",
		VoteID:  ballot.ID,
		Choice:  ballot.Choice,
		CastAt:  ballot.CastAt,
	})
}

// HasVotedToday handles GET /votes/today
func (h *VotingHandler) HasVotedToday(w http.ResponseWriter, r *http.Request) {
	voterID, ok := middleware.VoterIDFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.VoterTokenHeader+" header required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	voted, err := h.svc.HasVotedToday(ctx, voterID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Ballot storage unavailable, try again")
		return
	}

	resp := models.HasVotedResponse{HasVoted: voted}
	if voted {
		now := h.svc.Now()
		next := models.StartOfNextDay(now)
		resp.NextVoteAt = &next
		resp.NextVoteIn = humanize.RelTime(next, now, "ago", "from now")
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
