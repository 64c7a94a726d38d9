// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/danielhkuo/daily-ballot/auth"
	"github.com/danielhkuo/daily-ballot/cliparse"
	"github.com/danielhkuo/daily-ballot/middleware"
	"github.com/danielhkuo/daily-ballot/models"
	"github.com/danielhkuo/daily-ballot/store"
)

const minPasswordLength = 8

// VoterStore is the part of the store used for registration and login
type VoterStore interface {
	CreateVoter(ctx context.Context, username, email, passwordHash string) (models.Voter, error)
	VoterByUsername(ctx context.Context, username string) (models.Voter, error)
}

type VoterHandler struct {
	store VoterStore
	cfg   cliparse.Config
}

func NewVoterHandler(s VoterStore, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{store: s, cfg: cfg}
}

// Register handles POST /voters
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is invalid")
		return
	}
	if len(req.Password) < minPasswordLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	voter, err := h.store.CreateVoter(ctx, req.Username, req.Email, hash)
	if errors.Is(err, store.ErrDuplicate) {
		middleware.ErrorResponse(w, http.StatusConflict, "Username or email already registered")
		return
	}
	if err != nil {
		slog.Error("failed to create voter", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Failed to register")
		return
	}

	slog.Info("voter registered", "voter_id", voter.ID, "username", voter.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.VoterSessionResponse{
		VoterID:    voter.ID,
		VoterToken: auth.GenerateVoterToken(voter.ID, h.cfg.VoterTokenSalt),
	})
}

// Login handles POST /sessions
func (h *VoterHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	voter, err := h.store.VoterByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, store.ErrNotFound) {
		// Same answer as a wrong password
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database error")
		return
	}

	if err := auth.CheckPassword(voter.PasswordHash, req.Password); err != nil {
		slog.Warn("failed login", "username", voter.Username)
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterSessionResponse{
		VoterID:    voter.ID,
		VoterToken: auth.GenerateVoterToken(voter.ID, h.cfg.VoterTokenSalt),
	})
}
