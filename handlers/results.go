// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielhkuo/daily-ballot/cliparse"
	"github.com/danielhkuo/daily-ballot/middleware"
	"github.com/danielhkuo/daily-ballot/models"
	"github.com/danielhkuo/daily-ballot/voting"
)

// ServiceName is reported by the health check
const ServiceName = "Voting Application"

type ResultsHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewResultsHandler(svc *voting.Service, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: svc, cfg: cfg}
}

// GetResults handles GET /results
// Results are public and recomputed from the ballots on every request
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	result, err := h.svc.GetResults(ctx)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Ballot storage unavailable, try again")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// Health handles GET /health
func (h *ResultsHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Service:   ServiceName,
		Timestamp: time.Now().UTC(),
	})
}
