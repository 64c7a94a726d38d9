// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/daily-ballot/cliparse"
	"github.com/danielhkuo/daily-ballot/handlers"
	"github.com/danielhkuo/daily-ballot/metrics"
	"github.com/danielhkuo/daily-ballot/middleware"
	"github.com/danielhkuo/daily-ballot/store"
	"github.com/danielhkuo/daily-ballot/voting"
)

// Banner is served at the root path
const Banner = "daily-ballot API v1"

func NewRouter(s store.Store, m *metrics.VotingMetrics, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	svc := voting.NewService(s,
		voting.WithLogger(slog.Default()),
		voting.WithMetrics(m),
	)

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(s, cfg)
	votingHandler := handlers.NewVotingHandler(svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", resultsHandler.Health)

	// Voter accounts
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("POST /sessions", middleware.WithLogging(voterHandler.Login))

	// Voting (requires X-Voter-Token)
	mux.HandleFunc("POST /votes", middleware.WithLogging(
		middleware.RequireVoter(cfg.VoterTokenSalt, votingHandler.CastVote)))
	mux.HandleFunc("GET /votes/today", middleware.WithLogging(
		middleware.RequireVoter(cfg.VoterTokenSalt, votingHandler.HasVotedToday)))

	// Results (public)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	return middleware.CORS(mux)
}
