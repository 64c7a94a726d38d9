// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /results", middleware.WithLogging(handler))

Logs method, path, client IP, status and duration_ms once the handler returns.

# Voter Authentication

RequireVoter checks the X-Voter-Token header and puts the voter ID in the
request context:

	mux.HandleFunc("POST /votes", middleware.RequireVoter(salt, h.CastVote))

	voterID, ok := middleware.VoterIDFromContext(r.Context())

Missing or forged tokens get 401 before the handler runs.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP.
*/
package middleware
