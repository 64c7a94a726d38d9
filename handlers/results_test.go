// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/daily-ballot/models"
	"github.com/danielhkuo/daily-ballot/testutil"
	"github.com/danielhkuo/daily-ballot/voting"
)

func TestGetResultsEmpty(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewResultsHandler(voting.NewService(s), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.GetResults(w, testutil.MakeRequest("GET", "/results", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.VotingResult
	testutil.AssertJSON(t, w, &result)
	assert.Equal(t, models.VotingResult{}, result)
}

func TestGetResults(t *testing.T) {
	s := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	svc := voting.NewService(s)
	handler := NewResultsHandler(svc, cfg)

	voters := map[string]models.Choice{
		"alice": models.ChoiceRepublican,
		"bob":   models.ChoiceDemocrat,
		"carol": models.ChoiceDemocrat,
	}
	for name, choice := range voters {
		voterID, _ := testutil.CreateTestVoter(t, s, cfg, name)
		_, err := svc.CastVote(t.Context(), voterID, choice)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	handler.GetResults(w, testutil.MakeRequest("GET", "/results", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.VotingResult
	testutil.AssertJSON(t, w, &result)
	assert.Equal(t, 1, result.RepublicanVotes)
	assert.Equal(t, 2, result.DemocratVotes)
	assert.Equal(t, 3, result.TotalVotes)
	assert.Equal(t, 33.3, result.RepublicanPercentage)
	assert.Equal(t, 66.7, result.DemocratPercentage)
}

func TestGetResultsStorageUnavailable(t *testing.T) {
	s := testutil.SetupTestStore(t)
	handler := NewResultsHandler(voting.NewService(s), testutil.GetTestConfig())
	require.NoError(t, s.Close())

	w := httptest.NewRecorder()
	handler.GetResults(w, testutil.MakeRequest("GET", "/results", nil, nil))

	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}

func TestHealth(t *testing.T) {
	handler := NewResultsHandler(nil, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.Health(w, testutil.MakeRequest("GET", "/health", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, ServiceName, resp.Service)
}
