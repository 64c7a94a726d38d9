// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVotingMetricsCounters(t *testing.T) {
	m := NewVotingMetrics("dailyballot")

	m.VoteCast("republican")
	m.VoteCast("republican")
	m.VoteCast("democrat")
	m.VoteRejected(ReasonAlreadyVoted)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VotesCast.WithLabelValues("republican")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VotesCast.WithLabelValues("democrat")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VotesRejected.WithLabelValues(ReasonAlreadyVoted)))
}

func TestVotingMetricsIndependentRegistries(t *testing.T) {
	// Two instances must not panic on duplicate registration
	a := NewVotingMetrics("dailyballot")
	b := NewVotingMetrics("dailyballot")

	a.VoteCast("democrat")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.VotesCast.WithLabelValues("democrat")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.VotesCast.WithLabelValues("democrat")))
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *VotingMetrics

	assert.NotPanics(t, func() {
		m.VoteCast("democrat")
		m.VoteRejected(ReasonStorage)
		m.ObserveStore("insert", time.Now())
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewVotingMetrics("dailyballot")
	m.VoteCast("democrat")
	m.ObserveStore("insert_if_absent", time.Now())

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `dailyballot_votes_cast_total{choice="democrat"} 1`)
	assert.Contains(t, w.Body.String(), "dailyballot_store_operation_seconds")
}
