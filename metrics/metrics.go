// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons used as the "reason" label
const (
	ReasonAlreadyVoted  = "already_voted"
	ReasonInvalidChoice = "invalid_choice"
	ReasonUnknownVoter  = "unknown_voter"
	ReasonStorage       = "storage_unavailable"
)

/*
VotingMetrics owns its own registry so several instances can coexist
(one per test) without colliding in the global default registry.

  - VotesCast: accepted ballots by choice
  - VotesRejected: refused casts by reason
  - StoreLatency: time spent in ballot store calls by operation
*/
type VotingMetrics struct {
	registry *prometheus.Registry

	VotesCast     *prometheus.CounterVec
	VotesRejected *prometheus.CounterVec
	StoreLatency  *prometheus.HistogramVec
}

func NewVotingMetrics(namespace string) *VotingMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &VotingMetrics{
		registry: reg,
		VotesCast: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_cast_total",
				Help:      "Total number of ballots accepted",
			},
			[]string{"choice"},
		),
		VotesRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "votes_rejected_total",
				Help:      "Total number of cast attempts refused",
			},
			[]string{"reason"},
		),
		StoreLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_seconds",
				Help:      "Histogram of ballot store call durations",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"operation"},
		),
	}
}

// ObserveStore records how long a store operation took since start
func (m *VotingMetrics) ObserveStore(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.StoreLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *VotingMetrics) VoteCast(choice string) {
	if m == nil {
		return
	}
	m.VotesCast.WithLabelValues(choice).Inc()
}

func (m *VotingMetrics) VoteRejected(reason string) {
	if m == nil {
		return
	}
	m.VotesRejected.WithLabelValues(reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *VotingMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
