// Package metrics exposes Prometheus metrics for the matching engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/favron1/ev-ace-advisor/pkg/match"
)

// MatchMetrics collects indexing and matching outcomes.
type MatchMetrics struct {
	registry *prometheus.Registry

	// Resolution metrics
	ResolutionsTotal *prometheus.CounterVec

	// Index metrics
	RowsIndexed  *prometheus.CounterVec
	IndexBuckets *prometheus.GaugeVec
	FailedTeams  *prometheus.GaugeVec

	// Match metrics
	MatchesTotal    *prometheus.CounterVec
	MatchFailures   *prometheus.CounterVec
	TimeDiffHours   *prometheus.HistogramVec
	FuzzyConfidence *prometheus.HistogramVec

	// Cycle metrics
	CycleDuration *prometheus.HistogramVec
}

// NewMatchMetrics creates a collector with its own registry.
func NewMatchMetrics() *MatchMetrics {
	registry := prometheus.NewRegistry()

	m := &MatchMetrics{
		registry: registry,

		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matcher_resolutions_total",
				Help: "Team name resolutions by sport, tier, and outcome",
			},
			[]string{"sport", "tier", "outcome"},
		),
		RowsIndexed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matcher_rows_indexed_total",
				Help: "Bookmaker rows processed by the indexer",
			},
			[]string{"sport", "status"},
		),
		IndexBuckets: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "matcher_index_buckets",
				Help: "Buckets in the latest bookmaker index",
			},
			[]string{"sport"},
		),
		FailedTeams: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "matcher_unresolved_teams",
				Help: "Distinct unresolved team names in the latest indexing pass",
			},
			[]string{"sport"},
		),
		MatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matcher_matches_total",
				Help: "Successful market matches by method",
			},
			[]string{"sport", "method"},
		),
		MatchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matcher_match_failures_total",
				Help: "Failed market matches by reason",
			},
			[]string{"sport", "reason"},
		),
		TimeDiffHours: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "matcher_time_diff_hours",
				Help:    "Absolute time difference of winning candidates",
				Buckets: []float64{1, 3, 6, 12, 24, 36, 48},
			},
			[]string{"sport"},
		),
		FuzzyConfidence: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "matcher_fuzzy_confidence",
				Help:    "Confidence scores produced by the fuzzy matcher",
				Buckets: []float64{50, 60, 70, 75, 80, 85, 90, 95, 100},
			},
			[]string{"sport", "method"},
		),
		CycleDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "matcher_cycle_duration_seconds",
				Help:    "Duration of one index-and-match polling cycle",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"sport"},
		),
	}

	registry.MustRegister(
		m.ResolutionsTotal,
		m.RowsIndexed,
		m.IndexBuckets,
		m.FailedTeams,
		m.MatchesTotal,
		m.MatchFailures,
		m.TimeDiffHours,
		m.FuzzyConfidence,
		m.CycleDuration,
	)
	return m
}

// Handler returns the HTTP handler serving this collector's registry.
func (m *MatchMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordIndex records one indexing pass.
func (m *MatchMetrics) RecordIndex(sport string, stats match.IndexStats, buckets int) {
	m.RowsIndexed.WithLabelValues(sport, "indexed").Add(float64(stats.Indexed))
	m.RowsIndexed.WithLabelValues(sport, "failed").Add(float64(stats.Failed))
	m.IndexBuckets.WithLabelValues(sport).Set(float64(buckets))
	m.FailedTeams.WithLabelValues(sport).Set(float64(len(stats.FailedTeams)))
}

// RecordMatch records one market lookup outcome.
func (m *MatchMetrics) RecordMatch(sport string, res match.MatchResult) {
	if res.Matched() {
		m.MatchesTotal.WithLabelValues(sport, res.Method).Inc()
		m.TimeDiffHours.WithLabelValues(sport).Observe(res.Debug.TimeDiffHours)
		return
	}
	m.MatchFailures.WithLabelValues(sport, res.FailureReason).Inc()
}

// RecordFuzzy records one fuzzy match attempt.
func (m *MatchMetrics) RecordFuzzy(sport string, res match.FuzzyResult) {
	if res.Matched() {
		m.FuzzyConfidence.WithLabelValues(sport, res.Method).Observe(float64(res.Confidence))
	}
}
