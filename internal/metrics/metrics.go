// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the matching service:
// - Scoring throughput and per-item failures
// - Similarity search volume and approximation
// - Recommender requests, cold starts, interactions and training
// - Ranking, filtering and the fingerprint cache
// - API endpoints and the profile circuit breaker

var (
	// Scoring Metrics
	ScoringDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matching_scoring_duration_seconds",
			Help:    "Duration of pool scoring batches in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"strategy"},
	)

	ScoredItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_scored_items_total",
			Help: "Total number of candidate/job pairs scored",
		},
		[]string{"strategy"},
	)

	ScoringFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_scoring_failures_total",
			Help: "Total number of batch items rejected as malformed",
		},
		[]string{"strategy"},
	)

	// Similarity Metrics
	SimilaritySearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_searches_total",
			Help: "Total number of top-K similarity searches",
		},
		[]string{"metric", "approximate"},
	)

	SimilaritySearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "similarity_search_duration_seconds",
			Help:    "Duration of top-K similarity searches in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"metric"},
	)

	SimilarityCandidatesScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "similarity_candidates_scanned_total",
			Help: "Total number of pool vectors scored across all searches",
		},
	)

	// Recommender Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by serving algorithm",
		},
		[]string{"algorithm"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"algorithm"},
	)

	ColdStartFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cold_start_fallbacks_total",
			Help: "Total number of cold-start requests by the fallback that served them",
		},
		[]string{"fallback"},
	)

	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_interactions_recorded_total",
			Help: "Total number of interactions folded into the matrix",
		},
		[]string{"type"},
	)

	TrackedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_tracked_users",
			Help: "Current number of users in the interaction matrix",
		},
	)

	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_training_runs_total",
			Help: "Total number of latent-factor training runs",
		},
		[]string{"result"}, // "trained", "insufficient_data", "error"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Latent-factor training duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	TrainingRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_training_rmse",
			Help: "Root mean squared error of the latest trained factor model",
		},
	)

	// Ranking and Filtering Metrics
	RankedItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_items_total",
			Help: "Total number of items passed through ranking",
		},
		[]string{"diversified"},
	)

	FilterRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filtering_invalid_criteria_total",
			Help: "Total number of filter/sort requests rejected by validation",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions",
		},
		[]string{"cache", "reason"}, // reason: "expired", "capacity", "invalidated"
	)

	CacheSharedComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_shared_computations_total",
			Help: "Total number of callers that joined an in-flight computation",
		},
		[]string{"cache"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	// Event Feed Metrics
	FeedMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_messages_total",
			Help: "Total number of interaction feed messages by outcome",
		},
		[]string{"outcome"}, // "published", "consumed", "malformed", "failed"
	)

	EventLogAppends = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eventlog_appends_total",
			Help: "Total number of interactions appended to the event log",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordScoring records one pool scoring batch.
func RecordScoring(strategy string, scored, failed int, duration time.Duration) {
	if strategy == "" {
		strategy = "unspecified"
	}
	ScoringDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	ScoredItemsTotal.WithLabelValues(strategy).Add(float64(scored))
	if failed > 0 {
		ScoringFailuresTotal.WithLabelValues(strategy).Add(float64(failed))
	}
}

// RecordSimilaritySearch records one top-K search.
func RecordSimilaritySearch(metric string, approximate bool, scanned int, duration time.Duration) {
	SimilaritySearchesTotal.WithLabelValues(metric, strconv.FormatBool(approximate)).Inc()
	SimilaritySearchDuration.WithLabelValues(metric).Observe(duration.Seconds())
	SimilarityCandidatesScanned.Add(float64(scanned))
}

// RecordRecommendation records a served recommendation request.
func RecordRecommendation(algorithm string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(algorithm).Inc()
	RecommendationDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordColdStart records which fallback served a cold-start request.
func RecordColdStart(fallback string) {
	ColdStartFallbacksTotal.WithLabelValues(fallback).Inc()
}

// RecordInteraction records an interaction folded into the matrix.
func RecordInteraction(interactionType string, trackedUsers int) {
	InteractionsRecorded.WithLabelValues(interactionType).Inc()
	TrackedUsers.Set(float64(trackedUsers))
}

// RecordTraining records a training run. rmse is ignored unless result is "trained".
func RecordTraining(result string, rmse float64, duration time.Duration) {
	TrainingRunsTotal.WithLabelValues(result).Inc()
	TrainingDuration.Observe(duration.Seconds())
	if result == "trained" {
		TrainingRMSE.Set(rmse)
	}
}

// RecordRanking records a ranking pass.
func RecordRanking(items int, diversified bool) {
	RankedItemsTotal.WithLabelValues(strconv.FormatBool(diversified)).Add(float64(items))
}

// RecordFilterRejection records a filter/sort request rejected by validation.
func RecordFilterRejection() {
	FilterRejectionsTotal.Inc()
}

// RecordCacheHit records a cache hit.
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordCacheEviction records an evicted entry.
func RecordCacheEviction(cache, reason string) {
	CacheEvictions.WithLabelValues(cache, reason).Inc()
}

// RecordCacheShared records a caller that waited on another caller's computation.
func RecordCacheShared(cache string) {
	CacheSharedComputations.WithLabelValues(cache).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordFeedMessage records the outcome of a feed message.
func RecordFeedMessage(outcome string) {
	FeedMessagesTotal.WithLabelValues(outcome).Inc()
}

// RecordEventLogAppend records an event log append.
func RecordEventLogAppend() {
	EventLogAppends.Inc()
}

// RecordCircuitBreakerTransition records a breaker state change.
// States are gobreaker state names: "closed", "half-open", "open".
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
