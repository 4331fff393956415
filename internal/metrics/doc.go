// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are package-level promauto variables registered on the default
registry; packages record through the Record* helpers rather than touching
collectors directly.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8480/metrics

# Available Metrics

Scoring:
  - matching_scoring_duration_seconds (histogram, labels: strategy)
  - matching_scored_items_total (counter, labels: strategy)
  - matching_scoring_failures_total (counter, labels: strategy)

Similarity:
  - similarity_searches_total (counter, labels: metric, approximate)
  - similarity_search_duration_seconds (histogram, labels: metric)
  - similarity_candidates_scanned_total (counter)

Recommender:
  - recommend_requests_total, recommend_request_duration_seconds (labels: algorithm)
  - recommend_cold_start_fallbacks_total (labels: fallback)
  - recommend_interactions_recorded_total (labels: type)
  - recommend_tracked_users (gauge)
  - recommend_training_runs_total (labels: result), recommend_training_duration_seconds,
    recommend_training_rmse

Ranking, filtering and cache:
  - ranking_items_total (labels: diversified)
  - filtering_invalid_criteria_total
  - cache_hits_total, cache_misses_total, cache_shared_computations_total (labels: cache)
  - cache_evictions_total (labels: cache, reason)

API, feed and resilience:
  - api_requests_total (labels: method, endpoint, status_code)
  - api_request_duration_seconds (labels: method, endpoint)
  - feed_messages_total (labels: outcome), eventlog_appends_total
  - circuit_breaker_state (labels: name; 0=closed, 1=half-open, 2=open)
  - circuit_breaker_state_transitions_total (labels: name, from_state, to_state)
*/
package metrics
