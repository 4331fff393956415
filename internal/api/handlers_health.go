// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/talentmatch/internal/recommend"
)

// Health status values.
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status     string          `json:"status"`
	Version    string          `json:"version"`
	Uptime     float64         `json:"uptime_seconds"`
	Candidates int             `json:"candidates"`
	Jobs       int             `json:"jobs"`
	Breaker    string          `json:"profile_breaker,omitempty"`
	FeedMode   string          `json:"interaction_mode"`
	Recommend  recommend.Stats `json:"recommender"`
	Cache      *CacheHealth    `json:"cache,omitempty"`
}

// CacheHealth summarizes the match cache.
type CacheHealth struct {
	Keys      int64   `json:"keys"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Shared    int64   `json:"shared"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// Health handles GET /health.
// The service is degraded while the profile circuit breaker is open.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	health := HealthStatus{
		Status:    HealthHealthy,
		Version:   h.cfg.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
		FeedMode:  "direct",
		Recommend: h.deps.Recommender.Stats(),
	}
	if h.deps.Publisher != nil {
		health.FeedMode = "feed"
	}
	if h.deps.Counter != nil {
		health.Candidates, health.Jobs = h.deps.Counter.Counts()
	}
	if h.deps.Breaker != nil {
		health.Breaker = h.deps.Breaker.State()
		if health.Breaker == "open" {
			health.Status = HealthDegraded
		}
	}
	if stats, ok := h.deps.Matcher.CacheStats(); ok {
		ch := &CacheHealth{
			Keys:      stats.TotalKeys,
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Shared:    stats.Shared,
			Evictions: stats.Evictions,
		}
		if total := stats.Hits + stats.Misses; total > 0 {
			ch.HitRate = float64(stats.Hits) / float64(total)
		}
		health.Cache = ch
	}

	status := http.StatusOK
	if health.Status != HealthHealthy {
		status = http.StatusServiceUnavailable
	}
	respondData(w, status, health, start, false)
}
