// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/talentmatch/internal/cache"
	"github.com/tomtom215/talentmatch/internal/feed"
	"github.com/tomtom215/talentmatch/internal/filtering"
	"github.com/tomtom215/talentmatch/internal/matching"
	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/pipeline"
	"github.com/tomtom215/talentmatch/internal/profiles"
	"github.com/tomtom215/talentmatch/internal/ranking"
	"github.com/tomtom215/talentmatch/internal/recommend"
	"github.com/tomtom215/talentmatch/internal/similarity"
)

// Matcher runs the end-to-end match pipeline.
type Matcher interface {
	MatchCandidates(ctx context.Context, req pipeline.MatchRequest) (*pipeline.MatchResponse, bool, error)
	MatchJobs(ctx context.Context, req pipeline.MatchRequest) (*pipeline.MatchResponse, bool, error)
	Invalidate()
	CacheStats() (cache.Stats, bool)
}

// Recommender is the recommender surface used by the handlers.
type Recommender interface {
	Record(in *recommend.Interaction) error
	Recommend(ctx context.Context, userID, itemType string, opts recommend.Options) ([]recommend.Recommendation, error)
	Train(ctx context.Context) (*recommend.TrainingResult, error)
	UserState(userID string) recommend.UserStateInfo
	Stats() recommend.Stats
}

// Publisher sends interactions to the feed.
type Publisher interface {
	Publish(ctx context.Context, in recommend.Interaction) (recommend.Interaction, error)
}

// ProfileCounter reports stored profile counts for the health endpoint.
type ProfileCounter interface {
	Counts() (candidates, jobs int)
}

// BreakerState reports the profile circuit breaker state.
type BreakerState interface {
	State() string
}

// Deps holds the components served by the API. Publisher, Log, Counter and
// Breaker are optional.
type Deps struct {
	Scorer      *matching.Engine
	Searcher    *similarity.Searcher
	Recommender Recommender
	Ranker      *ranking.Engine
	Pages       *filtering.Pipeline
	Matcher     Matcher
	Profiles    profiles.Store

	// Publisher, when set, receives interactions instead of the recommender.
	Publisher Publisher

	// Log persists interactions recorded directly (feed disabled).
	Log feed.Appender

	Counter ProfileCounter
	Breaker BreakerState
}

// HandlerConfig tunes request handling.
type HandlerConfig struct {
	// MaxBodyBytes bounds JSON request bodies.
	MaxBodyBytes int64

	// RequestTimeout bounds each handler's work.
	RequestTimeout time.Duration

	// TrainInterval is the minimum spacing of manual training triggers.
	TrainInterval time.Duration

	// Version is reported by the health endpoint.
	Version string

	// DefaultPreset is reported by the presets endpoint.
	DefaultPreset string
}

// DefaultHandlerConfig returns 4 MiB bodies, 30s timeout and one manual
// training trigger per minute.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		MaxBodyBytes:   4 << 20,
		RequestTimeout: 30 * time.Second,
		TrainInterval:  time.Minute,
		Version:        "dev",
		DefaultPreset:  matching.PresetBalanced,
	}
}

// Handler serves the TalentMatch HTTP API.
type Handler struct {
	deps         Deps
	cfg          HandlerConfig
	trainLimiter *rate.Limiter
	startTime    time.Time
	now          func() time.Time
}

// NewHandler creates a Handler. Zero config fields use DefaultHandlerConfig.
func NewHandler(deps Deps, cfg HandlerConfig) *Handler {
	def := DefaultHandlerConfig()
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.TrainInterval <= 0 {
		cfg.TrainInterval = def.TrainInterval
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.DefaultPreset == "" {
		cfg.DefaultPreset = def.DefaultPreset
	}
	return &Handler{
		deps:         deps,
		cfg:          cfg,
		trainLimiter: rate.NewLimiter(rate.Every(cfg.TrainInterval), 1),
		startTime:    time.Now(),
		now:          time.Now,
	}
}

// withTimeout bounds handler work by the configured request timeout.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.cfg.RequestTimeout)
}

// matchResultsOrEmpty keeps JSON arrays non-null.
func matchResultsOrEmpty(items []models.MatchResult) []models.MatchResult {
	if items == nil {
		return []models.MatchResult{}
	}
	return items
}
