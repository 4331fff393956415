// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package config

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tomtom215/talentmatch/internal/matching"
	"github.com/tomtom215/talentmatch/internal/similarity"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
		c.validateMatching,
		c.validateSimilarity,
		c.validateRecommend,
		c.validateRanking,
		c.validateFiltering,
		c.validateCache,
		c.validateEventLog,
		c.validateFeed,
		c.validateProfiles,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	s := c.Server
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port)
	}
	if err := positiveDurations(map[string]time.Duration{
		"server.read_timeout":     s.ReadTimeout,
		"server.write_timeout":    s.WriteTimeout,
		"server.request_timeout":  s.RequestTimeout,
		"server.shutdown_timeout": s.ShutdownTimeout,
	}); err != nil {
		return err
	}
	if s.MaxBodyBytes < 1 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", s.MaxBodyBytes)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := c.Security
	if s.RateLimitDisabled {
		return nil
	}
	if s.RateLimitReqs < 1 {
		return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", s.RateLimitReqs)
	}
	if s.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive, got %v", s.RateLimitWindow)
	}
	if s.TrainInterval < 0 {
		return fmt.Errorf("security.train_interval must be non-negative, got %v", s.TrainInterval)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateMatching() error {
	if _, err := matching.Preset(c.Matching.DefaultPreset); err != nil {
		return fmt.Errorf("matching.default_preset must be one of %v, got %q", matching.PresetNames(), c.Matching.DefaultPreset)
	}
	if c.Matching.Workers < 0 {
		return fmt.Errorf("matching.workers must be non-negative, got %d", c.Matching.Workers)
	}
	return nil
}

func (c *Config) validateSimilarity() error {
	if _, err := similarity.ParseMetric(c.Similarity.DefaultMetric); err != nil {
		return fmt.Errorf("similarity.default_metric must be cosine, euclidean, dot or manhattan, got %q", c.Similarity.DefaultMetric)
	}
	if c.Similarity.ApproximateThreshold < 0 {
		return fmt.Errorf("similarity.approximate_threshold must be non-negative, got %d", c.Similarity.ApproximateThreshold)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	switch {
	case r.ColdStartThreshold < 0:
		return fmt.Errorf("recommend.cold_start_threshold must be non-negative, got %d", r.ColdStartThreshold)
	case r.SimilarityThreshold < -1 || r.SimilarityThreshold > 1 || math.IsNaN(r.SimilarityThreshold):
		return fmt.Errorf("recommend.similarity_threshold must be in [-1, 1], got %v", r.SimilarityThreshold)
	case r.Neighbors < 1:
		return fmt.Errorf("recommend.neighbors must be positive, got %d", r.Neighbors)
	case r.Factors < 1:
		return fmt.Errorf("recommend.factors must be positive, got %d", r.Factors)
	case r.Iterations < 1:
		return fmt.Errorf("recommend.iterations must be positive, got %d", r.Iterations)
	case r.LearningRate <= 0 || r.LearningRate > 1:
		return fmt.Errorf("recommend.learning_rate must be in (0, 1], got %v", r.LearningRate)
	case r.Regularization < 0:
		return fmt.Errorf("recommend.regularization must be non-negative, got %v", r.Regularization)
	case r.MinSamples < 0:
		return fmt.Errorf("recommend.min_samples must be non-negative, got %d", r.MinSamples)
	case r.Shards < 1:
		return fmt.Errorf("recommend.shards must be positive, got %d", r.Shards)
	case r.TrainInterval <= 0:
		return fmt.Errorf("recommend.train_interval must be positive, got %v", r.TrainInterval)
	}
	return nil
}

func (c *Config) validateRanking() error {
	r := c.Ranking
	if r.RecencyWindow <= 0 {
		return fmt.Errorf("ranking.recency_window must be positive, got %v", r.RecencyWindow)
	}
	if r.DiversifyHead < 0 || r.DiversifyMax < 0 {
		return fmt.Errorf("ranking.diversify_head and ranking.diversify_max must be non-negative, got %d and %d", r.DiversifyHead, r.DiversifyMax)
	}
	return nil
}

func (c *Config) validateFiltering() error {
	f := c.Filtering
	if f.DefaultPageSize < 1 {
		return fmt.Errorf("filtering.default_page_size must be positive, got %d", f.DefaultPageSize)
	}
	if f.MaxPageSize < f.DefaultPageSize {
		return fmt.Errorf("filtering.max_page_size must be at least default_page_size (%d), got %d", f.DefaultPageSize, f.MaxPageSize)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
	}
	return nil
}

func (c *Config) validateEventLog() error {
	if c.EventLog.Enabled && !c.EventLog.InMemory && c.EventLog.Path == "" {
		return fmt.Errorf("eventlog.path is required unless eventlog.in_memory is set")
	}
	return nil
}

func (c *Config) validateFeed() error {
	if !c.Feed.Enabled {
		return nil
	}
	if c.Feed.Topic == "" {
		return fmt.Errorf("feed.topic is required when feed.enabled is set")
	}
	if c.Feed.BufferSize < 1 {
		return fmt.Errorf("feed.buffer_size must be positive, got %d", c.Feed.BufferSize)
	}
	if c.Feed.MaxAttempts < 1 {
		return fmt.Errorf("feed.max_attempts must be positive, got %d", c.Feed.MaxAttempts)
	}
	return nil
}

func (c *Config) validateProfiles() error {
	p := c.Profiles
	if p.BreakerFailureRatio <= 0 || p.BreakerFailureRatio > 1 {
		return fmt.Errorf("profiles.breaker_failure_ratio must be in (0, 1], got %v", p.BreakerFailureRatio)
	}
	if p.BreakerTimeout <= 0 {
		return fmt.Errorf("profiles.breaker_timeout must be positive, got %v", p.BreakerTimeout)
	}
	return nil
}

// positiveDurations reports the first non-positive duration in sorted key
// order.
func positiveDurations(durations map[string]time.Duration) error {
	keys := make([]string, 0, len(durations))
	for k := range durations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if durations[k] <= 0 {
			return fmt.Errorf("%s must be positive, got %v", k, durations[k])
		}
	}
	return nil
}
