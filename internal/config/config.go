// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: defaultConfig()
//  2. Config File: optional YAML (config.yaml, or CONFIG_PATH)
//  3. Environment Variables: the explicit mapping in envTransformFunc
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Matching   MatchingConfig   `koanf:"matching"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Ranking    RankingConfig    `koanf:"ranking"`
	Filtering  FilteringConfig  `koanf:"filtering"`
	Cache      CacheConfig      `koanf:"cache"`
	EventLog   EventLogConfig   `koanf:"eventlog"`
	Feed       FeedConfig       `koanf:"feed"`
	Profiles   ProfilesConfig   `koanf:"profiles"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// ReadTimeout and WriteTimeout bound a single request on the wire.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RequestTimeout bounds handler work such as pool scoring.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// ShutdownTimeout bounds connection draining on shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// TrainInterval is the minimum spacing of manual training triggers.
	TrainInterval time.Duration `koanf:"train_interval"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// MatchingConfig configures the score engine.
type MatchingConfig struct {
	// DefaultPreset applies to requests that name neither preset nor weights.
	DefaultPreset string `koanf:"default_preset"`

	// Workers bounds concurrent pool scoring. Zero uses runtime.NumCPU().
	Workers int `koanf:"workers"`
}

// SimilarityConfig configures vector search.
type SimilarityConfig struct {
	DefaultMetric        string `koanf:"default_metric"`
	Normalize            bool   `koanf:"normalize"`
	ApproximateThreshold int    `koanf:"approximate_threshold"`
	Seed                 int64  `koanf:"seed"`
}

// RecommendConfig configures the collaborative recommender and its trainer.
type RecommendConfig struct {
	ColdStartThreshold  int     `koanf:"cold_start_threshold"`
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
	Neighbors           int     `koanf:"neighbors"`
	Factors             int     `koanf:"factors"`
	Iterations          int     `koanf:"iterations"`
	LearningRate        float64 `koanf:"learning_rate"`
	Regularization      float64 `koanf:"regularization"`
	MinSamples          int     `koanf:"min_samples"`
	Shards              int     `koanf:"shards"`
	Seed                int64   `koanf:"seed"`

	// TrainInterval is the period of scheduled training.
	TrainInterval  time.Duration `koanf:"train_interval"`
	TrainOnStartup bool          `koanf:"train_on_startup"`
}

// RankingConfig configures the ranking engine.
type RankingConfig struct {
	RecencyWindow time.Duration `koanf:"recency_window"`
	DiversifyHead int           `koanf:"diversify_head"`
	DiversifyMax  int           `koanf:"diversify_max"`
}

// FilteringConfig holds pagination limits.
type FilteringConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// CacheConfig configures the match result cache.
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	TTL             time.Duration `koanf:"ttl"`
	MaxEntries      int           `koanf:"max_entries"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// EventLogConfig configures the BadgerDB interaction log.
type EventLogConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// FeedConfig configures the in-process interaction feed.
type FeedConfig struct {
	Enabled     bool          `koanf:"enabled"`
	Topic       string        `koanf:"topic"`
	BufferSize  int64         `koanf:"buffer_size"`
	MaxAttempts int           `koanf:"max_attempts"`
	DedupeTTL   time.Duration `koanf:"dedupe_ttl"`
}

// ProfilesConfig configures the circuit breaker around profile reads.
type ProfilesConfig struct {
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
}
