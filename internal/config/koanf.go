// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/talentmatch/config.yaml",
	"/etc/talentmatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, overridden by the config file
// and then by environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			MaxBodyBytes:    4 << 20,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{},
			RateLimitReqs:     600,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			TrainInterval:     time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Matching: MatchingConfig{
			DefaultPreset: "balanced",
			Workers:       0, // 0 = use runtime.NumCPU()
		},
		Similarity: SimilarityConfig{
			DefaultMetric:        "cosine",
			Normalize:            true,
			ApproximateThreshold: 1000,
			Seed:                 0, // 0 = seed from the clock
		},
		Recommend: RecommendConfig{
			ColdStartThreshold:  10,
			SimilarityThreshold: 0.1,
			Neighbors:           50,
			Factors:             16,
			Iterations:          30,
			LearningRate:        0.01,
			Regularization:      0.02,
			MinSamples:          100,
			Shards:              16,
			Seed:                42,
			TrainInterval:       time.Hour,
			TrainOnStartup:      true,
		},
		Ranking: RankingConfig{
			RecencyWindow: 90 * 24 * time.Hour,
			DiversifyHead: 10,
			DiversifyMax:  20,
		},
		Filtering: FilteringConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             5 * time.Minute,
			MaxEntries:      1000,
			CleanupInterval: time.Minute,
		},
		EventLog: EventLogConfig{
			Enabled:    true,
			Path:       "/data/eventlog",
			InMemory:   false,
			SyncWrites: false,
		},
		Feed: FeedConfig{
			Enabled:     false, // Direct recording by default
			Topic:       "interactions",
			BufferSize:  256,
			MaxAttempts: 5,
			DedupeTTL:   10 * time.Minute,
		},
		Profiles: ProfilesConfig{
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
		},
	}
}

// Load loads configuration from defaults, an optional YAML file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns CONFIG_PATH if it exists, else the first existing
// default path, else "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when set from a single string.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to config keys.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_host":          "server.host",
	"http_port":          "server.port",
	"http_read_timeout":  "server.read_timeout",
	"http_write_timeout": "server.write_timeout",
	"http_idle_timeout":  "server.idle_timeout",
	"request_timeout":    "server.request_timeout",
	"shutdown_timeout":   "server.shutdown_timeout",
	"max_body_bytes":     "server.max_body_bytes",

	"cors_origins":          "security.cors_origins",
	"rate_limit_requests":   "security.rate_limit_reqs",
	"rate_limit_window":     "security.rate_limit_window",
	"disable_rate_limit":    "security.rate_limit_disabled",
	"manual_train_interval": "security.train_interval",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"matching_default_preset": "matching.default_preset",
	"matching_workers":        "matching.workers",

	"similarity_default_metric":        "similarity.default_metric",
	"similarity_normalize":             "similarity.normalize",
	"similarity_approximate_threshold": "similarity.approximate_threshold",
	"similarity_seed":                  "similarity.seed",

	"recommend_cold_start_threshold": "recommend.cold_start_threshold",
	"recommend_similarity_threshold": "recommend.similarity_threshold",
	"recommend_neighbors":            "recommend.neighbors",
	"recommend_factors":              "recommend.factors",
	"recommend_iterations":           "recommend.iterations",
	"recommend_learning_rate":        "recommend.learning_rate",
	"recommend_regularization":       "recommend.regularization",
	"recommend_min_samples":          "recommend.min_samples",
	"recommend_shards":               "recommend.shards",
	"recommend_seed":                 "recommend.seed",
	"recommend_train_interval":       "recommend.train_interval",
	"recommend_train_on_startup":     "recommend.train_on_startup",

	"ranking_recency_window": "ranking.recency_window",
	"ranking_diversify_head": "ranking.diversify_head",
	"ranking_diversify_max":  "ranking.diversify_max",

	"default_page_size": "filtering.default_page_size",
	"max_page_size":     "filtering.max_page_size",

	"cache_enabled":          "cache.enabled",
	"cache_ttl":              "cache.ttl",
	"cache_max_entries":      "cache.max_entries",
	"cache_cleanup_interval": "cache.cleanup_interval",

	"eventlog_enabled":     "eventlog.enabled",
	"eventlog_path":        "eventlog.path",
	"eventlog_in_memory":   "eventlog.in_memory",
	"eventlog_sync_writes": "eventlog.sync_writes",

	"feed_enabled":      "feed.enabled",
	"feed_topic":        "feed.topic",
	"feed_buffer_size":  "feed.buffer_size",
	"feed_max_attempts": "feed.max_attempts",
	"feed_dedupe_ttl":   "feed.dedupe_ttl",

	"profiles_breaker_max_requests":  "profiles.breaker_max_requests",
	"profiles_breaker_interval":      "profiles.breaker_interval",
	"profiles_breaker_timeout":       "profiles.breaker_timeout",
	"profiles_breaker_min_requests":  "profiles.breaker_min_requests",
	"profiles_breaker_failure_ratio": "profiles.breaker_failure_ratio",
}

// envTransformFunc maps an environment variable to its config key, or ""
// to skip it.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
