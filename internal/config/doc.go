// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package config loads TalentMatch configuration with koanf v2.

# Configuration Sources

Sources are layered, later ones winning:
  - Built-in defaults (structs provider over defaultConfig)
  - Optional YAML file: CONFIG_PATH, else config.yaml, config.yml,
    /etc/talentmatch/config.yaml, /etc/talentmatch/config.yml
  - Environment variables listed in envMappings; anything else is ignored

Durations use Go syntax ("30s", "2160h"). CORS_ORIGINS is comma-separated.

# Sections

	server      HTTP_HOST, HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT,
	            HTTP_IDLE_TIMEOUT, REQUEST_TIMEOUT, SHUTDOWN_TIMEOUT, MAX_BODY_BYTES
	security    CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
	            DISABLE_RATE_LIMIT, MANUAL_TRAIN_INTERVAL
	logging     LOG_LEVEL, LOG_FORMAT, LOG_CALLER
	matching    MATCHING_DEFAULT_PRESET, MATCHING_WORKERS
	similarity  SIMILARITY_DEFAULT_METRIC, SIMILARITY_NORMALIZE,
	            SIMILARITY_APPROXIMATE_THRESHOLD, SIMILARITY_SEED
	recommend   RECOMMEND_COLD_START_THRESHOLD (10), RECOMMEND_MIN_SAMPLES (100),
	            RECOMMEND_FACTORS, RECOMMEND_ITERATIONS, RECOMMEND_LEARNING_RATE,
	            RECOMMEND_TRAIN_INTERVAL, RECOMMEND_TRAIN_ON_STARTUP, ...
	ranking     RANKING_RECENCY_WINDOW (90 days), RANKING_DIVERSIFY_HEAD/MAX
	filtering   DEFAULT_PAGE_SIZE (20), MAX_PAGE_SIZE (100)
	cache       CACHE_ENABLED, CACHE_TTL, CACHE_MAX_ENTRIES, CACHE_CLEANUP_INTERVAL
	eventlog    EVENTLOG_ENABLED, EVENTLOG_PATH, EVENTLOG_IN_MEMORY, EVENTLOG_SYNC_WRITES
	feed        FEED_ENABLED, FEED_TOPIC, FEED_BUFFER_SIZE, FEED_MAX_ATTEMPTS, FEED_DEDUPE_TTL
	profiles    PROFILES_BREAKER_MAX_REQUESTS, PROFILES_BREAKER_INTERVAL,
	            PROFILES_BREAKER_TIMEOUT, PROFILES_BREAKER_MIN_REQUESTS,
	            PROFILES_BREAKER_FAILURE_RATIO

# Validation

Load fails when Validate does. Errors name the key, the constraint and the
offending value, for example:

	recommend.learning_rate must be in (0, 1], got 2
*/
package config
