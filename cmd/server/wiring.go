// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package main

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/talentmatch/internal/api"
	"github.com/tomtom215/talentmatch/internal/config"
	"github.com/tomtom215/talentmatch/internal/eventlog"
	"github.com/tomtom215/talentmatch/internal/feed"
	"github.com/tomtom215/talentmatch/internal/filtering"
	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/matching"
	"github.com/tomtom215/talentmatch/internal/pipeline"
	"github.com/tomtom215/talentmatch/internal/profiles"
	"github.com/tomtom215/talentmatch/internal/ranking"
	"github.com/tomtom215/talentmatch/internal/recommend"
	"github.com/tomtom215/talentmatch/internal/recommend/algorithms"
	"github.com/tomtom215/talentmatch/internal/similarity"
	"github.com/tomtom215/talentmatch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func breakerConfig(cfg *config.Config) profiles.BreakerConfig {
	bc := profiles.DefaultBreakerConfig()
	bc.MaxRequests = cfg.Profiles.BreakerMaxRequests
	bc.Interval = cfg.Profiles.BreakerInterval
	bc.Timeout = cfg.Profiles.BreakerTimeout
	bc.MinRequests = cfg.Profiles.BreakerMinRequests
	bc.FailureRatio = cfg.Profiles.BreakerFailureRatio
	return bc
}

func recommendConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.ColdStartThreshold = cfg.Recommend.ColdStartThreshold
	rc.SimilarityThreshold = cfg.Recommend.SimilarityThreshold
	rc.Neighbors = cfg.Recommend.Neighbors
	rc.Training.Factors = cfg.Recommend.Factors
	rc.Training.Iterations = cfg.Recommend.Iterations
	rc.Training.LearningRate = cfg.Recommend.LearningRate
	rc.Training.Regularization = cfg.Recommend.Regularization
	rc.Training.MinSamples = cfg.Recommend.MinSamples
	rc.Shards = cfg.Recommend.Shards
	if cfg.Recommend.Seed != 0 {
		rc.Seed = cfg.Recommend.Seed
	}
	return rc
}

// initRecommender builds the recommender with its cold-start fallbacks and
// folds the persisted interactions back into it.
func initRecommender(ctx context.Context, cfg *config.Config, store *profiles.MemoryStore, log *eventlog.Log) (*recommend.Recommender, error) {
	rec, err := recommend.NewRecommender(recommendConfig(cfg),
		algorithms.NewContentBased(algorithms.ContentBasedConfig{Features: store.Features}),
		algorithms.NewPopularity(algorithms.PopularityConfig{}),
	)
	if err != nil {
		return nil, fmt.Errorf("create recommender: %w", err)
	}
	if log == nil {
		return rec, nil
	}

	history, err := log.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay event log: %w", err)
	}
	applied := rec.Rebuild(history)
	logging.Info().
		Int("replayed", len(history)).
		Int("applied", applied).
		Msg("Recommender rebuilt from event log")
	return rec, nil
}

func openEventLog(cfg *config.Config) (*eventlog.Log, error) {
	if !cfg.EventLog.Enabled {
		logging.Info().Msg("Event log disabled (EVENTLOG_ENABLED=false), interactions are not persisted")
		return nil, nil
	}
	log, err := eventlog.Open(eventlog.Config{
		Path:       cfg.EventLog.Path,
		InMemory:   cfg.EventLog.InMemory,
		SyncWrites: cfg.EventLog.SyncWrites,
	})
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	logging.Info().
		Str("path", cfg.EventLog.Path).
		Bool("in_memory", cfg.EventLog.InMemory).
		Int64("events", log.Count()).
		Msg("Event log opened")
	return log, nil
}

// feedComponents holds the interaction feed when it is enabled.
type feedComponents struct {
	bus       *gochannel.GoChannel
	publisher *feed.Publisher
	consumer  *feed.Consumer
}

func (f *feedComponents) close() {
	if f == nil {
		return
	}
	if err := f.publisher.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close feed publisher")
	}
	if err := f.bus.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close feed bus")
	}
	f.consumer.Close()
}

func initFeed(cfg *config.Config, log *eventlog.Log, rec *recommend.Recommender) *feedComponents {
	if !cfg.Feed.Enabled {
		logging.Info().Msg("Interaction feed disabled (FEED_ENABLED=false), recording directly")
		return nil
	}

	fc := feed.DefaultConfig()
	fc.Topic = cfg.Feed.Topic
	fc.BufferSize = cfg.Feed.BufferSize
	fc.MaxAttempts = cfg.Feed.MaxAttempts
	fc.DedupeTTL = cfg.Feed.DedupeTTL

	bus := feed.NewBus(fc)

	// A nil *eventlog.Log must not become a non-nil Appender.
	var appender feed.Appender
	if log != nil {
		appender = log
	}

	logging.Info().
		Str("topic", fc.Topic).
		Int64("buffer_size", fc.BufferSize).
		Bool("persisted", appender != nil).
		Msg("Interaction feed initialized")

	return &feedComponents{
		bus:       bus,
		publisher: feed.NewPublisher(bus, fc.Topic),
		consumer:  feed.NewConsumer(bus, fc, appender, rec),
	}
}

func buildPipeline(cfg *config.Config, provider profiles.Provider, store *profiles.MemoryStore, scorer *matching.Engine, ranker *ranking.Engine, pages *filtering.Pipeline, rec *recommend.Recommender) *pipeline.Service {
	pc := pipeline.DefaultConfig()
	pc.CacheEnabled = cfg.Cache.Enabled
	pc.CacheTTL = cfg.Cache.TTL
	pc.CacheMaxEntries = cfg.Cache.MaxEntries
	pc.CacheCleanupInterval = cfg.Cache.CleanupInterval
	pc.DefaultPreset = cfg.Matching.DefaultPreset

	return pipeline.NewService(pipeline.Deps{
		Profiles:    provider,
		Scorer:      scorer,
		Ranker:      ranker,
		Pages:       pages,
		Recommender: rec,
		Lister:      store,
	}, pc)
}

// engines are the stateless scoring components shared by the pipeline and
// the API.
type engines struct {
	scorer   *matching.Engine
	searcher *similarity.Searcher
	ranker   *ranking.Engine
	pages    *filtering.Pipeline
}

func buildEngines(cfg *config.Config) (*engines, error) {
	metric, err := similarity.ParseMetric(cfg.Similarity.DefaultMetric)
	if err != nil {
		return nil, err
	}
	return &engines{
		scorer: matching.NewEngine(matching.Config{Workers: cfg.Matching.Workers}),
		searcher: similarity.NewSearcher(similarity.Config{
			DefaultMetric:        metric,
			Normalize:            cfg.Similarity.Normalize,
			ApproximateThreshold: cfg.Similarity.ApproximateThreshold,
			Seed:                 cfg.Similarity.Seed,
		}),
		ranker: ranking.NewEngine(ranking.Config{
			RecencyWindow: cfg.Ranking.RecencyWindow,
			DiversifyHead: cfg.Ranking.DiversifyHead,
			DiversifyMax:  cfg.Ranking.DiversifyMax,
		}),
		pages: filtering.New(filtering.Config{
			DefaultLimit: cfg.Filtering.DefaultPageSize,
			MaxLimit:     cfg.Filtering.MaxPageSize,
		}),
	}, nil
}

func handlerConfig(cfg *config.Config) api.HandlerConfig {
	return api.HandlerConfig{
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RequestTimeout: cfg.Server.RequestTimeout,
		TrainInterval:  cfg.Security.TrainInterval,
		Version:        version,
		DefaultPreset:  cfg.Matching.DefaultPreset,
	}
}

func routerConfig(cfg *config.Config) api.RouterConfig {
	rc := api.DefaultRouterConfig()
	if len(cfg.Security.CORSOrigins) > 0 {
		rc.CORSAllowedOrigins = cfg.Security.CORSOrigins
	}
	rc.RateLimitRequests = cfg.Security.RateLimitReqs
	rc.RateLimitWindow = cfg.Security.RateLimitWindow
	rc.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return rc
}

func trainerConfig(cfg *config.Config) services.TrainerConfig {
	return services.TrainerConfig{
		TrainOnStartup: cfg.Recommend.TrainOnStartup,
		Interval:       cfg.Recommend.TrainInterval,
	}
}
