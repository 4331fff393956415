// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/talentmatch/internal/api"
	"github.com/tomtom215/talentmatch/internal/config"
	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/profiles"
	"github.com/tomtom215/talentmatch/internal/supervisor"
	"github.com/tomtom215/talentmatch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "talentmatch",
		Version:   version,
	})

	logging.Info().Msg("Starting TalentMatch")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === DATA LAYER ===

	store := profiles.NewMemoryStore()
	breaker := profiles.NewBreakerProvider(store, breakerConfig(cfg))

	eventLog, err := openEventLog(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open event log")
	}
	defer func() {
		if eventLog == nil {
			return
		}
		if err := eventLog.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close event log")
		}
	}()

	rec, err := initRecommender(ctx, cfg, store, eventLog)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommender")
	}

	feedParts := initFeed(cfg, eventLog, rec)
	defer feedParts.close()

	eng, err := buildEngines(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize engines")
	}

	matcher := buildPipeline(cfg, breaker, store, eng.scorer, eng.ranker, eng.pages, rec)
	defer matcher.Close()

	// === API ===

	deps := api.Deps{
		Scorer:      eng.scorer,
		Searcher:    eng.searcher,
		Recommender: rec,
		Ranker:      eng.ranker,
		Pages:       eng.pages,
		Matcher:     matcher,
		Profiles:    store,
		Counter:     store,
		Breaker:     breaker,
	}
	if eventLog != nil {
		deps.Log = eventLog
	}
	if feedParts != nil {
		deps.Publisher = feedParts.publisher
	}
	handler := api.NewHandler(deps, handlerConfig(cfg))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, routerConfig(cfg)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// === SUPERVISOR TREE ===

	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewTrainerService(rec, trainerConfig(cfg), logging.WithComponent("trainer")))
	logging.Info().
		Dur("interval", cfg.Recommend.TrainInterval).
		Bool("train_on_startup", cfg.Recommend.TrainOnStartup).
		Msg("Recommendation trainer added to supervisor tree")

	if feedParts != nil {
		tree.AddMessagingService(services.NewFeedService(feedParts.consumer))
		logging.Info().Msg("Feed consumer added to supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).
		WithLogger(logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	// The channel receives exactly one result and is never closed.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
		cancel()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
