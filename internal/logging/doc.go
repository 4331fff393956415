// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

// Package logging wraps zerolog behind one global logger for the matching
// service.
//
// cmd/server configures it once from the logging config section; every entry
// then carries the service name and build version. Until Init runs, entries
// go to stderr as JSON at info level.
//
//	logging.Init(logging.Config{
//	    Level:   cfg.Logging.Level,
//	    Format:  cfg.Logging.Format,
//	    Service: "talentmatch",
//	    Version: version,
//	})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server service added")
//	logging.Error().Err(err).Msg("Failed to close event log")
//
// An unknown level is not fatal: Init falls back to info and logs a warning.
//
// # Component Loggers
//
// Long-lived services create a component logger once and keep it:
//
//	logger := logging.WithComponent("recommend")
//	logger.Info().Int("users", n).Msg("Replayed interactions")
//
// # Context Propagation
//
// The HTTP middleware stores a request ID in the request context and the
// interaction feed stores a correlation ID in message metadata. Ctx(ctx)
// returns a logger carrying both:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Rejected filter criteria")
//
// # Adapters
//
// Two adapters bridge libraries with their own logging interfaces:
//
//   - NewSlogLogger returns an *slog.Logger for sutureslog supervisor events
//   - NewWatermillAdapter returns a watermill.LoggerAdapter for the interaction feed
//
// # Testing
//
// Packages that assert on log output build their own zerolog logger over a
// buffer and pass it in, as the trainer service and HTTP service tests do:
//
//	var buf bytes.Buffer
//	svc := services.NewHTTPServerService(srv, time.Second).WithLogger(zerolog.New(&buf))
package logging
