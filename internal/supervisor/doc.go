// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package supervisor provides process supervision for TalentMatch using suture v4.

Every long-running service hangs off a three-layer tree so each layer restarts
independently:

	RootSupervisor ("talentmatch")
	├── DataSupervisor ("data-layer")
	│   └── TrainerService (periodic recommender training)
	├── MessagingSupervisor ("messaging-layer")
	│   └── FeedService (interaction feed consumer, if FEED_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (start, failure, backoff, restart) are logged through
sutureslog onto the slog adapter of the logging package.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewTrainerService(rec, trainerCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 15*time.Second))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

# Failure Handling

TreeConfig maps onto suture.Spec. Failures decay exponentially over
FailureDecay seconds; once the count exceeds FailureThreshold the layer waits
FailureBackoff before the next restart. Zero fields use suture's defaults
(5 failures, 30s decay, 15s backoff, 10s shutdown timeout).

Return behavior of a service:
  - error: restarted
  - suture.ErrDoNotRestart: removed from its layer
  - ctx.Err() after cancellation: normal shutdown

# What Is NOT Supervised

The event log is a library over BadgerDB, not a service. It is opened before
the tree starts and closed by main after the tree stops, so no consumer can
append to a closed log.
*/
package supervisor
