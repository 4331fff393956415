// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package services provides suture.Service wrappers for TalentMatch components.

Each wrapper turns a component's own lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so supervisor events name it:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server; ListenAndServe runs until the context ends
  - Shutdown drains connections within a configurable timeout

Trainer (TrainerService):
  - Retrains the collaborative recommender on a fixed interval
  - Optionally trains once at startup so replayed interactions are used
  - A run that finds training already in progress is skipped, not failed

Feed Consumer (FeedService):
  - Runs the interaction feed consumer until the context ends
  - A closed subscription stops the service permanently with
    suture.ErrDoNotRestart instead of restarting against a dead bus

# Layer Placement

	tree.AddDataService(services.NewTrainerService(rec, cfg, logger))
	tree.AddMessagingService(services.NewFeedService(consumer))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
*/
package services
