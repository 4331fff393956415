// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package main is the entry point for the TalentMatch server.

TalentMatch scores candidates against jobs, searches profile embeddings,
recommends jobs and candidates from recorded interactions, and ranks,
filters and paginates the results over a JSON HTTP API.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("talentmatch")
	├── DataSupervisor ("data-layer")
	│   └── Recommendation trainer (periodic latent-factor training)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Interaction feed consumer (when FEED_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Profile store with a circuit breaker in front of it
 4. Event log: BadgerDB, replayed into the recommender
 5. Interaction feed: Watermill in-process pub/sub (optional)
 6. Scoring, similarity, ranking and filtering engines
 7. Match pipeline with its response cache
 8. Supervisor tree and HTTP server

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Common environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	MATCHING_DEFAULT_PRESET=balanced
	EVENTLOG_PATH=/data/eventlog
	FEED_ENABLED=false
	RECOMMEND_TRAIN_INTERVAL=1h

The config file is found at CONFIG_PATH, ./config.yaml or
/etc/talentmatch/config.yaml.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server gracefully, the feed drains, and the event log is closed last.
*/
package main
