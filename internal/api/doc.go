// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package api provides the HTTP surface of the matching service using the Chi
router.

Endpoints:

	GET  /health                               service status
	GET  /metrics                              Prometheus metrics
	POST /api/v1/score                         score one inline candidate/job pair
	GET  /api/v1/presets                       weight presets
	POST /api/v1/similarity/search             top-K vector search
	POST /api/v1/similarity/compare            pairwise vector similarity
	POST /api/v1/interactions                  record a user interaction
	GET  /api/v1/recommendations/{userID}      recommendations for a user
	POST /api/v1/recommend/train               trigger latent factor training
	GET  /api/v1/recommend/stats               recommender statistics
	POST /api/v1/rank                          rank inline match results
	POST /api/v1/filter                        filter, sort and page inline results
	GET  /api/v1/candidates/{id}               read a candidate profile
	PUT  /api/v1/candidates/{id}               store a candidate profile
	POST /api/v1/candidates/{id}/matches       best jobs for a candidate
	GET  /api/v1/jobs/{id}                     read a job profile
	PUT  /api/v1/jobs/{id}                     store a job profile
	POST /api/v1/jobs/{id}/matches             best candidates for a job

Every response uses the models.APIResponse envelope. Input rejected by any
engine package is reported as 400 VALIDATION_ERROR with the offending field
in error.details.field; unknown profiles are 404 NOT_FOUND and an open
profile circuit breaker is 503 SERVICE_UNAVAILABLE.

Middleware:

Request and correlation IDs, panic recovery, CORS, Prometheus request
metrics and response compression apply globally. The /api/v1 group is rate
limited per client IP with httprate. Manual training triggers are further
throttled with a token bucket so that a client cannot keep the trainer busy.
*/
package api
