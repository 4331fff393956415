// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package middleware provides HTTP middleware shared by the API router.

Key Components:

  - RequestID: request and correlation ID propagation for structured logging
  - PrometheusMetrics: request count and latency per route pattern

Both are chi-compatible (func(http.Handler) http.Handler) and are installed
globally by the api package:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

Request IDs:

An incoming X-Request-ID header is reused when it is a short printable token;
otherwise a UUID is generated. The ID is echoed in the response header and
stored in the request context, where logging.Ctx picks it up. An incoming
X-Correlation-ID is carried the same way so that a client can tie several
requests together; without one a fresh correlation ID is generated.

Metrics:

Requests are labelled with the chi route pattern (for example
/api/v1/jobs/{id}/matches) instead of the raw path, which keeps label
cardinality bounded by the number of routes. Requests that match no route
are labelled "unmatched".
*/
package middleware
