// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package middleware

import (
	"context"
	"net/http"

	"github.com/tomtom215/talentmatch/internal/logging"
)

// Header names for request tracing.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// maxIDLength bounds client-supplied IDs before they reach logs.
const maxIDLength = 128

// RequestID assigns a request ID and a correlation ID to every request,
// echoes both in the response headers and stores them in the request
// context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if !validID(requestID) {
			requestID = logging.GenerateRequestID()
		}
		correlationID := r.Header.Get(HeaderCorrelationID)
		if !validID(correlationID) {
			correlationID = logging.GenerateCorrelationID()
		}

		w.Header().Set(HeaderRequestID, requestID)
		w.Header().Set(HeaderCorrelationID, correlationID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.ContextWithCorrelationID(ctx, correlationID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}

// validID accepts non-empty IDs of printable ASCII without spaces.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= 0x20 || id[i] >= 0x7F {
			return false
		}
	}
	return true
}
