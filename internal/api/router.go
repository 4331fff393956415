// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/talentmatch/internal/middleware"
)

// RouterConfig holds CORS and rate limiting settings.
type RouterConfig struct {
	// CORS configuration
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	// Rate limiting configuration
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// DefaultRouterConfig returns a secure default configuration.
// CORS origins default to empty, requiring explicit configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CORSAllowedOrigins:   []string{},
		CORSAllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type", "Authorization", middleware.HeaderRequestID, middleware.HeaderCorrelationID},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,

		RateLimitRequests: 600,
		RateLimitWindow:   time.Minute,
	}
}

// rateLimit returns an IP-keyed httprate limiter that answers with the
// standard error envelope, or a no-op when disabled.
func (c RouterConfig) rateLimit() func(http.Handler) http.Handler {
	if c.RateLimitDisabled || c.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.Limit(
		c.RateLimitRequests,
		c.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded", nil, nil)
		}),
	)
}

// NewRouter configures all HTTP routes using Chi router.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   cfg.CORSAllowedMethods,
		AllowedHeaders:   cfg.CORSAllowedHeaders,
		ExposedHeaders:   []string{middleware.HeaderRequestID, middleware.HeaderCorrelationID},
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           cfg.CORSMaxAge,
	}))
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil, nil)
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cfg.rateLimit())

		r.Post("/score", h.Score)
		r.Get("/presets", h.Presets)

		r.Post("/similarity/search", h.SimilaritySearch)
		r.Post("/similarity/compare", h.SimilarityCompare)

		r.Post("/interactions", h.RecordInteraction)
		r.Get("/recommendations/{userID}", h.Recommendations)
		r.Post("/recommend/train", h.TrainRecommender)
		r.Get("/recommend/stats", h.RecommenderStats)

		r.Post("/rank", h.Rank)
		r.Post("/filter", h.Filter)

		r.Route("/candidates/{id}", func(r chi.Router) {
			r.Get("/", h.GetCandidate)
			r.Put("/", h.PutCandidate)
			r.Post("/matches", h.CandidateMatches)
		})
		r.Route("/jobs/{id}", func(r chi.Router) {
			r.Get("/", h.GetJob)
			r.Put("/", h.PutJob)
			r.Post("/matches", h.JobMatches)
		})
	})

	return r
}
