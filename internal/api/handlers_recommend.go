// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

// RecordInteraction handles POST /api/v1/interactions.
// With a feed the interaction is published and acknowledged with 202;
// otherwise it is appended to the event log (when configured) and applied
// to the recommender, answering 201.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var in recommend.Interaction
	if err := h.decodeBody(w, r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		respondErr(w, r, err)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	if h.deps.Publisher != nil {
		published, err := h.deps.Publisher.Publish(ctx, in)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		respondData(w, http.StatusAccepted, InteractionResponse{Interaction: published, Queued: true}, start, false)
		return
	}

	stored := in
	if h.deps.Log != nil {
		appended, err := h.deps.Log.Append(ctx, in)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		stored = appended
	} else {
		if stored.ID == "" {
			stored.ID = uuid.New().String()
		}
		if stored.Timestamp.IsZero() {
			stored.Timestamp = h.now().UTC()
		}
	}

	if err := h.deps.Recommender.Record(&stored); err != nil {
		respondErr(w, r, err)
		return
	}

	logging.Ctx(ctx).Debug().
		Str("interaction_id", stored.ID).
		Str("user_id", stored.UserID).
		Str("type", string(stored.Type)).
		Msg("interaction recorded")

	respondData(w, http.StatusCreated, InteractionResponse{Interaction: stored}, start, false)
}

// Recommendations handles GET /api/v1/recommendations/{userID}.
// Query parameters: type (item type), mode, limit, exclude_seen.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := strings.TrimSpace(chi.URLParam(r, "userID"))
	query := r.URL.Query()
	itemType := strings.TrimSpace(query.Get("type"))

	mode, err := recommend.ParseMode(query.Get("mode"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	limit, err := getIntParam(r, "limit", 0)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	excludeSeen := false
	if raw := query.Get("exclude_seen"); raw != "" {
		excludeSeen, err = strconv.ParseBool(raw)
		if err != nil {
			respondErr(w, r, fmt.Errorf("%w: exclude_seen must be a boolean, got %q", recommend.ErrInvalidRequest, raw))
			return
		}
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	recs, err := h.deps.Recommender.Recommend(ctx, userID, itemType, recommend.Options{
		Mode:        mode,
		Limit:       limit,
		ExcludeSeen: excludeSeen,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if recs == nil {
		recs = []recommend.Recommendation{}
	}

	respondData(w, http.StatusOK, RecommendationsResponse{
		UserID:          userID,
		ItemType:        itemType,
		Mode:            mode,
		State:           h.deps.Recommender.UserState(userID),
		Recommendations: recs,
	}, start, false)
}

// TrainRecommender handles POST /api/v1/recommend/train.
// Manual triggers are throttled to one per configured interval.
func (h *Handler) TrainRecommender(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.trainLimiter.Allow() {
		w.Header().Set("Retry-After", strconv.Itoa(int(h.cfg.TrainInterval.Seconds())))
		respondErr(w, r, ErrTrainThrottled)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.deps.Recommender.Train(ctx)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	logging.Ctx(ctx).Info().
		Int("samples", result.Samples).
		Int("version", result.Version).
		Float64("rmse", result.RMSE).
		Bool("insufficient", result.Insufficient).
		Msg("manual training finished")

	respondData(w, http.StatusOK, result, start, false)
}

// RecommenderStats handles GET /api/v1/recommend/stats.
func (h *Handler) RecommenderStats(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.deps.Recommender.Stats(), time.Now(), false)
}
