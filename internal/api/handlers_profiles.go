// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/pipeline"
)

// resolveID fills an empty body ID from the path and rejects a mismatch.
func resolveID(pathID string, bodyID *string) error {
	switch {
	case *bodyID == "":
		*bodyID = pathID
	case *bodyID != pathID:
		return fmt.Errorf("%w: path %q, body %q", ErrIDMismatch, pathID, *bodyID)
	}
	return nil
}

// PutCandidate handles PUT /api/v1/candidates/{id}.
// Creates or replaces a candidate profile and invalidates cached matches.
func (h *Handler) PutCandidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var profile models.CandidateProfile
	if err := h.decodeBody(w, r, &profile); err != nil {
		respondErr(w, r, err)
		return
	}
	if err := resolveID(chi.URLParam(r, "id"), &profile.ID); err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.deps.Profiles.UpsertCandidate(r.Context(), &profile); err != nil {
		respondErr(w, r, err)
		return
	}
	h.deps.Matcher.Invalidate()

	logging.Ctx(r.Context()).Info().Str("candidate_id", profile.ID).Msg("candidate profile stored")
	respondData(w, http.StatusOK, &profile, start, false)
}

// GetCandidate handles GET /api/v1/candidates/{id}.
func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	profile, err := h.deps.Profiles.GetCandidate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, http.StatusOK, profile, start, false)
}

// PutJob handles PUT /api/v1/jobs/{id}.
// Creates or replaces a job profile and invalidates cached matches.
func (h *Handler) PutJob(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var profile models.JobProfile
	if err := h.decodeBody(w, r, &profile); err != nil {
		respondErr(w, r, err)
		return
	}
	if err := resolveID(chi.URLParam(r, "id"), &profile.ID); err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.deps.Profiles.UpsertJob(r.Context(), &profile); err != nil {
		respondErr(w, r, err)
		return
	}
	h.deps.Matcher.Invalidate()

	logging.Ctx(r.Context()).Info().Str("job_id", profile.ID).Msg("job profile stored")
	respondData(w, http.StatusOK, &profile, start, false)
}

// GetJob handles GET /api/v1/jobs/{id}.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	profile, err := h.deps.Profiles.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, http.StatusOK, profile, start, false)
}

// decodeMatchRequest reads an optional match request body.
func (h *Handler) decodeMatchRequest(w http.ResponseWriter, r *http.Request) (pipeline.MatchRequest, error) {
	var req pipeline.MatchRequest
	if err := h.decodeBody(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		return req, err
	}
	return req, nil
}

// JobMatches handles POST /api/v1/jobs/{id}/matches.
// Ranks candidates for the job. The body is an optional match request; an
// empty candidate_ids list matches every stored candidate.
func (h *Handler) JobMatches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := h.decodeMatchRequest(w, r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := resolveID(chi.URLParam(r, "id"), &req.JobID); err != nil {
		respondErr(w, r, err)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	resp, cached, err := h.deps.Matcher.MatchCandidates(ctx, req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, http.StatusOK, resp, start, cached)
}

// CandidateMatches handles POST /api/v1/candidates/{id}/matches.
// Ranks jobs for the candidate; the mirror of JobMatches.
func (h *Handler) CandidateMatches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := h.decodeMatchRequest(w, r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := resolveID(chi.URLParam(r, "id"), &req.CandidateID); err != nil {
		respondErr(w, r, err)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	resp, cached, err := h.deps.Matcher.MatchJobs(ctx, req)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondData(w, http.StatusOK, resp, start, cached)
}
