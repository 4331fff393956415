// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/talentmatch/internal/matching"
)

// Score handles POST /api/v1/score.
// Scores one inline candidate against one inline job and returns the
// per-factor breakdown.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ScoreRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	if req.Preset == "" && len(req.Weights) == 0 {
		req.Preset = h.cfg.DefaultPreset
	}
	weights, preset, err := matching.ResolveWeights(req.Preset, req.Weights)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	breakdown, err := h.deps.Scorer.Score(req.Candidate, req.Job, matching.ScoreOptions{
		Weights:  weights,
		Strategy: req.Strategy,
		Now:      h.now(),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondData(w, http.StatusOK, ScoreResponse{
		CandidateID: req.Candidate.ID,
		JobID:       req.Job.ID,
		Preset:      preset,
		Breakdown:   breakdown,
	}, start, false)
}

// Presets handles GET /api/v1/presets.
func (h *Handler) Presets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	names := matching.PresetNames()
	presets := make([]PresetInfo, 0, len(names))
	for _, name := range names {
		weights, err := matching.Preset(name)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		info := PresetInfo{Name: name, Weights: make(map[string]float64, len(weights))}
		for factor, weight := range weights {
			info.Weights[string(factor)] = weight
		}
		presets = append(presets, info)
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"default": h.cfg.DefaultPreset,
		"presets": presets,
	}, start, false)
}
