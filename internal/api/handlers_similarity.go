// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/talentmatch/internal/similarity"
)

// SimilaritySearch handles POST /api/v1/similarity/search.
func (h *Handler) SimilaritySearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SimilaritySearchRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	var metric similarity.Metric
	if req.Metric != "" {
		m, err := similarity.ParseMetric(req.Metric)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		metric = m
	}
	fusion := make([]similarity.MetricWeight, len(req.Fusion))
	for i, mw := range req.Fusion {
		m, err := similarity.ParseMetric(string(mw.Metric))
		if err != nil {
			respondErr(w, r, err)
			return
		}
		fusion[i] = similarity.MetricWeight{Metric: m, Weight: mw.Weight}
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	res, err := h.deps.Searcher.Search(ctx, &similarity.Query{
		Vector: req.Vector,
		Pool:   req.Pool,
		Options: similarity.Options{
			Metric:    metric,
			K:         req.K,
			Threshold: req.Threshold,
			Filter:    req.Filter,
		},
		Fusion:      fusion,
		Approximate: req.Approximate,
		Seed:        req.Seed,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if res.Results == nil {
		res.Results = []similarity.Result{}
	}

	respondData(w, http.StatusOK, res, start, false)
}

// SimilarityCompare handles POST /api/v1/similarity/compare.
func (h *Handler) SimilarityCompare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SimilarityCompareRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	metric := h.deps.Searcher.DefaultMetric()
	if req.Metric != "" {
		m, err := similarity.ParseMetric(req.Metric)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		metric = m
	}

	score, err := h.deps.Searcher.Compare(req.A, req.B, metric)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	respondData(w, http.StatusOK, SimilarityCompareResponse{
		Metric: string(metric),
		Score:  score,
	}, start, false)
}
