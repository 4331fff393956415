// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/talentmatch/internal/ranking"
)

// Rank handles POST /api/v1/rank.
// Ranks an inline list of match results, optionally restricted by filters.
func (h *Handler) Rank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RankRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	if err := req.Filters.Validate(); err != nil {
		respondErr(w, r, err)
		return
	}

	var predicate ranking.Predicate
	if req.Filters != nil {
		predicate = req.Filters.Match
	}

	res, err := h.deps.Ranker.Rank(req.Items, req.Criteria, predicate)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	res.Items = matchResultsOrEmpty(res.Items)

	respondData(w, http.StatusOK, res, start, false)
}

// Filter handles POST /api/v1/filter.
// Filters, sorts and paginates an inline list of match results.
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req FilterRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	res, err := h.deps.Pages.Apply(req.Items, req.Filters, req.Sort, req.Page)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	res.Items = matchResultsOrEmpty(res.Items)

	respondData(w, http.StatusOK, res, start, false)
}
