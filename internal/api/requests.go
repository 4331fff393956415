// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/talentmatch/internal/filtering"
	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/ranking"
	"github.com/tomtom215/talentmatch/internal/recommend"
	"github.com/tomtom215/talentmatch/internal/similarity"
	"github.com/tomtom215/talentmatch/internal/validation"
)

// ScoreRequest scores one inline candidate against one inline job.
type ScoreRequest struct {
	Candidate *models.CandidateProfile `json:"candidate" validate:"required"`
	Job       *models.JobProfile       `json:"job" validate:"required"`
	Preset    string                   `json:"preset,omitempty" validate:"omitempty,max=64"`
	Weights   map[string]float64       `json:"weights,omitempty" validate:"omitempty,dive,finite"`
	Strategy  string                   `json:"strategy,omitempty" validate:"omitempty,max=64"`
}

// ScoreResponse is a score breakdown with the resolved preset name.
type ScoreResponse struct {
	CandidateID string                 `json:"candidate_id"`
	JobID       string                 `json:"job_id"`
	Preset      string                 `json:"preset"`
	Breakdown   *models.ScoreBreakdown `json:"breakdown"`
}

// PresetInfo describes one weight preset.
type PresetInfo struct {
	Name    string             `json:"name"`
	Weights map[string]float64 `json:"weights"`
}

// SimilaritySearchRequest is a top-K search over an inline pool.
type SimilaritySearchRequest struct {
	Vector      similarity.Vector         `json:"vector" validate:"required,min=1,dive,finite"`
	Pool        []similarity.Record       `json:"pool" validate:"max=100000,dive"`
	Metric      string                    `json:"metric,omitempty"`
	Fusion      []similarity.MetricWeight `json:"fusion,omitempty" validate:"omitempty,max=4,dive"`
	K           int                       `json:"k,omitempty" validate:"gte=0,lte=1000"`
	Threshold   float64                   `json:"threshold,omitempty" validate:"finite,gte=0,lte=1"`
	Filter      similarity.Filter         `json:"filter,omitempty" validate:"-"`
	Approximate bool                      `json:"approximate,omitempty"`
	Seed        *int64                    `json:"seed,omitempty"`
}

// SimilarityCompareRequest compares two vectors.
type SimilarityCompareRequest struct {
	A      similarity.Vector `json:"a" validate:"required,min=1"`
	B      similarity.Vector `json:"b" validate:"required,min=1"`
	Metric string            `json:"metric,omitempty"`
}

// SimilarityCompareResponse is the score of one comparison.
type SimilarityCompareResponse struct {
	Metric string  `json:"metric"`
	Score  float64 `json:"score"`
}

// InteractionResponse acknowledges a recorded or published interaction.
type InteractionResponse struct {
	Interaction recommend.Interaction `json:"interaction"`
	Queued      bool                  `json:"queued"`
}

// RecommendationsResponse lists recommendations with the user's state.
type RecommendationsResponse struct {
	UserID          string                     `json:"user_id"`
	ItemType        string                     `json:"item_type,omitempty"`
	Mode            recommend.Mode             `json:"mode"`
	State           recommend.UserStateInfo    `json:"state"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// RankRequest ranks an inline list of match results.
type RankRequest struct {
	Items    []models.MatchResult `json:"items" validate:"max=10000"`
	Criteria ranking.Criteria     `json:"criteria" validate:"-"`
	Filters  *filtering.Filters   `json:"filters,omitempty" validate:"-"`
}

// FilterRequest filters, sorts and paginates an inline list of match results.
type FilterRequest struct {
	Items   []models.MatchResult `json:"items" validate:"max=10000"`
	Filters *filtering.Filters   `json:"filters,omitempty" validate:"-"`
	Sort    *filtering.Sort      `json:"sort,omitempty" validate:"-"`
	Page    filtering.Page       `json:"page" validate:"-"`
}

// errEmptyBody marks a request without a body.
var errEmptyBody = fmt.Errorf("%w: body is empty", ErrBadBody)

// decodeJSON reads a bounded JSON body into dst and validates its struct tags.
// Unknown fields are rejected.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := h.decodeBody(w, r, dst); err != nil {
		return err
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}

// decodeBody reads a bounded JSON body into dst without validating it.
// An empty body returns errEmptyBody.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: body must contain a single JSON value", ErrBadBody)
	}
	return nil
}

// getIntParam extracts an integer query parameter with a default value.
// Malformed values are rejected rather than silently defaulted.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %s must be an integer, got %q", recommend.ErrInvalidRequest, key, value)
	}
	return n, nil
}
