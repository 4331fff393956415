// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package pipeline

import (
	"errors"
	"fmt"

	"github.com/tomtom215/talentmatch/internal/filtering"
	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/ranking"
)

// ErrInvalidRequest is wrapped by request validation failures.
var ErrInvalidRequest = errors.New("invalid match request")

// ValidationError identifies the request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// MaxPoolSize bounds the number of profiles scored per request.
const MaxPoolSize = 1000

// MatchRequest asks for the best matches of one subject against a pool.
// MatchCandidates reads JobID and CandidateIDs; MatchJobs reads CandidateID
// and JobIDs. An empty pool means every stored profile of that kind when the
// service has a Lister.
type MatchRequest struct {
	JobID        string   `json:"job_id,omitempty"`
	CandidateID  string   `json:"candidate_id,omitempty"`
	CandidateIDs []string `json:"candidate_ids,omitempty" validate:"omitempty,max=1000,dive,required"`
	JobIDs       []string `json:"job_ids,omitempty" validate:"omitempty,max=1000,dive,required"`

	// Preset names a weight preset; Weights overrides it when non-empty.
	Preset  string             `json:"preset,omitempty"`
	Weights map[string]float64 `json:"weights,omitempty" validate:"omitempty,dive,finite"`

	// Strategy labels the scoring breakdown.
	Strategy string `json:"strategy,omitempty" validate:"omitempty,max=64"`

	Ranking ranking.Criteria   `json:"ranking" validate:"-"`
	Filters *filtering.Filters `json:"filters,omitempty" validate:"-"`
	Sort    *filtering.Sort    `json:"sort,omitempty" validate:"-"`
	Page    filtering.Page     `json:"page" validate:"-"`

	// BlendUserID blends that user's recommendations into the ranking as
	// per-item boosts.
	BlendUserID string `json:"blend_user_id,omitempty"`
}

// MatchResponse is one page of ranked matches.
type MatchResponse struct {
	SubjectID   string               `json:"subject_id"`
	SubjectType string               `json:"subject_type"`
	Preset      string               `json:"preset"`
	Items       []models.MatchResult `json:"items"`
	TotalItems  int                  `json:"total_items"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	HasMore     bool                 `json:"has_more"`
	SortKey     string               `json:"sort_key"`
	SortOrder   string               `json:"sort_order"`
	Ranking     ranking.Metadata     `json:"ranking"`
	Blended     int                  `json:"blended"`
	Errors      []models.ItemError   `json:"errors,omitempty"`
}
