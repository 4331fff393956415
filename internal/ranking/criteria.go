// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package ranking

import (
	"time"

	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/validation"
)

// Weights are the contributions of the overall score and selected breakdown
// components to the ranking score. They need not sum to 1.
type Weights struct {
	Overall        float64 `json:"overall" validate:"finite,gte=0"`
	Skills         float64 `json:"skills" validate:"finite,gte=0"`
	Experience     float64 `json:"experience" validate:"finite,gte=0"`
	Location       float64 `json:"location" validate:"finite,gte=0"`
	ResponseRate   float64 `json:"response_rate" validate:"finite,gte=0"`
	RecentActivity float64 `json:"recent_activity" validate:"finite,gte=0"`
}

// DefaultCandidateWeights are applied to candidate results.
func DefaultCandidateWeights() Weights {
	return Weights{
		Overall:        0.4,
		Skills:         0.2,
		Experience:     0.15,
		Location:       0.1,
		ResponseRate:   0.1,
		RecentActivity: 0.05,
	}
}

// DefaultJobWeights are applied to job results. Response rate is the
// employer's, and recent activity is the posting date.
func DefaultJobWeights() Weights {
	return Weights{
		Overall:        0.4,
		Skills:         0.2,
		Experience:     0.1,
		Location:       0.15,
		ResponseRate:   0.1,
		RecentActivity: 0.05,
	}
}

func (w Weights) sum() float64 {
	return w.Overall + w.Skills + w.Experience + w.Location + w.ResponseRate + w.RecentActivity
}

// Criteria configures one ranking call.
type Criteria struct {
	// Weights overrides the per-type default weights.
	Weights *Weights `json:"weights,omitempty" validate:"-"`

	// Keywords earn KeywordBonus each when found in an item's title,
	// keywords or skills.
	Keywords []string `json:"keywords,omitempty" validate:"omitempty,max=50,dive,required"`

	// Industries earn IndustryBonus once when any matches the item.
	Industries []string `json:"industries,omitempty" validate:"omitempty,max=50,dive,required"`

	// EducationLevels earn EducationBonus when the item's level is listed.
	EducationLevels []string `json:"education_levels,omitempty" validate:"omitempty,max=10,dive,required"`

	// Bonus points. Zero uses the engine default.
	KeywordBonus   float64 `json:"keyword_bonus,omitempty" validate:"finite,gte=0,lte=100"`
	IndustryBonus  float64 `json:"industry_bonus,omitempty" validate:"finite,gte=0,lte=100"`
	EducationBonus float64 `json:"education_bonus,omitempty" validate:"finite,gte=0,lte=100"`

	// Boosts are external per-item scores in [0,1], such as recommender
	// output, added as BoostWeight * boost.
	Boosts      map[string]float64 `json:"boosts,omitempty" validate:"omitempty,dive,finite,gte=0,lte=1"`
	BoostWeight float64            `json:"boost_weight,omitempty" validate:"finite,gte=0,lte=100"`

	// Diversify thins near-duplicates from the ranked list.
	Diversify bool `json:"diversify"`

	// Now is the reference time for recency. Zero means the current time.
	Now time.Time `json:"now,omitempty"`
}

// Validate checks criteria before use.
func (c *Criteria) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return &ValidationError{Field: verr.Field(), Reason: verr.Error()}
	}
	if c.Weights != nil {
		if verr := validation.ValidateStruct(c.Weights); verr != nil {
			return &ValidationError{Field: "weights." + verr.Field(), Reason: verr.Error()}
		}
		if c.Weights.sum() <= 0 {
			return &ValidationError{Field: "weights", Reason: "at least one weight must be positive"}
		}
	}
	return nil
}

// weightsFor returns the weights applied to an item of the given type.
func (c *Criteria) weightsFor(itemType string) Weights {
	if c.Weights != nil {
		return *c.Weights
	}
	if itemType == models.ResultTypeJob {
		return DefaultJobWeights()
	}
	return DefaultCandidateWeights()
}
