// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package models

import (
	"strings"
	"time"
)

// Factor names one component of a ScoreBreakdown.
type Factor string

// Scoring factors.
const (
	FactorSkills       Factor = "skills"
	FactorExperience   Factor = "experience"
	FactorEducation    Factor = "education"
	FactorLocation     Factor = "location"
	FactorPreferences  Factor = "preferences"
	FactorSalary       Factor = "salary"
	FactorCulturalFit  Factor = "cultural_fit"
	FactorAIPrediction Factor = "ai_prediction"
)

// AllFactors lists every factor in canonical order.
var AllFactors = []Factor{
	FactorSkills,
	FactorExperience,
	FactorEducation,
	FactorLocation,
	FactorPreferences,
	FactorSalary,
	FactorCulturalFit,
	FactorAIPrediction,
}

// IsValid reports whether f is a known factor.
func (f Factor) IsValid() bool {
	for _, known := range AllFactors {
		if f == known {
			return true
		}
	}
	return false
}

// ScoreBreakdown holds per-factor scores in [0,1] and their weighted combination.
//
// Factors contains only the factors that could be computed for the pair;
// Weights holds the effective weights after renormalization over those factors.
type ScoreBreakdown struct {
	Factors  map[Factor]float64 `json:"factors"`
	Weights  map[Factor]float64 `json:"weights"`
	Overall  float64            `json:"overall_score"`
	Strategy string             `json:"strategy,omitempty"`
}

// Factor returns the score of f, or 0 when it was not computed.
func (b *ScoreBreakdown) Factor(f Factor) float64 {
	if b == nil {
		return 0
	}
	return b.Factors[f]
}

// Has reports whether f was computed.
func (b *ScoreBreakdown) Has(f Factor) bool {
	if b == nil {
		return false
	}
	_, ok := b.Factors[f]
	return ok
}

// Result types.
const (
	ResultTypeCandidate = "candidate"
	ResultTypeJob       = "job"
)

// Result sources.
const (
	SourceScore          = "score"
	SourceSimilarity     = "similarity"
	SourceRecommendation = "recommendation"
)

// MatchAttributes are the fields of a result that filters and sorts operate on.
type MatchAttributes struct {
	Title           string    `json:"title,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	Industries      []string  `json:"industries,omitempty"`
	Employer        string    `json:"employer,omitempty"`
	Employers       []string  `json:"employers,omitempty"`
	Country         string    `json:"country,omitempty"`
	City            string    `json:"city,omitempty"`
	IsRemote        bool      `json:"is_remote"`
	YearsExperience float64   `json:"years_experience"`
	EducationLevel  string    `json:"education_level,omitempty"`
	WorkTypes       []string  `json:"work_types,omitempty"`
	Keywords        []string  `json:"keywords,omitempty"`
	SalaryMin       float64   `json:"salary_min,omitempty"`
	SalaryMax       float64   `json:"salary_max,omitempty"`
	ResponseRate    float64   `json:"response_rate"`
	Rating          float64   `json:"rating,omitempty"`
	LastActivity    time.Time `json:"last_activity"`
}

// MatchResult is the common result shape produced by scoring, similarity search
// and recommendation, and consumed by ranking and filtering.
//
// OverallScore and Score are on a 0-100 scale. OverallScore is the ScoreEngine
// output; Score is the ranking score once RankingEngine has run, and equals
// OverallScore before that.
type MatchResult struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Source       string          `json:"source"`
	Score        float64         `json:"score"`
	OverallScore float64         `json:"overall_score"`
	Rank         int             `json:"rank,omitempty"`
	Breakdown    *ScoreBreakdown `json:"breakdown,omitempty"`
	Explanation  []string        `json:"explanation,omitempty"`
	Attributes   MatchAttributes `json:"attributes"`
}

// ItemError reports a single malformed item in a batch operation.
type ItemError struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// Error implements error.
func (e ItemError) Error() string {
	if e.ID == "" {
		return e.Message
	}
	return e.ID + ": " + e.Message
}

// Attributes extracts the filterable attributes of a candidate as of now.
func (c *CandidateProfile) Attributes(now time.Time) MatchAttributes {
	attrs := MatchAttributes{
		Title:           c.Headline,
		Country:         c.Location.Country,
		City:            c.Location.City,
		IsRemote:        c.Location.IsRemote,
		YearsExperience: c.TotalYears(now),
		WorkTypes:       c.Preferences.WorkTypes,
		Keywords:        c.Keywords,
		ResponseRate:    c.ResponseRate,
		Rating:          c.Rating,
		LastActivity:    c.LastActive,
	}

	attrs.Skills = make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		attrs.Skills = append(attrs.Skills, s.Name)
	}

	for i := range c.Experience {
		exp := &c.Experience[i]
		if exp.Industry != "" {
			attrs.Industries = appendUnique(attrs.Industries, exp.Industry)
		}
		if exp.Company != "" {
			attrs.Employers = appendUnique(attrs.Employers, exp.Company)
		}
		// Most recent entry wins for the single-valued fields.
		if exp.Current || attrs.Employer == "" {
			attrs.Employer = exp.Company
			attrs.Industry = exp.Industry
		}
	}

	best := 0
	for _, edu := range c.Education {
		if tier := edu.Level.Tier(); tier > best {
			best = tier
			attrs.EducationLevel = string(edu.Level)
		}
	}

	if r := c.Preferences.SalaryRange; !r.IsZero() {
		attrs.SalaryMin = r.Min
		attrs.SalaryMax = r.Max
	}
	return attrs
}

// Attributes extracts the filterable attributes of a job.
func (j *JobProfile) Attributes() MatchAttributes {
	attrs := MatchAttributes{
		Title:        j.Title,
		Industry:     j.Industry,
		Employer:     j.Employer,
		Country:      j.Location.Country,
		City:         j.Location.City,
		IsRemote:     j.Location.IsRemote,
		WorkTypes:    j.EmployerPreferences.WorkTypes,
		Keywords:     j.Keywords,
		ResponseRate: j.ResponseRate,
		Rating:       j.Rating,
		LastActivity: j.PostedAt,
	}
	if j.Industry != "" {
		attrs.Industries = []string{j.Industry}
	}
	if j.Employer != "" {
		attrs.Employers = []string{j.Employer}
	}

	attrs.Skills = make([]string, 0, len(j.Skills))
	for _, s := range j.Skills {
		attrs.Skills = append(attrs.Skills, s.Name)
	}

	for _, req := range j.Experience {
		if req.YearsRequired > attrs.YearsExperience {
			attrs.YearsExperience = req.YearsRequired
		}
	}

	best := 0
	for _, req := range j.Education {
		if tier := req.Level.Tier(); tier > best {
			best = tier
			attrs.EducationLevel = string(req.Level)
		}
	}

	if !j.Compensation.IsZero() {
		attrs.SalaryMin = j.Compensation.Min
		attrs.SalaryMax = j.Compensation.Max
	}
	return attrs
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if strings.EqualFold(existing, v) {
			return values
		}
	}
	return append(values, v)
}
