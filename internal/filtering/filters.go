// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package filtering

import (
	"strings"
	"time"

	"github.com/tomtom215/talentmatch/internal/models"
)

// Match modes for multi-value filters.
const (
	MatchAny = "any"
	MatchAll = "all"
)

// Filters selects match results. Nil pointers and nil slices are ignored.
// Filters is immutable after validation and safe for concurrent reads.
type Filters struct {
	Skills      []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,required"`
	SkillsMatch string   `json:"skills_match,omitempty" validate:"omitempty,oneof=any all"`

	Industries      []string `json:"industries,omitempty" validate:"omitempty,max=50,dive,required"`
	IndustriesMatch string   `json:"industries_match,omitempty" validate:"omitempty,oneof=any all"`

	// Locations match the country or city.
	Locations []string `json:"locations,omitempty" validate:"omitempty,max=50,dive,required"`
	Remote    *bool    `json:"remote,omitempty"`

	WorkTypes []string `json:"work_types,omitempty" validate:"omitempty,max=20,dive,required"`

	// Keywords match the title, keywords or skills; any keyword suffices.
	Keywords []string `json:"keywords,omitempty" validate:"omitempty,max=50,dive,required"`

	EducationLevels []string `json:"education_levels,omitempty" validate:"omitempty,dive,oneof=high_school associate bachelor master doctorate postdoctoral"`
	Types           []string `json:"types,omitempty" validate:"omitempty,dive,oneof=candidate job"`
	Sources         []string `json:"sources,omitempty" validate:"omitempty,dive,oneof=score similarity recommendation"`

	MinYears *float64 `json:"min_years,omitempty" validate:"omitempty,finite,gte=0"`
	MaxYears *float64 `json:"max_years,omitempty" validate:"omitempty,finite,gte=0"`

	MinSalary *float64 `json:"min_salary,omitempty" validate:"omitempty,finite,gte=0"`
	MaxSalary *float64 `json:"max_salary,omitempty" validate:"omitempty,finite,gte=0"`

	MinScore *float64 `json:"min_score,omitempty" validate:"omitempty,finite,gte=0,lte=100"`
	MaxScore *float64 `json:"max_score,omitempty" validate:"omitempty,finite,gte=0,lte=100"`

	MinResponseRate *float64 `json:"min_response_rate,omitempty" validate:"omitempty,finite,gte=0,lte=1"`
	MaxResponseRate *float64 `json:"max_response_rate,omitempty" validate:"omitempty,finite,gte=0,lte=1"`

	// ActiveSince keeps items whose last activity (or posting date) is at or
	// after this time.
	ActiveSince *time.Time `json:"active_since,omitempty"`
}

// Validate checks the criteria. A nil Filters is valid.
func (f *Filters) Validate() error {
	if f == nil {
		return nil
	}

	lists := []struct {
		field  string
		values []string
	}{
		{"skills", f.Skills},
		{"industries", f.Industries},
		{"locations", f.Locations},
		{"work_types", f.WorkTypes},
		{"keywords", f.Keywords},
		{"education_levels", f.EducationLevels},
		{"types", f.Types},
		{"sources", f.Sources},
	}
	for _, l := range lists {
		if l.values != nil && len(l.values) == 0 {
			return invalid(l.field, "must not be empty when present")
		}
	}

	if err := fromStruct(f); err != nil {
		return err
	}

	ranges := []struct {
		field    string
		min, max *float64
	}{
		{"years", f.MinYears, f.MaxYears},
		{"salary", f.MinSalary, f.MaxSalary},
		{"score", f.MinScore, f.MaxScore},
		{"response_rate", f.MinResponseRate, f.MaxResponseRate},
	}
	for _, r := range ranges {
		if r.min != nil && r.max != nil && *r.min > *r.max {
			return invalid("min_"+r.field, "must not exceed max_%s (%v > %v)", r.field, *r.min, *r.max)
		}
	}
	return nil
}

// Match reports whether item satisfies every filter. It assumes f is valid.
func (f *Filters) Match(item *models.MatchResult) bool {
	if f == nil {
		return true
	}
	a := &item.Attributes

	if f.Skills != nil && !matchValues(f.Skills, a.Skills, f.SkillsMatch == MatchAll) {
		return false
	}
	if f.Industries != nil {
		industries := a.Industries
		if a.Industry != "" && !containsFold(industries, a.Industry) {
			industries = append([]string{a.Industry}, industries...)
		}
		if !matchValues(f.Industries, industries, f.IndustriesMatch == MatchAll) {
			return false
		}
	}
	if f.Locations != nil && !matchValues(f.Locations, []string{a.Country, a.City}, false) {
		return false
	}
	if f.Remote != nil && a.IsRemote != *f.Remote {
		return false
	}
	if f.WorkTypes != nil && !matchValues(f.WorkTypes, a.WorkTypes, false) {
		return false
	}
	if f.Keywords != nil && !matchKeywords(f.Keywords, a) {
		return false
	}
	if f.EducationLevels != nil && !matchEducation(f.EducationLevels, a.EducationLevel) {
		return false
	}
	if f.Types != nil && !containsFold(f.Types, item.Type) {
		return false
	}
	if f.Sources != nil && !containsFold(f.Sources, item.Source) {
		return false
	}

	if !inRange(a.YearsExperience, f.MinYears, f.MaxYears) {
		return false
	}
	if !inRange(item.Score, f.MinScore, f.MaxScore) {
		return false
	}
	if !inRange(a.ResponseRate, f.MinResponseRate, f.MaxResponseRate) {
		return false
	}
	if !matchSalary(a, f.MinSalary, f.MaxSalary) {
		return false
	}
	if f.ActiveSince != nil && a.LastActivity.Before(*f.ActiveSince) {
		return false
	}
	return true
}

// Filter returns the items matching f in their original order. The input is
// not modified.
func Filter(items []models.MatchResult, f *Filters) ([]models.MatchResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	out := make([]models.MatchResult, 0, len(items))
	for i := range items {
		if f.Match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

// matchValues checks wanted against have by case-insensitive substring.
// With all set every wanted value must match, otherwise any one.
func matchValues(wanted, have []string, all bool) bool {
	for _, w := range wanted {
		hit := containsSubstringFold(have, w)
		if all && !hit {
			return false
		}
		if !all && hit {
			return true
		}
	}
	return all
}

func matchKeywords(keywords []string, a *models.MatchAttributes) bool {
	for _, k := range keywords {
		if containsSubstringFold([]string{a.Title}, k) ||
			containsSubstringFold(a.Keywords, k) ||
			containsSubstringFold(a.Skills, k) {
			return true
		}
	}
	return false
}

func matchEducation(levels []string, have string) bool {
	tier := models.EducationLevel(have).Tier()
	if tier == 0 {
		return false
	}
	for _, l := range levels {
		if models.EducationLevel(l).Tier() == tier {
			return true
		}
	}
	return false
}

// matchSalary keeps items whose advertised range reaches the requested
// bounds. Items without salary data fail any salary filter.
func matchSalary(a *models.MatchAttributes, lo, hi *float64) bool {
	if lo == nil && hi == nil {
		return true
	}
	if a.SalaryMin == 0 && a.SalaryMax == 0 {
		return false
	}
	top := a.SalaryMax
	if top == 0 {
		top = a.SalaryMin
	}
	bottom := a.SalaryMin
	if bottom == 0 {
		bottom = a.SalaryMax
	}
	if lo != nil && top < *lo {
		return false
	}
	if hi != nil && bottom > *hi {
		return false
	}
	return true
}

func inRange(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}

func containsSubstringFold(values []string, sub string) bool {
	sub = strings.ToLower(strings.TrimSpace(sub))
	if sub == "" {
		return false
	}
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), sub) {
			return true
		}
	}
	return false
}

func containsFold(values []string, v string) bool {
	for _, x := range values {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}
