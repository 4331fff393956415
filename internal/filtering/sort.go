// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package filtering

import (
	"sort"
	"strings"

	"github.com/tomtom215/talentmatch/internal/models"
)

// SortKey names a sortable result field.
type SortKey string

// Sort keys.
const (
	SortScore           SortKey = "score"
	SortOverallScore    SortKey = "overall_score"
	SortLastActive      SortKey = "last_active"
	SortResponseRate    SortKey = "response_rate"
	SortRating          SortKey = "rating"
	SortSalary          SortKey = "salary"
	SortYearsExperience SortKey = "years_experience"
	SortSkills          SortKey = "skills"
	SortExperience      SortKey = "experience"
	SortEducation       SortKey = "education"
	SortLocation        SortKey = "location"
	SortPreferences     SortKey = "preferences"
	SortSalaryFit       SortKey = "salary_fit"
	SortCulturalFit     SortKey = "cultural_fit"
)

// Sort orders.
const (
	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// Sort selects the result order. The zero value sorts by overall score,
// descending.
type Sort struct {
	Key   string `json:"key,omitempty"`
	Order string `json:"order,omitempty" validate:"omitempty,oneof=asc desc"`
}

// Validate checks the sort order. Unknown keys are not an error.
func (s *Sort) Validate() error {
	if s == nil {
		return nil
	}
	return fromStruct(s)
}

type keyFunc func(item *models.MatchResult) float64

func factorKey(f models.Factor) keyFunc {
	return func(item *models.MatchResult) float64 { return item.Breakdown.Factor(f) }
}

var sortKeys = map[SortKey]keyFunc{
	SortScore:        func(item *models.MatchResult) float64 { return item.Score },
	SortOverallScore: func(item *models.MatchResult) float64 { return item.OverallScore },
	SortLastActive: func(item *models.MatchResult) float64 {
		return float64(item.Attributes.LastActivity.Unix())
	},
	SortResponseRate:    func(item *models.MatchResult) float64 { return item.Attributes.ResponseRate },
	SortRating:          func(item *models.MatchResult) float64 { return item.Attributes.Rating },
	SortSalary:          salaryKey,
	SortYearsExperience: func(item *models.MatchResult) float64 { return item.Attributes.YearsExperience },
	SortSkills:          factorKey(models.FactorSkills),
	SortExperience:      factorKey(models.FactorExperience),
	SortEducation:       factorKey(models.FactorEducation),
	SortLocation:        factorKey(models.FactorLocation),
	SortPreferences:     factorKey(models.FactorPreferences),
	SortSalaryFit:       factorKey(models.FactorSalary),
	SortCulturalFit:     factorKey(models.FactorCulturalFit),
}

var sortAliases = map[string]SortKey{
	"posted_at":       SortLastActive,
	"last_activity":   SortLastActive,
	"recent_activity": SortLastActive,
	"overall":         SortOverallScore,
	"ranking_score":   SortScore,
}

// salaryKey sorts on the top of the advertised range.
func salaryKey(item *models.MatchResult) float64 {
	if item.Attributes.SalaryMax > 0 {
		return item.Attributes.SalaryMax
	}
	return item.Attributes.SalaryMin
}

// ResolveSortKey maps a requested key to a known one. Unknown and empty keys
// resolve to SortOverallScore with ok false.
func ResolveSortKey(key string) (SortKey, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if _, ok := sortKeys[SortKey(k)]; ok {
		return SortKey(k), true
	}
	if alias, ok := sortAliases[k]; ok {
		return alias, true
	}
	return SortOverallScore, false
}

// SortKeys lists the canonical sort keys in stable order.
func SortKeys() []string {
	out := make([]string, 0, len(sortKeys))
	for k := range sortKeys {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// SortItems orders items in place. Equal keys keep their relative order.
func SortItems(items []models.MatchResult, s *Sort) {
	var by Sort
	if s != nil {
		by = *s
	}
	key, _ := ResolveSortKey(by.Key)
	value := sortKeys[key]
	asc := strings.EqualFold(by.Order, OrderAsc)

	sort.SliceStable(items, func(i, j int) bool {
		vi, vj := value(&items[i]), value(&items[j])
		if asc {
			return vi < vj
		}
		return vi > vj
	})
}
