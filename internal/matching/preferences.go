// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"strings"

	"github.com/tomtom215/talentmatch/internal/models"
)

// Sub-factor weights for preferences.
const (
	prefWorkTypeWeight    = 0.3
	prefTeamSizeWeight    = 0.2
	prefScheduleWeight    = 0.2
	prefTravelWeight      = 0.2
	prefEnvironmentWeight = 0.1
)

// teamSizeLadder is ordered from smallest to largest.
var teamSizeLadder = []string{"tiny", "small", "medium", "large", "enterprise"}

// scheduleGroups classifies schedules that are close enough to partially match.
var scheduleGroups = map[string]string{
	"day":            "standard",
	"standard":       "standard",
	"9-5":            "standard",
	"business hours": "standard",
	"full-time":      "standard",
	"night":          "shift",
	"evening":        "shift",
	"rotating":       "shift",
	"shift":          "shift",
	"part-time":      "reduced",
	"weekend":        "reduced",
	"reduced":        "reduced",
}

func teamSizeRung(size string) int {
	size = strings.ToLower(strings.TrimSpace(size))
	for i, rung := range teamSizeLadder {
		if rung == size {
			return i
		}
	}
	return -1
}

// scheduleScore: exact 1.0, either side flexible 0.8, same group 0.6, else 0.2.
func scheduleScore(have, want string) float64 {
	h := normalizeTerm(have)
	w := normalizeTerm(want)
	switch {
	case h == w:
		return 1.0
	case h == "flexible" || w == "flexible":
		return 0.8
	case scheduleGroups[h] != "" && scheduleGroups[h] == scheduleGroups[w]:
		return 0.6
	default:
		return 0.2
	}
}

// scorePreferences averages the sub-factors evaluable on both sides, weighted.
// ok is false when no sub-factor could be evaluated.
func scorePreferences(candidate *models.JobPreferences, job *models.EmployerPreferences) (score float64, ok bool) {
	var weighted, totalWeight float64
	add := func(weight, value float64) {
		weighted += weight * value
		totalWeight += weight
	}

	if len(candidate.WorkTypes) > 0 && len(job.WorkTypes) > 0 {
		wanted := make(map[string]struct{}, len(candidate.WorkTypes))
		for _, wt := range candidate.WorkTypes {
			wanted[normalizeTerm(wt)] = struct{}{}
		}
		overlap := 0
		for _, wt := range job.WorkTypes {
			if _, hit := wanted[normalizeTerm(wt)]; hit {
				overlap++
			}
		}
		add(prefWorkTypeWeight, float64(overlap)/float64(len(job.WorkTypes)))
	}

	if have, want := teamSizeRung(candidate.TeamSize), teamSizeRung(job.TeamSize); have >= 0 && want >= 0 {
		distance := have - want
		if distance < 0 {
			distance = -distance
		}
		add(prefTeamSizeWeight, 1-float64(distance)/float64(len(teamSizeLadder)-1))
	}

	if candidate.Schedule != "" && job.Schedule != "" {
		add(prefScheduleWeight, scheduleScore(candidate.Schedule, job.Schedule))
	}

	if candidate.TravelWillingness != nil && job.TravelRequirement != nil {
		willing := *candidate.TravelWillingness
		required := *job.TravelRequirement
		travel := 1.0
		if required > willing {
			travel = willing / required
		}
		add(prefTravelWeight, clamp01(travel))
	}

	// Environment fit is a coarse placeholder until a culture model feeds it.
	if candidate.Environment != "" && job.Environment != "" {
		env := 0.5
		if strings.EqualFold(strings.TrimSpace(candidate.Environment), strings.TrimSpace(job.Environment)) {
			env = 1.0
		}
		add(prefEnvironmentWeight, env)
	}

	if totalWeight == 0 {
		return 0, false
	}
	return clamp01(weighted / totalWeight), true
}
