// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"strings"

	"github.com/tomtom215/talentmatch/internal/models"
)

// Skill contribution components. A matched skill can exceed 1 before the
// per-skill cap, so a required skill met at level scores exactly 1.
const (
	skillNameBonus         = 0.3
	skillLevelWeight       = 0.7
	skillYearsWeight       = 0.2
	skillRequiredBonus     = 0.2
	defaultSkillImportance = 3.0
)

// tierStaircase scores a requirement met at tier `have` against tier `want`.
// Meeting or exceeding scores 1; each tier below steps down to a 0.1 floor.
func tierStaircase(have, want int) float64 {
	gap := want - have
	switch {
	case gap <= 0:
		return 1.0
	case gap == 1:
		return 0.7
	case gap == 2:
		return 0.4
	default:
		return 0.1
	}
}

type skillsResult struct {
	score           float64
	matched         []string
	missingRequired []string
}

// scoreSkills compares the candidate's skills with the job's skill requirements.
// A job with no skill requirements scores 1; a candidate with no skills against
// a job that has requirements scores 0.
func scoreSkills(candidate []models.Skill, required []models.SkillRequirement) skillsResult {
	if len(required) == 0 {
		return skillsResult{score: 1.0}
	}

	index := make(map[string]*models.Skill, len(candidate))
	for i := range candidate {
		key := strings.ToLower(strings.TrimSpace(candidate[i].Name))
		if _, exists := index[key]; !exists {
			index[key] = &candidate[i]
		}
	}

	var res skillsResult
	var weighted, totalWeight float64
	for _, req := range required {
		weight := req.Importance
		if weight <= 0 {
			weight = defaultSkillImportance
		}
		totalWeight += weight

		have, ok := index[strings.ToLower(strings.TrimSpace(req.Name))]
		if !ok {
			if req.Required {
				res.missingRequired = append(res.missingRequired, req.Name)
			}
			continue
		}
		res.matched = append(res.matched, req.Name)
		weighted += weight * skillContribution(have, &req)
	}

	if totalWeight > 0 {
		res.score = clamp01(weighted / totalWeight)
	}
	return res
}

// skillContribution scores one matched skill, capped at 1.
func skillContribution(have *models.Skill, want *models.SkillRequirement) float64 {
	contribution := skillNameBonus

	level := 1.0
	if wantTier := want.Level.Tier(); wantTier > 0 {
		haveTier := have.Level.Tier()
		if haveTier == 0 {
			haveTier = 1
		}
		level = tierStaircase(haveTier, wantTier)
	}
	contribution += skillLevelWeight * level

	if have.YearsExperience > 0 && want.YearsExperience > 0 {
		contribution += skillYearsWeight * clamp01(have.YearsExperience/want.YearsExperience)
	}
	if want.Required {
		contribution += skillRequiredBonus
	}
	return clamp01(contribution)
}
