// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"github.com/tomtom215/talentmatch/internal/models"
)

const (
	educationLevelWeight          = 0.5
	educationFieldWeight          = 0.4
	educationSpecializationWeight = 0.1

	// educationPartialCredit is earned by an optional requirement the
	// candidate has no education entry for.
	educationPartialCredit = 0.3
)

// fieldScore grades a field of study: exact 1.0, substring 0.8, synonym 0.7, else 0.3.
func fieldScore(have, want string, synonyms TermMatcher) float64 {
	if want == "" {
		return 1.0
	}
	h := normalizeTerm(have)
	w := normalizeTerm(want)
	switch {
	case h == w:
		return 1.0
	case containsFold(h, w):
		return 0.8
	case synonyms.Related(h, w):
		return 0.7
	default:
		return 0.3
	}
}

func educationEntryScore(edu *models.Education, req *models.EducationRequirement, synonyms TermMatcher) float64 {
	level := 1.0
	if want := req.Level.Tier(); want > 0 {
		level = tierStaircase(edu.Level.Tier(), want)
	}

	specialization := 1.0
	if req.Specialization != "" {
		specialization = 0
		if containsFold(edu.Specialization, req.Specialization) || containsFold(edu.Field, req.Specialization) {
			specialization = 1.0
		}
	}

	return clamp01(educationLevelWeight*level +
		educationFieldWeight*fieldScore(edu.Field, req.Field, synonyms) +
		educationSpecializationWeight*specialization)
}

// scoreEducation is the requirement-weighted mean of best-match scores.
// A job with no education requirements scores 1.
func scoreEducation(history []models.Education, reqs []models.EducationRequirement, synonyms TermMatcher) float64 {
	if len(reqs) == 0 {
		return 1.0
	}

	var weighted, totalWeight float64
	for i := range reqs {
		weight := 1.0
		if reqs[i].Required {
			weight = 2.0
		}
		totalWeight += weight

		best := -1.0
		for j := range history {
			if s := educationEntryScore(&history[j], &reqs[i], synonyms); s > best {
				best = s
			}
		}
		if best < 0 {
			if reqs[i].Required {
				continue
			}
			best = educationPartialCredit
		}
		weighted += weight * best
	}
	return clamp01(weighted / totalWeight)
}
