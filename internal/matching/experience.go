// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"strings"
	"time"

	"github.com/tomtom215/talentmatch/internal/models"
)

const (
	experienceTitleWeight    = 0.4
	experienceLevelWeight    = 0.3
	experienceDurationWeight = 0.3
	experienceIndustryWeight = 0.1
	levelDistancePenalty     = 0.2
)

// careerLadder is ordered from most junior to most senior.
var careerLadder = []string{"entry", "junior", "mid", "senior", "lead", "manager", "director", "executive"}

// levelKeywords infers a ladder rung from words in a position title.
// Checked from most to least senior so "senior manager" resolves to manager.
var levelKeywords = []struct {
	level    string
	keywords []string
}{
	{"executive", []string{"chief", "ceo", "cto", "cfo", "coo", "executive", "president", "vp"}},
	{"director", []string{"director", "head"}},
	{"manager", []string{"manager", "management"}},
	{"lead", []string{"lead", "principal", "staff", "architect"}},
	{"senior", []string{"senior", "sr"}},
	{"mid", []string{"mid", "intermediate"}},
	{"junior", []string{"junior", "jr", "associate"}},
	{"entry", []string{"entry", "intern", "trainee", "graduate", "apprentice"}},
}

// ladderRung returns the index of level on the career ladder, or -1.
func ladderRung(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	for i, rung := range careerLadder {
		if rung == level {
			return i
		}
	}
	return -1
}

// inferRung resolves the ladder rung of a work entry, defaulting to mid.
func inferRung(exp *models.WorkExperience) int {
	if rung := ladderRung(exp.Level); rung >= 0 {
		return rung
	}
	words := wordSet(exp.Position)
	for _, lk := range levelKeywords {
		for _, kw := range lk.keywords {
			if _, ok := words[kw]; ok {
				return ladderRung(lk.level)
			}
		}
	}
	return ladderRung("mid")
}

// durationStaircase scores held years against required years.
func durationStaircase(actual, required float64) float64 {
	if required <= 0 {
		return 1.0
	}
	ratio := actual / required
	switch {
	case ratio >= 1:
		return 1.0
	case ratio >= 0.8:
		return 0.8
	case ratio >= 0.6:
		return 0.6
	case ratio >= 0.4:
		return 0.4
	case ratio >= 0.2:
		return 0.2
	default:
		return 0.1
	}
}

// experienceMatch is the best work entry for one requirement.
type experienceMatch struct {
	entry *models.WorkExperience
	score float64
}

type experienceScorer struct {
	title    StringSimilarity
	industry TermMatcher
	now      time.Time
}

// entryScore blends title similarity, level adjacency, duration and the
// optional industry bonus for one work entry, capped at 1.
func (s *experienceScorer) entryScore(exp *models.WorkExperience, req *models.ExperienceRequirement) float64 {
	score := experienceTitleWeight * s.title.Similarity(req.Title, exp.Position)

	level := 1.0
	if want := ladderRung(req.Level); want >= 0 {
		distance := inferRung(exp) - want
		if distance < 0 {
			distance = -distance
		}
		level = clamp01(1 - levelDistancePenalty*float64(distance))
	}
	score += experienceLevelWeight * level

	score += experienceDurationWeight * durationStaircase(exp.Years(s.now), req.YearsRequired)

	if req.Industry != "" && exp.Industry != "" {
		if containsFold(exp.Industry, req.Industry) || s.industry.Related(exp.Industry, req.Industry) {
			score += experienceIndustryWeight
		}
	}
	return clamp01(score)
}

// bestMatch returns the work entry with the highest score for req.
// Ties keep the earliest entry. The entry is nil when history is empty.
func (s *experienceScorer) bestMatch(history []models.WorkExperience, req *models.ExperienceRequirement) experienceMatch {
	best := experienceMatch{}
	for i := range history {
		score := s.entryScore(&history[i], req)
		if best.entry == nil || score > best.score {
			best = experienceMatch{entry: &history[i], score: score}
		}
	}
	return best
}

// scoreExperience is the requirement-weighted mean of best-match scores.
// Required roles weigh 2, optional roles 1. No requirements scores 1.
func (s *experienceScorer) scoreExperience(history []models.WorkExperience, reqs []models.ExperienceRequirement) (float64, []string) {
	if len(reqs) == 0 {
		return 1.0, nil
	}

	var notes []string
	var weighted, totalWeight float64
	for i := range reqs {
		weight := 1.0
		if reqs[i].Required {
			weight = 2.0
		}
		totalWeight += weight

		match := s.bestMatch(history, &reqs[i])
		if match.entry == nil {
			continue
		}
		weighted += weight * match.score
		if match.score >= 0.7 {
			notes = append(notes, "experience as "+match.entry.Position+" matches "+reqs[i].Title)
		}
	}
	return clamp01(weighted / totalWeight), notes
}
