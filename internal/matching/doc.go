// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package matching computes multi-factor compatibility scores between a candidate
and a job.

Each factor is scored in [0,1]:

  - skills: weighted by requirement importance (default 3); name, level and
    years components plus a bonus for required skills, capped per skill
  - experience: best matching work entry per required role, blending title
    similarity, career-ladder distance, tenure and industry
  - education: best matching entry per requirement by level, field and
    specialization; 1.0 when the job states no requirements
  - location: same city, remote compatible, same country, relocation
  - preferences: work type, team size, schedule, travel and environment,
    averaged over what both sides state
  - salary: containment and overlap of the desired and offered ranges
  - cultural_fit / ai_prediction: externally supplied, optional

The overall score is the weighted sum over the factors that could be computed,
with weights renormalized over those factors. Weights come from a named preset
(balanced, skills-first, experience-first, potential-first) or a custom map
that must sum to 1 within WeightEpsilon.

Scoring is deterministic: the reference date is passed in ScoreOptions.Now and
never read from the clock. String heuristics (title similarity, industry and
field synonyms) are pluggable through Strategies.

Usage:

	engine := matching.NewEngine(matching.Config{})
	weights, _ := matching.Preset(matching.PresetSkillsFirst)
	breakdown, err := engine.Score(candidate, job, matching.ScoreOptions{
	    Weights: weights,
	    Now:     time.Now(),
	})
*/
package matching
