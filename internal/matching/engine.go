// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"context"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
	"github.com/tomtom215/talentmatch/internal/models"
)

// Config configures an Engine.
type Config struct {
	// Workers bounds concurrent scoring in ScoreCandidates/ScoreJobs.
	// Zero means runtime.NumCPU().
	Workers int

	// Strategies overrides the string heuristics. Nil members use defaults.
	Strategies Strategies
}

// ScoreOptions carries the per-call inputs besides the two profiles.
type ScoreOptions struct {
	Weights  Weights
	Strategy string

	// Now is the reference date for experience durations. It is an input so
	// that identical calls always produce identical scores.
	Now time.Time
}

// Engine computes compatibility scores between candidates and jobs.
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	strategies Strategies
	workers    int
	logger     zerolog.Logger
}

// NewEngine creates a scoring engine.
func NewEngine(cfg Config) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		strategies: cfg.Strategies.withDefaults(),
		workers:    workers,
		logger:     logging.WithComponent("matching"),
	}
}

// evaluation is the full output of scoring one pair.
type evaluation struct {
	breakdown   models.ScoreBreakdown
	explanation []string
}

// Score computes the per-factor and overall compatibility of candidate and job.
func (e *Engine) Score(candidate *models.CandidateProfile, job *models.JobProfile, opts ScoreOptions) (*models.ScoreBreakdown, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}
	ev, err := e.evaluate(candidate, job, &opts)
	if err != nil {
		return nil, err
	}
	return &ev.breakdown, nil
}

func (e *Engine) evaluate(candidate *models.CandidateProfile, job *models.JobProfile, opts *ScoreOptions) (*evaluation, error) {
	if candidate == nil {
		return nil, newValidationError(ErrInvalidProfile, "candidate", "is required")
	}
	if job == nil {
		return nil, newValidationError(ErrInvalidProfile, "job", "is required")
	}
	if err := validateRange("candidate.preferences.salary_range", candidate.Preferences.SalaryRange); err != nil {
		return nil, err
	}
	if err := validateRange("job.compensation", job.Compensation); err != nil {
		return nil, err
	}
	if err := validateOptionalScore("candidate.cultural_fit", candidate.CulturalFit); err != nil {
		return nil, err
	}
	if err := validateOptionalScore("candidate.ai_prediction", candidate.AIPrediction); err != nil {
		return nil, err
	}
	if err := validateOptionalScore("job.cultural_fit", job.CulturalFit); err != nil {
		return nil, err
	}
	if err := validateOptionalScore("job.ai_prediction", job.AIPrediction); err != nil {
		return nil, err
	}

	factors := make(map[models.Factor]float64, len(models.AllFactors))
	var notes []string

	skills := scoreSkills(candidate.Skills, job.Skills)
	factors[models.FactorSkills] = skills.score
	if len(skills.matched) > 0 {
		notes = append(notes, "matched skills: "+strings.Join(skills.matched, ", "))
	}
	if len(skills.missingRequired) > 0 {
		notes = append(notes, "missing required skills: "+strings.Join(skills.missingRequired, ", "))
	}

	exp := experienceScorer{title: e.strategies.Title, industry: e.strategies.Industry, now: opts.Now}
	expScore, expNotes := exp.scoreExperience(candidate.Experience, job.Experience)
	factors[models.FactorExperience] = expScore
	notes = append(notes, expNotes...)

	factors[models.FactorEducation] = scoreEducation(candidate.Education, job.Education, e.strategies.Field)

	loc, locNote := scoreLocation(&candidate.Location, &job.Location)
	factors[models.FactorLocation] = loc
	if locNote != "" {
		notes = append(notes, "location: "+locNote)
	}

	if pref, ok := scorePreferences(&candidate.Preferences, &job.EmployerPreferences); ok {
		factors[models.FactorPreferences] = pref
	}
	if sal, ok := scoreSalary(candidate.Preferences.SalaryRange, job.Compensation); ok {
		factors[models.FactorSalary] = sal
	}

	// Externally supplied factors: the job-side value wins when both exist.
	if v := firstNonNil(job.CulturalFit, candidate.CulturalFit); v != nil {
		factors[models.FactorCulturalFit] = clamp01(*v)
	}
	if v := firstNonNil(job.AIPrediction, candidate.AIPrediction); v != nil {
		factors[models.FactorAIPrediction] = clamp01(*v)
	}

	// Summed in canonical factor order so repeated calls are bit-identical.
	effective := opts.Weights.renormalize(factors)
	var overall float64
	for _, f := range models.AllFactors {
		overall += factors[f] * effective[f]
	}

	return &evaluation{
		breakdown: models.ScoreBreakdown{
			Factors:  factors,
			Weights:  map[models.Factor]float64(effective),
			Overall:  clamp01(overall),
			Strategy: opts.Strategy,
		},
		explanation: notes,
	}, nil
}

// ScoreCandidates scores every candidate in the pool against job.
//
// Candidates are scored concurrently. A malformed candidate produces an
// ItemError and never aborts the batch; successes keep input order.
func (e *Engine) ScoreCandidates(ctx context.Context, candidates []*models.CandidateProfile, job *models.JobProfile, opts ScoreOptions) ([]models.MatchResult, []models.ItemError, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, newValidationError(ErrInvalidProfile, "job", "is required")
	}

	return e.scorePool(ctx, len(candidates), opts, func(i int) (*models.MatchResult, error) {
		c := candidates[i]
		ev, err := e.evaluate(c, job, &opts)
		if err != nil {
			return nil, err
		}
		return &models.MatchResult{
			ID:           c.ID,
			Type:         models.ResultTypeCandidate,
			Source:       models.SourceScore,
			Score:        ev.breakdown.Overall * 100,
			OverallScore: ev.breakdown.Overall * 100,
			Breakdown:    &ev.breakdown,
			Explanation:  ev.explanation,
			Attributes:   c.Attributes(opts.Now),
		}, nil
	}, func(i int) string {
		if candidates[i] == nil {
			return ""
		}
		return candidates[i].ID
	})
}

// ScoreJobs scores every job in the pool against candidate.
// It is the job-seeker side mirror of ScoreCandidates.
func (e *Engine) ScoreJobs(ctx context.Context, candidate *models.CandidateProfile, jobs []*models.JobProfile, opts ScoreOptions) ([]models.MatchResult, []models.ItemError, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, nil, err
	}
	if candidate == nil {
		return nil, nil, newValidationError(ErrInvalidProfile, "candidate", "is required")
	}

	return e.scorePool(ctx, len(jobs), opts, func(i int) (*models.MatchResult, error) {
		j := jobs[i]
		ev, err := e.evaluate(candidate, j, &opts)
		if err != nil {
			return nil, err
		}
		return &models.MatchResult{
			ID:           j.ID,
			Type:         models.ResultTypeJob,
			Source:       models.SourceScore,
			Score:        ev.breakdown.Overall * 100,
			OverallScore: ev.breakdown.Overall * 100,
			Breakdown:    &ev.breakdown,
			Explanation:  ev.explanation,
			Attributes:   j.Attributes(),
		}, nil
	}, func(i int) string {
		if jobs[i] == nil {
			return ""
		}
		return jobs[i].ID
	})
}

// scorePool runs score for indices [0,n) on a bounded worker group. Each
// worker writes only its own slot, so no locking is needed.
func (e *Engine) scorePool(ctx context.Context, n int, opts ScoreOptions, score func(int) (*models.MatchResult, error), idOf func(int) string) ([]models.MatchResult, []models.ItemError, error) {
	start := time.Now()
	results := make([]*models.MatchResult, n)
	failures := make([]error, n)

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[i] = err
				return nil
			}
			results[i], failures[i] = score(i)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	out := make([]models.MatchResult, 0, n)
	var itemErrs []models.ItemError
	for i := 0; i < n; i++ {
		if failures[i] != nil {
			itemErrs = append(itemErrs, models.ItemError{Index: i, ID: idOf(i), Message: failures[i].Error()})
			e.logger.Warn().Int("index", i).Str("id", idOf(i)).Err(failures[i]).Msg("skipping unscorable item")
			continue
		}
		out = append(out, *results[i])
	}

	metrics.RecordScoring(opts.Strategy, len(out), len(itemErrs), time.Since(start))
	if err := ctx.Err(); err != nil {
		return out, itemErrs, err
	}
	return out, itemErrs, nil
}

func validateOptionalScore(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || *v < 0 || *v > 1 {
		return newValidationError(ErrInvalidProfile, field, "must be in [0,1], got %v", *v)
	}
	return nil
}

func firstNonNil(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
