// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package ranking

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
	"github.com/tomtom215/talentmatch/internal/models"
)

// Defaults applied by NewEngine to zero Config fields.
const (
	DefaultRecencyWindow  = 90 * 24 * time.Hour
	DefaultKeywordBonus   = 5.0
	DefaultIndustryBonus  = 5.0
	DefaultEducationBonus = 5.0
	DefaultBoostWeight    = 10.0
	DefaultDiversifyHead  = 10
	DefaultDiversifyMax   = 20
)

// Config holds engine-wide ranking settings.
type Config struct {
	RecencyWindow  time.Duration
	KeywordBonus   float64
	IndustryBonus  float64
	EducationBonus float64
	BoostWeight    float64

	// DiversifyHead items are kept unconditionally when diversifying.
	DiversifyHead int

	// DiversifyMax caps the size of a diversified result.
	DiversifyMax int
}

// Predicate reports whether an item takes part in ranking.
type Predicate func(item *models.MatchResult) bool

// Metadata describes how a Result was produced.
type Metadata struct {
	Considered  int           `json:"considered"`
	Filtered    int           `json:"filtered"`
	Diversified bool          `json:"diversified"`
	Removed     int           `json:"removed"`
	RankedAt    time.Time     `json:"ranked_at"`
	Duration    time.Duration `json:"duration_ns"`
}

// Result is a ranked item list.
type Result struct {
	Items      []models.MatchResult `json:"items"`
	TotalItems int                  `json:"total_items"`
	Metadata   Metadata             `json:"metadata"`
}

// Engine ranks match results. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	cfg    Config
	logger zerolog.Logger
}

// NewEngine creates a ranking engine.
func NewEngine(cfg Config) *Engine {
	if cfg.RecencyWindow <= 0 {
		cfg.RecencyWindow = DefaultRecencyWindow
	}
	if cfg.KeywordBonus <= 0 {
		cfg.KeywordBonus = DefaultKeywordBonus
	}
	if cfg.IndustryBonus <= 0 {
		cfg.IndustryBonus = DefaultIndustryBonus
	}
	if cfg.EducationBonus <= 0 {
		cfg.EducationBonus = DefaultEducationBonus
	}
	if cfg.BoostWeight <= 0 {
		cfg.BoostWeight = DefaultBoostWeight
	}
	if cfg.DiversifyHead <= 0 {
		cfg.DiversifyHead = DefaultDiversifyHead
	}
	if cfg.DiversifyMax <= 0 {
		cfg.DiversifyMax = DefaultDiversifyMax
	}
	return &Engine{cfg: cfg, logger: logging.WithComponent("ranking")}
}

// Rank filters, scores and orders items. The input slice is not modified.
// Each returned item carries its ranking score in Score and its 1-based
// position in Rank.
func (e *Engine) Rank(items []models.MatchResult, criteria Criteria, filter Predicate) (*Result, error) {
	start := time.Now()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	now := criteria.Now
	if now.IsZero() {
		now = start
	}

	ranked := make([]models.MatchResult, 0, len(items))
	for i := range items {
		if filter != nil && !filter(&items[i]) {
			continue
		}
		item := items[i]
		item.Score = e.score(&item, &criteria, now)
		ranked = append(ranked, item)
	}
	considered := len(ranked)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].OverallScore > ranked[j].OverallScore
	})

	if criteria.Diversify {
		ranked = e.Diversify(ranked)
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	res := &Result{
		Items:      ranked,
		TotalItems: len(ranked),
		Metadata: Metadata{
			Considered:  considered,
			Filtered:    len(items) - considered,
			Diversified: criteria.Diversify,
			Removed:     considered - len(ranked),
			RankedAt:    now,
			Duration:    time.Since(start),
		},
	}

	metrics.RecordRanking(len(ranked), criteria.Diversify)
	e.logger.Debug().
		Int("input", len(items)).
		Int("considered", considered).
		Int("returned", len(ranked)).
		Bool("diversified", criteria.Diversify).
		Msg("ranked results")
	return res, nil
}

// Score computes the ranking score of a single item.
func (e *Engine) Score(item *models.MatchResult, criteria Criteria) (float64, error) {
	if err := criteria.Validate(); err != nil {
		return 0, err
	}
	now := criteria.Now
	if now.IsZero() {
		now = time.Now()
	}
	return e.score(item, &criteria, now), nil
}

func (e *Engine) score(item *models.MatchResult, c *Criteria, now time.Time) float64 {
	w := c.weightsFor(item.Type)
	b := item.Breakdown
	attrs := &item.Attributes

	components := w.Skills*b.Factor(models.FactorSkills) +
		w.Experience*b.Factor(models.FactorExperience) +
		w.Location*b.Factor(models.FactorLocation) +
		w.ResponseRate*clamp(attrs.ResponseRate, 0, 1) +
		w.RecentActivity*e.recency(attrs.LastActivity, now)

	s := w.Overall*clamp(item.OverallScore, 0, 100) + 100*components
	s += e.bonus(item, c)
	return clamp(s, 0, 100)
}

// recency is 1 at or after now and decays linearly to 0 over the window.
// Unknown activity scores 0.
func (e *Engine) recency(last, now time.Time) float64 {
	if last.IsZero() {
		return 0
	}
	age := now.Sub(last)
	if age <= 0 {
		return 1
	}
	return math.Max(0, 1-float64(age)/float64(e.cfg.RecencyWindow))
}

func (e *Engine) bonus(item *models.MatchResult, c *Criteria) float64 {
	attrs := &item.Attributes
	var total float64

	kw := orDefault(c.KeywordBonus, e.cfg.KeywordBonus)
	for _, k := range c.Keywords {
		if matchesKeyword(attrs, k) {
			total += kw
		}
	}

	for _, ind := range c.Industries {
		if strings.EqualFold(attrs.Industry, ind) || containsFold(attrs.Industries, ind) {
			total += orDefault(c.IndustryBonus, e.cfg.IndustryBonus)
			break
		}
	}

	if attrs.EducationLevel != "" && containsFold(c.EducationLevels, attrs.EducationLevel) {
		total += orDefault(c.EducationBonus, e.cfg.EducationBonus)
	}

	if boost, ok := c.Boosts[item.ID]; ok {
		total += orDefault(c.BoostWeight, e.cfg.BoostWeight) * boost
	}
	return total
}

// matchesKeyword checks the title by substring and keywords and skills by
// whole value, all case-insensitively.
func matchesKeyword(attrs *models.MatchAttributes, keyword string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return false
	}
	if strings.Contains(strings.ToLower(attrs.Title), k) {
		return true
	}
	return containsFold(attrs.Keywords, k) || containsFold(attrs.Skills, k)
}

func containsFold(values []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, x := range values {
		if strings.EqualFold(strings.TrimSpace(x), v) {
			return true
		}
	}
	return false
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
