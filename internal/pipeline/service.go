// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/talentmatch/internal/cache"
	"github.com/tomtom215/talentmatch/internal/filtering"
	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/matching"
	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/profiles"
	"github.com/tomtom215/talentmatch/internal/ranking"
	"github.com/tomtom215/talentmatch/internal/recommend"
	"github.com/tomtom215/talentmatch/internal/validation"
)

// Recommender supplies blend scores.
type Recommender interface {
	Recommend(ctx context.Context, userID, itemType string, opts recommend.Options) ([]recommend.Recommendation, error)
}

// Lister enumerates stored profiles for requests with an empty pool.
type Lister interface {
	CandidateIDs() []string
	JobIDs() []string
}

// Deps are the engines the service composes. Recommender and Lister are
// optional.
type Deps struct {
	Profiles    profiles.Provider
	Scorer      *matching.Engine
	Ranker      *ranking.Engine
	Pages       *filtering.Pipeline
	Recommender Recommender
	Lister      Lister
}

// Config configures the service.
type Config struct {
	CacheEnabled         bool
	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	// BlendLimit is how many recommendations are fetched for blending.
	BlendLimit int

	// LoadWorkers bounds concurrent profile reads.
	LoadWorkers int

	// DefaultPreset applies to requests that name neither preset nor weights.
	DefaultPreset string
}

// DefaultConfig enables a five minute cache.
func DefaultConfig() Config {
	return Config{
		CacheEnabled:         true,
		CacheTTL:             5 * time.Minute,
		CacheMaxEntries:      1000,
		CacheCleanupInterval: time.Minute,
		BlendLimit:           100,
		LoadWorkers:          16,
		DefaultPreset:        matching.PresetBalanced,
	}
}

// Service runs the matching pipeline. It is safe for concurrent use.
type Service struct {
	deps   Deps
	cfg    Config
	cache  *cache.Cache
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a service. Close releases the cache.
func NewService(deps Deps, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.BlendLimit <= 0 {
		cfg.BlendLimit = def.BlendLimit
	}
	if cfg.LoadWorkers <= 0 {
		cfg.LoadWorkers = def.LoadWorkers
	}
	if cfg.DefaultPreset == "" {
		cfg.DefaultPreset = def.DefaultPreset
	}

	s := &Service{
		deps:   deps,
		cfg:    cfg,
		logger: logging.WithComponent("pipeline"),
		now:    time.Now,
	}
	if cfg.CacheEnabled {
		s.cache = cache.New(cache.Config{
			Name:            "match",
			TTL:             cfg.CacheTTL,
			MaxEntries:      cfg.CacheMaxEntries,
			CleanupInterval: cfg.CacheCleanupInterval,
		})
	}
	return s
}

// Close stops the cache cleanup loop.
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// Invalidate drops every cached response.
func (s *Service) Invalidate() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// CacheStats returns the response cache statistics, or false when caching
// is disabled.
func (s *Service) CacheStats() (cache.Stats, bool) {
	if s.cache == nil {
		return cache.Stats{}, false
	}
	return s.cache.GetStats(), true
}

// MatchCandidates ranks the candidate pool against req.JobID. cached
// reports whether the response came from the cache.
func (s *Service) MatchCandidates(ctx context.Context, req MatchRequest) (resp *MatchResponse, cached bool, err error) {
	if strings.TrimSpace(req.JobID) == "" {
		return nil, false, &ValidationError{Field: "job_id", Reason: "is required"}
	}
	if len(req.CandidateIDs) == 0 && s.deps.Lister != nil {
		req.CandidateIDs = s.deps.Lister.CandidateIDs()
	}
	if err := s.validate(&req, req.CandidateIDs, "candidate_ids"); err != nil {
		return nil, false, err
	}
	req.JobIDs, req.CandidateID = nil, ""

	return s.cached(ctx, "match_candidates", &req, func(ctx context.Context) (*MatchResponse, error) {
		return s.matchCandidates(ctx, &req)
	})
}

// MatchJobs ranks the job pool against req.CandidateID.
func (s *Service) MatchJobs(ctx context.Context, req MatchRequest) (resp *MatchResponse, cached bool, err error) {
	if strings.TrimSpace(req.CandidateID) == "" {
		return nil, false, &ValidationError{Field: "candidate_id", Reason: "is required"}
	}
	if len(req.JobIDs) == 0 && s.deps.Lister != nil {
		req.JobIDs = s.deps.Lister.JobIDs()
	}
	if err := s.validate(&req, req.JobIDs, "job_ids"); err != nil {
		return nil, false, err
	}
	req.CandidateIDs, req.JobID = nil, ""

	return s.cached(ctx, "match_jobs", &req, func(ctx context.Context) (*MatchResponse, error) {
		return s.matchJobs(ctx, &req)
	})
}

// validate checks every criteria object before any profile is read.
func (s *Service) validate(req *MatchRequest, pool []string, poolField string) error {
	if len(pool) == 0 {
		return &ValidationError{Field: poolField, Reason: "must not be empty"}
	}
	if req.Preset == "" && len(req.Weights) == 0 {
		req.Preset = s.cfg.DefaultPreset
	}
	if len(pool) > MaxPoolSize {
		return &ValidationError{Field: poolField, Reason: fmt.Sprintf("must contain at most %d ids, got %d", MaxPoolSize, len(pool))}
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return &ValidationError{Field: verr.Field(), Reason: verr.Error()}
	}
	if _, _, err := matching.ResolveWeights(req.Preset, req.Weights); err != nil {
		return err
	}
	if err := req.Ranking.Validate(); err != nil {
		return err
	}
	return s.deps.Pages.Validate(req.Filters, req.Sort, req.Page)
}

func (s *Service) cached(ctx context.Context, method string, req *MatchRequest, compute func(context.Context) (*MatchResponse, error)) (*MatchResponse, bool, error) {
	if s.cache == nil {
		resp, err := compute(ctx)
		return resp, false, err
	}

	key := cache.GenerateKey(method, req)
	v, cached, err := s.cache.GetOrCompute(ctx, key, func(ctx context.Context) (interface{}, error) {
		return compute(ctx)
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*MatchResponse), cached, nil
}

func (s *Service) matchCandidates(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	job, err := s.deps.Profiles.GetJob(ctx, req.JobID)
	if err != nil {
		return nil, fmt.Errorf("load job: %w", err)
	}

	candidates, poolIndex, loadErrs, err := loadPool(ctx, s.cfg.LoadWorkers, req.CandidateIDs, s.deps.Profiles.GetCandidate)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	weights, preset, err := matching.ResolveWeights(req.Preset, req.Weights)
	if err != nil {
		return nil, err
	}
	scored, scoreErrs, err := s.deps.Scorer.ScoreCandidates(ctx, candidates, job, matching.ScoreOptions{
		Weights:  weights,
		Strategy: strategyName(req.Strategy, preset),
		Now:      s.now(),
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, req, finishInput{
		subjectID:   job.ID,
		subjectType: models.ResultTypeJob,
		itemType:    models.ResultTypeCandidate,
		preset:      preset,
		scored:      scored,
		errs:        mergeItemErrors(loadErrs, scoreErrs, poolIndex),
	})
}

func (s *Service) matchJobs(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	candidate, err := s.deps.Profiles.GetCandidate(ctx, req.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("load candidate: %w", err)
	}

	jobs, poolIndex, loadErrs, err := loadPool(ctx, s.cfg.LoadWorkers, req.JobIDs, s.deps.Profiles.GetJob)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}

	weights, preset, err := matching.ResolveWeights(req.Preset, req.Weights)
	if err != nil {
		return nil, err
	}
	scored, scoreErrs, err := s.deps.Scorer.ScoreJobs(ctx, candidate, jobs, matching.ScoreOptions{
		Weights:  weights,
		Strategy: strategyName(req.Strategy, preset),
		Now:      s.now(),
	})
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, req, finishInput{
		subjectID:   candidate.ID,
		subjectType: models.ResultTypeCandidate,
		itemType:    models.ResultTypeJob,
		preset:      preset,
		scored:      scored,
		errs:        mergeItemErrors(loadErrs, scoreErrs, poolIndex),
	})
}

type finishInput struct {
	subjectID   string
	subjectType string
	itemType    string
	preset      string
	scored      []models.MatchResult
	errs        []models.ItemError
}

// finish blends, ranks, sorts and paginates scored results.
func (s *Service) finish(ctx context.Context, req *MatchRequest, in finishInput) (*MatchResponse, error) {
	criteria := req.Ranking
	blended := 0
	if req.BlendUserID != "" && s.deps.Recommender != nil {
		criteria.Boosts, blended = s.blend(ctx, req.BlendUserID, in.itemType, criteria.Boosts, in.scored)
	}

	var predicate ranking.Predicate
	if req.Filters != nil {
		predicate = req.Filters.Match
	}
	ranked, err := s.deps.Ranker.Rank(in.scored, criteria, predicate)
	if err != nil {
		return nil, err
	}

	// Ranking order is kept unless the caller asks for another sort.
	sortBy := &filtering.Sort{Key: string(filtering.SortScore)}
	if req.Sort != nil {
		sortBy.Order = req.Sort.Order
		if req.Sort.Key != "" {
			sortBy.Key = req.Sort.Key
		}
	}
	page, err := s.deps.Pages.Apply(ranked.Items, nil, sortBy, req.Page)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("subject_id", in.subjectID).
		Int("scored", len(in.scored)).
		Int("ranked", ranked.TotalItems).
		Int("errors", len(in.errs)).
		Int("blended", blended).
		Msg("match pipeline completed")

	return &MatchResponse{
		SubjectID:   in.subjectID,
		SubjectType: in.subjectType,
		Preset:      in.preset,
		Items:       page.Items,
		TotalItems:  page.TotalItems,
		Page:        page.Page,
		Limit:       page.Limit,
		TotalPages:  page.TotalPages,
		HasMore:     page.HasMore,
		SortKey:     page.SortKey,
		SortOrder:   page.SortOrder,
		Ranking:     ranked.Metadata,
		Blended:     blended,
		Errors:      in.errs,
	}, nil
}

// blend merges recommendation scores for scored items into boosts. Boosts
// given in the request win. Recommender failures degrade to no blending.
func (s *Service) blend(ctx context.Context, userID, itemType string, boosts map[string]float64, scored []models.MatchResult) (map[string]float64, int) {
	recs, err := s.deps.Recommender.Recommend(ctx, userID, itemType, recommend.Options{Limit: s.cfg.BlendLimit})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("recommendation blend skipped")
		return boosts, 0
	}

	inPool := make(map[string]struct{}, len(scored))
	for i := range scored {
		inPool[scored[i].ID] = struct{}{}
	}

	merged := make(map[string]float64, len(boosts)+len(recs))
	for id, b := range boosts {
		merged[id] = b
	}
	blended := 0
	for _, r := range recs {
		if _, ok := inPool[r.ItemID]; !ok {
			continue
		}
		if _, ok := boosts[r.ItemID]; ok {
			continue
		}
		merged[r.ItemID] = clamp01(r.Score)
		blended++
	}
	return merged, blended
}

// loadPool reads profiles concurrently. Missing profiles become item errors;
// any other read failure aborts the load. poolIndex[i] is the position of
// found[i] in ids.
func loadPool[T any](ctx context.Context, workers int, ids []string, get func(context.Context, string) (*T, error)) (found []*T, poolIndex []int, errs []models.ItemError, err error) {
	out := make([]*T, len(ids))
	missing := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range ids {
		g.Go(func() error {
			p, err := get(gctx, id)
			if err != nil {
				if errors.Is(err, profiles.ErrNotFound) {
					missing[i] = true
					return nil
				}
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	found = make([]*T, 0, len(ids))
	poolIndex = make([]int, 0, len(ids))
	for i := range ids {
		if missing[i] {
			errs = append(errs, models.ItemError{Index: i, ID: ids[i], Message: "profile not found"})
			continue
		}
		found = append(found, out[i])
		poolIndex = append(poolIndex, i)
	}
	return found, poolIndex, errs, nil
}

// mergeItemErrors maps scoring errors, indexed into the loaded profiles, back
// to the requested pool and orders all errors by that index.
func mergeItemErrors(loadErrs, scoreErrs []models.ItemError, poolIndex []int) []models.ItemError {
	if len(loadErrs)+len(scoreErrs) == 0 {
		return nil
	}
	merged := make([]models.ItemError, 0, len(loadErrs)+len(scoreErrs))
	merged = append(merged, loadErrs...)
	for _, e := range scoreErrs {
		if e.Index >= 0 && e.Index < len(poolIndex) {
			e.Index = poolIndex[e.Index]
		}
		merged = append(merged, e)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Index < merged[j].Index })
	return merged
}

func strategyName(requested, preset string) string {
	if requested != "" {
		return requested
	}
	return preset
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
