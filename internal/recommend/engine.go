// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
)

// Recommender maintains the user x item interaction matrix and produces
// collaborative-filtering recommendations. It is safe for concurrent use.
//
// Users with fewer interactions than Config.ColdStartThreshold are cold and
// are served by the fallback chain. Warm users are served by the requested
// mode, dropping to the fallback chain when that mode yields nothing.
type Recommender struct {
	cfg    *Config
	logger zerolog.Logger

	matrix       *matrix
	interactions atomic.Int64
	users        atomic.Int64

	// model is replaced wholesale by Train.
	model   atomic.Pointer[factorModel]
	trainMu sync.Mutex

	fallbacks []Fallback
}

// NewRecommender creates a recommender. Fallbacks are tried in order for
// cold users, and a seeded random fallback is always appended last.
func NewRecommender(cfg *Config, fallbacks ...Fallback) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	chain := make([]Fallback, 0, len(fallbacks)+1)
	for _, f := range fallbacks {
		if f != nil {
			chain = append(chain, f)
		}
	}
	chain = append(chain, newRandomFallback(cfg.Seed))

	r := &Recommender{
		cfg:       cfg,
		logger:    logging.WithComponent("recommend"),
		matrix:    newMatrix(cfg.Shards),
		fallbacks: chain,
	}
	for _, f := range chain {
		r.logger.Debug().Str("fallback", f.Name()).Msg("registered fallback")
	}
	return r, nil
}

// Record folds one interaction into the matrix in constant time.
func (r *Recommender) Record(in *Interaction) error {
	if err := in.Validate(); err != nil {
		return err
	}
	r.apply(in)
	metrics.RecordInteraction(string(in.Type), int(r.users.Load()))
	return nil
}

func (r *Recommender) apply(in *Interaction) {
	if r.matrix.add(in.UserID, in.ItemID, in.ItemType, in.Weight()) {
		r.users.Add(1)
	}
	r.interactions.Add(1)
}

// Rebuild discards the matrix and refolds every interaction, as at cold
// start from the event log. Invalid interactions are logged and skipped.
// It returns the number of interactions applied. Learned factors are kept
// until the next Train.
func (r *Recommender) Rebuild(interactions []Interaction) int {
	r.matrix.reset()
	r.interactions.Store(0)
	r.users.Store(0)

	applied := 0
	for i := range interactions {
		in := &interactions[i]
		if err := in.Validate(); err != nil {
			r.logger.Warn().Err(err).Int("index", i).Str("id", in.ID).Msg("skipping invalid interaction during rebuild")
			continue
		}
		r.apply(in)
		applied++
	}

	r.logger.Info().
		Int("interactions", applied).
		Int("skipped", len(interactions)-applied).
		Int("users", int(r.users.Load())).
		Msg("interaction matrix rebuilt")
	return applied
}

// UserState reports whether the user is cold or warm.
func (r *Recommender) UserState(userID string) UserStateInfo {
	count, items := r.matrix.users.count(userID)
	state := StateCold
	if count >= r.cfg.ColdStartThreshold {
		state = StateWarm
	}
	return UserStateInfo{
		UserID:       userID,
		State:        state,
		Interactions: count,
		Items:        items,
		Threshold:    r.cfg.ColdStartThreshold,
		HasFactors:   r.model.Load().hasUser(userID),
	}
}

// Stats summarizes the matrix and the current model.
func (r *Recommender) Stats() Stats {
	s := Stats{
		Interactions: int(r.interactions.Load()),
		Items:        len(r.matrix.items.keys()),
	}
	r.matrix.users.each(func(_ string, row *row) {
		s.Users++
		if row.count >= r.cfg.ColdStartThreshold {
			s.WarmUsers++
		}
	})
	if m := r.model.Load(); m != nil {
		s.ModelVersion = m.version
		s.TrainedAt = m.trainedAt
		s.RMSE = m.rmse
		s.MAE = m.mae
	}
	return s
}

// Recommend returns up to opts.Limit items of itemType for userID. An empty
// itemType matches every item.
func (r *Recommender) Recommend(ctx context.Context, userID, itemType string, opts Options) ([]Recommendation, error) {
	start := time.Now()
	mode, err := ParseMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, invalidRequest("user_id", "is required")
	}
	if opts.Limit < 0 {
		return nil, invalidRequest("limit", fmt.Sprintf("must be non-negative, got %d", opts.Limit))
	}
	limit := opts.Limit
	if limit == 0 {
		limit = r.cfg.DefaultLimit
	}
	if limit > r.cfg.MaxLimit {
		limit = r.cfg.MaxLimit
	}

	logger := logging.Ctx(ctx).With().Str("component", "recommend").Str("user_id", userID).Str("mode", string(mode)).Logger()
	seen := r.matrix.userRow(userID)
	state := r.UserState(userID)

	var recs []Recommendation
	algorithm := AlgorithmColdStart
	if state.State == StateWarm {
		recs, err = r.recommendWarm(ctx, userID, itemType, mode, seen, opts.ExcludeSeen, limit, state.Interactions)
		if err != nil {
			return nil, err
		}
		algorithm = string(mode)
	}

	if len(recs) == 0 {
		recs, err = r.recommendCold(ctx, userID, itemType, seen, limit)
		if err != nil {
			return nil, err
		}
		algorithm = AlgorithmColdStart
	}

	metrics.RecordRecommendation(algorithm, time.Since(start))
	logger.Debug().
		Str("state", string(state.State)).
		Str("algorithm", algorithm).
		Int("returned", len(recs)).
		Msg("recommendations generated")
	return recs, nil
}

func (r *Recommender) recommendWarm(ctx context.Context, userID, itemType string, mode Mode, seen map[string]float64, excludeSeen bool, limit, count int) ([]Recommendation, error) {
	var (
		scores map[string]float64
		parts  map[string]map[string]float64
		err    error
	)
	if mode == ModeHybrid {
		parts, err = r.hybridParts(ctx, userID, itemType, seen, excludeSeen)
		scores = make(map[string]float64, len(parts))
		for item, comps := range parts {
			scores[item] = r.combine(comps)
		}
	} else {
		scores, err = r.modeFunc(mode)(ctx, userID, itemType, seen, excludeSeen)
	}
	if err != nil {
		return nil, err
	}

	confidence := r.warmConfidence(count)
	top := topItems(scores, limit)
	out := make([]Recommendation, len(top))
	for i, it := range top {
		out[i] = Recommendation{
			ItemID:     it.ItemID,
			ItemType:   r.matrix.itemType(it.ItemID),
			Score:      it.Score,
			Confidence: confidence,
			Algorithm:  string(mode),
			Reason:     modeReason(mode),
			Components: parts[it.ItemID],
		}
	}
	return out, nil
}

// recommendCold walks the fallback chain until one fallback returns items.
func (r *Recommender) recommendCold(ctx context.Context, userID, itemType string, seen map[string]float64, limit int) ([]Recommendation, error) {
	exclude := make(map[string]struct{}, len(seen))
	for item := range seen {
		exclude[item] = struct{}{}
	}
	view := matrixView{m: r.matrix}

	for _, f := range r.fallbacks {
		items, err := f.Recommend(ctx, view, userID, itemType, exclude, limit)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Warn().Err(err).Str("fallback", f.Name()).Msg("fallback failed, trying next")
			continue
		}
		if len(items) == 0 {
			continue
		}

		metrics.RecordColdStart(f.Name())
		if len(items) > limit {
			items = items[:limit]
		}
		out := make([]Recommendation, len(items))
		for i, it := range items {
			out[i] = Recommendation{
				ItemID:     it.ItemID,
				ItemType:   r.matrix.itemType(it.ItemID),
				Score:      clamp01(it.Score),
				Confidence: r.cfg.ColdStartConfidence,
				Algorithm:  AlgorithmColdStart,
				Reason:     "cold start: " + f.Name(),
			}
		}
		return out, nil
	}
	return []Recommendation{}, nil
}

// warmConfidence rises linearly from 0.5 at the cold-start threshold to 1 at
// twice the threshold.
func (r *Recommender) warmConfidence(count int) float64 {
	t := r.cfg.ColdStartThreshold
	if t <= 0 {
		return 1
	}
	return clamp01(0.5 + 0.5*float64(count-t)/float64(t))
}

func modeReason(mode Mode) string {
	switch mode {
	case ModeUserBased:
		return "users with similar activity interacted with this"
	case ModeItemBased:
		return "similar to items you interacted with"
	case ModeLatent:
		return "predicted from your interaction history"
	default:
		return "combined collaborative signals"
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
