// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// scoreFunc produces raw item scores for one mode, normalized to (0,1].
type scoreFunc func(ctx context.Context, userID, itemType string, seen map[string]float64, excludeSeen bool) (map[string]float64, error)

// modeFunc returns the scorer for a single mode. Hybrid is composed from the
// other three in hybridParts.
func (r *Recommender) modeFunc(mode Mode) scoreFunc {
	switch mode {
	case ModeUserBased:
		return r.userBased
	case ModeItemBased:
		return r.itemBased
	default:
		return r.latent
	}
}

type neighbor struct {
	id  string
	sim float64
}

// userBased aggregates the weights of similar users on items the user has
// not seen, each weighted by that user's similarity.
func (r *Recommender) userBased(ctx context.Context, userID, itemType string, seen map[string]float64, _ bool) (map[string]float64, error) {
	var neighbors []neighbor
	rows := make(map[string]map[string]float64)
	for _, other := range r.matrix.users.keys() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if other == userID {
			continue
		}
		row := r.matrix.userRow(other)
		sim, _ := sharedCosine(seen, row)
		if sim <= 0 || sim < r.cfg.SimilarityThreshold {
			continue
		}
		neighbors = append(neighbors, neighbor{id: other, sim: sim})
		rows[other] = row
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].id < neighbors[j].id
	})
	if len(neighbors) > r.cfg.Neighbors {
		neighbors = neighbors[:r.cfg.Neighbors]
	}

	scores := make(map[string]float64)
	for _, n := range neighbors {
		for item, w := range rows[n.id] {
			if _, ok := seen[item]; ok {
				continue
			}
			if itemType != "" && r.matrix.itemType(item) != itemType {
				continue
			}
			scores[item] += n.sim * w
		}
	}
	return normalizeByMax(scores), nil
}

// itemBased scores each unseen item by its similarity to the items the user
// has interacted with, boosted by 10% per co-interacting user.
func (r *Recommender) itemBased(ctx context.Context, _, itemType string, seen map[string]float64, _ bool) (map[string]float64, error) {
	seenRows := make(map[string]map[string]float64, len(seen))
	for item := range seen {
		seenRows[item] = r.matrix.itemRow(item)
	}

	scores := make(map[string]float64)
	for _, candidate := range r.matrix.itemsOfType(itemType) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		candRow := r.matrix.itemRow(candidate)
		for _, seenRow := range seenRows {
			sim, shared := sharedCosine(seenRow, candRow)
			if sim <= 0 || sim < r.cfg.SimilarityThreshold {
				continue
			}
			scores[candidate] += sim * (1 + 0.1*float64(shared))
		}
	}
	return normalizeByMax(scores), nil
}

// latent scores items by the dot product of learned factors. Users or items
// absent from the current model produce no scores.
func (r *Recommender) latent(ctx context.Context, userID, itemType string, seen map[string]float64, excludeSeen bool) (map[string]float64, error) {
	model := r.model.Load()
	if !model.hasUser(userID) {
		return nil, nil
	}
	scores := make(map[string]float64)
	for _, item := range r.matrix.itemsOfType(itemType) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := seen[item]; ok && excludeSeen {
			continue
		}
		if s, ok := model.predict(userID, item); ok && s > 0 {
			scores[item] = s
		}
	}
	return normalizeByMax(scores), nil
}

// hybridParts runs the three modes concurrently and returns per-item
// component scores keyed by mode.
func (r *Recommender) hybridParts(ctx context.Context, userID, itemType string, seen map[string]float64, excludeSeen bool) (map[string]map[string]float64, error) {
	modes := []Mode{ModeUserBased, ModeItemBased, ModeLatent}
	results := make([]map[string]float64, len(modes))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range modes {
		fn := r.modeFunc(m)
		g.Go(func() error {
			s, err := fn(gctx, userID, itemType, seen, excludeSeen)
			results[i] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parts := make(map[string]map[string]float64)
	for i, m := range modes {
		for item, s := range results[i] {
			if parts[item] == nil {
				parts[item] = make(map[string]float64, len(modes))
			}
			parts[item][string(m)] = s
		}
	}
	return parts, nil
}

// combine weights component scores. A mode that did not score an item
// contributes 0.
func (r *Recommender) combine(components map[string]float64) float64 {
	h := r.cfg.Hybrid
	total := h.UserBased + h.ItemBased + h.Latent
	s := h.UserBased*components[string(ModeUserBased)] +
		h.ItemBased*components[string(ModeItemBased)] +
		h.Latent*components[string(ModeLatent)]
	return s / total
}

// sharedCosine is the cosine similarity of two sparse rows where the dot
// product runs over shared keys and the norms over each full row. It also
// returns the number of shared keys.
func sharedCosine(a, b map[string]float64) (float64, int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var d float64
	shared := 0
	for k, va := range a {
		if vb, ok := b[k]; ok {
			d += va * vb
			shared++
		}
	}
	if shared == 0 {
		return 0, 0
	}
	var na, nb float64
	for _, v := range a {
		na += v * v
	}
	for _, v := range b {
		nb += v * v
	}
	if na == 0 || nb == 0 {
		return 0, shared
	}
	return d / math.Sqrt(na*nb), shared
}

// normalizeByMax scales positive scores so the best is 1.
func normalizeByMax(scores map[string]float64) map[string]float64 {
	var top float64
	for _, s := range scores {
		if s > top {
			top = s
		}
	}
	if top <= 0 {
		return scores
	}
	for k, s := range scores {
		scores[k] = s / top
	}
	return scores
}

// topItems orders scores descending with ties broken by item ID and keeps at
// most limit.
func topItems(scores map[string]float64, limit int) []ScoredItem {
	out := make([]ScoredItem, 0, len(scores))
	for id, s := range scores {
		out = append(out, ScoredItem{ItemID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ItemID < out[j].ItemID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
