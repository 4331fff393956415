// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"context"
	"math/rand"
	"sync"
)

// View is the read-only interaction data a Fallback may consult.
type View interface {
	// UserItems returns a copy of the user's item weights.
	UserItems(userID string) map[string]float64

	// Popularity returns the total interaction weight per item of itemType.
	// An empty itemType matches every item.
	Popularity(itemType string) map[string]float64

	// Items returns every tracked item of itemType in sorted order.
	Items(itemType string) []string
}

// Fallback produces recommendations for users the collaborative modes cannot
// serve. Fallbacks are tried in registration order until one returns items.
type Fallback interface {
	// Name identifies the fallback in metrics and results.
	Name() string

	// Recommend returns up to limit items of itemType, best first, never
	// including any item in exclude. An empty result passes to the next
	// fallback.
	Recommend(ctx context.Context, view View, userID, itemType string, exclude map[string]struct{}, limit int) ([]ScoredItem, error)
}

type matrixView struct {
	m *matrix
}

func (v matrixView) UserItems(userID string) map[string]float64 { return v.m.userRow(userID) }

func (v matrixView) Popularity(itemType string) map[string]float64 { return v.m.popularity(itemType) }

func (v matrixView) Items(itemType string) []string { return v.m.itemsOfType(itemType) }

// randomFallback is the last link of every chain: a seeded shuffle of the
// tracked items.
type randomFallback struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newRandomFallback(seed int64) *randomFallback {
	return &randomFallback{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // not security sensitive
}

func (f *randomFallback) Name() string { return "random" }

func (f *randomFallback) Recommend(_ context.Context, view View, _, itemType string, exclude map[string]struct{}, limit int) ([]ScoredItem, error) {
	items := view.Items(itemType)
	pool := items[:0]
	for _, id := range items {
		if _, skip := exclude[id]; !skip {
			pool = append(pool, id)
		}
	}

	f.mu.Lock()
	f.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	f.mu.Unlock()

	if len(pool) > limit {
		pool = pool[:limit]
	}
	out := make([]ScoredItem, len(pool))
	for i, id := range pool {
		out[i] = ScoredItem{ItemID: id}
	}
	return out, nil
}
