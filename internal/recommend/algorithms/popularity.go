// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package algorithms

import (
	"context"

	"github.com/tomtom215/talentmatch/internal/recommend"
)

// Popularity ranks items by their total interaction weight across all users.
// It needs no history for the requesting user, which makes it the standard
// cold-start fallback.
//
//	score(item) = sum(weight) over all interactions with item
//
// Scores are normalized so the most popular item scores 1.
type Popularity struct {
	minWeight float64
}

// PopularityConfig contains configuration for the popularity fallback.
type PopularityConfig struct {
	// MinWeight drops items whose total weight is below this value.
	MinWeight float64
}

// NewPopularity creates a popularity fallback.
func NewPopularity(cfg PopularityConfig) *Popularity {
	return &Popularity{minWeight: cfg.MinWeight}
}

// Name returns "popularity".
func (p *Popularity) Name() string {
	return "popularity"
}

// Recommend returns the most popular unseen items of itemType.
func (p *Popularity) Recommend(ctx context.Context, view recommend.View, _, itemType string, exclude map[string]struct{}, limit int) ([]recommend.ScoredItem, error) {
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	scores := view.Popularity(itemType)
	for id, w := range scores {
		if _, skip := exclude[id]; skip || w < p.minWeight || w <= 0 {
			delete(scores, id)
		}
	}
	return rankScores(normalizeScores(scores), limit), nil
}
