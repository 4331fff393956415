// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

// Package algorithms implements cold-start fallbacks for the recommender.
//
// Each fallback implements recommend.Fallback and is registered with
// recommend.NewRecommender in the order it should be tried:
//
//   - ContentBased: feature overlap with the user's few existing items
//   - Popularity: total interaction weight across all users
//
// Fallbacks hold no mutable state and read interaction data only through
// recommend.View, so they are safe for concurrent use.
package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/talentmatch/internal/recommend"
)

// Ensure all fallbacks implement the interface.
var (
	_ recommend.Fallback = (*ContentBased)(nil)
	_ recommend.Fallback = (*Popularity)(nil)
)

// normalizeScores scales scores so the highest is 1.
func normalizeScores(scores map[string]float64) map[string]float64 {
	var top float64
	for _, s := range scores {
		if s > top {
			top = s
		}
	}
	if top <= 0 {
		return scores
	}
	for id, s := range scores {
		scores[id] = s / top
	}
	return scores
}

// rankScores orders scores descending, breaking ties by item ID, and keeps
// at most limit.
func rankScores(scores map[string]float64, limit int) []recommend.ScoredItem {
	out := make([]recommend.ScoredItem, 0, len(scores))
	for id, s := range scores {
		out = append(out, recommend.ScoredItem{ItemID: id, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ItemID < out[j].ItemID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
