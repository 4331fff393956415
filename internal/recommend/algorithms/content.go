// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package algorithms

import (
	"context"
	"strings"

	"github.com/tomtom215/talentmatch/internal/recommend"
)

// FeatureFunc returns the descriptive features of an item (skills, industry,
// keywords). ok is false for unknown items.
type FeatureFunc func(itemID string) (features []string, ok bool)

// ContentBased recommends items whose features overlap with the features of
// the items a user has already interacted with. It serves users with a few
// interactions, too few for collaborative filtering but enough to describe
// their interests.
//
// The user profile is the interaction-weighted bag of features over their
// items, normalized to sum to 1. An item scores the total profile weight of
// its features:
//
//	score(item) = sum(profile[f]) for f in features(item)
type ContentBased struct {
	features FeatureFunc
}

// ContentBasedConfig contains configuration for content-based filtering.
type ContentBasedConfig struct {
	// Features looks up item features. A nil func disables the fallback.
	Features FeatureFunc
}

// NewContentBased creates a content-based fallback.
func NewContentBased(cfg ContentBasedConfig) *ContentBased {
	return &ContentBased{features: cfg.Features}
}

// Name returns "content".
func (c *ContentBased) Name() string {
	return "content"
}

// Recommend scores unseen items of itemType against the user's profile.
// Users with no history or no featured items get no results.
func (c *ContentBased) Recommend(ctx context.Context, view recommend.View, userID, itemType string, exclude map[string]struct{}, limit int) ([]recommend.ScoredItem, error) {
	if c.features == nil {
		return nil, nil
	}

	prof := c.profile(view.UserItems(userID))
	if len(prof) == 0 {
		return nil, nil
	}

	scores := make(map[string]float64)
	for _, id := range view.Items(itemType) {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		if _, skip := exclude[id]; skip {
			continue
		}
		feats, ok := c.features(id)
		if !ok {
			continue
		}
		if s := profileMatch(prof, feats); s > 0 {
			scores[id] = s
		}
	}
	return rankScores(normalizeScores(scores), limit), nil
}

// profile builds the normalized feature preference map for a user's items.
func (c *ContentBased) profile(items map[string]float64) map[string]float64 {
	prof := make(map[string]float64)
	for id, w := range items {
		feats, ok := c.features(id)
		if !ok {
			continue
		}
		for _, f := range uniqueLower(feats) {
			prof[f] += w
		}
	}
	normalizeMap(prof)
	return prof
}

// profileMatch computes how well item features match user preferences.
func profileMatch(prof map[string]float64, features []string) float64 {
	var total float64
	for _, f := range uniqueLower(features) {
		total += prof[f]
	}
	return total
}

// normalizeMap normalizes map values to sum to 1.
func normalizeMap(m map[string]float64) {
	var sum float64
	for _, v := range m {
		sum += v
	}
	if sum > 0 {
		for k := range m {
			m[k] /= sum
		}
	}
}

func uniqueLower(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		k := strings.ToLower(strings.TrimSpace(v))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
