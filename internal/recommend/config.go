// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"fmt"
	"math"
)

// Config contains all configuration for the recommender.
type Config struct {
	// ColdStartThreshold is the interaction count at which a user turns warm.
	ColdStartThreshold int `json:"cold_start_threshold"`

	// ColdStartConfidence tags every fallback recommendation.
	ColdStartConfidence float64 `json:"cold_start_confidence"`

	// SimilarityThreshold is the minimum cosine similarity for a neighbor
	// user or item to contribute.
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// Neighbors caps how many similar users contribute in user-based mode.
	Neighbors int `json:"neighbors"`

	// DefaultLimit applies when a request's limit is zero.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps a request's limit.
	MaxLimit int `json:"max_limit"`

	// Hybrid holds the per-mode weights for hybrid mode.
	Hybrid HybridWeights `json:"hybrid"`

	// Training contains latent-factor training parameters.
	Training TrainingConfig `json:"training"`

	// Shards is the number of lock shards in the interaction matrix.
	Shards int `json:"shards"`

	// Seed seeds factor initialization, sample shuffling and the random
	// fallback. If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// HybridWeights combine per-mode scores in hybrid mode.
type HybridWeights struct {
	UserBased float64 `json:"user_based"`
	ItemBased float64 `json:"item_based"`
	Latent    float64 `json:"latent"`
}

// TrainingConfig contains SGD parameters for latent factors.
type TrainingConfig struct {
	// Factors is the latent vector dimension.
	Factors int `json:"factors"`

	// Iterations is the number of SGD epochs.
	Iterations int `json:"iterations"`

	// LearningRate is the SGD step size.
	LearningRate float64 `json:"learning_rate"`

	// Regularization is the L2 penalty on factor vectors.
	Regularization float64 `json:"regularization"`

	// MinSamples is the number of user-item pairs required to train.
	MinSamples int `json:"min_samples"`
}

// DefaultConfig returns the default recommender configuration.
func DefaultConfig() *Config {
	return &Config{
		ColdStartThreshold:  10,
		ColdStartConfidence: 0.3,
		SimilarityThreshold: 0.1,
		Neighbors:           50,
		DefaultLimit:        10,
		MaxLimit:            100,
		Hybrid: HybridWeights{
			UserBased: 0.3,
			ItemBased: 0.3,
			Latent:    0.4,
		},
		Training: TrainingConfig{
			Factors:        16,
			Iterations:     30,
			LearningRate:   0.01,
			Regularization: 0.02,
			MinSamples:     100,
		},
		Shards: 16,
		Seed:   42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ColdStartThreshold < 0 {
		return fmt.Errorf("cold_start_threshold must be non-negative, got %d", c.ColdStartThreshold)
	}
	if c.ColdStartConfidence < 0 || c.ColdStartConfidence > 1 {
		return fmt.Errorf("cold_start_confidence must be in [0, 1], got %f", c.ColdStartConfidence)
	}
	if c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in [-1, 1], got %f", c.SimilarityThreshold)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be positive, got %d", c.Neighbors)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be at least default_limit (%d), got %d", c.DefaultLimit, c.MaxLimit)
	}

	h := c.Hybrid
	for name, w := range map[string]float64{"user_based": h.UserBased, "item_based": h.ItemBased, "latent": h.Latent} {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("hybrid.%s must be non-negative and finite, got %f", name, w)
		}
	}
	if h.UserBased+h.ItemBased+h.Latent <= 0 {
		return fmt.Errorf("hybrid weights must not all be zero")
	}

	t := c.Training
	if t.Factors < 1 {
		return fmt.Errorf("training.factors must be positive, got %d", t.Factors)
	}
	if t.Iterations < 1 {
		return fmt.Errorf("training.iterations must be positive, got %d", t.Iterations)
	}
	if t.LearningRate <= 0 || t.LearningRate > 1 {
		return fmt.Errorf("training.learning_rate must be in (0, 1], got %f", t.LearningRate)
	}
	if t.Regularization < 0 {
		return fmt.Errorf("training.regularization must be non-negative, got %f", t.Regularization)
	}
	if t.MinSamples < 0 {
		return fmt.Errorf("training.min_samples must be non-negative, got %d", t.MinSamples)
	}

	if c.Shards < 1 {
		return fmt.Errorf("shards must be positive, got %d", c.Shards)
	}
	return nil
}
