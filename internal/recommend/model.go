// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
)

// factorModel is an immutable set of learned latent factors. A new model is
// built off to the side and published with a single pointer swap, so readers
// always see either the previous model or the complete new one.
type factorModel struct {
	users     map[string][]float64
	items     map[string][]float64
	version   int
	trainedAt time.Time
	rmse      float64
	mae       float64
}

// predict returns the dot product of the user and item factors.
func (m *factorModel) predict(userID, itemID string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	p, ok := m.users[userID]
	if !ok {
		return 0, false
	}
	q, ok := m.items[itemID]
	if !ok {
		return 0, false
	}
	return dot(p, q), true
}

func (m *factorModel) hasUser(userID string) bool {
	if m == nil {
		return false
	}
	_, ok := m.users[userID]
	return ok
}

type sample struct {
	user   string
	item   string
	weight float64
}

// collectSamples snapshots every (user, item, weight) cell in user then item
// order so that training is reproducible for a given seed.
func (r *Recommender) collectSamples() []sample {
	var out []sample
	for _, u := range r.matrix.users.keys() {
		row := r.matrix.userRow(u)
		items := make([]string, 0, len(row))
		for i := range row {
			items = append(items, i)
		}
		sort.Strings(items)
		for _, i := range items {
			out = append(out, sample{user: u, item: i, weight: row[i]})
		}
	}
	return out
}

// Train fits latent factors to every recorded interaction with stochastic
// gradient descent and publishes them atomically.
//
// With no samples, or fewer than Training.MinSamples, nothing is trained: the result
// is flagged Insufficient with zero RMSE and MAE, a warning is logged, and the
// previous factors stay in place. Concurrent Recommend calls are never blocked.
// Only one training run may proceed at a time.
func (r *Recommender) Train(ctx context.Context) (*TrainingResult, error) {
	if !r.trainMu.TryLock() {
		return nil, ErrTrainingInProgress
	}
	defer r.trainMu.Unlock()

	logger := logging.CtxWith(logging.ContextWithLogger(ctx, r.logger)).Logger()
	start := time.Now()
	samples := r.collectSamples()
	users, items := distinct(samples)
	prev := r.model.Load()
	version := 0
	if prev != nil {
		version = prev.version
	}

	res := &TrainingResult{
		Samples:    len(samples),
		Users:      users,
		Items:      items,
		Iterations: r.cfg.Training.Iterations,
		Version:    version,
	}

	if len(samples) == 0 || len(samples) < r.cfg.Training.MinSamples {
		res.Insufficient = true
		res.Iterations = 0
		res.Duration = time.Since(start)
		metrics.RecordTraining("insufficient_data", 0, res.Duration)
		logger.Warn().
			Int("samples", len(samples)).
			Int("min_samples", r.cfg.Training.MinSamples).
			Msg("insufficient training data, keeping previous factors")
		return res, nil
	}

	model, err := r.fit(ctx, samples)
	if err != nil {
		metrics.RecordTraining("error", 0, time.Since(start))
		logger.Error().Err(err).Int("samples", len(samples)).Msg("training failed")
		return nil, err
	}
	model.version = version + 1
	model.trainedAt = time.Now()
	r.model.Store(model)

	res.RMSE = model.rmse
	res.MAE = model.mae
	res.Version = model.version
	res.TrainedAt = model.trainedAt
	res.Duration = time.Since(start)

	metrics.RecordTraining("trained", model.rmse, res.Duration)
	logger.Info().
		Int("samples", len(samples)).
		Int("users", users).
		Int("items", items).
		Int("version", model.version).
		Float64("rmse", model.rmse).
		Float64("mae", model.mae).
		Dur("duration", res.Duration).
		Msg("latent factors trained")
	return res, nil
}

// fit runs SGD over samples and returns a model with its training error.
func (r *Recommender) fit(ctx context.Context, samples []sample) (*factorModel, error) {
	tc := r.cfg.Training
	rng := rand.New(rand.NewSource(r.cfg.Seed)) //nolint:gosec // not security sensitive

	m := &factorModel{
		users: make(map[string][]float64),
		items: make(map[string][]float64),
	}
	initVec := func() []float64 {
		v := make([]float64, tc.Factors)
		for f := range v {
			v[f] = rng.NormFloat64() * 0.1
		}
		return v
	}
	for _, s := range samples {
		if _, ok := m.users[s.user]; !ok {
			m.users[s.user] = initVec()
		}
		if _, ok := m.items[s.item]; !ok {
			m.items[s.item] = initVec()
		}
	}

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}

	lr, reg := tc.LearningRate, tc.Regularization
	for epoch := 0; epoch < tc.Iterations; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, idx := range order {
			s := samples[idx]
			p, q := m.users[s.user], m.items[s.item]
			e := s.weight - dot(p, q)
			for f := range p {
				pf, qf := p[f], q[f]
				p[f] += lr * (e*qf - reg*pf)
				q[f] += lr * (e*pf - reg*qf)
			}
		}
	}

	var se, ae float64
	for _, s := range samples {
		e := s.weight - dot(m.users[s.user], m.items[s.item])
		se += e * e
		ae += math.Abs(e)
	}
	n := float64(len(samples))
	m.rmse = math.Sqrt(se / n)
	m.mae = ae / n
	if math.IsNaN(m.rmse) || math.IsInf(m.rmse, 0) {
		return nil, fmt.Errorf("training diverged: rmse %v (reduce learning_rate)", m.rmse)
	}
	return m, nil
}

func distinct(samples []sample) (users, items int) {
	u := make(map[string]struct{})
	i := make(map[string]struct{})
	for _, s := range samples {
		u[s.user] = struct{}{}
		i[s.item] = struct{}{}
	}
	return len(u), len(i)
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
