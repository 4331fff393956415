// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
)

// Config configures a Searcher.
type Config struct {
	// DefaultMetric applies when a query names no metric.
	DefaultMetric Metric

	// Normalize L2-normalizes vectors before comparison.
	Normalize bool

	// ApproximateThreshold is the pool size at and above which searches use
	// ApproximateTopK. Zero disables automatic approximate search.
	ApproximateThreshold int

	// Seed seeds cluster selection. Zero seeds from the clock.
	Seed int64
}

// DefaultConfig returns cosine, normalized, approximate from 1000 records.
func DefaultConfig() Config {
	return Config{
		DefaultMetric:        MetricCosine,
		Normalize:            true,
		ApproximateThreshold: 1000,
	}
}

// Query is a search request handled by Searcher.
type Query struct {
	Vector Vector
	Pool   []Record
	Options

	// Fusion, when set, combines several metrics and ignores Options.Metric.
	// Fused searches are always exact.
	Fusion []MetricWeight

	// Approximate forces clustered search regardless of pool size.
	Approximate bool

	// Seed, when set, makes this query's clustering reproducible.
	Seed *int64
}

// Searcher dispatches queries to exact, fused, or approximate search and
// records metrics. It is safe for concurrent use.
type Searcher struct {
	cfg    Config
	logger zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSearcher creates a Searcher.
func NewSearcher(cfg Config) *Searcher {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.DefaultMetric == "" {
		cfg.DefaultMetric = MetricCosine
	}
	return &Searcher{
		cfg:    cfg,
		logger: logging.WithComponent("similarity"),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // not security sensitive
	}
}

// DefaultMetric returns the metric used when a query names none.
func (s *Searcher) DefaultMetric() Metric {
	return s.cfg.DefaultMetric
}

// Compare returns the similarity of a and b under metric, falling back to the
// configured default metric.
func (s *Searcher) Compare(a, b Vector, metric Metric) (float64, error) {
	if metric == "" {
		metric = s.cfg.DefaultMetric
	}
	return Similarity(a, b, metric, s.cfg.Normalize)
}

// Search runs q.
func (s *Searcher) Search(ctx context.Context, q *Query) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	opts := q.Options
	if opts.Metric == "" {
		opts.Metric = s.cfg.DefaultMetric
	}
	if !s.cfg.Normalize {
		opts.DisableNormalization = true
	}

	var (
		res *SearchResult
		err error
	)
	switch {
	case len(q.Fusion) > 0:
		res, err = FusedTopK(q.Vector, q.Pool, q.Fusion, opts)
	case q.Approximate || (s.cfg.ApproximateThreshold > 0 && len(q.Pool) >= s.cfg.ApproximateThreshold):
		res, err = s.approximate(q, opts)
	default:
		res, err = TopK(q.Vector, q.Pool, opts)
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordSimilaritySearch(res.Metric, res.Approximate, res.Scanned, time.Since(start))
	logging.Ctx(ctx).Debug().
		Str("metric", res.Metric).
		Bool("approximate", res.Approximate).
		Int("pool", len(q.Pool)).
		Int("scanned", res.Scanned).
		Int("results", len(res.Results)).
		Msg("similarity search")
	return res, nil
}

func (s *Searcher) approximate(q *Query, opts Options) (*SearchResult, error) {
	if q.Seed != nil {
		return ApproximateTopK(q.Vector, q.Pool, opts, rand.New(rand.NewSource(*q.Seed))) //nolint:gosec // not security sensitive
	}
	// *rand.Rand is not safe for concurrent use.
	s.mu.Lock()
	defer s.mu.Unlock()
	return ApproximateTopK(q.Vector, q.Pool, opts, s.rng)
}
