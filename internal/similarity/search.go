// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"fmt"
	"math"
	"sort"
)

// DefaultK is used when Options.K is zero.
const DefaultK = 10

// Options configure a top-K search.
type Options struct {
	Metric Metric `json:"metric,omitempty"`
	K      int    `json:"k,omitempty" validate:"gte=0"`

	// Threshold is the minimum score a hit must reach. It is never negative,
	// so the zero default still drops records scoring below 0, such as
	// opposing vectors under cosine or dot. A query can therefore return fewer
	// than K hits from a pool larger than K.
	Threshold float64 `json:"threshold,omitempty" validate:"gte=0,lte=1"`

	Filter Filter `json:"filter,omitempty" validate:"dive"`

	// DisableNormalization compares raw vectors instead of unit vectors.
	DisableNormalization bool `json:"disable_normalization,omitempty"`
}

// Result is one ranked hit.
type Result struct {
	ID            string                 `json:"id"`
	Score         float64                `json:"score"`
	RelativeScore float64                `json:"relative_score"`
	Rank          int                    `json:"rank"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// SearchResult is the output of a top-K search.
type SearchResult struct {
	Results []Result `json:"results"`
	Metric  string   `json:"metric"`

	// Approximate is true when only part of the pool was scored.
	Approximate bool `json:"approximate"`

	// Scanned is the number of pool records that were scored.
	Scanned int `json:"scanned"`
}

// prepared holds validated, normalized inputs ready for scoring.
type prepared struct {
	query Vector
	pool  []Record // filtered, vectors normalized when requested
	opts  Options
}

// prepare validates options, the query and every pool vector, then applies the
// metadata filter. Validation fails closed: nothing is scored on any error.
func prepare(query Vector, pool []Record, opts Options) (*prepared, error) {
	metric, err := ParseMetric(string(opts.Metric))
	if err != nil {
		return nil, err
	}
	opts.Metric = metric
	if opts.K < 0 {
		return nil, invalid(ErrInvalidOptions, "k", "must be non-negative, got %d", opts.K)
	}
	if opts.K == 0 {
		opts.K = DefaultK
	}
	if math.IsNaN(opts.Threshold) || opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, invalid(ErrInvalidOptions, "threshold", "must be in [0,1], got %v", opts.Threshold)
	}
	if err := opts.Filter.Validate(); err != nil {
		return nil, err
	}

	if err := validateVector("query", query); err != nil {
		return nil, err
	}
	for i := range pool {
		field := fmt.Sprintf("pool[%d]", i)
		if err := validateVector(field, pool[i].Vector); err != nil {
			return nil, err
		}
		if len(pool[i].Vector) != len(query) {
			return nil, invalid(ErrDimensionMismatch, field, "dimension %d, want %d", len(pool[i].Vector), len(query))
		}
	}

	p := &prepared{query: query, opts: opts, pool: make([]Record, 0, len(pool))}
	normalize := !opts.DisableNormalization
	if normalize {
		p.query = Normalize(query)
	}
	for _, r := range pool {
		if !opts.Filter.Matches(r.Metadata) {
			continue
		}
		if normalize {
			r.Vector = Normalize(r.Vector)
		}
		p.pool = append(p.pool, r)
	}
	return p, nil
}

// rankRecords scores records, drops those under the threshold, sorts
// descending with ties kept in pool order, truncates to K, and assigns ranks
// and relative scores.
func rankRecords(query Vector, records []Record, opts Options) []Result {
	hits := make([]Result, 0, len(records))
	for _, r := range records {
		s := opts.Metric.score(query, r.Vector)
		if s < opts.Threshold {
			continue
		}
		hits = append(hits, Result{ID: r.ID, Score: s, Metadata: r.Metadata})
	}
	return finalize(hits, opts.K)
}

func finalize(hits []Result, k int) []Result {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	if len(hits) == 0 {
		return hits
	}
	top := hits[0].Score
	for i := range hits {
		hits[i].Rank = i + 1
		if top > 0 {
			hits[i].RelativeScore = hits[i].Score / top
		}
	}
	return hits
}

// TopK scores every pool record against query and returns the best K.
//
// The metadata filter runs before scoring and the threshold after it. Results
// are sorted by descending score; equal scores keep their pool order. Rank is
// 1-based and RelativeScore is score divided by the top score.
func TopK(query Vector, pool []Record, opts Options) (*SearchResult, error) {
	p, err := prepare(query, pool, opts)
	if err != nil {
		return nil, err
	}
	return &SearchResult{
		Results: rankRecords(p.query, p.pool, p.opts),
		Metric:  string(p.opts.Metric),
		Scanned: len(p.pool),
	}, nil
}
