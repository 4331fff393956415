// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compass() []Record {
	return []Record{
		{ID: "east", Vector: Vector{1, 0}, Metadata: map[string]interface{}{"remote": true, "level": 3}},
		{ID: "northeast", Vector: Vector{1, 1}, Metadata: map[string]interface{}{"remote": false, "level": 4}},
		{ID: "north", Vector: Vector{0, 1}, Metadata: map[string]interface{}{"remote": true, "level": 2}},
		{ID: "west", Vector: Vector{-1, 0}, Metadata: map[string]interface{}{"remote": true, "level": 5}},
	}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func assertRanked(t *testing.T, results []Result) {
	t.Helper()
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank, "rank of %s", r.ID)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Score, r.Score, "results must be sorted descending")
		}
	}
	if len(results) > 0 && results[0].Score > 0 {
		assert.Equal(t, 1.0, results[0].RelativeScore)
	}
}

func TestTopK_OrderingAndRanks(t *testing.T) {
	t.Parallel()

	res, err := TopK(Vector{1, 0}, compass(), Options{K: 10})
	require.NoError(t, err)

	// west scores -1 and falls under the zero threshold.
	assert.Equal(t, []string{"east", "northeast", "north"}, ids(res.Results))
	assertRanked(t, res.Results)
	assert.InDelta(t, 1/math.Sqrt2, res.Results[1].Score, 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, res.Results[1].RelativeScore, 1e-9)
	assert.Equal(t, "cosine", res.Metric)
	assert.Equal(t, 4, res.Scanned)
	assert.False(t, res.Approximate)
}

func TestTopK_TruncatesToK(t *testing.T) {
	t.Parallel()

	res, err := TopK(Vector{1, 0}, compass(), Options{K: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"east", "northeast"}, ids(res.Results))
}

func TestTopK_DefaultK(t *testing.T) {
	t.Parallel()

	pool := make([]Record, 25)
	for i := range pool {
		pool[i] = Record{ID: fmt.Sprintf("r%02d", i), Vector: Vector{1, float64(i)}}
	}
	res, err := TopK(Vector{1, 0}, pool, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Results, DefaultK)
}

func TestTopK_Threshold(t *testing.T) {
	t.Parallel()

	res, err := TopK(Vector{1, 0}, compass(), Options{K: 10, Threshold: 0.5})
	require.NoError(t, err)
	assert.Equal(t, []string{"east", "northeast"}, ids(res.Results))
}

func TestTopK_TiesKeepPoolOrder(t *testing.T) {
	t.Parallel()

	pool := []Record{
		{ID: "b", Vector: Vector{1, 1}},
		{ID: "a", Vector: Vector{1, 1}},
		{ID: "c", Vector: Vector{1, 1}},
	}
	res, err := TopK(Vector{1, 1}, pool, Options{K: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(res.Results))
	assertRanked(t, res.Results)
}

func TestTopK_EmptyPool(t *testing.T) {
	t.Parallel()

	res, err := TopK(Vector{1, 0}, nil, Options{K: 3})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
}

func TestTopK_RejectsBeforeScoring(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query Vector
		pool  []Record
		opts  Options
		want  error
	}{
		{"negative k", Vector{1}, nil, Options{K: -1}, ErrInvalidOptions},
		{"threshold above one", Vector{1}, nil, Options{Threshold: 1.5}, ErrInvalidOptions},
		{"threshold NaN", Vector{1}, nil, Options{Threshold: math.NaN()}, ErrInvalidOptions},
		{"unknown metric", Vector{1}, nil, Options{Metric: "hamming"}, ErrUnknownMetric},
		{"empty query", Vector{}, nil, Options{}, ErrEmptyVector},
		{"pool dimension", Vector{1, 0}, []Record{{ID: "x", Vector: Vector{1, 0}}, {ID: "y", Vector: Vector{1}}}, Options{}, ErrDimensionMismatch},
		{"pool non-finite", Vector{1, 0}, []Record{{ID: "x", Vector: Vector{math.Inf(1), 0}}}, Options{}, ErrNonFinite},
		{"bad filter", Vector{1}, nil, Options{Filter: Filter{{Kind: "regex", Field: "x"}}}, ErrInvalidFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := TopK(tt.query, tt.pool, tt.opts)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTopK_Filter(t *testing.T) {
	t.Parallel()

	res, err := TopK(Vector{1, 0}, compass(), Options{
		K:      10,
		Filter: Filter{{Kind: PredicateEquals, Field: "remote", Value: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"east", "north"}, ids(res.Results))
	assert.Equal(t, 3, res.Scanned, "filter runs before scoring")
}

func TestTopK_DisableNormalization(t *testing.T) {
	t.Parallel()

	pool := []Record{
		{ID: "far", Vector: Vector{10, 0}},
		{ID: "near", Vector: Vector{1, 0.5}},
	}
	res, err := TopK(Vector{1, 0}, pool, Options{K: 2, Metric: MetricEuclidean, DisableNormalization: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"near", "far"}, ids(res.Results))
	assert.InDelta(t, 0.1, res.Results[1].Score, 1e-9)
}

func TestFusedTopK(t *testing.T) {
	t.Parallel()

	pool := []Record{
		{ID: "far", Vector: Vector{10, 0}},
		{ID: "near", Vector: Vector{1, 0.5}},
	}
	weights := []MetricWeight{{Metric: MetricCosine, Weight: 1}, {Metric: MetricEuclidean, Weight: 1}}

	t.Run("union of per-metric top k", func(t *testing.T) {
		t.Parallel()
		res, err := FusedTopK(Vector{1, 0}, pool, weights, Options{K: 2, DisableNormalization: true})
		require.NoError(t, err)
		require.Len(t, res.Results, 2)

		// far: cosine 1, euclidean 1/(1+9). near: cosine 1/sqrt(1.25), euclidean 1/1.5.
		assert.Equal(t, []string{"near", "far"}, ids(res.Results))
		assert.InDelta(t, (1/math.Sqrt(1.25)+1/1.5)/2, res.Results[0].Score, 1e-9)
		assert.InDelta(t, (1+0.1)/2, res.Results[1].Score, 1e-9)
		assert.Equal(t, "fused(cosine,euclidean)", res.Metric)
		assertRanked(t, res.Results)
	})

	t.Run("missing component counts as zero", func(t *testing.T) {
		t.Parallel()
		// With K=1 cosine keeps only far and euclidean keeps only near.
		res, err := FusedTopK(Vector{1, 0}, pool, weights, Options{K: 1, DisableNormalization: true})
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Equal(t, "far", res.Results[0].ID)
		assert.InDelta(t, 0.5, res.Results[0].Score, 1e-9)
	})

	t.Run("weights renormalize", func(t *testing.T) {
		t.Parallel()
		res, err := FusedTopK(Vector{1, 0}, pool, []MetricWeight{{Metric: MetricCosine, Weight: 3}}, Options{K: 2, DisableNormalization: true})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, res.Results[0].Score, 1e-9)
	})

	t.Run("invalid weights", func(t *testing.T) {
		t.Parallel()
		for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
			_, err := FusedTopK(Vector{1, 0}, pool, []MetricWeight{{Metric: MetricCosine, Weight: w}}, Options{})
			assert.ErrorIs(t, err, ErrInvalidOptions, "weight %v", w)
		}
		_, err := FusedTopK(Vector{1, 0}, pool, nil, Options{})
		assert.ErrorIs(t, err, ErrInvalidOptions)
	})
}

func randomPool(n, dim int, seed int64) []Record {
	rng := rand.New(rand.NewSource(seed))
	pool := make([]Record, n)
	for i := range pool {
		v := make(Vector, dim)
		for d := range v {
			v[d] = rng.Float64()*2 - 1
		}
		pool[i] = Record{ID: fmt.Sprintf("r%03d", i), Vector: v}
	}
	return pool
}

func TestTopK_DefaultThresholdDropsNegativeScores(t *testing.T) {
	t.Parallel()

	res, err := TopK(Vector{1, 0}, compass(), Options{K: 4})
	require.NoError(t, err)

	assert.Equal(t, []string{"east", "northeast", "north"}, ids(res.Results))
	assert.Equal(t, 4, res.Scanned)
}

func TestClusterCount(t *testing.T) {
	t.Parallel()

	tests := []struct{ n, want int }{
		{0, 1}, {9, 1}, {10, 1}, {25, 2}, {99, 9}, {100, 10}, {5000, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, clusterCount(tt.n), "n=%d", tt.n)
	}
}

func TestApproximateTopK_Reproducible(t *testing.T) {
	t.Parallel()

	pool := randomPool(200, 8, 1)
	query := pool[17].Vector
	opts := Options{K: 5}

	first, err := ApproximateTopK(query, pool, opts, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := ApproximateTopK(query, pool, opts, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Approximate)
	assert.GreaterOrEqual(t, first.Scanned, 2*opts.K)
	assert.LessOrEqual(t, first.Scanned, len(pool))
	assertRanked(t, first.Results)

	exact, err := TopK(query, pool, opts)
	require.NoError(t, err)
	require.NotEmpty(t, first.Results)
	assert.LessOrEqual(t, first.Results[0].Score, exact.Results[0].Score)
	assert.Equal(t, len(pool), exact.Scanned)
}

func TestApproximateTopK_ClustersVisited(t *testing.T) {
	t.Parallel()

	pool := randomPool(100, 4, 1)
	query := Vector{0.3, -0.6, 0.2, 0.4}

	tests := []struct {
		name      string
		k         int
		wantAll   bool
		wantExact bool
	}{
		// 10 clusters and 2*K = 10: every cluster is searched.
		{name: "2K covers all clusters", k: 5, wantAll: true, wantExact: true},
		// 2 of 10 non-empty clusters; each seed keeps at least itself.
		{name: "2K of 10 clusters", k: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := ApproximateTopK(query, pool, Options{K: tt.k}, rand.New(rand.NewSource(1)))
			require.NoError(t, err)
			assert.True(t, res.Approximate)
			if tt.wantAll {
				assert.Equal(t, len(pool), res.Scanned)
			} else {
				assert.Less(t, res.Scanned, len(pool))
				assert.GreaterOrEqual(t, res.Scanned, 2)
			}
			if tt.wantExact {
				exact, err := TopK(query, pool, Options{K: tt.k})
				require.NoError(t, err)
				assert.Equal(t, exact.Results, res.Results)
			}
		})
	}
}

func TestApproximateTopK_SmallPoolMatchesExact(t *testing.T) {
	t.Parallel()

	pool := randomPool(9, 4, 7)
	query := Vector{0.5, -0.25, 0.1, 0.9}

	exact, err := TopK(query, pool, Options{K: 3})
	require.NoError(t, err)
	approx, err := ApproximateTopK(query, pool, Options{K: 3}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Equal(t, exact.Results, approx.Results)
	assert.Equal(t, len(pool), approx.Scanned)
}

func TestApproximateTopK_ValidatesInput(t *testing.T) {
	t.Parallel()

	_, err := ApproximateTopK(Vector{1, 0}, []Record{{ID: "x", Vector: Vector{1}}}, Options{}, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()

	s := NewSearcher(Config{DefaultMetric: MetricCosine, Normalize: true, ApproximateThreshold: 50, Seed: 9})
	ctx := context.Background()

	t.Run("exact below threshold", func(t *testing.T) {
		t.Parallel()
		res, err := s.Search(ctx, &Query{Vector: Vector{1, 0}, Pool: compass(), Options: Options{K: 2}})
		require.NoError(t, err)
		assert.False(t, res.Approximate)
		assert.Equal(t, []string{"east", "northeast"}, ids(res.Results))
	})

	t.Run("approximate at threshold", func(t *testing.T) {
		t.Parallel()
		res, err := s.Search(ctx, &Query{Vector: Vector{1, 0, 0}, Pool: randomPool(50, 3, 2), Options: Options{K: 3}})
		require.NoError(t, err)
		assert.True(t, res.Approximate)
	})

	t.Run("seeded query is reproducible", func(t *testing.T) {
		t.Parallel()
		seed := int64(11)
		q := &Query{Vector: Vector{0, 1, 0}, Pool: randomPool(120, 3, 5), Options: Options{K: 4}, Approximate: true, Seed: &seed}
		a, err := s.Search(ctx, q)
		require.NoError(t, err)
		b, err := s.Search(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("fusion", func(t *testing.T) {
		t.Parallel()
		res, err := s.Search(ctx, &Query{
			Vector:  Vector{1, 0},
			Pool:    compass(),
			Options: Options{K: 1},
			Fusion:  []MetricWeight{{Metric: MetricCosine, Weight: 1}, {Metric: MetricDot, Weight: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, "fused(cosine,dot)", res.Metric)
		assert.Equal(t, []string{"east"}, ids(res.Results))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.Search(cctx, &Query{Vector: Vector{1}, Pool: nil})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSearcher_Compare(t *testing.T) {
	t.Parallel()

	s := NewSearcher(DefaultConfig())
	got, err := s.Compare(Vector{1, 2, 3}, Vector{1, 2, 3}, "")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}
