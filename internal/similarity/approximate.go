// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"math/rand"
	"sort"
	"time"
)

// maxClusters caps the partition count for approximate search.
const maxClusters = 10

// clusterCount returns min(10, max(1, n/10)).
func clusterCount(n int) int {
	k := n / 10
	if k < 1 {
		k = 1
	}
	if k > maxClusters {
		k = maxClusters
	}
	return k
}

type cluster struct {
	centroid Vector
	members  []int // indices into the pool, ascending
	distance float64
}

// ApproximateTopK answers a top-K query by scoring only part of the pool.
//
// The filtered pool is partitioned with a single k-means assignment pass:
// k distinct records chosen by rng seed the clusters, every record joins its
// nearest seed, and each cluster's centroid is the mean of its members.
// Only the members of the 2*K clusters whose centroids lie nearest the query
// are scored; when the pool has no more than 2*K clusters that is every record. The pass is
// not iterated to convergence, so recall is traded for speed and the result is
// flagged Approximate.
//
// A nil rng uses a time-seeded source. Passing rand.New(rand.NewSource(seed))
// makes the partition, and therefore the result, reproducible.
func ApproximateTopK(query Vector, pool []Record, opts Options, rng *rand.Rand) (*SearchResult, error) {
	p, err := prepare(query, pool, opts)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // not security sensitive
	}

	candidates := probe(p.query, p.pool, p.opts.K, rng)
	return &SearchResult{
		Results:     rankRecords(p.query, candidates, p.opts),
		Metric:      string(p.opts.Metric),
		Approximate: true,
		Scanned:     len(candidates),
	}, nil
}

// probe partitions records and returns the members of the min(2*k, clusters)
// nearest clusters, in pool order.
func probe(query Vector, records []Record, k int, rng *rand.Rand) []Record {
	n := len(records)
	if n == 0 {
		return nil
	}
	clusters := partition(records, clusterCount(n), rng)
	for i := range clusters {
		clusters[i].distance = euclideanDistance(query, clusters[i].centroid)
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].distance < clusters[j].distance
	})

	visit := 2 * k
	if visit > len(clusters) {
		visit = len(clusters)
	}
	var picked []int
	for _, c := range clusters[:visit] {
		picked = append(picked, c.members...)
	}
	sort.Ints(picked)

	out := make([]Record, len(picked))
	for i, idx := range picked {
		out[i] = records[idx]
	}
	return out
}

// partition runs one assignment pass against k randomly chosen seed records.
// Empty clusters are dropped.
func partition(records []Record, k int, rng *rand.Rand) []cluster {
	seeds := rng.Perm(len(records))[:k]
	clusters := make([]cluster, k)
	for i, idx := range seeds {
		clusters[i].centroid = records[idx].Vector
	}

	for i, r := range records {
		best, bestDist := 0, euclideanDistance(r.Vector, clusters[0].centroid)
		for c := 1; c < k; c++ {
			if d := euclideanDistance(r.Vector, clusters[c].centroid); d < bestDist {
				best, bestDist = c, d
			}
		}
		clusters[best].members = append(clusters[best].members, i)
	}

	out := clusters[:0]
	for _, c := range clusters {
		if len(c.members) == 0 {
			continue
		}
		c.centroid = centroid(records, c.members)
		out = append(out, c)
	}
	return out
}

func centroid(records []Record, members []int) Vector {
	dim := len(records[members[0]].Vector)
	sum := make(Vector, dim)
	for _, idx := range members {
		for d, x := range records[idx].Vector {
			sum[d] += x
		}
	}
	for d := range sum {
		sum[d] /= float64(len(members))
	}
	return sum
}
