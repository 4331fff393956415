// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package similarity provides vector similarity metrics and top-K retrieval over
embedding pools.

# Metrics

All metrics map to [0,1] with 1 meaning most similar:

  - cosine: dot(a,b)/(|a||b|), 0 when either norm is 0
  - euclidean: 1/(1+distance)
  - dot: (cosine+1)/2
  - manhattan: 1 - distance/(2*dim), for unit-length inputs

Vectors are L2-normalized before comparison unless normalization is disabled.
Empty vectors, mismatched dimensions, and NaN or infinite components are
rejected with a *ValidationError before any computation.

# Search

TopK filters the pool by metadata, scores what remains, drops scores under the
threshold, and returns the best K with 1-based ranks and scores relative to
the best hit. FusedTopK combines several metrics by weighted average over the
union of their individual top K. ApproximateTopK partitions the pool into at
most ten clusters and scores only the members of the nearest clusters.

Searcher wraps the three with configured defaults, chooses approximate search
for large pools, and records Prometheus metrics:

	s := similarity.NewSearcher(similarity.DefaultConfig())
	res, err := s.Search(ctx, &similarity.Query{
		Vector:  query,
		Pool:    records,
		Options: similarity.Options{K: 5, Threshold: 0.5},
	})
*/
package similarity
