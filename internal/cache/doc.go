// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package cache provides a thread-safe, size-bounded LRU cache with per-entry
TTL and single-flight computation.

The matching pipeline caches ranked result lists keyed by a fingerprint of
the request, and the interaction feed uses a second instance as a
time-bounded set of processed message IDs.

# Behavior

  - Get promotes the entry to most recently used; expired entries count as a
    miss and are removed.
  - Set evicts the least recently used entries once MaxEntries is exceeded.
  - GetOrCompute collapses concurrent misses for one key into a single
    computation via golang.org/x/sync/singleflight. Errors are not cached.
  - A background loop sweeps expired entries every CleanupInterval until
    Close is called.

Hits, misses, shared computations and evictions are exported through the
metrics package, labelled with the cache name.

# Usage Example

	c := cache.New(cache.Config{Name: "match", TTL: 5 * time.Minute, MaxEntries: 1000})
	defer c.Close()

	key := cache.GenerateKey("match_candidates", req)
	v, cached, err := c.GetOrCompute(ctx, key, func(ctx context.Context) (interface{}, error) {
	    return rank(ctx, req)
	})

# Thread Safety

All Cache methods are safe for concurrent use. A single mutex guards the
recency list; the computation in GetOrCompute runs outside it.
*/
package cache
