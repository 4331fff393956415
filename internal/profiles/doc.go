// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package profiles provides read access to candidate and job profiles.

The engine treats profile storage as external: the matching pipeline only
needs GetCandidate and GetJob. MemoryStore is the in-process implementation
used by the server and tests, and BreakerProvider wraps any Provider with a
circuit breaker so a failing profile backend degrades requests instead of
stalling them.

	store := profiles.NewMemoryStore()
	provider := profiles.NewBreakerProvider(store, profiles.DefaultBreakerConfig())
	job, err := provider.GetJob(ctx, "job-1")
	if errors.Is(err, profiles.ErrNotFound) {
	    // 404
	}

ErrNotFound does not count as a breaker failure.
*/
package profiles
