// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package pipeline answers "who matches this job" and "which jobs match this
candidate" end to end.

For MatchCandidates the stages are:

 1. load the job and the candidate pool from the profile provider
    (missing candidates become item errors, the rest are scored),
 2. score the pool with the matching engine,
 3. optionally fetch recommendations for BlendUserID and pass them to the
    ranking engine as per-item boosts,
 4. rank (with the request filters as the ranking predicate) and diversify
    when requested,
 5. sort and paginate with the filtering pipeline.

MatchJobs is the mirror operation for a candidate against a job pool.

Responses are cached under a fingerprint of the full request. Concurrent
identical requests share one computation, and Invalidate drops every cached
response after a profile changes.
*/
package pipeline
