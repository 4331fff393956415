// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

// Package ranking orders scored match results and optionally diversifies the
// head of the list.
//
// The ranking score of an item is on a 0-100 scale:
//
//	rank = w.overall * overallScore
//	     + 100 * (w.skills*skills + w.experience*experience + w.location*location
//	              + w.responseRate*responseRate + w.recentActivity*recency)
//	     + bonuses
//
// clamped to [0,100]. Recency decays linearly from 1 at the last activity to
// 0 after the recency window (90 days by default). Bonuses are additive and
// uncapped before the clamp: one per matched keyword, one for a matching
// industry, one for a matching education level, and a weighted blend of any
// external boost such as a recommender score.
//
// Ordering is stable: ties on the ranking score fall back to the overall
// score and then to input order.
//
// # Diversification
//
// When requested, the ranked list is thinned so that near-duplicates do not
// crowd the head of the result set:
//
//   - the first item is always kept, so the best match is never displaced
//   - the first ten items are kept unconditionally
//   - later items are kept only if they bring an unseen three-skill
//     signature, an unseen employer, or an unseen industry
//   - at most twenty items are returned
package ranking
