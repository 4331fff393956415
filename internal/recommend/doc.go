// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

// Package recommend implements collaborative-filtering recommendations over
// user interactions with jobs and candidates.
//
// # Interactions
//
// Every Interaction is folded into an in-memory user x item matrix with a
// derived weight:
//
//	view=1 like=2 save=3 share=3 comment=3 feedback=4 apply=5
//	  x rating/5 (when rated)
//	  x 1.2 for dwell >= 30s, 0.5 for dwell < 5s
//	  x 1.1 from search, 0.9 from email
//
// Updates are O(1). The matrix is split across lock shards by row so that
// writers to different users or items proceed concurrently. Rebuild refolds a
// full history, typically replayed from the event log at startup.
//
// # Modes
//
// Users below the cold-start threshold (default 10 interactions) are cold and
// receive fallback recommendations tagged "cold_start" with confidence 0.3.
// Fallbacks are tried in order, content-based then popularity (see package
// algorithms), then a seeded random shuffle.
//
// Warm users choose one of:
//
//   - user_based: items seen by similar users, weighted by similarity
//   - item_based: items similar to the user's items, boosted by shared users
//   - latent: dot product of learned user and item factors
//   - hybrid: all three run concurrently, combined 0.3/0.3/0.4
//
// Similarity is cosine over shared entries, and neighbors below the
// configured threshold are ignored.
//
// # Training
//
// Train fits latent factors by SGD over every matrix cell and publishes the
// new factor table with an atomic pointer swap, so concurrent Recommend calls
// never see a partially trained model. Below the minimum sample count (100 by
// default) training is skipped with a warning and placeholder metrics.
//
// # Usage
//
//	rec, err := recommend.NewRecommender(recommend.DefaultConfig(),
//	    algorithms.NewContentBased(algorithms.ContentBasedConfig{Features: lookup}),
//	    algorithms.NewPopularity(algorithms.PopularityConfig{}),
//	)
//	_ = rec.Record(&recommend.Interaction{UserID: "u1", ItemID: "job-7", Type: recommend.InteractionApply})
//	recs, err := rec.Recommend(ctx, "u1", "job", recommend.Options{Mode: recommend.ModeHybrid})
package recommend
