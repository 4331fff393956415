// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

/*
Package models defines data structures shared by the matching engine packages.

Profiles (CandidateProfile, JobProfile) are read-only snapshots supplied by the
profile store; the engine never mutates them. Everything the engine produces
(ScoreBreakdown, MatchResult, ItemError) is created fresh per request.

Key Components:

  - CandidateProfile: skills, work history, education, location and job preferences
  - JobProfile: skill/experience/education requirements, employer preferences, compensation
  - ScoreBreakdown: per-factor scores in [0,1] plus the weighted overall score
  - MatchResult: the common result shape consumed by ranking and filtering
  - APIResponse: standard HTTP response envelope

All types serialize with snake_case JSON keys.
*/
package models
