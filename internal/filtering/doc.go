// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

// Package filtering validates filter criteria and applies filtering, sorting
// and offset pagination to match results.
//
// All filter fields are optional and combine using AND logic. Multi-value
// fields use OR logic within the field unless the matching "_match" field is
// set to "all" (e.g., Skills: ["go", "sql"] matches go OR sql by default).
// Skill, industry, location, work type and keyword matches are
// case-insensitive substring matches.
//
// Invalid criteria fail with ErrInvalidCriteria instead of being clamped:
// a min greater than its max, a score outside [0,100], a response rate
// outside [0,1], an empty list filter, or an enum value outside its set.
//
// Sorting is stable and descending by default. An unknown sort key falls
// back to the overall score. Pagination is 1-based:
//
//	totalPages = ceil(totalItems / limit)
package filtering
