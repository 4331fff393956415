// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"math"

	"github.com/tomtom215/talentmatch/internal/models"
)

// Salary scores.
const (
	salaryJobContains       = 1.0
	salaryCandidateContains = 0.9
)

// normalizedRange fills a missing max with min so a single figure is a point range.
func normalizedRange(r *models.SalaryRange) (lo, hi float64) {
	lo, hi = r.Min, r.Max
	if hi == 0 {
		hi = lo
	}
	return lo, hi
}

func validateRange(field string, r *models.SalaryRange) error {
	if r.IsZero() {
		return nil
	}
	lo, hi := normalizedRange(r)
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return newValidationError(ErrInvalidProfile, field, "must be finite")
	}
	if lo < 0 || hi < 0 {
		return newValidationError(ErrInvalidProfile, field, "must be non-negative")
	}
	if lo > hi {
		return newValidationError(ErrInvalidProfile, field, "min %v exceeds max %v", lo, hi)
	}
	return nil
}

// scoreSalary compares the candidate's desired range with the job's offer.
//
// The job range containing the candidate's scores 1.0 and the reverse 0.9.
// Partial overlap scores 0.5 + 0.5*overlap/larger, where larger is the wider of
// the two ranges. Disjoint ranges score 0.5*(1 - gap/larger), floored at 0, so
// the score decays linearly with the gap and meets the overlap branch at 0.5.
// ok is false when either side has no range.
func scoreSalary(desired, offered *models.SalaryRange) (score float64, ok bool) {
	if desired.IsZero() || offered.IsZero() {
		return 0, false
	}
	cLo, cHi := normalizedRange(desired)
	jLo, jHi := normalizedRange(offered)

	switch {
	case jLo <= cLo && cHi <= jHi:
		return salaryJobContains, true
	case cLo <= jLo && jHi <= cHi:
		return salaryCandidateContains, true
	}

	larger := math.Max(cHi-cLo, jHi-jLo)
	if larger <= 0 {
		larger = math.Max(cHi, jHi)
	}

	overlap := math.Min(cHi, jHi) - math.Max(cLo, jLo)
	if overlap > 0 {
		return clamp01(0.5 + 0.5*clamp01(overlap/larger)), true
	}
	gap := -overlap
	return clamp01(0.5 * (1 - gap/larger)), true
}
