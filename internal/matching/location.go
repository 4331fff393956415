// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"strings"

	"github.com/tomtom215/talentmatch/internal/models"
)

// Location scores.
const (
	locationExact       = 1.0
	locationRemote      = 0.9
	locationSameCountry = 0.8
	locationRelocate    = 0.7
	locationMismatch    = 0.2
)

// scoreLocation returns the best applicable location score.
func scoreLocation(candidate, job *models.LocationInfo) (float64, string) {
	sameCountry := candidate.Country != "" && strings.EqualFold(strings.TrimSpace(candidate.Country), strings.TrimSpace(job.Country))
	sameCity := candidate.City != "" && strings.EqualFold(strings.TrimSpace(candidate.City), strings.TrimSpace(job.City))

	switch {
	case sameCountry && sameCity:
		return locationExact, "same city"
	case job.IsRemote && candidate.IsRemote:
		return locationRemote, "remote compatible"
	case sameCountry:
		return locationSameCountry, "same country"
	case candidate.RelocationWilling:
		return locationRelocate, "willing to relocate"
	default:
		return locationMismatch, ""
	}
}
