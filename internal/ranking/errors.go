// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package ranking

import (
	"errors"
	"fmt"
)

// ErrInvalidCriteria indicates ranking criteria that cannot be applied.
var ErrInvalidCriteria = errors.New("invalid ranking criteria")

// ValidationError describes a rejected criteria field.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap classifies every ValidationError as ErrInvalidCriteria.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidCriteria
}
