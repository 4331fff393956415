// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package filtering

import (
	"errors"
	"fmt"

	"github.com/tomtom215/talentmatch/internal/validation"
)

// ErrInvalidCriteria indicates filter, sort or page criteria that cannot be applied.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// ValidationError describes one rejected criteria field.
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

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// fromStruct validates tags on v and converts the first failure.
func fromStruct(v interface{}) error {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	first := verr.Errors()[0]
	return &ValidationError{Field: verr.Field(), Reason: first.Error()}
}
