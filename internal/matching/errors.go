// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"errors"
	"fmt"
)

// Sentinel errors for scoring.
var (
	// ErrInvalidWeights indicates a weight map that is empty, negative,
	// references an unknown factor, or does not sum to 1.
	ErrInvalidWeights = errors.New("invalid weights")

	// ErrUnknownPreset indicates a weight preset name that is not registered.
	ErrUnknownPreset = errors.New("unknown weight preset")

	// ErrInvalidProfile indicates a profile that cannot be scored.
	ErrInvalidProfile = errors.New("invalid profile")
)

// ValidationError describes a rejected scoring input.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap returns the sentinel classifying the failure.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(sentinel error, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		Err:    sentinel,
	}
}
