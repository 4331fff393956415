// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode is returned for an unrecognized recommendation mode.
	ErrUnknownMode = errors.New("unknown recommendation mode")

	// ErrInvalidInteraction wraps every interaction validation failure.
	ErrInvalidInteraction = errors.New("invalid interaction")

	// ErrInvalidRequest wraps recommendation request validation failures.
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrTrainingInProgress is returned when Train is called while another
	// training run holds the model.
	ErrTrainingInProgress = errors.New("training already in progress")
)

// ValidationError identifies the input field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: ErrInvalidInteraction}
}

func invalidRequest(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: ErrInvalidRequest}
}
