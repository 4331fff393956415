// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every rejected input wraps exactly one of these.
var (
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	ErrEmptyVector       = errors.New("empty vector")
	ErrNonFinite         = errors.New("non-finite vector component")
	ErrUnknownMetric     = errors.New("unknown similarity metric")
	ErrInvalidOptions    = errors.New("invalid search options")
	ErrInvalidFilter     = errors.New("invalid metadata filter")
)

// ValidationError identifies which input failed validation.
type ValidationError struct {
	// Field is "query", "a", "b", "pool[3]" or an option name.
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

func invalid(sentinel error, field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...), Err: sentinel}
}
