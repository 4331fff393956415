// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"math"
)

// Vector is a fixed-dimension embedding.
type Vector []float64

// Record is an embedding with its identifier and opaque metadata.
type Record struct {
	ID       string                 `json:"id" validate:"required"`
	Vector   Vector                 `json:"vector" validate:"required,min=1"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// validateVector rejects empty vectors and NaN or infinite components.
func validateVector(field string, v Vector) error {
	if len(v) == 0 {
		return invalid(ErrEmptyVector, field, "vector has no components")
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return invalid(ErrNonFinite, field, "component %d is %v", i, x)
		}
	}
	return nil
}

// validatePair validates both vectors and checks they share a dimension.
func validatePair(a, b Vector) error {
	if err := validateVector("a", a); err != nil {
		return err
	}
	if err := validateVector("b", b); err != nil {
		return err
	}
	if len(a) != len(b) {
		return invalid(ErrDimensionMismatch, "b", "dimension %d, want %d", len(b), len(a))
	}
	return nil
}

// Normalize returns v scaled to unit L2 length. A zero vector is returned as a
// zero-valued copy so that cosine against it is 0.
func Normalize(v Vector) Vector {
	out := make(Vector, len(v))
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// cosine is dot/(|a||b|), 0 when either norm is 0, clamped to [-1,1].
// Identical inputs yield exactly 1 because sqrt(x*x) == x in IEEE arithmetic.
func cosine(a, b Vector) float64 {
	var d, na, nb float64
	for i := range a {
		d += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, d/math.Sqrt(na*nb)))
}

func euclideanDistance(a, b Vector) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return math.Sqrt(s)
}

func manhattanDistance(a, b Vector) float64 {
	var s float64
	for i := range a {
		s += math.Abs(a[i] - b[i])
	}
	return s
}
