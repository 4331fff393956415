// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"strings"
)

// Metric names a similarity function. Every metric returns a value in [0,1]
// where 1 is most similar, except cosine which may be negative for opposed
// vectors when used directly.
type Metric string

// Supported metrics.
const (
	MetricCosine    Metric = "cosine"
	MetricEuclidean Metric = "euclidean"
	MetricDot       Metric = "dot"
	MetricManhattan Metric = "manhattan"
)

// Metrics lists the supported metrics.
var Metrics = []Metric{MetricCosine, MetricEuclidean, MetricDot, MetricManhattan}

// ParseMetric resolves a metric name case-insensitively. "" selects cosine;
// "dot_product" is accepted as an alias for dot.
func ParseMetric(name string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return MetricCosine, nil
	case MetricCosine, MetricEuclidean, MetricDot, MetricManhattan:
		return m, nil
	case "dot_product", "dotproduct":
		return MetricDot, nil
	default:
		return "", invalid(ErrUnknownMetric, "metric", "unknown metric %q", name)
	}
}

// score evaluates m on already-validated vectors of equal dimension.
func (m Metric) score(a, b Vector) float64 {
	switch m {
	case MetricEuclidean:
		return 1 / (1 + euclideanDistance(a, b))
	case MetricDot:
		return (cosine(a, b) + 1) / 2
	case MetricManhattan:
		// Assumes unit-length inputs, for which the distance is at most 2.
		s := 1 - manhattanDistance(a, b)/(2*float64(len(a)))
		if s < 0 {
			return 0
		}
		return s
	default:
		return cosine(a, b)
	}
}

// Similarity compares two vectors with metric. Both vectors are L2-normalized
// first unless normalize is false. Invalid input is rejected before any
// computation.
func Similarity(a, b Vector, metric Metric, normalize bool) (float64, error) {
	m, err := ParseMetric(string(metric))
	if err != nil {
		return 0, err
	}
	if err := validatePair(a, b); err != nil {
		return 0, err
	}
	if normalize {
		a, b = Normalize(a), Normalize(b)
	}
	return m.score(a, b), nil
}
