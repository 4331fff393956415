// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"fmt"
	"math"
	"strings"
)

// MetricWeight is one component of a fused search.
type MetricWeight struct {
	Metric Metric  `json:"metric" validate:"required"`
	Weight float64 `json:"weight" validate:"gt=0"`
}

// FusedTopK runs an independent top-K search per metric and combines them.
//
// The fused score of an item is sum(score_i * w_i) / sum(w_i) over all
// metrics, counting 0 for metrics whose top K did not include the item. The
// candidate set is the union of every metric's top K. opts.Metric is ignored;
// opts.Threshold applies to each per-metric search.
func FusedTopK(query Vector, pool []Record, metrics []MetricWeight, opts Options) (*SearchResult, error) {
	if len(metrics) == 0 {
		return nil, invalid(ErrInvalidOptions, "metrics", "at least one metric is required")
	}

	var totalWeight float64
	resolved := make([]MetricWeight, len(metrics))
	names := make([]string, len(metrics))
	for i, mw := range metrics {
		m, err := ParseMetric(string(mw.Metric))
		if err != nil {
			return nil, err
		}
		if math.IsNaN(mw.Weight) || math.IsInf(mw.Weight, 0) || mw.Weight <= 0 {
			return nil, invalid(ErrInvalidOptions, fmt.Sprintf("metrics[%d].weight", i), "must be positive and finite, got %v", mw.Weight)
		}
		resolved[i] = MetricWeight{Metric: m, Weight: mw.Weight}
		names[i] = string(m)
		totalWeight += mw.Weight
	}

	opts.Metric = resolved[0].Metric
	p, err := prepare(query, pool, opts)
	if err != nil {
		return nil, err
	}

	fused := make(map[string]float64)
	var order []string
	meta := make(map[string]map[string]interface{})
	for _, mw := range resolved {
		perMetric := p.opts
		perMetric.Metric = mw.Metric
		for _, hit := range rankRecords(p.query, p.pool, perMetric) {
			if _, seen := fused[hit.ID]; !seen {
				order = append(order, hit.ID)
				meta[hit.ID] = hit.Metadata
			}
			fused[hit.ID] += hit.Score * mw.Weight
		}
	}

	hits := make([]Result, 0, len(order))
	for _, id := range order {
		hits = append(hits, Result{ID: id, Score: fused[id] / totalWeight, Metadata: meta[id]})
	}
	return &SearchResult{
		Results: finalize(hits, p.opts.K),
		Metric:  "fused(" + strings.Join(names, ",") + ")",
		Scanned: len(p.pool),
	}, nil
}
