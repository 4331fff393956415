// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package algorithms

import (
	"context"
	"testing"
)

func popularityView() fakeView {
	return fakeView{
		users: map[string]map[string]float64{
			"u1": {"job-1": 5, "job-2": 1},
			"u2": {"job-1": 3, "job-3": 4, "cand-1": 10},
			"u3": {"job-2": 1, "job-3": 2},
		},
		types: map[string]string{
			"job-1": "job", "job-2": "job", "job-3": "job", "cand-1": "candidate",
		},
	}
}

func TestPopularity_Recommend(t *testing.T) {
	tests := []struct {
		name      string
		minWeight float64
		exclude   map[string]struct{}
		limit     int
		want      []string
		wantTop   float64
	}{
		{"all jobs", 0, nil, 10, []string{"job-1", "job-3", "job-2"}, 1},
		{"excluded item", 0, map[string]struct{}{"job-1": {}}, 10, []string{"job-3", "job-2"}, 1},
		{"min weight", 3, nil, 10, []string{"job-1", "job-3"}, 1},
		{"limit", 0, nil, 1, []string{"job-1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPopularity(PopularityConfig{MinWeight: tt.minWeight})
			got, err := p.Recommend(context.Background(), popularityView(), "u9", "job", tt.exclude, tt.limit)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d (%v), want %d", len(got), got, len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ItemID != id {
					t.Errorf("[%d] = %s, want %s", i, got[i].ItemID, id)
				}
			}
			if got[0].Score != tt.wantTop {
				t.Errorf("top score = %v, want %v", got[0].Score, tt.wantTop)
			}
		})
	}
}

func TestPopularity_Canceled(t *testing.T) {
	p := NewPopularity(PopularityConfig{})
	if p.Name() != "popularity" {
		t.Errorf("Name() = %q, want popularity", p.Name())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Recommend(ctx, popularityView(), "u1", "", nil, 10); err == nil {
		t.Error("Recommend() error = nil, want context error")
	}
}
