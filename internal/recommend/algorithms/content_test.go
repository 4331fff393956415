// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"
)

var jobFeatures = map[string][]string{
	"job-1": {"go", "kubernetes"},
	"job-2": {"Go", "SQL"},
	"job-3": {"go", " Kubernetes ", "go"},
	"job-4": {"sql"},
	"job-5": {"java"},
}

func lookupFeatures(id string) ([]string, bool) {
	f, ok := jobFeatures[id]
	return f, ok
}

func contentView() fakeView {
	return fakeView{
		users: map[string]map[string]float64{
			"u1": {"job-1": 2, "job-2": 1},
			"u2": {"job-9": 1},
		},
		types: map[string]string{
			"job-1": "job", "job-2": "job", "job-3": "job",
			"job-4": "job", "job-5": "job", "job-6": "job", "job-9": "job",
		},
	}
}

func TestContentBased_Recommend(t *testing.T) {
	cb := NewContentBased(ContentBasedConfig{Features: lookupFeatures})
	if cb.Name() != "content" {
		t.Errorf("Name() = %q, want content", cb.Name())
	}

	exclude := map[string]struct{}{"job-1": {}, "job-2": {}}
	got, err := cb.Recommend(context.Background(), contentView(), "u1", "job", exclude, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Profile: go 3/6, kubernetes 2/6, sql 1/6. job-3 scores 5/6 and
	// job-4 scores 1/6; java and unknown items score nothing.
	want := []struct {
		id    string
		score float64
	}{
		{"job-3", 1},
		{"job-4", 0.2},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d (%v), want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if got[i].ItemID != w.id {
			t.Errorf("[%d].ItemID = %s, want %s", i, got[i].ItemID, w.id)
		}
		if math.Abs(got[i].Score-w.score) > 1e-9 {
			t.Errorf("[%d].Score = %v, want %v", i, got[i].Score, w.score)
		}
	}
}

func TestContentBased_NoProfile(t *testing.T) {
	tests := []struct {
		name     string
		features FeatureFunc
		userID   string
	}{
		{"nil feature lookup", nil, "u1"},
		{"user without history", lookupFeatures, "nobody"},
		{"history without features", lookupFeatures, "u2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewContentBased(ContentBasedConfig{Features: tt.features})
			got, err := cb.Recommend(context.Background(), contentView(), tt.userID, "job", nil, 10)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Recommend() = %v, want empty", got)
			}
		})
	}
}

func TestContentBased_Limit(t *testing.T) {
	cb := NewContentBased(ContentBasedConfig{Features: lookupFeatures})
	got, err := cb.Recommend(context.Background(), contentView(), "u1", "job", nil, 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestContentBased_Canceled(t *testing.T) {
	cb := NewContentBased(ContentBasedConfig{Features: lookupFeatures})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cb.Recommend(ctx, contentView(), "u1", "job", nil, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func TestUniqueLower(t *testing.T) {
	got := uniqueLower([]string{"Go", " go ", "", "SQL", "sql", "Rust"})
	want := []string{"go", "sql", "rust"}
	if len(got) != len(want) {
		t.Fatalf("uniqueLower() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("uniqueLower()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
