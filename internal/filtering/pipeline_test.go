// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package filtering

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/talentmatch/internal/models"
)

func TestSortItems(t *testing.T) {
	tests := []struct {
		name string
		sort *Sort
		want []string
	}{
		{"default is overall score desc", nil, []string{"alice", "bob", "carol"}},
		{"score asc", &Sort{Key: "score", Order: OrderAsc}, []string{"carol", "bob", "alice"}},
		{"years desc", &Sort{Key: "years_experience"}, []string{"alice", "carol", "bob"}},
		{"last active via alias", &Sort{Key: "posted_at"}, []string{"alice", "carol", "bob"}},
		{"response rate", &Sort{Key: "response_rate", Order: OrderAsc}, []string{"bob", "carol", "alice"}},
		{"rating", &Sort{Key: "Rating"}, []string{"alice", "bob", "carol"}},
		{"salary", &Sort{Key: "salary"}, []string{"alice", "bob", "carol"}},
		{"unknown key falls back", &Sort{Key: "shoe_size"}, []string{"alice", "bob", "carol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := fixtures()
			SortItems(items, tt.sort)
			assert.Equal(t, tt.want, ids(items))
		})
	}
}

func TestSortItems_StableOnFactor(t *testing.T) {
	items := []models.MatchResult{
		{ID: "a", Breakdown: &models.ScoreBreakdown{Factors: map[models.Factor]float64{models.FactorSkills: 0.5}}},
		{ID: "b", Breakdown: &models.ScoreBreakdown{Factors: map[models.Factor]float64{models.FactorSkills: 0.9}}},
		{ID: "c", Breakdown: &models.ScoreBreakdown{Factors: map[models.Factor]float64{models.FactorSkills: 0.5}}},
		{ID: "d"},
	}
	SortItems(items, &Sort{Key: "skills"})
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(items))
}

func TestResolveSortKey(t *testing.T) {
	key, ok := ResolveSortKey(" Salary_Fit ")
	assert.True(t, ok)
	assert.Equal(t, SortSalaryFit, key)

	key, ok = ResolveSortKey("")
	assert.False(t, ok)
	assert.Equal(t, SortOverallScore, key)

	assert.Contains(t, SortKeys(), "overall_score")
	assert.IsNonDecreasing(t, SortKeys())
}

func numbered(n int) []models.MatchResult {
	items := make([]models.MatchResult, n)
	for i := range items {
		items[i] = models.MatchResult{ID: fmt.Sprintf("item-%02d", i), OverallScore: float64(100 - i)}
	}
	return items
}

func TestPipeline_Apply(t *testing.T) {
	p := New(DefaultConfig())

	res, err := p.Apply(fixtures(), &Filters{Locations: []string{"germany"}}, &Sort{Key: "years_experience", Order: OrderAsc}, Page{})
	require.NoError(t, err)

	assert.Equal(t, []string{"carol", "alice"}, ids(res.Items))
	assert.Equal(t, 2, res.TotalItems)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, 1, res.TotalPages)
	assert.False(t, res.HasMore)
	assert.Equal(t, "years_experience", res.SortKey)
	assert.Equal(t, OrderAsc, res.SortOrder)
}

func TestPipeline_Pagination(t *testing.T) {
	p := New(DefaultConfig())
	items := numbered(23)

	tests := []struct {
		page, limit int
		wantLen     int
		wantFirst   string
		wantMore    bool
	}{
		{1, 10, 10, "item-00", true},
		{2, 10, 10, "item-10", true},
		{3, 10, 3, "item-20", false},
		{4, 10, 0, "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			res, err := p.Apply(items, nil, nil, Page{Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)
			assert.Len(t, res.Items, tt.wantLen)
			assert.Equal(t, 3, res.TotalPages)
			assert.Equal(t, 23, res.TotalItems)
			assert.Equal(t, tt.wantMore, res.HasMore)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, res.Items[0].ID)
			}
		})
	}
}

func TestPipeline_PaginationRoundTrip(t *testing.T) {
	p := New(DefaultConfig())
	items := numbered(47)

	for _, limit := range []int{1, 5, 7, 47, 100} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			first, err := p.Apply(items, nil, nil, Page{Limit: limit})
			require.NoError(t, err)

			var all []string
			for page := 1; page <= first.TotalPages; page++ {
				res, err := p.Apply(items, nil, nil, Page{Page: page, Limit: limit})
				require.NoError(t, err)
				all = append(all, ids(res.Items)...)
			}
			assert.Equal(t, ids(items), all)
		})
	}
}

func TestPipeline_Rejects(t *testing.T) {
	p := New(Config{DefaultLimit: 10, MaxLimit: 50})

	tests := []struct {
		name    string
		filters *Filters
		sort    *Sort
		page    Page
		field   string
	}{
		{"limit above max", nil, nil, Page{Limit: 51}, "limit"},
		{"negative page", nil, nil, Page{Page: -1}, "page"},
		{"negative limit", nil, nil, Page{Limit: -5}, "limit"},
		{"bad order", nil, &Sort{Key: "score", Order: "sideways"}, Page{}, "order"},
		{"bad filter", &Filters{MinScore: f64(200)}, nil, Page{}, "min_score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Apply(fixtures(), tt.filters, tt.sort, tt.page)
			require.ErrorIs(t, err, ErrInvalidCriteria)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestPipeline_DoesNotModifyInput(t *testing.T) {
	p := New(DefaultConfig())
	items := fixtures()
	_, err := p.Apply(items, nil, &Sort{Key: "score", Order: OrderAsc}, Page{})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, ids(items))
}

func TestNew_Defaults(t *testing.T) {
	p := New(Config{DefaultLimit: 500, MaxLimit: 0})
	assert.Equal(t, 100, p.cfg.MaxLimit)
	assert.Equal(t, 100, p.cfg.DefaultLimit)
}
