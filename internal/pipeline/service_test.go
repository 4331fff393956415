// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/talentmatch/internal/filtering"
	"github.com/tomtom215/talentmatch/internal/matching"
	"github.com/tomtom215/talentmatch/internal/models"
	"github.com/tomtom215/talentmatch/internal/profiles"
	"github.com/tomtom215/talentmatch/internal/ranking"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

var refNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func skills(names ...string) []models.Skill {
	out := make([]models.Skill, len(names))
	for i, n := range names {
		out[i] = models.Skill{Name: n, Level: models.SkillAdvanced}
	}
	return out
}

func seedStore(t *testing.T) *profiles.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := profiles.NewMemoryStore()

	jobs := []*models.JobProfile{
		{
			ID: "job-go", Title: "Go Engineer", Industry: "Fintech",
			Skills: []models.SkillRequirement{
				{Name: "Go", Required: true},
				{Name: "PostgreSQL"},
			},
		},
		{
			ID: "job-java", Title: "Java Engineer", Industry: "Retail",
			Skills: []models.SkillRequirement{{Name: "Java", Required: true}},
		},
	}
	for _, j := range jobs {
		require.NoError(t, store.UpsertJob(ctx, j))
	}

	candidates := []*models.CandidateProfile{
		{ID: "cand-strong", Skills: skills("Go", "PostgreSQL")},
		{ID: "cand-mid", Skills: skills("Go")},
		{ID: "cand-weak", Skills: skills("Java")},
		{
			ID: "cand-bad", Skills: skills("Go"),
			Preferences: models.JobPreferences{SalaryRange: &models.SalaryRange{Min: 90000, Max: 10000}},
		},
	}
	for _, c := range candidates {
		require.NoError(t, store.UpsertCandidate(ctx, c))
	}
	return store
}

type fakeRecommender struct {
	recs  []recommend.Recommendation
	err   error
	calls atomic.Int32
}

func (f *fakeRecommender) Recommend(context.Context, string, string, recommend.Options) ([]recommend.Recommendation, error) {
	f.calls.Add(1)
	return f.recs, f.err
}

// countingProvider counts job reads and can delay them.
type countingProvider struct {
	profiles.Provider
	jobReads atomic.Int32
	delay    time.Duration
}

func (p *countingProvider) GetJob(ctx context.Context, id string) (*models.JobProfile, error) {
	p.jobReads.Add(1)
	time.Sleep(p.delay)
	return p.Provider.GetJob(ctx, id)
}

func newService(t *testing.T, provider profiles.Provider, lister Lister, rec Recommender, cacheEnabled bool) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheCleanupInterval = -1

	s := NewService(Deps{
		Profiles:    provider,
		Scorer:      matching.NewEngine(matching.Config{Workers: 2}),
		Ranker:      ranking.NewEngine(ranking.Config{}),
		Pages:       filtering.New(filtering.DefaultConfig()),
		Recommender: rec,
		Lister:      lister,
	}, cfg)
	s.now = func() time.Time { return refNow }
	t.Cleanup(s.Close)
	return s
}

func ids(items []models.MatchResult) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func baseRequest() MatchRequest {
	return MatchRequest{
		JobID:        "job-go",
		CandidateIDs: []string{"cand-weak", "cand-mid", "cand-strong", "cand-bad", "ghost"},
		Ranking:      ranking.Criteria{Now: refNow},
	}
}

func TestMatchCandidates_RanksPool(t *testing.T) {
	store := seedStore(t)
	s := newService(t, store, nil, nil, false)

	resp, cached, err := s.MatchCandidates(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.False(t, cached)

	assert.Equal(t, []string{"cand-strong", "cand-mid", "cand-weak"}, ids(resp.Items))
	for i, item := range resp.Items {
		assert.Equal(t, i+1, item.Rank)
		assert.Equal(t, models.ResultTypeCandidate, item.Type)
		assert.NotNil(t, item.Breakdown)
	}
	assert.Equal(t, "job-go", resp.SubjectID)
	assert.Equal(t, models.ResultTypeJob, resp.SubjectType)
	assert.Equal(t, matching.PresetBalanced, resp.Preset)
	assert.Equal(t, 3, resp.TotalItems)
	assert.Equal(t, "score", resp.SortKey)

	require.Len(t, resp.Errors, 2)
	errIDs := []string{resp.Errors[0].ID, resp.Errors[1].ID}
	assert.ElementsMatch(t, []string{"cand-bad", "ghost"}, errIDs)
}

func TestMatchCandidates_ErrorIndexInRequestedPool(t *testing.T) {
	store := seedStore(t)
	s := newService(t, store, nil, nil, false)

	req := baseRequest()
	req.CandidateIDs = []string{"ghost", "cand-strong", "cand-bad"}
	resp, _, err := s.MatchCandidates(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "ghost", resp.Errors[0].ID)
	assert.Equal(t, 0, resp.Errors[0].Index)
	assert.Equal(t, "cand-bad", resp.Errors[1].ID)
	assert.Equal(t, 2, resp.Errors[1].Index)
}

func TestMergeItemErrors(t *testing.T) {
	loadErrs := []models.ItemError{{Index: 1, ID: "missing-1"}, {Index: 4, ID: "missing-4"}}
	// Loaded profiles sit at pool positions 0, 2, 3 and 5.
	poolIndex := []int{0, 2, 3, 5}
	scoreErrs := []models.ItemError{{Index: 3, ID: "bad-5"}, {Index: 1, ID: "bad-2"}}

	got := mergeItemErrors(loadErrs, scoreErrs, poolIndex)

	gotIdx := make([]int, len(got))
	gotIDs := make([]string, len(got))
	for i, e := range got {
		gotIdx[i], gotIDs[i] = e.Index, e.ID
	}
	assert.Equal(t, []int{1, 2, 4, 5}, gotIdx)
	assert.Equal(t, []string{"missing-1", "bad-2", "missing-4", "bad-5"}, gotIDs)
	assert.Nil(t, mergeItemErrors(nil, nil, poolIndex))
}

func TestMatchCandidates_DefaultPreset(t *testing.T) {
	store := seedStore(t)
	cfg := DefaultConfig()
	cfg.CacheEnabled = false
	cfg.DefaultPreset = matching.PresetSkillsFirst
	s := NewService(Deps{
		Profiles: store,
		Scorer:   matching.NewEngine(matching.Config{Workers: 2}),
		Ranker:   ranking.NewEngine(ranking.Config{}),
		Pages:    filtering.New(filtering.DefaultConfig()),
	}, cfg)
	s.now = func() time.Time { return refNow }
	t.Cleanup(s.Close)

	resp, _, err := s.MatchCandidates(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, matching.PresetSkillsFirst, resp.Preset)

	explicit := baseRequest()
	explicit.Preset = matching.PresetBalanced
	resp, _, err = s.MatchCandidates(context.Background(), explicit)
	require.NoError(t, err)
	assert.Equal(t, matching.PresetBalanced, resp.Preset)
}

func TestMatchCandidates_Cache(t *testing.T) {
	store := seedStore(t)
	provider := &countingProvider{Provider: store}
	s := newService(t, provider, nil, nil, true)
	ctx := context.Background()

	first, cached, err := s.MatchCandidates(ctx, baseRequest())
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := s.MatchCandidates(ctx, baseRequest())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, ids(first.Items), ids(second.Items))
	assert.Equal(t, int32(1), provider.jobReads.Load())

	other := baseRequest()
	other.Page = filtering.Page{Limit: 1}
	_, cached, err = s.MatchCandidates(ctx, other)
	require.NoError(t, err)
	assert.False(t, cached, "a different page is a different fingerprint")

	s.Invalidate()
	_, cached, err = s.MatchCandidates(ctx, baseRequest())
	require.NoError(t, err)
	assert.False(t, cached)

	stats, ok := s.CacheStats()
	require.True(t, ok)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestMatchCandidates_SingleFlight(t *testing.T) {
	store := seedStore(t)
	provider := &countingProvider{Provider: store, delay: 30 * time.Millisecond}
	s := newService(t, provider, nil, nil, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, _, err := s.MatchCandidates(context.Background(), baseRequest())
			assert.NoError(t, err)
			assert.Len(t, resp.Items, 3)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), provider.jobReads.Load())
}

func TestMatchCandidates_PoolFromLister(t *testing.T) {
	store := seedStore(t)
	s := newService(t, store, store, nil, false)

	req := baseRequest()
	req.CandidateIDs = nil
	resp, _, err := s.MatchCandidates(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"cand-strong", "cand-mid", "cand-weak"}, ids(resp.Items))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "cand-bad", resp.Errors[0].ID)
}

func TestMatchCandidates_FiltersSortAndPage(t *testing.T) {
	store := seedStore(t)
	s := newService(t, store, nil, nil, false)
	ctx := context.Background()

	req := baseRequest()
	req.Filters = &filtering.Filters{Skills: []string{"go"}}
	resp, _, err := s.MatchCandidates(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"cand-strong", "cand-mid"}, ids(resp.Items))
	assert.Equal(t, 1, resp.Ranking.Filtered)

	req = baseRequest()
	req.Sort = &filtering.Sort{Order: filtering.OrderAsc}
	resp, _, err = s.MatchCandidates(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"cand-weak", "cand-mid", "cand-strong"}, ids(resp.Items))

	req = baseRequest()
	req.Page = filtering.Page{Page: 2, Limit: 1}
	resp, _, err = s.MatchCandidates(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"cand-mid"}, ids(resp.Items))
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasMore)
}

func TestMatchCandidates_Blend(t *testing.T) {
	store := seedStore(t)
	rec := &fakeRecommender{recs: []recommend.Recommendation{
		{ItemID: "cand-weak", Score: 1},
		{ItemID: "not-in-pool", Score: 1},
	}}
	s := newService(t, store, nil, rec, false)

	req := baseRequest()
	req.BlendUserID = "recruiter-1"
	req.Ranking.BoostWeight = 100
	resp, _, err := s.MatchCandidates(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "cand-weak", resp.Items[0].ID)
	assert.Equal(t, 1, resp.Blended)
	assert.Equal(t, int32(1), rec.calls.Load())
}

func TestMatchCandidates_BlendFailureDegrades(t *testing.T) {
	store := seedStore(t)
	rec := &fakeRecommender{err: errors.New("recommender down")}
	s := newService(t, store, nil, rec, false)

	req := baseRequest()
	req.BlendUserID = "recruiter-1"
	resp, _, err := s.MatchCandidates(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Blended)
	assert.Equal(t, []string{"cand-strong", "cand-mid", "cand-weak"}, ids(resp.Items))
}

func TestMatchCandidates_Validation(t *testing.T) {
	store := seedStore(t)
	s := newService(t, store, nil, nil, false)

	tests := []struct {
		name   string
		mutate func(*MatchRequest)
		want   error
	}{
		{"missing job", func(r *MatchRequest) { r.JobID = "" }, ErrInvalidRequest},
		{"empty pool", func(r *MatchRequest) { r.CandidateIDs = nil }, ErrInvalidRequest},
		{"blank pool id", func(r *MatchRequest) { r.CandidateIDs = []string{"cand-mid", ""} }, ErrInvalidRequest},
		{"unknown preset", func(r *MatchRequest) { r.Preset = "vibes" }, matching.ErrUnknownPreset},
		{"negative weight", func(r *MatchRequest) { r.Weights = map[string]float64{"skills": -1} }, matching.ErrInvalidWeights},
		{"bad ranking", func(r *MatchRequest) { r.Ranking.KeywordBonus = 500 }, ranking.ErrInvalidCriteria},
		{"limit too large", func(r *MatchRequest) { r.Page.Limit = 1000 }, filtering.ErrInvalidCriteria},
		{"bad filter", func(r *MatchRequest) { r.Filters = &filtering.Filters{Skills: []string{}} }, filtering.ErrInvalidCriteria},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			_, _, err := s.MatchCandidates(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMatchCandidates_JobNotFound(t *testing.T) {
	store := seedStore(t)
	s := newService(t, store, nil, nil, true)

	req := baseRequest()
	req.JobID = "job-missing"
	_, _, err := s.MatchCandidates(context.Background(), req)
	assert.ErrorIs(t, err, profiles.ErrNotFound)
}

func TestMatchJobs(t *testing.T) {
	store := seedStore(t)
	s := newService(t, store, store, nil, false)

	resp, _, err := s.MatchJobs(context.Background(), MatchRequest{
		CandidateID: "cand-strong",
		Ranking:     ranking.Criteria{Now: refNow},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"job-go", "job-java"}, ids(resp.Items))
	assert.Equal(t, models.ResultTypeJob, resp.Items[0].Type)
	assert.Equal(t, models.ResultTypeCandidate, resp.SubjectType)

	_, _, err = s.MatchJobs(context.Background(), MatchRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "candidate_id", verr.Field)
}
