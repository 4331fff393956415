// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package profiles

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/talentmatch/internal/models"
)

var errBackend = errors.New("backend down")

// flakyProvider returns err for every read while set, otherwise delegates.
type flakyProvider struct {
	next  Provider
	err   atomic.Value
	calls int32
}

func (p *flakyProvider) fail(err error) { p.err.Store(&err) }

func (p *flakyProvider) current() error {
	if v, ok := p.err.Load().(*error); ok && v != nil {
		return *v
	}
	return nil
}

func (p *flakyProvider) GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error) {
	atomic.AddInt32(&p.calls, 1)
	if err := p.current(); err != nil {
		return nil, err
	}
	return p.next.GetCandidate(ctx, id)
}

func (p *flakyProvider) GetJob(ctx context.Context, id string) (*models.JobProfile, error) {
	atomic.AddInt32(&p.calls, 1)
	if err := p.current(); err != nil {
		return nil, err
	}
	return p.next.GetJob(ctx, id)
}

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "profiles-test",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      50 * time.Millisecond,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreakerProvider_PassThrough(t *testing.T) {
	p := NewBreakerProvider(seedStore(t), testBreakerConfig())
	ctx := context.Background()

	job, err := p.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if job.ID != "job-1" {
		t.Errorf("ID = %q, want job-1", job.ID)
	}
	cand, err := p.GetCandidate(ctx, "cand-1")
	if err != nil {
		t.Fatalf("GetCandidate() error = %v", err)
	}
	if cand.ID != "cand-1" {
		t.Errorf("ID = %q, want cand-1", cand.ID)
	}
	if p.State() != "closed" {
		t.Errorf("State() = %q, want closed", p.State())
	}
}

func TestBreakerProvider_NotFoundDoesNotTrip(t *testing.T) {
	p := NewBreakerProvider(seedStore(t), testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := p.GetJob(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("GetJob(missing) error = %v, want ErrNotFound", err)
		}
	}
	if p.State() != "closed" {
		t.Errorf("State() = %q, want closed", p.State())
	}
}

func TestBreakerProvider_CancellationExcluded(t *testing.T) {
	flaky := &flakyProvider{next: seedStore(t)}
	flaky.fail(context.Canceled)
	p := NewBreakerProvider(flaky, testBreakerConfig())

	for i := 0; i < 10; i++ {
		if _, err := p.GetJob(context.Background(), "job-1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("GetJob() error = %v, want context.Canceled", err)
		}
	}
	if p.State() != "closed" {
		t.Errorf("State() = %q, want closed", p.State())
	}
}

func TestBreakerProvider_OpensAndRecovers(t *testing.T) {
	flaky := &flakyProvider{next: seedStore(t)}
	flaky.fail(errBackend)
	p := NewBreakerProvider(flaky, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := p.GetJob(ctx, "job-1"); !errors.Is(err, errBackend) {
			t.Fatalf("GetJob() #%d error = %v, want %v", i, err, errBackend)
		}
	}
	if p.State() != "open" {
		t.Fatalf("State() = %q, want open", p.State())
	}

	calls := atomic.LoadInt32(&flaky.calls)
	if _, err := p.GetJob(ctx, "job-1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("GetJob() while open error = %v, want ErrUnavailable", err)
	}
	if got := atomic.LoadInt32(&flaky.calls); got != calls {
		t.Errorf("open breaker reached backend: calls %d -> %d", calls, got)
	}

	flaky.fail(nil)
	time.Sleep(80 * time.Millisecond)

	if _, err := p.GetJob(ctx, "job-1"); err != nil {
		t.Fatalf("GetJob() after timeout error = %v", err)
	}
	if p.State() != "closed" {
		t.Errorf("State() = %q, want closed", p.State())
	}
}

func TestNewBreakerProvider_Defaults(t *testing.T) {
	p := NewBreakerProvider(NewMemoryStore(), BreakerConfig{})
	if p.name != "profiles" {
		t.Errorf("name = %q, want profiles", p.name)
	}
}
