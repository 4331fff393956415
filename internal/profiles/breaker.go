// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
	"github.com/tomtom215/talentmatch/internal/models"
)

// ErrUnavailable is returned when the breaker rejects a read.
var ErrUnavailable = errors.New("profile provider unavailable")

// BreakerConfig configures the circuit breaker around a Provider.
type BreakerConfig struct {
	Name string

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32

	// Interval resets the failure counts while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// MinRequests and FailureRatio decide when the breaker opens.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerConfig opens after 60% failures over at least 10 requests
// and retries after 30 seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "profiles",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerProvider wraps a Provider with a circuit breaker.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// NewBreakerProvider wraps next. Zero fields of cfg take their defaults.
func NewBreakerProvider(next Provider, cfg BreakerConfig) *BreakerProvider {
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MinRequests == 0 {
		cfg.MinRequests = def.MinRequests
	}
	if cfg.FailureRatio <= 0 || cfg.FailureRatio > 1 {
		cfg.FailureRatio = def.FailureRatio
	}

	logger := logging.WithComponent("profiles")
	metrics.RecordCircuitBreakerTransition(cfg.Name, stateName(gobreaker.StateClosed), stateName(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= cfg.FailureRatio {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("opening profile circuit breaker")
				return true
			}
			return false
		},
		// A missing profile is a healthy answer.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		// Cancelled callers are not counted either way.
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", stateName(from)).Str("to", stateName(to)).Msg("circuit breaker state transition")
			metrics.RecordCircuitBreakerTransition(name, stateName(from), stateName(to))
		},
	})

	return &BreakerProvider{next: next, cb: cb, name: cfg.Name}
}

// GetCandidate reads through the breaker.
func (p *BreakerProvider) GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error) {
	return castResult[models.CandidateProfile](p.execute(func() (interface{}, error) {
		return p.next.GetCandidate(ctx, id)
	}))
}

// GetJob reads through the breaker.
func (p *BreakerProvider) GetJob(ctx context.Context, id string) (*models.JobProfile, error) {
	return castResult[models.JobProfile](p.execute(func() (interface{}, error) {
		return p.next.GetJob(ctx, id)
	}))
}

// State returns the breaker state name: closed, half-open or open.
func (p *BreakerProvider) State() string {
	return stateName(p.cb.State())
}

func (p *BreakerProvider) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := p.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w: %w", p.name, ErrUnavailable, err)
	}
	return result, err
}

func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateName(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
