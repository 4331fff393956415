// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package services

import (
	"context"

	"github.com/thejerf/suture/v4"
)

// FeedConsumer consumes the interaction feed until ctx ends. It returns nil
// when the subscription closes.
type FeedConsumer interface {
	Serve(ctx context.Context) error
}

// FeedService supervises the interaction feed consumer.
type FeedService struct {
	consumer FeedConsumer
	name     string
}

// NewFeedService wraps consumer.
func NewFeedService(consumer FeedConsumer) *FeedService {
	return &FeedService{consumer: consumer, name: "feed-consumer"}
}

// Serve implements suture.Service. Subscribe errors are returned so the
// supervisor restarts the consumer; a closed subscription ends it for good.
func (s *FeedService) Serve(ctx context.Context) error {
	err := s.consumer.Serve(ctx)
	if err == nil && ctx.Err() == nil {
		return suture.ErrDoNotRestart
	}
	return err
}

// String implements fmt.Stringer.
func (s *FeedService) String() string {
	return s.name
}
