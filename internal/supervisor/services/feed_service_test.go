// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/talentmatch/internal/feed"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

type fakeConsumer struct {
	err      error
	blocking bool
}

func (f *fakeConsumer) Serve(ctx context.Context) error {
	if f.blocking {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func TestFeedService_Serve(t *testing.T) {
	subscribeErr := errors.New("subscribe to interactions: bus closed")

	tests := []struct {
		name     string
		consumer *fakeConsumer
		want     error
	}{
		{"closed subscription stops for good", &fakeConsumer{}, suture.ErrDoNotRestart},
		{"subscribe error restarts", &fakeConsumer{err: subscribeErr}, subscribeErr},
		{"cancel returns ctx error", &fakeConsumer{blocking: true}, context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			svc := NewFeedService(tt.consumer)
			if err := svc.Serve(ctx); !errors.Is(err, tt.want) {
				t.Errorf("Serve() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFeedService_String(t *testing.T) {
	if got := NewFeedService(&fakeConsumer{}).String(); got != "feed-consumer" {
		t.Errorf("String() = %q, want feed-consumer", got)
	}
}

func TestFeedService_RealConsumer(t *testing.T) {
	rec, err := recommend.NewRecommender(recommend.DefaultConfig())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}

	cfg := feed.DefaultConfig()
	bus := feed.NewBus(cfg)
	consumer := feed.NewConsumer(bus, cfg, nil, rec)
	defer consumer.Close()

	done := make(chan error, 1)
	go func() { done <- NewFeedService(consumer).Serve(context.Background()) }()

	pub := feed.NewPublisher(bus, cfg.Topic)
	in := recommend.Interaction{UserID: "seeker-1", ItemID: "job-9", ItemType: "job", Type: recommend.InteractionApply}

	// The subscription is created asynchronously; publish until it lands.
	deadline := time.Now().Add(2 * time.Second)
	for rec.Stats().Interactions == 0 {
		if time.Now().After(deadline) {
			t.Fatal("interaction was never applied")
		}
		if _, err := pub.Publish(context.Background(), in); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("bus.Close() error = %v", err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, suture.ErrDoNotRestart) {
			t.Errorf("Serve() error = %v, want suture.ErrDoNotRestart", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("FeedService did not stop after the bus closed")
	}
}
