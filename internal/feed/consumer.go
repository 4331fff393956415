// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package feed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/talentmatch/internal/cache"
	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/metrics"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

// Message outcomes reported to metrics.
const (
	OutcomeProcessed = "processed"
	OutcomeDuplicate = "duplicate"
	OutcomeMalformed = "malformed"
	OutcomeRetried   = "retried"
	OutcomeDropped   = "dropped"
)

// Appender persists an interaction before it is applied.
type Appender interface {
	Append(ctx context.Context, in recommend.Interaction) (recommend.Interaction, error)
}

// Recorder folds an interaction into the recommender.
type Recorder interface {
	Record(in *recommend.Interaction) error
}

// ConsumerStats counts message outcomes.
type ConsumerStats struct {
	Received   int64 `json:"received"`
	Processed  int64 `json:"processed"`
	Duplicates int64 `json:"duplicates"`
	Malformed  int64 `json:"malformed"`
	Retried    int64 `json:"retried"`
	Dropped    int64 `json:"dropped"`
}

// Consumer applies feed messages to the event log and the recommender.
type Consumer struct {
	sub      message.Subscriber
	cfg      Config
	appender Appender
	recorder Recorder
	seen     *cache.Cache
	logger   zerolog.Logger

	attemptsMu sync.Mutex
	attempts   map[string]int

	received   atomic.Int64
	processed  atomic.Int64
	duplicates atomic.Int64
	malformed  atomic.Int64
	retried    atomic.Int64
	dropped    atomic.Int64
}

// NewConsumer creates a consumer. appender may be nil when the event log is
// disabled.
func NewConsumer(sub message.Subscriber, cfg Config, appender Appender, recorder Recorder) *Consumer {
	cfg = cfg.withDefaults()
	return &Consumer{
		sub:      sub,
		cfg:      cfg,
		appender: appender,
		recorder: recorder,
		seen: cache.New(cache.Config{
			Name:       "feed_dedupe",
			TTL:        cfg.DedupeTTL,
			MaxEntries: cfg.DedupeMaxEntries,
		}),
		logger:   logging.WithComponent("feed"),
		attempts: make(map[string]int),
	}
}

// Serve consumes messages until ctx ends or the subscription closes.
func (c *Consumer) Serve(ctx context.Context) error {
	messages, err := c.sub.Subscribe(ctx, c.cfg.Topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.cfg.Topic, err)
	}
	c.logger.Info().Str("topic", c.cfg.Topic).Msg("feed consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Int64("processed", c.processed.Load()).Msg("feed consumer stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				c.logger.Info().Msg("feed subscription closed")
				return nil
			}
			c.handle(ctx, msg)
		}
	}
}

// Close stops the dedupe cache's cleanup loop.
func (c *Consumer) Close() {
	c.seen.Close()
}

// Stats returns outcome counters.
func (c *Consumer) Stats() ConsumerStats {
	return ConsumerStats{
		Received:   c.received.Load(),
		Processed:  c.processed.Load(),
		Duplicates: c.duplicates.Load(),
		Malformed:  c.malformed.Load(),
		Retried:    c.retried.Load(),
		Dropped:    c.dropped.Load(),
	}
}

// messageContext carries the publishing request's IDs into the consumer so
// both sides of the feed log under the same correlation_id.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func messageContext(ctx context.Context, msg *message.Message, logger zerolog.Logger) context.Context {
	ctx = logging.ContextWithLogger(ctx, logger)
	if id := msg.Metadata.Get(MetadataRequestID); id != "" {
		ctx = logging.ContextWithRequestID(ctx, id)
	}
	if id := msg.Metadata.Get(MetadataCorrelationID); id != "" {
		ctx = logging.ContextWithCorrelationID(ctx, id)
	}
	return ctx
}

func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	c.received.Add(1)
	ctx = messageContext(ctx, msg, c.logger)
	logger := logging.CtxWith(ctx).Str("message_uuid", msg.UUID).Logger()

	if c.seen.Contains(msg.UUID) {
		c.duplicates.Add(1)
		metrics.RecordFeedMessage(OutcomeDuplicate)
		msg.Ack()
		return
	}

	var in recommend.Interaction
	if err := json.Unmarshal(msg.Payload, &in); err != nil {
		c.malformed.Add(1)
		metrics.RecordFeedMessage(OutcomeMalformed)
		logger.Warn().Err(err).Msg("dropping undecodable interaction")
		msg.Ack() // Ack to prevent redelivery of malformed messages
		return
	}
	if in.ID == "" {
		in.ID = msg.UUID
	}
	if err := in.Validate(); err != nil {
		c.malformed.Add(1)
		metrics.RecordFeedMessage(OutcomeMalformed)
		logger.Warn().Err(err).Msg("dropping invalid interaction")
		msg.Ack()
		return
	}

	if c.appender != nil {
		if _, err := c.appender.Append(ctx, in); err != nil {
			c.retryOrDrop(ctx, msg, logger, err)
			return
		}
	}
	// Validated above, so Record cannot reject it.
	if err := c.recorder.Record(&in); err != nil {
		logger.Error().Err(err).Msg("recorder rejected validated interaction")
	}

	c.forget(msg.UUID)
	c.seen.Set(msg.UUID, struct{}{})
	c.processed.Add(1)
	metrics.RecordFeedMessage(OutcomeProcessed)
	msg.Ack()
}

func (c *Consumer) retryOrDrop(ctx context.Context, msg *message.Message, logger zerolog.Logger, cause error) {
	c.attemptsMu.Lock()
	c.attempts[msg.UUID]++
	attempt := c.attempts[msg.UUID]
	c.attemptsMu.Unlock()

	if attempt >= c.cfg.MaxAttempts {
		c.forget(msg.UUID)
		c.dropped.Add(1)
		metrics.RecordFeedMessage(OutcomeDropped)
		logger.Error().Err(cause).Int("attempts", attempt).Msg("dropping interaction after repeated append failures")
		msg.Ack()
		return
	}

	c.retried.Add(1)
	metrics.RecordFeedMessage(OutcomeRetried)
	logger.Warn().Err(cause).Int("attempt", attempt).Msg("append failed, requesting redelivery")

	if c.cfg.RetryDelay > 0 {
		timer := time.NewTimer(c.cfg.RetryDelay)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		timer.Stop()
	}
	msg.Nack() // Nack for redelivery by the bus
}

func (c *Consumer) forget(id string) {
	c.attemptsMu.Lock()
	delete(c.attempts, id)
	c.attemptsMu.Unlock()
}
