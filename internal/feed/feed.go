// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

// DefaultTopic is the topic interactions are published on.
const DefaultTopic = "interactions"

// Message metadata keys.
const (
	MetadataUserID        = "user_id"
	MetadataItemType      = "item_type"
	MetadataRequestID     = "request_id"
	MetadataCorrelationID = "correlation_id"
)

// ErrClosed is returned when publishing on a closed publisher.
var ErrClosed = errors.New("feed publisher is closed")

// Config configures the bus and its consumer.
type Config struct {
	Topic string

	// BufferSize is the subscriber channel buffer.
	BufferSize int64

	// DedupeTTL is how long processed message IDs are remembered.
	DedupeTTL time.Duration

	// DedupeMaxEntries bounds the dedupe window.
	DedupeMaxEntries int

	// MaxAttempts bounds redeliveries of a message whose append fails.
	MaxAttempts int

	// RetryDelay is the pause before a nack.
	RetryDelay time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Topic:            DefaultTopic,
		BufferSize:       256,
		DedupeTTL:        10 * time.Minute,
		DedupeMaxEntries: 100000,
		MaxAttempts:      5,
		RetryDelay:       100 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Topic == "" {
		c.Topic = def.Topic
	}
	if c.BufferSize <= 0 {
		c.BufferSize = def.BufferSize
	}
	if c.DedupeTTL <= 0 {
		c.DedupeTTL = def.DedupeTTL
	}
	if c.DedupeMaxEntries <= 0 {
		c.DedupeMaxEntries = def.DedupeMaxEntries
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	return c
}

// NewBus creates the in-process pub/sub. The returned GoChannel is both the
// message.Publisher and the message.Subscriber for the feed.
func NewBus(cfg Config) *gochannel.GoChannel {
	cfg = cfg.withDefaults()
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.BufferSize,
	}, logging.NewWatermillAdapter())
}

// Publisher publishes interactions on the feed topic.
type Publisher struct {
	pub   message.Publisher
	topic string

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps a Watermill publisher.
func NewPublisher(pub message.Publisher, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{pub: pub, topic: topic}
}

// Publish validates and publishes one interaction. An empty ID is replaced
// with a UUID, which also becomes the message UUID; the published copy is
// returned.
func (p *Publisher) Publish(ctx context.Context, in recommend.Interaction) (recommend.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return in, err
	}
	if err := in.Validate(); err != nil {
		return in, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return in, ErrClosed
	}

	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(&in)
	if err != nil {
		return in, fmt.Errorf("marshal interaction: %w", err)
	}

	msg := message.NewMessage(in.ID, data)
	msg.Metadata.Set(MetadataUserID, in.UserID)
	msg.Metadata.Set(MetadataItemType, in.ItemType)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataRequestID, id)
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}

	if err := p.pub.Publish(p.topic, msg); err != nil {
		return in, fmt.Errorf("publish interaction %s: %w", in.ID, err)
	}
	return in, nil
}

// Close marks the publisher closed. The underlying bus is closed by its
// owner.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
