// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package feed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/talentmatch/internal/eventlog"
	"github.com/tomtom215/talentmatch/internal/logging"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

type fakeRecorder struct {
	mu      sync.Mutex
	records []recommend.Interaction
}

func (r *fakeRecorder) Record(in *recommend.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *in)
	return nil
}

func (r *fakeRecorder) items() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.records))
	for i, in := range r.records {
		out[i] = in.ItemID
	}
	return out
}

// flakyAppender fails the first failures calls.
type flakyAppender struct {
	failures int32
	calls    atomic.Int32
}

var errDisk = errors.New("disk full")

func (a *flakyAppender) Append(_ context.Context, in recommend.Interaction) (recommend.Interaction, error) {
	if a.calls.Add(1) <= a.failures {
		return in, errDisk
	}
	return in, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func view(user, item string) recommend.Interaction {
	return recommend.Interaction{UserID: user, ItemID: item, ItemType: "job", Type: recommend.InteractionView}
}

// startConsumer runs a consumer on a fresh bus until the test ends.
func startConsumer(t *testing.T, cfg Config, appender Appender, recorder Recorder) (*gochannel.GoChannel, *Consumer) {
	t.Helper()
	bus := NewBus(cfg)
	c := NewConsumer(bus, cfg, appender, recorder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		<-done
		c.Close()
		_ = bus.Close()
	})

	// Serve subscribes asynchronously; messages published before the
	// subscription exists are discarded by the non-persistent bus.
	require.Eventually(t, func() bool {
		probe := message.NewMessage("probe", []byte("{"))
		_ = bus.Publish(cfg.withDefaults().Topic, probe)
		return c.Stats().Received > 0
	}, 2*time.Second, 5*time.Millisecond)
	return bus, c
}

func TestPublisher_Publish(t *testing.T) {
	bus := NewBus(testConfig())
	defer bus.Close()

	ctx := context.Background()
	msgs, err := bus.Subscribe(ctx, DefaultTopic)
	require.NoError(t, err)

	ctx = logging.ContextWithRequestID(ctx, "req-7")
	ctx = logging.ContextWithCorrelationID(ctx, "corr0007")
	p := NewPublisher(bus, "")
	published, err := p.Publish(ctx, view("u1", "job-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, published.ID)
	assert.False(t, published.Timestamp.IsZero())

	select {
	case msg := <-msgs:
		assert.Equal(t, published.ID, msg.UUID)
		assert.Equal(t, "u1", msg.Metadata.Get(MetadataUserID))
		assert.Equal(t, "job", msg.Metadata.Get(MetadataItemType))
		assert.Equal(t, "req-7", msg.Metadata.Get(MetadataRequestID))
		assert.Equal(t, "corr0007", msg.Metadata.Get(MetadataCorrelationID))

		mctx := messageContext(context.Background(), msg, zerolog.Nop())
		assert.Equal(t, "corr0007", logging.CorrelationIDFromContext(mctx))
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestPublisher_Rejects(t *testing.T) {
	bus := NewBus(testConfig())
	defer bus.Close()
	p := NewPublisher(bus, DefaultTopic)

	_, err := p.Publish(context.Background(), recommend.Interaction{UserID: "u1", Type: recommend.InteractionView})
	assert.ErrorIs(t, err, recommend.ErrInvalidInteraction)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Publish(ctx, view("u1", "job-1"))
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, p.Close())
	_, err = p.Publish(context.Background(), view("u1", "job-1"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestConsumer_RecordsInteractions(t *testing.T) {
	cfg := testConfig()
	rec := &fakeRecorder{}
	bus, c := startConsumer(t, cfg, nil, rec)
	p := NewPublisher(bus, cfg.Topic)

	for _, item := range []string{"job-1", "job-2", "job-3"} {
		_, err := p.Publish(context.Background(), view("u1", item))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool { return c.Stats().Processed == 3 }, 2*time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"job-1", "job-2", "job-3"}, rec.items())
}

func TestConsumer_DropsDuplicates(t *testing.T) {
	cfg := testConfig()
	rec := &fakeRecorder{}
	bus, c := startConsumer(t, cfg, nil, rec)
	p := NewPublisher(bus, cfg.Topic)

	in := view("u1", "job-1")
	in.ID = "evt-1"
	_, err := p.Publish(context.Background(), in)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return c.Stats().Processed == 1 }, 2*time.Second, 5*time.Millisecond)

	_, err = p.Publish(context.Background(), in)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return c.Stats().Duplicates == 1 }, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"job-1"}, rec.items())
}

func TestConsumer_AcksMalformed(t *testing.T) {
	cfg := testConfig()
	rec := &fakeRecorder{}
	bus, c := startConsumer(t, cfg, nil, rec)
	before := c.Stats().Malformed

	require.NoError(t, bus.Publish(cfg.Topic, message.NewMessage("bad-json", []byte("not json"))))
	require.NoError(t, bus.Publish(cfg.Topic, message.NewMessage("bad-type", []byte(`{"user_id":"u1","item_id":"j1","type":"stare"}`))))

	require.Eventually(t, func() bool { return c.Stats().Malformed >= before+2 }, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, rec.items())
}

func TestConsumer_RetriesAppendFailures(t *testing.T) {
	cfg := testConfig()
	rec := &fakeRecorder{}
	app := &flakyAppender{failures: 2}
	bus, c := startConsumer(t, cfg, app, rec)
	p := NewPublisher(bus, cfg.Topic)

	_, err := p.Publish(context.Background(), view("u1", "job-1"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return c.Stats().Processed == 1 }, 2*time.Second, 5*time.Millisecond)
	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Retried)
	assert.Equal(t, int64(0), stats.Dropped)
	assert.Equal(t, []string{"job-1"}, rec.items())
}

func TestConsumer_DropsAfterMaxAttempts(t *testing.T) {
	cfg := testConfig()
	cfg.MaxAttempts = 3
	rec := &fakeRecorder{}
	app := &flakyAppender{failures: 1000}
	bus, c := startConsumer(t, cfg, app, rec)
	p := NewPublisher(bus, cfg.Topic)

	_, err := p.Publish(context.Background(), view("u1", "job-1"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return c.Stats().Dropped == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(2), c.Stats().Retried)
	assert.Equal(t, int32(3), app.calls.Load())
	assert.Empty(t, rec.items())
}

func TestConsumer_EventLogAndRecommender(t *testing.T) {
	log, err := eventlog.Open(eventlog.Config{InMemory: true})
	require.NoError(t, err)
	defer log.Close()

	rec, err := recommend.NewRecommender(recommend.DefaultConfig())
	require.NoError(t, err)

	cfg := testConfig()
	bus, c := startConsumer(t, cfg, log, rec)
	p := NewPublisher(bus, cfg.Topic)

	for _, item := range []string{"job-1", "job-2"} {
		_, err := p.Publish(context.Background(), view("u1", item))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool { return c.Stats().Processed == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(2), log.Count())
	assert.Equal(t, 2, rec.Stats().Interactions)
	assert.Equal(t, 2, rec.UserState("u1").Interactions)
}

func TestConsumer_ServeStopsWhenBusCloses(t *testing.T) {
	cfg := testConfig()
	bus := NewBus(cfg)
	c := NewConsumer(bus, cfg, nil, &fakeRecorder{})
	defer c.Close()

	done := make(chan error, 1)
	go func() { done <- c.Serve(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, bus.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after bus close")
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{RetryDelay: -1}.withDefaults()
	def := DefaultConfig()
	assert.Equal(t, def.Topic, cfg.Topic)
	assert.Equal(t, def.BufferSize, cfg.BufferSize)
	assert.Equal(t, def.MaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.RetryDelay)
}
