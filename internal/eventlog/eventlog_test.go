// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package eventlog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/talentmatch/internal/recommend"
)

func openMemory(t *testing.T) *Log {
	t.Helper()
	l, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func view(user, item string) recommend.Interaction {
	return recommend.Interaction{UserID: user, ItemID: item, ItemType: "job", Type: recommend.InteractionView}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"in memory", Config{InMemory: true}, false},
		{"path", Config{Path: "/tmp/events"}, false},
		{"neither", Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Open(Config{}); err == nil {
		t.Error("Open() with empty config should fail")
	}
}

func TestLog_AppendAndReplayOrder(t *testing.T) {
	l := openMemory(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	l.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}

	// Appended out of item order to show that key order follows append time.
	items := []string{"job-3", "job-1", "job-2"}
	for _, item := range items {
		if _, err := l.Append(ctx, view("u1", item)); err != nil {
			t.Fatalf("Append(%s) error = %v", item, err)
		}
	}

	got, err := l.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("len(All()) = %d, want %d", len(got), len(items))
	}
	for i, in := range got {
		if in.ItemID != items[i] {
			t.Errorf("All()[%d].ItemID = %s, want %s", i, in.ItemID, items[i])
		}
	}
	if l.Count() != 3 {
		t.Errorf("Count() = %d, want 3", l.Count())
	}
}

func TestLog_AppendFillsIDAndTimestamp(t *testing.T) {
	l := openMemory(t)
	ctx := context.Background()
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	stored, err := l.Append(ctx, view("u1", "job-1"))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if stored.ID == "" {
		t.Error("Append() did not assign an ID")
	}
	if !stored.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", stored.Timestamp, fixed)
	}

	explicit := view("u1", "job-2")
	explicit.ID = "evt-42"
	explicit.Timestamp = fixed.Add(-time.Hour)
	stored, err = l.Append(ctx, explicit)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if stored.ID != "evt-42" || !stored.Timestamp.Equal(fixed.Add(-time.Hour)) {
		t.Errorf("Append() overwrote caller fields: %+v", stored)
	}

	all, err := l.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if all[1].ID != "evt-42" {
		t.Errorf("replayed ID = %s, want evt-42", all[1].ID)
	}
}

func TestLog_AppendRejectsInvalid(t *testing.T) {
	l := openMemory(t)

	bad := recommend.Interaction{UserID: "u1", ItemID: "job-1", Type: "stare"}
	_, err := l.Append(context.Background(), bad)
	if !errors.Is(err, recommend.ErrInvalidInteraction) {
		t.Errorf("Append() error = %v, want ErrInvalidInteraction", err)
	}
	if l.Count() != 0 {
		t.Errorf("Count() = %d, want 0", l.Count())
	}
}

func TestLog_ReplayStopsOnError(t *testing.T) {
	l := openMemory(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := l.Append(ctx, view("u1", fmt.Sprintf("job-%d", i))); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	stop := errors.New("stop")
	seen := 0
	err := l.Replay(ctx, func(recommend.Interaction) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("Replay() error = %v, want %v", err, stop)
	}
	if seen != 2 {
		t.Errorf("callbacks = %d, want 2", seen)
	}
}

func TestLog_ReplayCanceled(t *testing.T) {
	l := openMemory(t)
	if _, err := l.Append(context.Background(), view("u1", "job-1")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := l.Replay(ctx, func(recommend.Interaction) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Replay() error = %v, want context.Canceled", err)
	}
}

func TestLog_Closed(t *testing.T) {
	l, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if _, err := l.Append(context.Background(), view("u1", "job-1")); !errors.Is(err, ErrClosed) {
		t.Errorf("Append() error = %v, want ErrClosed", err)
	}
	if err := l.Replay(context.Background(), func(recommend.Interaction) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Errorf("Replay() error = %v, want ErrClosed", err)
	}
}

func TestLog_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	l, err := Open(Config{Path: dir, SyncWrites: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	rating := 4
	in := view("u1", "job-1")
	in.Rating = &rating
	in.Source = recommend.SourceSearch
	if _, err := l.Append(ctx, in); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := l.Append(ctx, view("u2", "job-2")); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	if reopened.Count() != 2 {
		t.Errorf("Count() after reopen = %d, want 2", reopened.Count())
	}
	all, err := reopened.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if all[0].Rating == nil || *all[0].Rating != 4 || all[0].Source != recommend.SourceSearch {
		t.Errorf("replayed interaction = %+v, want rating 4 from search", all[0])
	}
}

func TestLog_RebuildsRecommender(t *testing.T) {
	l := openMemory(t)
	ctx := context.Background()
	for u := 0; u < 3; u++ {
		for i := 0; i < 4; i++ {
			if _, err := l.Append(ctx, view(fmt.Sprintf("u%d", u), fmt.Sprintf("job-%d", i))); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}
	}

	rec, err := recommend.NewRecommender(recommend.DefaultConfig())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}
	events, err := l.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if applied := rec.Rebuild(events); applied != 12 {
		t.Errorf("Rebuild() = %d, want 12", applied)
	}
	if got := rec.Stats().Users; got != 3 {
		t.Errorf("Stats().Users = %d, want 3", got)
	}
}

func TestLog_ConcurrentAppend(t *testing.T) {
	l := openMemory(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if _, err := l.Append(ctx, view(fmt.Sprintf("u%d", g), fmt.Sprintf("job-%d", i))); err != nil {
					t.Errorf("Append() error = %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	if l.Count() != 200 {
		t.Errorf("Count() = %d, want 200", l.Count())
	}
	all, err := l.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 200 {
		t.Errorf("len(All()) = %d, want 200", len(all))
	}
}
