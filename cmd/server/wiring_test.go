// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package main

import (
	"context"
	"testing"

	"github.com/tomtom215/talentmatch/internal/config"
	"github.com/tomtom215/talentmatch/internal/matching"
	"github.com/tomtom215/talentmatch/internal/profiles"
	"github.com/tomtom215/talentmatch/internal/recommend"
)

// loadTestConfig loads defaults with an in-memory event log and no config file.
func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("EVENTLOG_IN_MEMORY", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	return cfg
}

func TestRecommendConfig(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Recommend.ColdStartThreshold = 4
	cfg.Recommend.Factors = 8
	cfg.Recommend.Seed = 0

	rc := recommendConfig(cfg)
	if rc.ColdStartThreshold != 4 {
		t.Errorf("ColdStartThreshold = %d, want 4", rc.ColdStartThreshold)
	}
	if rc.Training.Factors != 8 {
		t.Errorf("Training.Factors = %d, want 8", rc.Training.Factors)
	}
	if want := recommend.DefaultConfig().Seed; rc.Seed != want {
		t.Errorf("Seed = %d, want default %d", rc.Seed, want)
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBreakerConfig(t *testing.T) {
	cfg := loadTestConfig(t)
	bc := breakerConfig(cfg)

	if bc.Name != profiles.DefaultBreakerConfig().Name {
		t.Errorf("Name = %q, want %q", bc.Name, profiles.DefaultBreakerConfig().Name)
	}
	if bc.FailureRatio != cfg.Profiles.BreakerFailureRatio {
		t.Errorf("FailureRatio = %v, want %v", bc.FailureRatio, cfg.Profiles.BreakerFailureRatio)
	}
}

func TestBuildEngines_UnknownMetric(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Similarity.DefaultMetric = "hamming"

	if _, err := buildEngines(cfg); err == nil {
		t.Error("buildEngines() error = nil, want unknown metric error")
	}
}

func TestHandlerConfig(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Matching.DefaultPreset = matching.PresetPotentialFirst

	hc := handlerConfig(cfg)
	if hc.DefaultPreset != matching.PresetPotentialFirst {
		t.Errorf("DefaultPreset = %q, want %q", hc.DefaultPreset, matching.PresetPotentialFirst)
	}
	if hc.Version != version {
		t.Errorf("Version = %q, want %q", hc.Version, version)
	}
}

func TestInitFeed_Disabled(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Feed.Enabled = false

	if got := initFeed(cfg, nil, nil); got != nil {
		t.Errorf("initFeed() = %v, want nil when disabled", got)
	}
	// close on a nil feed is a no-op.
	var none *feedComponents
	none.close()
}

func TestInitRecommender_ReplaysEventLog(t *testing.T) {
	cfg := loadTestConfig(t)
	ctx := context.Background()

	log, err := openEventLog(cfg)
	if err != nil {
		t.Fatalf("openEventLog() error = %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })

	for _, item := range []string{"job-1", "job-2", "job-3"} {
		in := recommend.Interaction{UserID: "u1", ItemID: item, ItemType: "job", Type: recommend.InteractionApply}
		if _, err := log.Append(ctx, in); err != nil {
			t.Fatalf("Append(%s) error = %v", item, err)
		}
	}

	rec, err := initRecommender(ctx, cfg, profiles.NewMemoryStore(), log)
	if err != nil {
		t.Fatalf("initRecommender() error = %v", err)
	}
	stats := rec.Stats()
	if stats.Interactions != 3 {
		t.Errorf("Interactions = %d, want 3", stats.Interactions)
	}
	if stats.Users != 1 {
		t.Errorf("Users = %d, want 1", stats.Users)
	}
}

func TestOpenEventLog_Disabled(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.EventLog.Enabled = false

	log, err := openEventLog(cfg)
	if err != nil {
		t.Fatalf("openEventLog() error = %v", err)
	}
	if log != nil {
		t.Errorf("openEventLog() = %v, want nil when disabled", log)
	}
}
