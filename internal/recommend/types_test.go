// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"errors"
	"math"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestInteractionType_BaseWeight(t *testing.T) {
	tests := []struct {
		itype    InteractionType
		expected float64
	}{
		{InteractionView, 1},
		{InteractionLike, 2},
		{InteractionSave, 3},
		{InteractionShare, 3},
		{InteractionComment, 3},
		{InteractionFeedback, 4},
		{InteractionApply, 5},
		{InteractionType("bookmark"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.itype), func(t *testing.T) {
			if got := tt.itype.BaseWeight(); got != tt.expected {
				t.Errorf("%q.BaseWeight() = %v, want %v", tt.itype, got, tt.expected)
			}
		})
	}
}

func TestInteraction_Weight(t *testing.T) {
	tests := []struct {
		name     string
		in       Interaction
		expected float64
	}{
		{"plain view", Interaction{Type: InteractionView}, 1},
		{"apply rated 3", Interaction{Type: InteractionApply, Rating: intPtr(3)}, 3},
		{"like rated 5 is unchanged", Interaction{Type: InteractionLike, Rating: intPtr(5)}, 2},
		{"long dwell", Interaction{Type: InteractionView, DurationSeconds: 30}, 1.2},
		{"short dwell", Interaction{Type: InteractionSave, DurationSeconds: 2}, 1.5},
		{"medium dwell is neutral", Interaction{Type: InteractionSave, DurationSeconds: 10}, 3},
		{"from search", Interaction{Type: InteractionLike, Source: "search"}, 2.2},
		{"from email", Interaction{Type: InteractionFeedback, Source: "Email"}, 3.6},
		{"from recommendation is neutral", Interaction{Type: InteractionFeedback, Source: SourceRecommendation}, 4},
		{"all adjustments", Interaction{Type: InteractionApply, Rating: intPtr(4), DurationSeconds: 45, Source: "search"}, 5 * 0.8 * 1.2 * 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Weight(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Weight() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInteraction_Validate(t *testing.T) {
	valid := Interaction{UserID: "u1", ItemID: "job-1", Type: InteractionView}

	tests := []struct {
		name    string
		mutate  func(in *Interaction)
		field   string
		wantErr bool
	}{
		{"valid", func(*Interaction) {}, "", false},
		{"missing user", func(in *Interaction) { in.UserID = " " }, "user_id", true},
		{"missing item", func(in *Interaction) { in.ItemID = "" }, "item_id", true},
		{"unknown type", func(in *Interaction) { in.Type = "bookmark" }, "type", true},
		{"rating too low", func(in *Interaction) { in.Rating = intPtr(0) }, "rating", true},
		{"rating too high", func(in *Interaction) { in.Rating = intPtr(6) }, "rating", true},
		{"negative duration", func(in *Interaction) { in.DurationSeconds = -1 }, "duration_seconds", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrInvalidInteraction) {
				t.Errorf("error %v does not wrap ErrInvalidInteraction", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("field = %v, want %q", err, tt.field)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"", ModeHybrid, false},
		{"user_based", ModeUserBased, false},
		{"ITEM_BASED", ModeItemBased, false},
		{"latent", ModeLatent, false},
		{"mf", ModeLatent, false},
		{"hybrid", ModeHybrid, false},
		{"random", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownMode) {
				t.Errorf("error %v does not wrap ErrUnknownMode", err)
			}
			if got != tt.expected {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
