// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"fmt"
	"strings"
	"time"
)

// InteractionType classifies a user action on an item.
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionLike     InteractionType = "like"
	InteractionSave     InteractionType = "save"
	InteractionApply    InteractionType = "apply"
	InteractionFeedback InteractionType = "feedback"
	InteractionShare    InteractionType = "share"
	InteractionComment  InteractionType = "comment"
)

// InteractionTypes lists every valid interaction type.
var InteractionTypes = []InteractionType{
	InteractionView, InteractionLike, InteractionSave, InteractionApply,
	InteractionFeedback, InteractionShare, InteractionComment,
}

// BaseWeight returns the implicit-feedback strength of the interaction type,
// or 0 for an unknown type.
func (t InteractionType) BaseWeight() float64 {
	switch t {
	case InteractionView:
		return 1
	case InteractionLike:
		return 2
	case InteractionSave, InteractionShare, InteractionComment:
		return 3
	case InteractionFeedback:
		return 4
	case InteractionApply:
		return 5
	default:
		return 0
	}
}

// IsValid reports whether t is a known interaction type.
func (t InteractionType) IsValid() bool {
	return t.BaseWeight() > 0
}

// Interaction sources with a weight adjustment.
const (
	SourceSearch         = "search"
	SourceRecommendation = "recommendation"
	SourceEmail          = "email"
)

// Interaction is one append-only user action on an item.
type Interaction struct {
	// ID identifies the event. Assigned by the event log when empty.
	ID string `json:"id,omitempty"`

	UserID   string          `json:"user_id" validate:"required"`
	ItemID   string          `json:"item_id" validate:"required"`
	ItemType string          `json:"item_type,omitempty"`
	Type     InteractionType `json:"type" validate:"required"`

	// Rating is an optional explicit rating from 1 to 5.
	Rating *int `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`

	// DurationSeconds is the dwell time, zero when unknown.
	DurationSeconds float64 `json:"duration_seconds,omitempty" validate:"gte=0"`

	// Source is where the interaction originated (search, recommendation, email).
	Source string `json:"source,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Validate checks the fields Weight depends on.
func (in *Interaction) Validate() error {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return invalid("user_id", "is required")
	case strings.TrimSpace(in.ItemID) == "":
		return invalid("item_id", "is required")
	case !in.Type.IsValid():
		return invalid("type", fmt.Sprintf("unknown interaction type %q", in.Type))
	case in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5):
		return invalid("rating", fmt.Sprintf("must be in [1,5], got %d", *in.Rating))
	case in.DurationSeconds < 0:
		return invalid("duration_seconds", fmt.Sprintf("must be non-negative, got %v", in.DurationSeconds))
	}
	return nil
}

// Weight derives the interaction's matrix weight:
//
//	base(type) * rating/5 * duration adjustment * source adjustment
//
// The rating factor applies only when a rating is present. Dwell of at least
// 30 seconds multiplies by 1.2 and under 5 seconds by 0.5; unknown dwell is
// neutral. Search multiplies by 1.1 and email by 0.9.
func (in *Interaction) Weight() float64 {
	w := in.Type.BaseWeight()
	if in.Rating != nil {
		w *= float64(*in.Rating) / 5
	}
	switch {
	case in.DurationSeconds >= 30:
		w *= 1.2
	case in.DurationSeconds > 0 && in.DurationSeconds < 5:
		w *= 0.5
	}
	switch strings.ToLower(in.Source) {
	case SourceSearch:
		w *= 1.1
	case SourceEmail:
		w *= 0.9
	}
	return w
}

// Mode selects the warm-state recommendation algorithm.
type Mode string

const (
	ModeUserBased Mode = "user_based"
	ModeItemBased Mode = "item_based"
	ModeLatent    Mode = "latent"
	ModeHybrid    Mode = "hybrid"
)

// Modes lists every valid mode.
var Modes = []Mode{ModeUserBased, ModeItemBased, ModeLatent, ModeHybrid}

// ParseMode resolves a mode name. "" selects hybrid.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return ModeHybrid, nil
	case ModeUserBased, ModeItemBased, ModeLatent, ModeHybrid:
		return m, nil
	case "user", "collaborative":
		return ModeUserBased, nil
	case "item":
		return ModeItemBased, nil
	case "matrix_factorization", "mf":
		return ModeLatent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Algorithm tags reported on recommendations.
const (
	AlgorithmColdStart = "cold_start"
)

// State is a user's position in the cold/warm lifecycle.
type State string

const (
	StateCold State = "cold"
	StateWarm State = "warm"
)

// Options configure a Recommend call.
type Options struct {
	Mode  Mode `json:"mode,omitempty"`
	Limit int  `json:"limit,omitempty" validate:"gte=0"`

	// ExcludeSeen drops items the user already interacted with from latent
	// scores. User- and item-based modes only ever produce unseen items.
	ExcludeSeen bool `json:"exclude_seen"`
}

// Recommendation is one recommended item.
type Recommendation struct {
	ItemID     string  `json:"item_id"`
	ItemType   string  `json:"item_type,omitempty"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Algorithm  string  `json:"algorithm"`

	// Reason is a short human-readable explanation.
	Reason string `json:"reason,omitempty"`

	// Components holds per-mode scores for hybrid results, or the fallback
	// name for cold-start results.
	Components map[string]float64 `json:"components,omitempty"`
}

// ScoredItem is an intermediate (item, score) pair produced by modes and
// fallbacks.
type ScoredItem struct {
	ItemID string
	Score  float64
}

// UserStateInfo describes a user's recommender state.
type UserStateInfo struct {
	UserID       string `json:"user_id"`
	State        State  `json:"state"`
	Interactions int    `json:"interactions"`
	Items        int    `json:"items"`
	Threshold    int    `json:"threshold"`
	HasFactors   bool   `json:"has_factors"`
}

// TrainingResult reports the outcome of a Train call.
type TrainingResult struct {
	RMSE       float64       `json:"rmse"`
	MAE        float64       `json:"mae"`
	Samples    int           `json:"samples"`
	Users      int           `json:"users"`
	Items      int           `json:"items"`
	Iterations int           `json:"iterations"`
	Version    int           `json:"version"`
	Duration   time.Duration `json:"duration"`
	TrainedAt  time.Time     `json:"trained_at"`

	// Insufficient is true when there were too few samples to train. RMSE and
	// MAE are placeholders and the previous factors remain in use.
	Insufficient bool `json:"insufficient"`
}

// Stats summarizes recommender state.
type Stats struct {
	Users        int       `json:"users"`
	Items        int       `json:"items"`
	Interactions int       `json:"interactions"`
	WarmUsers    int       `json:"warm_users"`
	ModelVersion int       `json:"model_version"`
	TrainedAt    time.Time `json:"trained_at"`
	RMSE         float64   `json:"rmse"`
	MAE          float64   `json:"mae"`
}
