// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/talentmatch/internal/models"
)

// WeightEpsilon is the tolerance applied when checking that weights sum to 1.
const WeightEpsilon = 1e-6

// Weight preset names.
const (
	PresetBalanced        = "balanced"
	PresetSkillsFirst     = "skills-first"
	PresetExperienceFirst = "experience-first"
	PresetPotentialFirst  = "potential-first"
)

// Weights maps each factor to its contribution to the overall score.
type Weights map[models.Factor]float64

var presets = map[string]Weights{
	PresetBalanced: {
		models.FactorSkills:      0.25,
		models.FactorExperience:  0.20,
		models.FactorEducation:   0.15,
		models.FactorLocation:    0.10,
		models.FactorPreferences: 0.10,
		models.FactorSalary:      0.10,
		models.FactorCulturalFit: 0.10,
	},
	PresetSkillsFirst: {
		models.FactorSkills:      0.40,
		models.FactorExperience:  0.20,
		models.FactorEducation:   0.10,
		models.FactorLocation:    0.10,
		models.FactorPreferences: 0.05,
		models.FactorSalary:      0.10,
		models.FactorCulturalFit: 0.05,
	},
	PresetExperienceFirst: {
		models.FactorSkills:      0.20,
		models.FactorExperience:  0.40,
		models.FactorEducation:   0.10,
		models.FactorLocation:    0.10,
		models.FactorPreferences: 0.05,
		models.FactorSalary:      0.10,
		models.FactorCulturalFit: 0.05,
	},
	PresetPotentialFirst: {
		models.FactorSkills:      0.25,
		models.FactorExperience:  0.10,
		models.FactorEducation:   0.25,
		models.FactorLocation:    0.05,
		models.FactorPreferences: 0.10,
		models.FactorSalary:      0.05,
		models.FactorCulturalFit: 0.20,
	},
}

// Preset returns a copy of the named weight preset.
func Preset(name string) (Weights, error) {
	w, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, newValidationError(ErrUnknownPreset, "preset", "unknown preset %q", name)
	}
	return w.Clone(), nil
}

// PresetNames returns the registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveWeights returns custom when it is non-empty, otherwise the named preset.
// An empty preset name selects the balanced preset.
func ResolveWeights(preset string, custom map[string]float64) (Weights, string, error) {
	if len(custom) > 0 {
		w := make(Weights, len(custom))
		for k, v := range custom {
			w[models.Factor(k)] = v
		}
		if err := w.Validate(); err != nil {
			return nil, "", err
		}
		return w, "custom", nil
	}
	if preset == "" {
		preset = PresetBalanced
	}
	w, err := Preset(preset)
	if err != nil {
		return nil, "", err
	}
	return w, strings.ToLower(strings.TrimSpace(preset)), nil
}

// Clone returns a copy of w.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}

// Validate checks that every weight is a finite non-negative number for a
// known factor and that the weights sum to 1 within WeightEpsilon.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return newValidationError(ErrInvalidWeights, "weights", "must not be empty")
	}
	for f, v := range w {
		if !f.IsValid() {
			return newValidationError(ErrInvalidWeights, "weights."+string(f), "unknown factor")
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newValidationError(ErrInvalidWeights, "weights."+string(f), "must be finite")
		}
		if v < 0 {
			return newValidationError(ErrInvalidWeights, "weights."+string(f), "must be non-negative, got %v", v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > WeightEpsilon {
		return newValidationError(ErrInvalidWeights, "weights", "must sum to 1, got %v", sum)
	}
	return nil
}

// renormalize returns the weights restricted to the present factors, scaled
// so they sum to 1. It returns nil when no present factor carries weight.
func (w Weights) renormalize(present map[models.Factor]float64) Weights {
	var total float64
	for _, f := range models.AllFactors {
		if _, ok := present[f]; ok {
			total += w[f]
		}
	}
	if total <= 0 {
		return nil
	}
	out := make(Weights, len(present))
	for f := range present {
		if w[f] > 0 {
			out[f] = w[f] / total
		}
	}
	return out
}
