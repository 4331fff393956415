// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package similarity

import (
	"fmt"
	"strings"
)

// PredicateKind selects how a Predicate compares a metadata field.
type PredicateKind string

// Predicate kinds.
const (
	// PredicateEquals matches when metadata[Field] equals Value.
	PredicateEquals PredicateKind = "equals"

	// PredicateIn matches when metadata[Field] equals any of Values.
	// When the field holds a list, any element matching any value counts.
	PredicateIn PredicateKind = "in"

	// PredicateNested matches when the value at the dotted Field path
	// (e.g. "location.city") inside nested objects equals Value.
	PredicateNested PredicateKind = "nested"
)

// Predicate is one metadata condition.
type Predicate struct {
	Kind   PredicateKind `json:"kind" validate:"required,oneof=equals in nested"`
	Field  string        `json:"field" validate:"required"`
	Value  interface{}   `json:"value,omitempty"`
	Values []interface{} `json:"values,omitempty"`
}

// Filter is a conjunction of predicates. The zero Filter matches everything.
type Filter []Predicate

// Validate checks each predicate is well formed.
func (f Filter) Validate() error {
	for i, p := range f {
		field := fmt.Sprintf("filter[%d]", i)
		if strings.TrimSpace(p.Field) == "" {
			return invalid(ErrInvalidFilter, field, "field is required")
		}
		switch p.Kind {
		case PredicateEquals:
		case PredicateIn:
			if len(p.Values) == 0 {
				return invalid(ErrInvalidFilter, field, "values must not be empty for %q", p.Kind)
			}
		case PredicateNested:
			if !strings.Contains(p.Field, ".") {
				return invalid(ErrInvalidFilter, field, "nested field %q must be a dotted path", p.Field)
			}
		default:
			return invalid(ErrInvalidFilter, field, "unknown predicate kind %q", p.Kind)
		}
	}
	return nil
}

// Matches reports whether metadata satisfies every predicate.
func (f Filter) Matches(metadata map[string]interface{}) bool {
	for i := range f {
		if !f[i].matches(metadata) {
			return false
		}
	}
	return true
}

func (p *Predicate) matches(metadata map[string]interface{}) bool {
	switch p.Kind {
	case PredicateEquals:
		v, ok := metadata[p.Field]
		return ok && valuesEqual(v, p.Value)
	case PredicateIn:
		v, ok := metadata[p.Field]
		if !ok {
			return false
		}
		if list, isList := v.([]interface{}); isList {
			for _, elem := range list {
				if containsValue(p.Values, elem) {
					return true
				}
			}
			return false
		}
		return containsValue(p.Values, v)
	case PredicateNested:
		v, ok := lookupPath(metadata, strings.Split(p.Field, "."))
		return ok && valuesEqual(v, p.Value)
	default:
		return false
	}
}

func lookupPath(m map[string]interface{}, path []string) (interface{}, bool) {
	var cur interface{} = m
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func containsValue(values []interface{}, v interface{}) bool {
	for _, want := range values {
		if valuesEqual(v, want) {
			return true
		}
	}
	return false
}

// valuesEqual compares scalars, treating all numeric kinds as float64 so that
// decoded JSON numbers compare equal to Go integer literals.
func valuesEqual(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
