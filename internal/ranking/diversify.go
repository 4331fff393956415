// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package ranking

import (
	"sort"
	"strings"

	"github.com/tomtom215/talentmatch/internal/models"
)

// signatureSkills is the number of leading skills forming a skill signature.
const signatureSkills = 3

// Diversify thins an already ordered list. The first item and the first
// DiversifyHead items are always kept; later items are kept only when they
// introduce an unseen skill signature, employer or industry. At most
// DiversifyMax items are returned, in their original relative order.
func (e *Engine) Diversify(items []models.MatchResult) []models.MatchResult {
	limit := e.cfg.DiversifyMax
	if limit > len(items) {
		limit = len(items)
	}
	out := make([]models.MatchResult, 0, limit)

	signatures := make(map[string]struct{})
	employers := make(map[string]struct{})
	industries := make(map[string]struct{})

	for i := range items {
		if len(out) >= e.cfg.DiversifyMax {
			break
		}
		item := &items[i]
		sig := skillSignature(item.Attributes.Skills)
		emp := normalized(item.Attributes.Employer)
		ind := normalized(item.Attributes.Industry)

		if i > 0 && i >= e.cfg.DiversifyHead &&
			!isNew(signatures, sig) && !isNew(employers, emp) && !isNew(industries, ind) {
			continue
		}

		out = append(out, *item)
		mark(signatures, sig)
		mark(employers, emp)
		mark(industries, ind)
	}
	return out
}

// skillSignature is the sorted, lowercased set of the first three skills.
func skillSignature(skills []string) string {
	n := len(skills)
	if n > signatureSkills {
		n = signatureSkills
	}
	sig := make([]string, 0, n)
	for _, s := range skills[:n] {
		if v := normalized(s); v != "" {
			sig = append(sig, v)
		}
	}
	sort.Strings(sig)
	return strings.Join(sig, "|")
}

func normalized(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isNew reports whether a non-empty key has not been seen.
func isNew(seen map[string]struct{}, key string) bool {
	if key == "" {
		return false
	}
	_, ok := seen[key]
	return !ok
}

func mark(seen map[string]struct{}, key string) {
	if key != "" {
		seen[key] = struct{}{}
	}
}
