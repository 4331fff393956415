// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package matching

import (
	"strings"
	"unicode"
)

// StringSimilarity scores the similarity of two strings in [0,1].
type StringSimilarity interface {
	Similarity(a, b string) float64
}

// TermMatcher decides whether two terms are related (for example, synonyms).
type TermMatcher interface {
	Related(a, b string) bool
}

// Strategies bundles the string heuristics used by the factor scorers.
// Any nil member is replaced by its default.
type Strategies struct {
	// Title compares a required role title with a held position.
	Title StringSimilarity

	// Industry relates industry names (e.g. "technology" and "software").
	Industry TermMatcher

	// Field relates fields of study (e.g. "computer science" and "informatics").
	Field TermMatcher
}

// DefaultStrategies returns word-Jaccard title similarity and the built-in
// industry and field-of-study synonym tables.
func DefaultStrategies() Strategies {
	return Strategies{
		Title:    JaccardWords{},
		Industry: NewSynonymTable(DefaultIndustrySynonyms),
		Field:    NewSynonymTable(DefaultFieldSynonyms),
	}
}

func (s Strategies) withDefaults() Strategies {
	def := DefaultStrategies()
	if s.Title == nil {
		s.Title = def.Title
	}
	if s.Industry == nil {
		s.Industry = def.Industry
	}
	if s.Field == nil {
		s.Field = def.Field
	}
	return s
}

// JaccardWords is the Jaccard index over lower-cased word sets.
type JaccardWords struct{}

// Similarity implements StringSimilarity.
func (JaccardWords) Similarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// DefaultIndustrySynonyms groups industry names that should be treated as equivalent.
var DefaultIndustrySynonyms = map[string][]string{
	"technology":    {"tech", "software", "it", "information technology", "saas"},
	"finance":       {"banking", "financial services", "fintech", "investment"},
	"healthcare":    {"health", "medical", "pharma", "pharmaceutical", "biotech"},
	"education":     {"edtech", "teaching", "academia", "e-learning"},
	"retail":        {"ecommerce", "e-commerce", "consumer goods", "commerce"},
	"manufacturing": {"industrial", "production", "automotive"},
	"marketing":     {"advertising", "media", "communications"},
	"consulting":    {"professional services", "advisory"},
}

// DefaultFieldSynonyms groups fields of study that should be treated as related.
var DefaultFieldSynonyms = map[string][]string{
	"computer science":       {"software engineering", "computer engineering", "information technology", "informatics", "computing"},
	"business":               {"business administration", "management", "commerce", "mba"},
	"mathematics":            {"statistics", "applied mathematics", "data science"},
	"electrical engineering": {"electronics", "electronic engineering"},
	"economics":              {"finance", "econometrics"},
	"design":                 {"graphic design", "ux design", "interaction design", "visual design"},
	"psychology":             {"cognitive science", "behavioral science"},
}

// SynonymTable relates terms that belong to the same synonym group.
// Lookups are case-insensitive. A table is read-only after construction.
type SynonymTable struct {
	groups map[string][]int
}

// NewSynonymTable builds a table where each key and its values form one group.
func NewSynonymTable(groups map[string][]string) *SynonymTable {
	t := &SynonymTable{groups: make(map[string][]int)}
	id := 0
	for head, members := range groups {
		t.add(head, id)
		for _, m := range members {
			t.add(m, id)
		}
		id++
	}
	return t
}

func (t *SynonymTable) add(term string, group int) {
	term = normalizeTerm(term)
	for _, g := range t.groups[term] {
		if g == group {
			return
		}
	}
	t.groups[term] = append(t.groups[term], group)
}

// Related implements TermMatcher. Terms that contain a table entry as a
// substring are looked up by that entry, so "senior software" relates to "tech".
func (t *SynonymTable) Related(a, b string) bool {
	ga := t.lookup(a)
	gb := t.lookup(b)
	for g := range ga {
		if _, ok := gb[g]; ok {
			return true
		}
	}
	return false
}

func (t *SynonymTable) lookup(term string) map[int]struct{} {
	term = normalizeTerm(term)
	out := make(map[int]struct{})
	if term == "" {
		return out
	}
	for _, g := range t.groups[term] {
		out[g] = struct{}{}
	}
	if len(out) > 0 {
		return out
	}
	words := wordSet(term)
	for entry, groups := range t.groups {
		if containsPhrase(term, words, entry) {
			for _, g := range groups {
				out[g] = struct{}{}
			}
		}
	}
	return out
}

// containsPhrase matches single-word entries against whole words only, so the
// entry "it" does not match "italian".
func containsPhrase(term string, words map[string]struct{}, entry string) bool {
	if strings.ContainsRune(entry, ' ') {
		return strings.Contains(term, entry)
	}
	_, ok := words[entry]
	return ok
}

func normalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// containsFold reports whether either string contains the other, ignoring case.
func containsFold(a, b string) bool {
	a = normalizeTerm(a)
	b = normalizeTerm(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
