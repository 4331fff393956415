// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package recommend

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// row holds one user's (or item's) accumulated weights.
type row struct {
	weights map[string]float64
	count   int // interactions folded into this row
}

type shard struct {
	mu   sync.RWMutex
	rows map[string]*row
}

// shardedRows is a map of rows split across independently locked shards so
// that writes to different rows rarely contend.
type shardedRows struct {
	shards []*shard
}

func newShardedRows(n int) *shardedRows {
	s := &shardedRows{shards: make([]*shard, n)}
	for i := range s.shards {
		s.shards[i] = &shard{rows: make(map[string]*row)}
	}
	return s
}

func (s *shardedRows) shardFor(key string) *shard {
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

// add accumulates w into rows[key][col] and reports whether the row is new.
func (s *shardedRows) add(key, col string, w float64) bool {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	r, ok := sh.rows[key]
	if !ok {
		r = &row{weights: make(map[string]float64)}
		sh.rows[key] = r
	}
	r.weights[col] += w
	r.count++
	return !ok
}

// get returns a copy of the row, or nil when absent.
func (s *shardedRows) get(key string) map[string]float64 {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	r, ok := sh.rows[key]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(r.weights))
	for k, v := range r.weights {
		out[k] = v
	}
	return out
}

func (s *shardedRows) count(key string) (interactions, columns int) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	if r, ok := sh.rows[key]; ok {
		return r.count, len(r.weights)
	}
	return 0, 0
}

// keys returns all row keys in sorted order.
func (s *shardedRows) keys() []string {
	var out []string
	for _, sh := range s.shards {
		sh.mu.RLock()
		for k := range sh.rows {
			out = append(out, k)
		}
		sh.mu.RUnlock()
	}
	sort.Strings(out)
	return out
}

// each calls fn for every row while holding that row's shard read lock.
// fn must not retain weights.
func (s *shardedRows) each(fn func(key string, r *row)) {
	for _, sh := range s.shards {
		sh.mu.RLock()
		for k, r := range sh.rows {
			fn(k, r)
		}
		sh.mu.RUnlock()
	}
}

func (s *shardedRows) reset() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.rows = make(map[string]*row)
		sh.mu.Unlock()
	}
}

// matrix is the user x item interaction matrix, indexed both ways.
//
// Each update touches one user row and one item row, taking each shard lock
// in turn and never both at once. Readers therefore may briefly observe a
// user row ahead of the matching item row, which only affects similarity
// scores by one interaction.
type matrix struct {
	users *shardedRows // user -> item -> weight
	items *shardedRows // item -> user -> weight

	typesMu   sync.RWMutex
	itemTypes map[string]string
}

func newMatrix(shards int) *matrix {
	return &matrix{
		users:     newShardedRows(shards),
		items:     newShardedRows(shards),
		itemTypes: make(map[string]string),
	}
}

// add folds one weighted interaction into the matrix in O(1) and reports
// whether the user was previously untracked.
func (m *matrix) add(userID, itemID, itemType string, w float64) bool {
	newUser := m.users.add(userID, itemID, w)
	m.items.add(itemID, userID, w)
	if itemType != "" {
		m.typesMu.Lock()
		m.itemTypes[itemID] = itemType
		m.typesMu.Unlock()
	}
	return newUser
}

func (m *matrix) userRow(userID string) map[string]float64 { return m.users.get(userID) }

func (m *matrix) itemRow(itemID string) map[string]float64 { return m.items.get(itemID) }

func (m *matrix) itemType(itemID string) string {
	m.typesMu.RLock()
	defer m.typesMu.RUnlock()
	return m.itemTypes[itemID]
}

// itemsOfType returns tracked items of the given type in sorted order. An
// empty type matches every item.
func (m *matrix) itemsOfType(itemType string) []string {
	all := m.items.keys()
	if itemType == "" {
		return all
	}
	m.typesMu.RLock()
	defer m.typesMu.RUnlock()
	out := all[:0]
	for _, id := range all {
		if m.itemTypes[id] == itemType {
			out = append(out, id)
		}
	}
	return out
}

// popularity returns the total weight per item of the given type.
func (m *matrix) popularity(itemType string) map[string]float64 {
	out := make(map[string]float64)
	m.items.each(func(itemID string, r *row) {
		var total float64
		for _, w := range r.weights {
			total += w
		}
		out[itemID] = total
	})
	if itemType == "" {
		return out
	}
	m.typesMu.RLock()
	defer m.typesMu.RUnlock()
	for id := range out {
		if m.itemTypes[id] != itemType {
			delete(out, id)
		}
	}
	return out
}

func (m *matrix) reset() {
	m.users.reset()
	m.items.reset()
	m.typesMu.Lock()
	m.itemTypes = make(map[string]string)
	m.typesMu.Unlock()
}
