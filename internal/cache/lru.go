// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package cache

import "time"

// lruEntry is a node of the recency list.
type lruEntry struct {
	key       string
	value     interface{}
	prev      *lruEntry
	next      *lruEntry
	expiresAt time.Time
}

// lruList is a hashmap over a doubly-linked list with sentinel nodes, giving
// O(1) lookup, promotion and eviction. head.next is the most recently used
// entry and tail.prev the least recently used. It is not safe for concurrent
// use; Cache guards it with its mutex.
type lruList struct {
	items map[string]*lruEntry
	head  *lruEntry
	tail  *lruEntry
}

func newLRUList(capacity int) *lruList {
	l := &lruList{
		items: make(map[string]*lruEntry, capacity),
		head:  &lruEntry{},
		tail:  &lruEntry{},
	}
	l.head.next = l.tail
	l.tail.prev = l.head
	return l
}

func (l *lruList) len() int {
	return len(l.items)
}

// addToFront adds an entry to the front of the list (most recently used).
func (l *lruList) addToFront(entry *lruEntry) {
	entry.prev = l.head
	entry.next = l.head.next
	l.head.next.prev = entry
	l.head.next = entry
	l.items[entry.key] = entry
}

// moveToFront moves an existing entry to the front of the list.
func (l *lruList) moveToFront(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev

	entry.prev = l.head
	entry.next = l.head.next
	l.head.next.prev = entry
	l.head.next = entry
}

// remove unlinks an entry and drops it from the map.
func (l *lruList) remove(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(l.items, entry.key)
}

// oldest returns the least recently used entry, or nil when empty.
func (l *lruList) oldest() *lruEntry {
	if l.tail.prev == l.head {
		return nil
	}
	return l.tail.prev
}

// removeExpired walks from oldest to newest and drops expired entries.
func (l *lruList) removeExpired(now time.Time) int {
	removed := 0
	for entry := l.tail.prev; entry != l.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			l.remove(entry)
			removed++
		}
		entry = prev
	}
	return removed
}

func (l *lruList) reset() {
	l.items = make(map[string]*lruEntry, len(l.items))
	l.head.next = l.tail
	l.tail.prev = l.head
}
