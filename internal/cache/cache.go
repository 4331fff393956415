// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/talentmatch/internal/metrics"
)

// Defaults applied by New to zero Config fields.
const (
	DefaultTTL             = 5 * time.Minute
	DefaultMaxEntries      = 10000
	DefaultCleanupInterval = time.Minute
)

// Eviction reasons reported to metrics.
const (
	evictExpired     = "expired"
	evictCapacity    = "capacity"
	evictInvalidated = "invalidated"
)

// Config configures a Cache.
type Config struct {
	// Name labels the cache in metrics.
	Name string

	// TTL is the default lifetime of an entry.
	TTL time.Duration

	// MaxEntries bounds the cache; the least recently used entry is evicted
	// when it is exceeded.
	MaxEntries int

	// CleanupInterval is the period of the background sweep of expired
	// entries. A negative value disables the sweep.
	CleanupInterval time.Duration
}

// Stats tracks cache performance metrics.
type Stats struct {
	Hits        int64
	Misses      int64
	Shared      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// ComputeFunc produces the value for a missing key.
type ComputeFunc func(ctx context.Context) (interface{}, error)

// Cache is a thread-safe, size-bounded LRU cache with per-entry TTL and
// single-flight computation of missing keys.
type Cache struct {
	name     string
	ttl      time.Duration
	capacity int

	mu    sync.Mutex
	list  *lruList
	stats Stats

	group singleflight.Group
	clock func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a cache and starts its cleanup loop. Call Close to stop the
// loop.
//
// Example:
//
//	c := cache.New(cache.Config{Name: "match", TTL: 5 * time.Minute, MaxEntries: 1000})
//	defer c.Close()
//	v, cached, err := c.GetOrCompute(ctx, key, compute)
func New(cfg Config) *Cache {
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	c := &Cache{
		name:     cfg.Name,
		ttl:      cfg.TTL,
		capacity: cfg.MaxEntries,
		list:     newLRUList(cfg.MaxEntries),
		clock:    time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	c.stats.LastCleanup = c.clock()

	if cfg.CleanupInterval > 0 {
		go c.cleanupLoop(cfg.CleanupInterval)
	} else {
		close(c.done)
	}
	return c
}

// Get retrieves a value and marks it most recently used. Expired entries
// are removed and reported as misses.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.list.items[key]
	if !ok {
		c.recordMiss()
		return nil, false
	}
	if c.clock().After(entry.expiresAt) {
		c.list.remove(entry)
		c.recordMiss()
		c.recordEvictions(evictExpired, 1)
		c.stats.TotalKeys = int64(c.list.len())
		return nil, false
	}

	c.list.moveToFront(entry)
	c.stats.Hits++
	metrics.RecordCacheHit(c.name)
	return entry.value, true
}

// Contains checks if a key exists and is live without updating access order
// or statistics.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.list.items[key]
	return ok && !c.clock().After(entry.expiresAt)
}

// Set stores a value with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL, evicting the least recently
// used entries when the cache is full.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value, ttl)
}

func (c *Cache) setLocked(key string, value interface{}, ttl time.Duration) {
	expiresAt := c.clock().Add(ttl)

	if entry, ok := c.list.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.list.moveToFront(entry)
		return
	}

	c.list.addToFront(&lruEntry{key: key, value: value, expiresAt: expiresAt})
	evicted := 0
	for c.list.len() > c.capacity {
		c.list.remove(c.list.oldest())
		evicted++
	}
	c.recordEvictions(evictCapacity, evicted)
	c.stats.TotalKeys = int64(c.list.len())
}

// GetOrCompute returns the cached value for key, or runs compute and caches
// its result. Concurrent callers for the same key share one computation;
// cached reports whether the value came from the cache. Errors are not
// cached. A caller whose ctx ends stops waiting without cancelling the
// shared computation for the others.
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (value interface{}, cached bool, err error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A flight that finished between the miss above and DoChan has
		// already stored the value.
		if v, ok := c.peek(key); ok {
			return v, nil
		}
		v, err := compute(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.mu.Lock()
			c.stats.Shared++
			c.mu.Unlock()
			metrics.RecordCacheShared(c.name)
		}
		return res.Val, false, res.Err
	}
}

// peek returns a live value without touching statistics or order.
func (c *Cache) peek(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.list.items[key]
	if !ok || c.clock().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Delete removes a specific entry. It reports whether the key was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.list.items[key]
	if !ok {
		return false
	}
	c.list.remove(entry)
	c.recordEvictions(evictInvalidated, 1)
	c.stats.TotalKeys = int64(c.list.len())
	return true
}

// Clear removes all entries, typically after the underlying data changed.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recordEvictions(evictInvalidated, c.list.len())
	c.list.reset()
	c.stats.TotalKeys = 0
}

// Len returns the number of stored entries, including expired entries not
// yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.len()
}

// GetStats returns a snapshot of current cache statistics.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Close stops the cleanup loop. It is safe to call more than once. The
// cache remains usable after Close.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
}

// cleanupLoop periodically removes expired entries.
func (c *Cache) cleanupLoop(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// Cleanup removes all expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	removed := c.list.removeExpired(now)
	c.recordEvictions(evictExpired, removed)
	c.stats.TotalKeys = int64(c.list.len())
	c.stats.LastCleanup = now
	return removed
}

// recordMiss must be called with mu held.
func (c *Cache) recordMiss() {
	c.stats.Misses++
	metrics.RecordCacheMiss(c.name)
}

// recordEvictions must be called with mu held.
func (c *Cache) recordEvictions(reason string, n int) {
	if n <= 0 {
		return
	}
	c.stats.Evictions += int64(n)
	for i := 0; i < n; i++ {
		metrics.RecordCacheEviction(c.name, reason)
	}
}

// GenerateKey creates a cache key from a method name and its parameters.
// Parameters are serialized to JSON, so map key order does not matter.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		// Fallback to simple string key
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
