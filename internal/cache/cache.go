// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"sync"
	"time"

	"github.com/dotandev/sunfee/internal/logger"
)

// Config holds cache configuration
type Config struct {
	// TTL is how long an entry stays fresh. Zero means entries never expire.
	TTL time.Duration
}

// DefaultConfig returns the default cache configuration
func DefaultConfig() Config {
	return Config{
		TTL: 15 * time.Minute,
	}
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is an in-memory key/value store with per-entry expiry. It is an
// explicit collaborator rather than state embedded in a client, so expiry
// policy stays swappable and testable. Safe for concurrent use.
type TTL[V any] struct {
	config  Config
	mu      sync.RWMutex
	entries map[string]entry[V]
	now     func() time.Time
}

// NewTTL creates a new TTL cache with the given configuration
func NewTTL[V any](config Config) *TTL[V] {
	return &TTL[V]{
		config:  config,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get retrieves a fresh value from the cache. Expired entries are treated as
// misses and removed lazily.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}

	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		logger.Logger.Debug("Cache entry expired", "key", key)
		return zero, false
	}

	return e.value, true
}

// Set stores a value with the configured TTL
func (c *TTL[V]) Set(key string, value V) {
	var expiresAt time.Time
	if c.config.TTL > 0 {
		expiresAt = c.now().Add(c.config.TTL)
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Invalidate removes a specific key from the cache
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge removes every entry
func (c *TTL[V]) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// WithClock overrides the time source. Test hook.
func (c *TTL[V]) WithClock(now func() time.Time) *TTL[V] {
	c.now = now
	return c
}
