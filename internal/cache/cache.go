// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package cache provides the response cache for the index feed.
//
// The cache is deliberately blunt: entries share one fixed TTL, and
// invalidation is wholesale via Clear on any post write. There is no
// per-entry eviction policy. Two backends exist: an in-process map and a
// Badger-backed store that survives restarts.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/inkwell-hq/inkwell/internal/metrics"
)

// Cache is the response cache collaborator. Implementations are safe for
// concurrent use.
type Cache interface {
	// Get returns the cached value for key, or false when absent or
	// expired.
	Get(key string) ([]byte, bool)

	// Set stores value under key with the cache's fixed TTL.
	Set(key string, value []byte)

	// Clear drops every entry.
	Clear()

	// Close releases backend resources.
	Close() error

	// Serve runs backend maintenance (expiry reaping, value log GC) until
	// ctx is canceled. Satisfies suture.Service.
	Serve(ctx context.Context) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is a thread-safe in-process cache with TTL expiry.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemory creates an in-process cache whose entries expire after ttl.
// Run Serve under a supervisor to reap expired entries; without it, expiry
// is still enforced lazily on Get.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *Memory) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(entry.expiresAt) {
		metrics.CacheMisses.Inc()
		return nil, false
	}
	metrics.CacheHits.Inc()
	return entry.data, true
}

// Set stores value under key with the configured TTL.
func (c *Memory) Set(key string, value []byte) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Memory) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	metrics.CacheInvalidations.Inc()
}

// Close is a no-op for the in-process backend.
func (c *Memory) Close() error {
	return nil
}

// Serve reaps expired entries periodically until ctx is canceled. Satisfies
// suture.Service.
func (c *Memory) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.reap()
		}
	}
}

func (c *Memory) reap() {
	now := time.Now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// String identifies the service in supervisor logs.
func (c *Memory) String() string {
	return "cache-janitor"
}
