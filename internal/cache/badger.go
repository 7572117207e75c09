// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/metrics"
)

// Badger is a persistent cache backed by BadgerDB. Entries carry Badger's
// native TTL, so expiry survives process restarts.
type Badger struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadger opens (or creates) a Badger-backed cache at dir.
func NewBadger(dir string, ttl time.Duration) (*Badger, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil) // Badger's own logger is too chatty; errors surface via return values

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache at %s: %w", dir, err)
	}
	return &Badger{db: db, ttl: ttl}, nil
}

// Get returns the cached value for key if present and not expired.
func (c *Badger) Get(key string) ([]byte, bool) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("badger cache read failed")
		}
		metrics.CacheMisses.Inc()
		return nil, false
	}
	metrics.CacheHits.Inc()
	return value, true
}

// Set stores value under key with the configured TTL.
func (c *Badger) Set(key string, value []byte) {
	err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("badger cache write failed")
	}
}

// Clear drops every entry.
func (c *Badger) Clear() {
	if err := c.db.DropAll(); err != nil {
		logging.Warn().Err(err).Msg("badger cache clear failed")
		return
	}
	metrics.CacheInvalidations.Inc()
}

// Close closes the underlying Badger database.
func (c *Badger) Close() error {
	return c.db.Close()
}

// Serve runs Badger's value log garbage collection until ctx is canceled.
// Satisfies suture.Service.
func (c *Badger) Serve(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// ErrNoRewrite just means there was nothing to collect.
			if err := c.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				logging.Warn().Err(err).Msg("badger value log GC failed")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (c *Badger) String() string {
	return "cache-badger-gc"
}
