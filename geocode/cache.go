// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jcodagnone/chantier/spatial"
)

// Cache stores successful job site resolutions. Implementations never hold
// failures: a miss always means "ask the provider again".
type Cache interface {
	Get(ctx context.Context, key string) (spatial.Point, bool, error)
	Put(ctx context.Context, key string, p spatial.Point) error
}

// MemoryCache is a process local, bounded LRU with an optional TTL.
type MemoryCache struct {
	lru *expirable.LRU[string, spatial.Point]
}

// NewMemoryCache creates a cache holding at most size entries (0 means
// unbounded) that expire after ttl (0 means never).
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, spatial.Point](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (spatial.Point, bool, error) {
	p, ok := c.lru.Get(key)

	return p, ok, nil
}

func (c *MemoryCache) Put(_ context.Context, key string, p spatial.Point) error {
	c.lru.Add(key, p)

	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// Purge drops every entry.
func (c *MemoryCache) Purge() {
	c.lru.Purge()
}
