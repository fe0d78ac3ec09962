// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go provides a Redis-backed cache for public content lookups.
// When an anonymous visitor fetches a live page or post by slug, the
// serialized JSON projection is stored so subsequent requests skip the
// database entirely. Admin writes invalidate the affected keys.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces every cached projection.
	keyPrefix = "public:"

	// DefaultTTL is how long a public projection stays cached. Short on
	// purpose: scheduled posts become live by the clock, not by a write,
	// so expiry is the only thing that surfaces them.
	DefaultTTL = 5 * time.Minute
)

// ContentCache manages serialized public projections in Redis.
// All methods degrade to no-ops on cache errors; the database stays the
// source of truth.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache backed by the given Redis client.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// PageKey returns the cache key for a public page slug.
func PageKey(slug string) string {
	return "page:" + slug
}

// PostKey returns the cache key for a public blog post slug.
func PostKey(slug string) string {
	return "post:" + slug
}

// BlockKey returns the cache key for a public block identifier.
func BlockKey(identifier string) string {
	return "block:" + identifier
}

// Get retrieves a cached projection. Returns (nil, false) on miss.
func (cc *ContentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("content cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("content cache hit", "key", key)
	return val, true
}

// Set stores a serialized projection with the configured TTL.
func (cc *ContentCache) Set(ctx context.Context, key string, body []byte) {
	if err := cc.client.Set(ctx, keyPrefix+key, body, cc.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached projection.
func (cc *ContentCache) Invalidate(ctx context.Context, key string) {
	if err := cc.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		slog.Warn("content cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("content cache invalidated", "key", key)
}

// InvalidateAll removes every cached projection by scanning for the
// prefix. Used on bulk changes like section edits, since any page could
// be affected.
func (cc *ContentCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("content cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("content cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("content cache fully cleared", "deleted", deleted)
	}
}
