package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testRedisClient returns a Redis client for tests on DB 15.
// Skips if Redis is unavailable.
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	port := envOr("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestContentCacheRoundTrip(t *testing.T) {
	client := testRedisClient(t)
	cc := NewContentCache(client, time.Minute)
	ctx := context.Background()

	key := PageKey("round-trip")
	if _, ok := cc.Get(ctx, key); ok {
		t.Fatal("unexpected hit before set")
	}

	body := []byte(`{"title":"Round Trip"}`)
	cc.Set(ctx, key, body)

	got, ok := cc.Get(ctx, key)
	if !ok {
		t.Fatal("miss after set")
	}
	if string(got) != string(body) {
		t.Errorf("Get = %q, want %q", got, body)
	}

	cc.Invalidate(ctx, key)
	if _, ok := cc.Get(ctx, key); ok {
		t.Error("hit after invalidation")
	}
}

func TestContentCacheExpiry(t *testing.T) {
	client := testRedisClient(t)
	cc := NewContentCache(client, time.Second)
	ctx := context.Background()

	key := PostKey("expiring")
	cc.Set(ctx, key, []byte(`{}`))

	ttl, err := client.TTL(ctx, keyPrefix+key).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Second {
		t.Errorf("TTL = %v, want (0, 1s]", ttl)
	}
}

func TestContentCacheInvalidateAll(t *testing.T) {
	client := testRedisClient(t)
	cc := NewContentCache(client, time.Minute)
	ctx := context.Background()

	keys := []string{PageKey("about"), PostKey("launch"), BlockKey("footer-cta")}
	for _, k := range keys {
		cc.Set(ctx, k, []byte(`{}`))
	}

	cc.InvalidateAll(ctx)

	for _, k := range keys {
		if _, ok := cc.Get(ctx, k); ok {
			t.Errorf("key %q survived InvalidateAll", k)
		}
	}
}

func TestNewContentCacheDefaultTTL(t *testing.T) {
	cc := NewContentCache(nil, 0)
	if cc.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", cc.ttl, DefaultTTL)
	}
}
