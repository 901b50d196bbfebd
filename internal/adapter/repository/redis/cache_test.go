package redis

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	b := newTestBackend(t)
	cache := b.cache
	ctx := context.Background()

	if err := cache.Set(ctx, "catalog:shared:v1", []byte(`{"types":[]}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "catalog:shared:v1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"types":[]}` {
		t.Fatalf("unexpected value %s", val)
	}

	if !b.mr.Exists("gobudget:cache:catalog:shared:v1") {
		t.Fatalf("expected prefixed key in redis")
	}
}

func TestCacheExpiry(t *testing.T) {
	b := newTestBackend(t)
	cache := b.cache
	ctx := context.Background()

	if err := cache.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	b.mr.FastForward(2 * time.Minute)

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestCacheDelete(t *testing.T) {
	b := newTestBackend(t)
	cache := b.cache
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "foo"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss for deleted key, got %v", err)
	}
}

func TestCacheAndIdempotencyKeysDoNotCollide(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	// Same logical key written through both stores on one client.
	if err := b.cache.Set(ctx, "user-1:k", []byte(`{"types":[]}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	exists, _, err := b.idempotency.CheckAndSet(ctx, "user-1:k", nil, time.Minute)
	if err != nil || exists {
		t.Fatalf("expected a fresh idempotency claim, got exists=%v err=%v", exists, err)
	}

	if err := b.idempotency.Release(ctx, "user-1:k"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	val, err := b.cache.Get(ctx, "user-1:k")
	if err != nil || string(val) != `{"types":[]}` {
		t.Fatalf("expected cached catalog to survive release, got %s err=%v", val, err)
	}
}
