package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// testBackend is one in-memory Redis shared by the catalog cache and the
// idempotency store, the way the server wires them.
type testBackend struct {
	mr          *miniredis.Miniredis
	client      *redislib.Client
	cache       *Cache
	idempotency *IdempotencyStore
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &testBackend{
		mr:          mr,
		client:      client,
		cache:       NewCache(client),
		idempotency: NewIdempotencyStore(client),
	}
}
