package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRedis connects to the Redis used for integration tests, skipping the
// test when none is reachable.
func testRedis(t *testing.T) *RedisStore[viewState] {
	t.Helper()
	addr := os.Getenv("STAMPCAT_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client, err := ConnectRedis(context.Background(), addr, "", 15)
	if err != nil {
		t.Skipf("skipping integration test: redis not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewRedisStore[viewState](client, time.Minute)
}

func TestRedisStore_Integration(t *testing.T) {
	s := testRedis(t)
	ctx := context.Background()
	id := NewID()
	t.Cleanup(func() { _ = s.Delete(context.Background(), id) })

	_, err := s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, id, viewState{Search: "penny", Limit: 40}))
	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, viewState{Search: "penny", Limit: 40}, got)

	ttl, err := s.client.TTL(ctx, keyPrefix+id).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
