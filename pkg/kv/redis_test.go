package kv_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safepass/safepass/pkg/kv"
)

// Redis tests run only against a live server, e.g.
// REDIS_TEST_URL=redis://localhost:6379/1 go test ./pkg/kv/...
func redisStore(t *testing.T) *kv.RedisStore {
	t.Helper()

	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set; skipping redis integration test")
	}

	client, err := kv.ConnectRedis(context.Background(), kv.RedisConfig{
		ConnectionURL:  url,
		RetryAttempts:  1,
		RetryInterval:  time.Second,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	store := kv.NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStore_Contract(t *testing.T) {
	store := redisStore(t)
	ctx := context.Background()

	key := "safepass_test_accounts"
	t.Cleanup(func() { _ = store.Delete(ctx, key) })

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, key, []byte(`[]`)))
	value, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
}

func TestConnectRedis_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := kv.ConnectRedis(context.Background(), kv.RedisConfig{
		ConnectionURL:  "not-a-redis-url",
		RetryAttempts:  1,
		RetryInterval:  time.Millisecond,
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, kv.ErrFailedToParseRedisConnString)
}
