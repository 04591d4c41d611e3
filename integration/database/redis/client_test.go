package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/changenotify/integration/database/redis"
)

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		err  error
	}{
		{"empty", "  ", redis.ErrEmptyConnectionURL},
		{"wrong scheme", "http://localhost:6379", redis.ErrFailedToParseRedisConnString},
		{"bad db", "redis://localhost:6379/notanumber", redis.ErrFailedToParseRedisConnString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: tt.url})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestConnect_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: 2 * time.Second,
	})
	assert.ErrorIs(t, err, redis.ErrRedisNotReady)
}

// Runs only when TEST_REDIS_URL points at a disposable server.
func TestTokenStore_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1, RetryInterval: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	key := "changenotify:test:" + t.Name()
	t.Cleanup(func() { client.Del(ctx, key) })

	store := redis.NewTokenStore(client, time.Minute)

	got, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save(ctx, key, []byte{0x01, 0x02}))
	got, err = store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, got)

	require.NoError(t, redis.Healthcheck(client)(ctx))
}
