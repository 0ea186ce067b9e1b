package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// setupTestRedis connects to a local Redis for integration testing.
// Tests are skipped when Redis is not reachable.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 9})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})
	return client
}

func TestTokenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStoreWithPrefix(setupTestRedis(t), "pwmobile:test:")

	_, err := store.Load(ctx)
	require.ErrorIs(t, err, ports.ErrNoToken)

	require.NoError(t, store.Save(ctx, "tok-1"))

	token, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.Save(ctx, "tok-2"))
	token, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	require.NoError(t, store.Delete(ctx))
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, ports.ErrNoToken)
}

func TestTokenStore_Delete_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(setupTestRedis(t))

	require.NoError(t, store.Delete(ctx))
	require.NoError(t, store.Delete(ctx))
}

func TestTokenStore_Save_RejectsEmptyToken(t *testing.T) {
	store := NewTokenStoreWithPrefix(nil, "pwmobile:test:")
	require.Error(t, store.Save(context.Background(), ""))
}

func TestTokenStore_NoTTL(t *testing.T) {
	ctx := context.Background()
	client := setupTestRedis(t)
	store := NewTokenStoreWithPrefix(client, "pwmobile:test:")

	require.NoError(t, store.Save(ctx, "tok-1"))

	// Session validity is decided by the backend, never by key expiry.
	ttl := client.TTL(ctx, "pwmobile:test:session_token").Val()
	assert.Equal(t, time.Duration(-1), ttl)
}
