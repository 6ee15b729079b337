package sessioncache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notekeeper/adapters/sessioncache"
)

func mockRedisStore(t *testing.T) (*miniredis.Miniredis, *sessioncache.Store) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	store := sessioncache.NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	t.Cleanup(func() { _ = store.Close() })

	return s, store
}

func TestNew_ConnectionFailure(t *testing.T) {
	_, err := sessioncache.New(context.Background(), "127.0.0.1:1", "", 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestStore_PutAndRefresh(t *testing.T) {
	ctx := context.Background()
	_, store := mockRedisStore(t)

	require.NoError(t, store.Put(ctx, "token-1", 30*time.Minute))

	alive, err := store.Refresh(ctx, "token-1", 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, alive)
}

func TestStore_RefreshUnknownTokenReturnsFalse(t *testing.T) {
	ctx := context.Background()
	_, store := mockRedisStore(t)

	alive, err := store.Refresh(ctx, "never-issued", 30*time.Minute)

	require.NoError(t, err)
	assert.False(t, alive)
}

func TestStore_InactivityTimeoutExpiresSession(t *testing.T) {
	ctx := context.Background()
	s, store := mockRedisStore(t)

	require.NoError(t, store.Put(ctx, "token-1", 30*time.Minute))

	// Полчаса без активности - флаг сессии истекает.
	s.FastForward(31 * time.Minute)

	alive, err := store.Refresh(ctx, "token-1", 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, alive)
}

func TestStore_RefreshSlidesExpiry(t *testing.T) {
	ctx := context.Background()
	s, store := mockRedisStore(t)

	require.NoError(t, store.Put(ctx, "token-1", 30*time.Minute))

	// Активность на 20-й минуте продлевает сессию еще на 30 минут.
	s.FastForward(20 * time.Minute)
	alive, err := store.Refresh(ctx, "token-1", 30*time.Minute)
	require.NoError(t, err)
	require.True(t, alive)

	s.FastForward(25 * time.Minute)
	alive, err = store.Refresh(ctx, "token-1", 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, alive, "session refreshed at minute 20 must survive minute 45")
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	_, store := mockRedisStore(t)

	require.NoError(t, store.Put(ctx, "token-1", 30*time.Minute))
	require.NoError(t, store.Delete(ctx, "token-1"))

	alive, err := store.Refresh(ctx, "token-1", 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, alive)
}
