package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/kinetic/pkg/adapters/redis"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return mr, client
}

func TestRedisStyleCache_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunStyleCacheContract(t, redis.NewFromClient(client))
}

func TestRedisStyleCache_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, "el", domain.StyleMap{"height": "20px"}))
	assert.True(t, mr.Exists("kinetic:styles:el"))

	mr.FastForward(2 * time.Second)

	loaded, err := cache.Load(ctx, "el")
	require.NoError(t, err)
	assert.Empty(t, loaded, "entry should expire")
}

func TestRedisStyleCache_Prefix(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client, redis.WithPrefix("app:"))
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, "el", domain.StyleMap{"opacity": "1"}))
	assert.Equal(t, "1", mr.HGet("app:el", "opacity"))
}

func TestRedisStyleCache_StoreEmptyIsNoop(t *testing.T) {
	mr, client := newClient(t)

	cache := redis.NewFromClient(client)
	require.NoError(t, cache.Store(context.Background(), "el", domain.StyleMap{}))
	assert.False(t, mr.Exists("kinetic:styles:el"))
}
