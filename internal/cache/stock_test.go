package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packtrack/stock-api/internal/domain"
)

func setupRedis(t *testing.T) redis.UniversalClient {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})

	return client
}

func TestStockCache_SetGetInvalidate(t *testing.T) {
	c := NewStockCache(setupRedis(t), time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	level := domain.NewStockLevel(1, "Soap", 15, 5, decimal.NewFromInt(40))
	version, err := c.Version(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, level, version))

	got, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, got.InStock)
	assert.Equal(t, "2.6667", got.AvgRate.String())

	require.NoError(t, c.Invalidate(ctx, 1, 2))
	_, ok, err = c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStockCache_SetAfterInvalidate(t *testing.T) {
	c := NewStockCache(setupRedis(t), time.Minute)
	ctx := context.Background()
	level := domain.NewStockLevel(3, "Oil", 10, 0, decimal.NewFromInt(20))

	before, err := c.Version(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, 3))

	require.NoError(t, c.Set(ctx, level, before))
	_, ok, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok, "a level read before invalidation is dropped")

	after, err := c.Version(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	require.NoError(t, c.Set(ctx, level, after))
	_, ok, err = c.Get(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStockKey(t *testing.T) {
	assert.Equal(t, "stock:42", stockKey(42))
	assert.Equal(t, "stock:42:version", versionKey(42))
}

func TestNop(t *testing.T) {
	var n Nop
	_, ok, err := n.Get(context.Background(), 1)

	assert.NoError(t, err)
	assert.False(t, ok)
	version, err := n.Version(context.Background(), 1)
	assert.NoError(t, err)
	assert.Zero(t, version)
	assert.NoError(t, n.Set(context.Background(), domain.StockLevel{}, version))
	assert.NoError(t, n.Invalidate(context.Background(), 1))
}
