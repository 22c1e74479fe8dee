package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/packtrack/stock-api/internal/domain"
)

const (
	stockKeyPrefix   = "stock:"
	versionKeySuffix = ":version"
	defaultStockTTL  = time.Minute
)

// StockCache keeps computed stock levels in Redis under stock:<itemID>.
type StockCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewStockCache(client redis.UniversalClient, ttl time.Duration) *StockCache {
	if ttl <= 0 {
		ttl = defaultStockTTL
	}

	return &StockCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *StockCache) Get(ctx context.Context, itemID uint) (domain.StockLevel, bool, error) {
	raw, err := c.client.Get(ctx, stockKey(itemID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.StockLevel{}, false, nil
		}

		return domain.StockLevel{}, false, fmt.Errorf("c.client.Get -> %w", err)
	}

	var level domain.StockLevel
	if err = json.Unmarshal(raw, &level); err != nil {
		return domain.StockLevel{}, false, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return level, true, nil
}

// Version returns the invalidation counter of an item. A level loaded after
// reading the version may only be cached under that same version.
func (c *StockCache) Version(ctx context.Context, itemID uint) (int64, error) {
	version, err := readVersion(ctx, c.client, versionKey(itemID))
	if err != nil {
		return 0, fmt.Errorf("readVersion -> %w", err)
	}

	return version, nil
}

// Set stores level unless the item was invalidated since version was read,
// so a level computed before a write never outlives that write.
func (c *StockCache) Set(ctx context.Context, level domain.StockLevel, version int64) error {
	raw, err := json.Marshal(level)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	vKey := versionKey(level.ItemID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, vKey)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, stockKey(level.ItemID), raw, c.ttl)
			return nil
		})
		return err
	}, vKey)
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("c.client.Watch -> %w", err)
	}

	return nil
}

// Invalidate bumps the version of each item and drops its cached level.
func (c *StockCache) Invalidate(ctx context.Context, itemIDs ...uint) error {
	if len(itemIDs) == 0 {
		return nil
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range itemIDs {
			pipe.Incr(ctx, versionKey(id))
			pipe.Del(ctx, stockKey(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("c.client.TxPipelined -> %w", err)
	}

	return nil
}

func readVersion(ctx context.Context, cmd redis.Cmdable, key string) (int64, error) {
	version, err := cmd.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return version, err
}

func stockKey(itemID uint) string {
	return stockKeyPrefix + strconv.FormatUint(uint64(itemID), 10)
}

func versionKey(itemID uint) string {
	return stockKey(itemID) + versionKeySuffix
}

// Nop is used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, uint) (domain.StockLevel, bool, error) {
	return domain.StockLevel{}, false, nil
}

func (Nop) Version(context.Context, uint) (int64, error) { return 0, nil }

func (Nop) Set(context.Context, domain.StockLevel, int64) error { return nil }

func (Nop) Invalidate(context.Context, ...uint) error { return nil }
