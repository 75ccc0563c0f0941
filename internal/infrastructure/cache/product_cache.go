package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appcatalog "github.com/acctmarket/backend/internal/application/catalog"
	"github.com/acctmarket/backend/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
)

const productKeyPrefix = "store:product:"

// RedisProductCache caches product detail lookups in Redis, keyed by
// slug. Entries are JSON-encoded products with a fixed TTL.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProductCache creates a product cache backed by Redis
func NewRedisProductCache(addr, password string, db int, ttl time.Duration) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisProductCache{client: client, ttl: ttl}, nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis
// client, useful for testing or sharing a client across components
func NewRedisProductCacheWithClient(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl}
}

// GetBySlug returns the cached product for a slug, or nil on a miss
func (c *RedisProductCache) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	data, err := c.client.Get(ctx, productKeyPrefix+slug).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read product cache: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// A corrupt entry is treated as a miss so the caller falls
		// back to the repository and overwrites it.
		return nil, nil
	}
	return &product, nil
}

// Set stores a product under its slug
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product for cache: %w", err)
	}
	if err := c.client.Set(ctx, productKeyPrefix+product.Slug, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write product cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached entry for a slug
func (c *RedisProductCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, productKeyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("failed to invalidate product cache: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}

// Ensure RedisProductCache implements ProductCache
var _ appcatalog.ProductCache = (*RedisProductCache)(nil)
