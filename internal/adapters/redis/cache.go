package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const packagesKey = "catalog:packages:active"

// Cache fronts the catalog's active-package listing, the hottest read in the
// system. Admin inventory writes invalidate it.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Client() *redis.Client {
	return c.client
}

// GetActivePackages returns the cached listing as serialized JSON, or nil on
// a miss.
func (c *Cache) GetActivePackages(ctx context.Context) ([]byte, error) {
	val, err := c.client.Get(ctx, packagesKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

func (c *Cache) SetActivePackages(ctx context.Context, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, packagesKey, data, ttl).Err()
}

func (c *Cache) InvalidatePackages(ctx context.Context) error {
	return c.client.Del(ctx, packagesKey).Err()
}
