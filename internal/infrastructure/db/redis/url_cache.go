package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// urlTTL must stay below the blob store's presign expiry so that a cached URL
// handed to a client is still usable for its full remaining lifetime.
const urlTTL = 10 * time.Minute

// URLCache caches presigned download URLs keyed by material id.
// Key format: material_url:<material_id>
type URLCache struct {
	client *redis.Client
}

// NewURLCache creates a URLCache wrapping the given Redis client.
func NewURLCache(client *redis.Client) *URLCache {
	return &URLCache{client: client}
}

// Get returns the cached URL for materialID and whether one was present.
func (c *URLCache) Get(ctx context.Context, materialID string) (string, bool, error) {
	url, err := c.client.Get(ctx, c.key(materialID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("url cache get: %w", err)
	}
	return url, true, nil
}

// Set stores a freshly presigned URL (expires after urlTTL).
func (c *URLCache) Set(ctx context.Context, materialID, url string) error {
	return c.client.Set(ctx, c.key(materialID), url, urlTTL).Err()
}

// Invalidate drops the cached URL for a deleted material.
func (c *URLCache) Invalidate(ctx context.Context, materialID string) error {
	return c.client.Del(ctx, c.key(materialID)).Err()
}

func (c *URLCache) key(materialID string) string {
	return "material_url:" + materialID
}
