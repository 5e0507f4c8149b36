package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// PathCacheTTL is the time-to-live for cached hierarchical paths.
	PathCacheTTL = time.Hour

	pathCacheKeyPrefix = "path"
)

// PathCache stores resolved hierarchical display paths ("Room > Device > …")
// per sample item. Paths change whenever a specimen moves or any ancestor
// location is renamed or deleted, so entries carry a short TTL and are
// explicitly invalidated on movement events.
// Key format: "path:{sampleItemID}"
type PathCache struct {
	client *RedisClient
}

// NewPathCache creates a PathCache backed by the given RedisClient.
func NewPathCache(r *RedisClient) *PathCache {
	return &PathCache{client: r}
}

// Get retrieves a cached path. Returns redis.Nil error when the key does not
// exist or has expired.
func (c *PathCache) Get(ctx context.Context, sampleItemID int64) (string, error) {
	path, err := c.client.Client().Get(ctx, c.key(sampleItemID)).Result()
	if err != nil {
		return "", fmt.Errorf("path cache get: %w", err)
	}
	return path, nil
}

// Set writes a path with the standard TTL.
func (c *PathCache) Set(ctx context.Context, sampleItemID int64, path string) error {
	if err := c.client.Client().Set(ctx, c.key(sampleItemID), path, PathCacheTTL).Err(); err != nil {
		return fmt.Errorf("path cache set: %w", err)
	}
	return nil
}

// Delete removes a cached path.
func (c *PathCache) Delete(ctx context.Context, sampleItemID int64) error {
	if err := c.client.Client().Del(ctx, c.key(sampleItemID)).Err(); err != nil {
		return fmt.Errorf("path cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "path:{sampleItemID}"
func (c *PathCache) key(sampleItemID int64) string {
	return fmt.Sprintf("%s:%d", pathCacheKeyPrefix, sampleItemID)
}
