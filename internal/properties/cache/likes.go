package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const likesTTL = 5 * time.Minute

// LikesCache caches the viewer-independent "who liked this" payload per
// property. A nil *LikesCache is a no-op, so the service works unchanged
// when Redis is not configured.
type LikesCache struct {
	client *redis.Client
}

// NewLikesCache wraps a Redis client. Pass nil to disable caching.
func NewLikesCache(client *redis.Client) *LikesCache {
	if client == nil {
		return nil
	}
	return &LikesCache{client: client}
}

func likesKey(propertyID uuid.UUID) string {
	return "property:likes:" + propertyID.String()
}

// Get returns the cached payload, or found=false on miss or any cache error.
// Cache errors are swallowed here on purpose: the database is the source of
// truth and a flaky cache must not fail reads.
func (c *LikesCache) Get(ctx context.Context, propertyID uuid.UUID, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, likesKey(propertyID)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	return true
}

// Set stores the payload with a short TTL.
func (c *LikesCache) Set(ctx context.Context, propertyID uuid.UUID, value interface{}) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal likes payload: %w", err)
	}
	if err := c.client.Set(ctx, likesKey(propertyID), data, likesTTL).Err(); err != nil {
		return fmt.Errorf("cache likes payload: %w", err)
	}
	return nil
}

// Invalidate drops the cached payload after a toggle or a property deletion.
func (c *LikesCache) Invalidate(ctx context.Context, propertyID uuid.UUID) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, likesKey(propertyID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("invalidate likes cache: %w", err)
	}
	return nil
}
