package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
)

var _ port.PaymentCache = (*RedisCache)(nil)

// RedisCache caches serialized payment read models in Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func key(id uuid.UUID) string {
	return "payments:record:" + id.String()
}

func (c *RedisCache) Get(ctx context.Context, id uuid.UUID) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return payload, true, nil
}

func (c *RedisCache) Set(ctx context.Context, id uuid.UUID, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
