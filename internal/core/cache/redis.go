package cache

import (
	"context"
	"errors"
	"time"

	"smartplates/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache Redis 快取，TTL 交由 Redis 處理
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache 建立 Redis 快取
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

// Get 讀取快取，連線錯誤視為未命中
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			common.LogWarn("讀取快取失敗", zap.String("鍵", key), zap.Error(err))
		}
		common.LogCacheMiss("redis", key)
		return "", false
	}
	common.LogCacheHit("redis", key)
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
