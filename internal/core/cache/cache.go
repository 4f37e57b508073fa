package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"smartplates/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// Cache 回應快取，由呼叫端注入
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// Key 以 namespace 與參數產生快取鍵，參數以 SHA-256 雜湊
func Key(namespace string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return fmt.Sprintf("%s:%s", namespace, hex.EncodeToString(hash[:]))
}

// New 依設定建立快取；停用時回傳 nil
func New(ctx context.Context, cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return NewRedisCache(client, cfg.Store.Prefix+":cache"), nil
	}
	return NewManager(cfg.Cache.MaxSize, cfg.Cache.CleanupInterval), nil
}
