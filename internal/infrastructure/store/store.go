package store

import (
	"context"
	"errors"
	"fmt"

	"smartplates/internal/infrastructure/config"
	"smartplates/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrNotFound 文件不存在
var ErrNotFound = errors.New("document not found")

// Store 以 collection + id 存取 JSON 文件
type Store interface {
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Put(ctx context.Context, collection, id string, data []byte) error
	Delete(ctx context.Context, collection, id string) error
	// Update 以 fn 的回傳值原子地取代既有文件，文件不存在時回傳 ErrNotFound
	Update(ctx context.Context, collection, id string, fn func([]byte) ([]byte, error)) error
	List(ctx context.Context, collection string) ([][]byte, error)
	Ping(ctx context.Context) error
	Close() error
}

// New 依設定建立儲存後端
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		common.LogInfo("文件儲存已連線",
			zap.String("backend", "redis"),
			zap.String("addr", cfg.Redis.Addr),
		)
		return NewRedisStore(client, cfg.Store.Prefix), nil
	case "memory", "":
		common.LogInfo("文件儲存已初始化", zap.String("backend", "memory"))
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
