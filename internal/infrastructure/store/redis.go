package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// maxUpdateRetries WATCH 衝突時的重試次數
const maxUpdateRetries = 32

// RedisStore 每個 collection 對應一個 hash：{prefix}:{collection}
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 建立 Redis 儲存
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(collection string) string {
	if s.prefix == "" {
		return collection
	}
	return s.prefix + ":" + collection
}

func (s *RedisStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	data, err := s.client.HGet(ctx, s.key(collection), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, collection, id string, data []byte) error {
	if err := s.client.HSet(ctx, s.key(collection), id, data).Err(); err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	n, err := s.client.HDel(ctx, s.key(collection), id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Update 以 WATCH/MULTI 樂觀鎖更新，hash 被其他連線修改時重試
func (s *RedisStore) Update(ctx context.Context, collection, id string, fn func([]byte) ([]byte, error)) error {
	key := s.key(collection)
	txf := func(tx *redis.Tx) error {
		data, err := tx.HGet(ctx, key, id).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}
		out, err := fn(data)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, out)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("failed to update %s/%s: too much contention", collection, id)
}

func (s *RedisStore) List(ctx context.Context, collection string) ([][]byte, error) {
	values, err := s.client.HVals(ctx, s.key(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
