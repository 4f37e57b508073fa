package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection 型別化的文件集合，以 JSON 編碼
type Collection[T any] struct {
	store Store
	name  string
}

// NewCollection 建立集合
func NewCollection[T any](s Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Get 讀取文件，不存在時回傳 ErrNotFound
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", c.name, id, err)
	}
	return &v, nil
}

func (c *Collection[T]) Put(ctx context.Context, id string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", c.name, id, err)
	}
	return c.store.Put(ctx, c.name, id, data)
}

// Update 讀取、以 fn 修改並寫回，整個過程對同一文件為原子操作
// fn 回傳錯誤時不寫入，錯誤原樣回傳
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	var result *T
	err := c.store.Update(ctx, c.name, id, func(data []byte) ([]byte, error) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", c.name, id, err)
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		out, err := json.Marshal(&v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s/%s: %w", c.name, id, err)
		}
		result = &v
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

// List 回傳符合 keep 的文件，keep 為 nil 時回傳全部；順序不保證
func (c *Collection[T]) List(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	docs, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(docs))
	for _, data := range docs {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", c.name, err)
		}
		if keep == nil || keep(&v) {
			out = append(out, &v)
		}
	}
	return out, nil
}
