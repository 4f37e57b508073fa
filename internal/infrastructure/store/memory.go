package store

import (
	"context"
	"sync"
)

// MemoryStore 行程內儲存，重啟後資料消失
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemoryStore 建立記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(doc), nil
}

func (s *MemoryStore) Put(_ context.Context, collection, id string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.data[collection]
	if !ok {
		docs = make(map[string][]byte)
		s.data[collection] = docs
	}
	docs[id] = clone(data)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][id]; !ok {
		return ErrNotFound
	}
	delete(s.data[collection], id)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fn func([]byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return ErrNotFound
	}
	out, err := fn(clone(doc))
	if err != nil {
		return err
	}
	s.data[collection][id] = clone(out)
	return nil
}

func (s *MemoryStore) List(_ context.Context, collection string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.data[collection]
	out := make([][]byte, 0, len(docs))
	for _, doc := range docs {
		out = append(out, clone(doc))
	}
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
