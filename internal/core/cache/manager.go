package cache

import (
	"context"
	"sync"
	"time"

	"smartplates/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 有容量上限的記憶體快取
type Manager struct {
	mu      sync.Mutex
	maxSize int
	store   map[string]cacheEntry
	stats   Stats
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type cacheEntry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// Stats 快取統計
type Stats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Errors    int64 `json:"errors"`
}

// NewManager 建立快取；cleanupInterval <= 0 時不啟動背景清理
func NewManager(maxSize int, cleanupInterval time.Duration) *Manager {
	m := &Manager{
		maxSize: maxSize,
		store:   make(map[string]cacheEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go m.startCleanup(cleanupInterval)
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", maxSize),
		zap.Duration("清理間隔", cleanupInterval),
	)
	return m
}

// Get 讀取快取
func (m *Manager) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[key]
	if !ok {
		m.stats.Misses++
		common.LogCacheMiss("memory", key)
		return "", false
	}

	now := m.now()
	if !now.Before(entry.expiresAt) {
		delete(m.store, key)
		m.stats.Evictions++
		m.stats.Misses++
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return "", false
	}

	entry.lastAccess = now
	entry.accessCount++
	m.store[key] = entry
	m.stats.Hits++
	common.LogCacheHit("memory", key)
	return entry.value, true
}

// Set 寫入快取，已滿時先清過期項目再淘汰最少使用者
func (m *Manager) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists && len(m.store) >= m.maxSize {
		if evicted := m.cleanup(); evicted > 0 {
			common.LogDebug("快取清理執行", zap.Int("清理數量", evicted))
		}
		if len(m.store) >= m.maxSize {
			m.evictLRU()
		}
		if len(m.store) >= m.maxSize {
			m.stats.Errors++
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := m.now()
	m.store[key] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(ttl),
		lastAccess: now,
	}
	return nil
}

// Stats 目前統計
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.Size = len(m.store)
	s.MaxSize = m.maxSize
	return s
}

// Close 停止背景清理並清空快取
func (m *Manager) Close() error {
	m.once.Do(func() { close(m.stop) })

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.Hits),
		zap.Int64("未命中次數", m.stats.Misses),
		zap.Int64("淘汰次數", m.stats.Evictions),
	)
	return nil
}

func (m *Manager) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

// cleanup 清除過期項目，呼叫端需持有鎖
func (m *Manager) cleanup() int {
	now := m.now()
	count := 0
	for key, entry := range m.store {
		if !now.Before(entry.expiresAt) {
			delete(m.store, key)
			count++
		}
	}
	m.stats.Evictions += int64(count)
	return count
}

// evictLRU 淘汰存取次數最少、最久未用的項目
func (m *Manager) evictLRU() {
	var victim string
	var oldest time.Time
	lowest := -1

	for key, entry := range m.store {
		if lowest < 0 ||
			entry.accessCount < lowest ||
			(entry.accessCount == lowest && entry.lastAccess.Before(oldest)) {
			victim = key
			oldest = entry.lastAccess
			lowest = entry.accessCount
		}
	}

	if victim != "" {
		delete(m.store, victim)
		m.stats.Evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", victim))
	}
}
