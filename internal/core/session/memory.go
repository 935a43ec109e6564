package session

import (
	"context"
	"sync"
	"time"

	"savora-web/internal/infrastructure/config"
	"savora-web/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 單機記憶體 session 儲存
type MemoryStore struct {
	config config.SessionConfig
	mu     sync.Mutex
	store  map[string]entry
	stats  stats
	now    func() time.Time
	done   chan struct{}
	once   sync.Once
}

type entry struct {
	value       []byte
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type stats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryStore 創建記憶體儲存並啟動過期清理
func NewMemoryStore(cfg config.SessionConfig) *MemoryStore {
	m := &MemoryStore{
		config: cfg,
		store:  make(map[string]entry),
		now:    time.Now,
		done:   make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go m.startCleanup()
	}

	common.LogInfo("記憶體 session 儲存已初始化",
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)
	return m
}

// Get 取得 session 內容
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.lookup(key)
	if !ok {
		m.stats.misses++
		return nil, ErrNotFound
	}
	m.stats.hits++
	return value, nil
}

// Update 在鎖內執行 fn 並寫回結果
func (m *MemoryStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, _ := m.lookup(key)
	next, err := fn(current)
	if err != nil {
		return err
	}

	if _, exists := m.store[key]; !exists && m.config.MaxSize > 0 && len(m.store) >= m.config.MaxSize {
		if evicted := m.cleanup(); evicted > 0 {
			common.LogInfo("session 清理執行", zap.Int("清理數量", evicted))
		}
		if len(m.store) >= m.config.MaxSize {
			m.evictLRU()
		}
	}

	now := m.now()
	e := m.store[key]
	e.value = next
	e.expiresAt = now.Add(m.config.TTL)
	e.lastAccess = now
	e.accessCount++
	m.store[key] = e
	return nil
}

// Delete 刪除 session
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}

// Ping 記憶體儲存永遠可用
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// lookup 需持有鎖；過期項目會被刪除
func (m *MemoryStore) lookup(key string) ([]byte, bool) {
	e, ok := m.store[key]
	if !ok {
		return nil, false
	}
	now := m.now()
	if now.After(e.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		return nil, false
	}
	e.lastAccess = now
	e.accessCount++
	m.store[key] = e
	return e.value, true
}

func (m *MemoryStore) startCleanup() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			count := m.cleanup()
			m.mu.Unlock()
			if count > 0 {
				common.LogDebug("已清理過期 session", zap.Int("count", count))
			}
		case <-m.done:
			return
		}
	}
}

// cleanup 需持有鎖
func (m *MemoryStore) cleanup() int {
	now := m.now()
	count := 0
	for key, e := range m.store {
		if now.After(e.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}
	return count
}

// evictLRU 淘汰最久未使用的 session，需持有鎖
func (m *MemoryStore) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time

	for key, e := range m.store {
		if oldestKey == "" || e.lastAccess.Before(oldestAccess) {
			oldestKey = key
			oldestAccess = e.lastAccess
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogInfo("session 已淘汰(LRU)")
	}
}

// Stats 統計資訊
func (m *MemoryStore) Stats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.config.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
	}
}

// Close 停止清理並清空
func (m *MemoryStore) Close() error {
	m.once.Do(func() { close(m.done) })

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]entry)
	common.LogInfo("記憶體 session 儲存已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
