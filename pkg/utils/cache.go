package utils

import (
	"sync"
	"time"
)

// ==================== 进程内 TTL 缓存 ====================

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache 带过期时间的进程内缓存，聚合类读接口用
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

// NewTTLCache 创建缓存，ttl 为条目存活时长
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get 读取未过期的条目
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Set 写入条目并顺手清理过期项
func (c *TTLCache) Set(key string, value interface{}) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: now.Add(c.ttl)}
}

// Delete 主动失效
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
