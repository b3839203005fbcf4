// Package cache 进程内 TTL 缓存：列表/详情结果与 match_id→url 映射共用一份。
package cache

import (
	"sync"
	"time"

	"github.com/facebookgo/clock"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache 字符串 key → 任意值，带过期时间。
// 过期条目等同不存在，但不会主动清理，只会在下一次 Set 时被覆盖。
// 没有容量上限，条目数量由 (时区, 日期) 与 (时区, match_id) 组合决定。
type TTLCache struct {
	mu      sync.RWMutex
	clock   clock.Clock
	entries map[string]entry
}

// New 创建缓存；clk 为 nil 时使用真实时钟
func New(clk clock.Clock) *TTLCache {
	if clk == nil {
		clk = clock.New()
	}
	return &TTLCache{
		clock:   clk,
		entries: make(map[string]entry),
	}
}

// Get 未过期时返回值
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.clock.Now().Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set 无条件覆盖；ttl <= 0 的条目立即过期
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.clock.Now().Add(ttl)}
	c.mu.Unlock()
}

// Len 条目总数（含已过期未覆盖的）
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetAs 按类型取值；类型不符视为未命中
func GetAs[T any](c *TTLCache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
