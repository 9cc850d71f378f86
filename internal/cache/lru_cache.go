package cache

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
)

// LRU 按key分片的LRU缓存，每个分片容量为 MaxSize/ShardCount(向上取整)
type LRU[V any] struct {
	shards []*shard[V]
	config *Config
	now    func() time.Time

	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	expirations atomic.Int64

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

type shard[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	list     *lruList[V]
	capacity int
}

// NewLRU 创建LRU缓存
func NewLRU[V any](config *Config) *LRU[V] {
	if config == nil {
		config = DefaultConfig()
	}
	if config.ShardCount <= 0 {
		config.ShardCount = 1
	}
	if config.MaxSize < config.ShardCount {
		config.ShardCount = max(config.MaxSize, 1)
	}
	capacity := (config.MaxSize + config.ShardCount - 1) / config.ShardCount

	c := &LRU[V]{
		shards: make([]*shard[V], config.ShardCount),
		config: config,
		now:    time.Now,
	}
	for i := range c.shards {
		c.shards[i] = &shard[V]{
			items:    make(map[string]*entry[V]),
			list:     newLRUList[V](),
			capacity: max(capacity, 1),
		}
	}
	return c
}

func (c *LRU[V]) shard(key string) *shard[V] {
	return c.shards[xxhash.Sum64String(key)%uint64(len(c.shards))]
}

// Get 获取缓存项，过期项按未命中处理并被移除
func (c *LRU[V]) Get(key string) (V, bool) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.items[key]
	if !ok {
		c.misses.Add(1)
		return zero, false
	}
	if e.expired(c.now()) {
		s.list.remove(e)
		delete(s.items, key)
		c.expirations.Add(1)
		c.misses.Add(1)
		return zero, false
	}
	s.list.moveToFront(e)
	c.hits.Add(1)
	return e.value, true
}

// Set 设置缓存项，ttl 为0时使用默认TTL，为负数时不过期
func (c *LRU[V]) Set(key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = c.config.DefaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		s.list.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	s.items[key] = e
	s.list.pushFront(e)
	for s.list.size > s.capacity {
		oldest := s.list.back()
		s.list.remove(oldest)
		delete(s.items, oldest.key)
		c.evictions.Add(1)
	}
}

// Delete 删除缓存项
func (c *LRU[V]) Delete(key string) bool {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok {
		return false
	}
	s.list.remove(e)
	delete(s.items, key)
	return true
}

// Len 当前条目数(含尚未清理的过期项)
func (c *LRU[V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.items)
		s.mu.Unlock()
	}
	return total
}

// EvictExpired 清理过期项
func (c *LRU[V]) EvictExpired() int {
	now := c.now()
	expired := 0
	for _, s := range c.shards {
		s.mu.Lock()
		for key, e := range s.items {
			if e.expired(now) {
				s.list.remove(e)
				delete(s.items, key)
				expired++
			}
		}
		s.mu.Unlock()
	}
	c.expirations.Add(int64(expired))
	return expired
}

// Stats 获取统计信息
func (c *LRU[V]) Stats() Stats {
	stats := Stats{
		Items:       c.Len(),
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

// Start 启动后台清理协程
func (c *LRU[V]) Start() error {
	if c.config.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup interval must be positive")
	}
	if !c.running.CompareAndSwap(false, true) {
		return fmt.Errorf("cache is already running")
	}
	c.stopCh = make(chan struct{})

	c.wg.Add(1)
	go c.cleanupWorker()
	return nil
}

// Stop 停止后台清理协程
func (c *LRU[V]) Stop() error {
	if !c.running.CompareAndSwap(true, false) {
		return fmt.Errorf("cache is not running")
	}
	close(c.stopCh)
	c.wg.Wait()
	return nil
}

// IsRunning 是否正在运行
func (c *LRU[V]) IsRunning() bool {
	return c.running.Load()
}

func (c *LRU[V]) cleanupWorker() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.EvictExpired()
		case <-c.stopCh:
			return
		}
	}
}
