package cache

import "time"

// Config 缓存配置
type Config struct {
	MaxSize         int           `json:"max_size"`         // 最大条目数
	DefaultTTL      time.Duration `json:"default_ttl"`      // Set 传入0时使用
	CleanupInterval time.Duration `json:"cleanup_interval"` // 后台清理过期项的间隔
	ShardCount      int           `json:"shard_count"`      // 分片数量(减少锁竞争)
}

// DefaultConfig 默认缓存配置
func DefaultConfig() *Config {
	return &Config{
		MaxSize:         10000,
		DefaultTTL:      30 * time.Second,
		CleanupInterval: time.Minute,
		ShardCount:      16,
	}
}

// Stats 缓存统计信息
type Stats struct {
	Items       int     `json:"items"`
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRate     float64 `json:"hit_rate"`
	Evictions   int64   `json:"evictions"`   // 容量淘汰次数
	Expirations int64   `json:"expirations"` // 过期清理次数
}

// entry 缓存项，同时是LRU双向链表的节点
type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// lruList LRU双向链表，head 之后是最近使用的项
type lruList[V any] struct {
	head *entry[V]
	tail *entry[V]
	size int
}

func newLRUList[V any]() *lruList[V] {
	head, tail := &entry[V]{}, &entry[V]{}
	head.next = tail
	tail.prev = head
	return &lruList[V]{head: head, tail: tail}
}

func (l *lruList[V]) pushFront(e *entry[V]) {
	e.prev = l.head
	e.next = l.head.next
	l.head.next.prev = e
	l.head.next = e
	l.size++
}

func (l *lruList[V]) remove(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
	l.size--
}

func (l *lruList[V]) moveToFront(e *entry[V]) {
	l.remove(e)
	l.pushFront(e)
}

// back 最久未使用的项，链表为空时返回nil
func (l *lruList[V]) back() *entry[V] {
	if l.size == 0 {
		return nil
	}
	return l.tail.prev
}
