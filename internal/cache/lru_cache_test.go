package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(maxSize, shards int) (*LRU[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	c := NewLRU[string](&Config{MaxSize: maxSize, DefaultTTL: time.Minute, ShardCount: shards})
	c.now = clock.Now
	return c, clock
}

func TestNewLRU(t *testing.T) {
	tests := []struct {
		name         string
		config       *Config
		wantShards   int
		wantCapacity int
	}{
		{"default", nil, 16, 625},
		{"rounds capacity up", &Config{MaxSize: 10, ShardCount: 4}, 4, 3},
		{"fewer items than shards", &Config{MaxSize: 2, ShardCount: 16}, 2, 1},
		{"no shards", &Config{MaxSize: 5}, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLRU[int](tt.config)
			assert.Len(t, c.shards, tt.wantShards)
			assert.Equal(t, tt.wantCapacity, c.shards[0].capacity)
			assert.False(t, c.IsRunning())
		})
	}
}

func TestLRU_BasicOperations(t *testing.T) {
	c, _ := newTestCache(100, 4)

	c.Set("key1", "value1", time.Hour)
	value, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", value)

	c.Set("key1", "value2", time.Hour)
	value, _ = c.Get("key1")
	assert.Equal(t, "value2", value)
	assert.Equal(t, 1, c.Len())

	value, ok = c.Get("nonexistent")
	assert.False(t, ok)
	assert.Empty(t, value)

	assert.True(t, c.Delete("key1"))
	assert.False(t, c.Delete("key1"))
	_, ok = c.Get("key1")
	assert.False(t, ok)
}

func TestLRU_TTL(t *testing.T) {
	c, clock := newTestCache(100, 1)

	c.Set("short", "v", 100*time.Millisecond)
	c.Set("default", "v", 0)
	c.Set("forever", "v", -1)

	_, ok := c.Get("short")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("short")
	assert.False(t, ok, "expired item is a miss")
	_, ok = c.Get("default")
	assert.True(t, ok)

	clock.Advance(time.Hour)
	assert.Equal(t, 1, c.EvictExpired())
	_, ok = c.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, int64(2), c.Stats().Expirations)
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestCache(3, 1)

	c.Set("key1", "value1", 0)
	c.Set("key2", "value2", 0)
	c.Set("key3", "value3", 0)

	// key1 变为最近使用，key2 成为最久未使用
	_, ok := c.Get("key1")
	require.True(t, ok)

	c.Set("key4", "value4", 0)

	assert.Equal(t, 3, c.Len())
	_, ok = c.Get("key2")
	assert.False(t, ok)
	for _, key := range []string{"key1", "key3", "key4"} {
		_, ok := c.Get(key)
		assert.True(t, ok, key)
	}
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestLRU_Stats(t *testing.T) {
	c, _ := newTestCache(10, 2)
	c.Set("a", "1", 0)

	c.Get("a")
	c.Get("a")
	c.Get("b")

	stats := c.Stats()
	assert.Equal(t, 1, stats.Items)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 0.0001)
}

func TestLRU_StartStop(t *testing.T) {
	c := NewLRU[string](&Config{MaxSize: 10, ShardCount: 1, CleanupInterval: 10 * time.Millisecond})
	c.Set("key", "value", time.Millisecond)

	require.NoError(t, c.Start())
	assert.Error(t, c.Start())
	assert.True(t, c.IsRunning())

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)

	require.NoError(t, c.Stop())
	assert.Error(t, c.Stop())
	assert.False(t, c.IsRunning())

	c.config.CleanupInterval = 0
	assert.Error(t, c.Start())
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](&Config{MaxSize: 1000, ShardCount: 8, DefaultTTL: time.Minute})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := strconv.Itoa(g*500 + i)
				c.Set(key, i, 0)
				c.Get(key)
				if i%3 == 0 {
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 1000)
}
