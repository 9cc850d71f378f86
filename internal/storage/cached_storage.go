package storage

import (
	"context"
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/cache"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// CachedSessionStore 在共享存储前加一层进程内LRU缓存。
// 写操作先落到底层存储；缓存TTL应远小于会话TTL，其他实例的更新最多在一个缓存TTL后可见。
type CachedSessionStore struct {
	inner SessionStore
	cache *cache.LRU[Session]
}

// NewCachedSessionStore 创建带缓存的会话存储并启动缓存的过期清理
func NewCachedSessionStore(inner SessionStore, config *cache.Config) (*CachedSessionStore, error) {
	c := cache.NewLRU[Session](config)
	if err := c.Start(); err != nil {
		return nil, err
	}
	return &CachedSessionStore{inner: inner, cache: c}, nil
}

func (s *CachedSessionStore) SaveSession(ctx context.Context, session *Session, ttl time.Duration) error {
	if err := s.inner.SaveSession(ctx, session, ttl); err != nil {
		s.cache.Delete(string(session.SessionID))
		return err
	}
	s.cache.Set(string(session.SessionID), *session, 0)
	return nil
}

func (s *CachedSessionStore) GetSession(ctx context.Context, sessionID oicp.SessionID) (*Session, error) {
	if session, ok := s.cache.Get(string(sessionID)); ok {
		return &session, nil
	}
	session, err := s.inner.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(string(sessionID), *session, 0)
	return session, nil
}

// UpdateStatus 更新后丢弃缓存项，下次读取时取回底层存储中的 UpdatedAt
func (s *CachedSessionStore) UpdateStatus(ctx context.Context, sessionID oicp.SessionID, status SessionStatus, ttl time.Duration) error {
	defer s.cache.Delete(string(sessionID))
	return s.inner.UpdateStatus(ctx, sessionID, status, ttl)
}

func (s *CachedSessionStore) DeleteSession(ctx context.Context, sessionID oicp.SessionID) error {
	defer s.cache.Delete(string(sessionID))
	return s.inner.DeleteSession(ctx, sessionID)
}

// CacheStats 缓存命中统计
func (s *CachedSessionStore) CacheStats() cache.Stats {
	return s.cache.Stats()
}

func (s *CachedSessionStore) Close() error {
	if s.cache.IsRunning() {
		_ = s.cache.Stop()
	}
	return s.inner.Close()
}
