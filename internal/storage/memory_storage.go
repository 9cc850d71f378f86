package storage

import (
	"context"
	"sync"
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time // 零值表示不过期
}

// MemorySessionStore 进程内会话存储，用于未配置Redis的单实例部署和测试
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[oicp.SessionID]memoryEntry
	Clock    func() time.Time
}

// NewMemorySessionStore 创建内存会话存储
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[oicp.SessionID]memoryEntry)}
}

func (m *MemorySessionStore) now() time.Time {
	if m.Clock != nil {
		return m.Clock().UTC()
	}
	return time.Now().UTC()
}

func (m *MemorySessionStore) expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func (m *MemorySessionStore) SaveSession(_ context.Context, session *Session, ttl time.Duration) error {
	now := m.now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.SessionID] = memoryEntry{session: *session, expiresAt: m.expiry(now, ttl)}
	return nil
}

// lookup 调用方须持有锁
func (m *MemorySessionStore) lookup(sessionID oicp.SessionID, now time.Time) (memoryEntry, bool) {
	entry, ok := m.sessions[sessionID]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
		return memoryEntry{}, false
	}
	return entry, true
}

func (m *MemorySessionStore) GetSession(_ context.Context, sessionID oicp.SessionID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.lookup(sessionID, m.now())
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (m *MemorySessionStore) UpdateStatus(_ context.Context, sessionID oicp.SessionID, status SessionStatus, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	entry, ok := m.lookup(sessionID, now)
	if !ok {
		delete(m.sessions, sessionID)
		return ErrSessionNotFound
	}
	entry.session.Status = status
	entry.session.UpdatedAt = now
	entry.expiresAt = m.expiry(now, ttl)
	m.sessions[sessionID] = entry
	return nil
}

func (m *MemorySessionStore) DeleteSession(_ context.Context, sessionID oicp.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// Len 未过期的会话数量
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()
	n := 0
	for id := range m.sessions {
		if _, ok := m.lookup(id, now); ok {
			n++
		}
	}
	return n
}

func (m *MemorySessionStore) Close() error { return nil }
