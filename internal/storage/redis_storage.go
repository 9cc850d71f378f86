package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/charging-platform/oicp-emp-gateway/internal/config"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// DefaultKeyPrefix 会话键前缀
const DefaultKeyPrefix = "emp:session:"

// RedisSessionStore 使用 Redis 存储会话，每个会话一个JSON字符串键
type RedisSessionStore struct {
	Client *redis.Client
	Prefix string
	Clock  func() time.Time // 为空时使用 time.Now
}

// NewRedisSessionStore 创建一个新的 RedisSessionStore 实例
func NewRedisSessionStore(cfg config.RedisConfig) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	return &RedisSessionStore{Client: client, Prefix: DefaultKeyPrefix}, nil
}

func (r *RedisSessionStore) key(sessionID oicp.SessionID) string {
	return r.Prefix + string(sessionID)
}

func (r *RedisSessionStore) now() time.Time {
	if r.Clock != nil {
		return r.Clock().UTC()
	}
	return time.Now().UTC()
}

// SaveSession 保存会话，CreatedAt 为空时补齐
func (r *RedisSessionStore) SaveSession(ctx context.Context, session *Session, ttl time.Duration) error {
	now := r.now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	return r.set(ctx, session, ttl)
}

func (r *RedisSessionStore) set(ctx context.Context, session *Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.SessionID, err)
	}
	if err := r.Client.Set(ctx, r.key(session.SessionID), string(data), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.SessionID, err)
	}
	return nil
}

// GetSession 获取会话
func (r *RedisSessionStore) GetSession(ctx context.Context, sessionID oicp.SessionID) (*Session, error) {
	val, err := r.Client.Get(ctx, r.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}
	return &session, nil
}

// UpdateStatus 读取-修改-写回会话状态。同一会话的通知由Hubject串行发送，不做乐观锁
func (r *RedisSessionStore) UpdateStatus(ctx context.Context, sessionID oicp.SessionID, status SessionStatus, ttl time.Duration) error {
	session, err := r.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Status = status
	session.UpdatedAt = r.now()
	return r.set(ctx, session, ttl)
}

// DeleteSession 删除会话
func (r *RedisSessionStore) DeleteSession(ctx context.Context, sessionID oicp.SessionID) error {
	if err := r.Client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// Close 关闭与存储后端的连接
func (r *RedisSessionStore) Close() error {
	return r.Client.Close()
}
