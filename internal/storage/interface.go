package storage

import (
	"context"
	"errors"
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("session not found")

// SessionStatus 服务商侧记录的会话状态
type SessionStatus string

const (
	SessionStatusAuthorized     SessionStatus = "authorized"      // AuthorizeStart 已授权
	SessionStatusRemoteStarted  SessionStatus = "remote_started"  // AuthorizeRemoteStart 已被Hubject接受
	SessionStatusReserved       SessionStatus = "reserved"        // AuthorizeRemoteReservationStart 已被接受
	SessionStatusCharging       SessionStatus = "charging"        // 收到 Start / Progress 通知
	SessionStatusStopAuthorized SessionStatus = "stop_authorized" // AuthorizeStop 已授权
	SessionStatusEnded          SessionStatus = "ended"           // 收到 End 通知
	SessionStatusFailed         SessionStatus = "failed"          // 收到 Error 通知
	SessionStatusCompleted      SessionStatus = "completed"       // 收到充电详单
)

// Session 服务商侧的充电会话记录
type Session struct {
	SessionID           oicp.SessionID            `json:"session_id"`
	ProviderID          oicp.ProviderID           `json:"provider_id"`
	OperatorID          *oicp.OperatorID          `json:"operator_id,omitempty"`
	EvseID              *oicp.EVSEID              `json:"evse_id,omitempty"`
	Identification      *oicp.Identification      `json:"identification,omitempty"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"cpo_partner_session_id,omitempty"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"emp_partner_session_id,omitempty"`
	Status              SessionStatus             `json:"status"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// SessionStore 定义了充电会话记录的存取接口
type SessionStore interface {
	// SaveSession 保存或覆盖一个会话，ttl 到期后自动删除
	SaveSession(ctx context.Context, session *Session, ttl time.Duration) error

	// GetSession 获取会话，不存在时返回 ErrSessionNotFound
	GetSession(ctx context.Context, sessionID oicp.SessionID) (*Session, error)

	// UpdateStatus 更新会话状态并刷新过期时间，不存在时返回 ErrSessionNotFound
	UpdateStatus(ctx context.Context, sessionID oicp.SessionID, status SessionStatus, ttl time.Duration) error

	// DeleteSession 删除会话
	DeleteSession(ctx context.Context, sessionID oicp.SessionID) error

	// Close 关闭与存储后端的连接
	Close() error
}
