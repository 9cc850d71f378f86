package events

import (
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/protocol"
)

// EventType 事件类型
type EventType string

const (
	// 授权事件
	EventTypeAuthorizationStartDecided EventType = "authorization.start_decided"
	EventTypeAuthorizationStopDecided  EventType = "authorization.stop_decided"

	// 充电详单事件
	EventTypeChargeDetailRecordReceived EventType = "charge_detail_record.received"

	// 充电通知事件
	EventTypeChargingStarted  EventType = "charging.started"
	EventTypeChargingProgress EventType = "charging.progress"
	EventTypeChargingEnded    EventType = "charging.ended"
	EventTypeChargingError    EventType = "charging.error"

	// 远程指令事件
	EventTypeRemoteCommandExecuted EventType = "remote_command.executed"
	EventTypeRemoteCommandFailed   EventType = "remote_command.failed"

	// 错误事件
	EventTypeProtocolError EventType = "protocol.error"
)

// NotificationEventType 充电通知类型对应的事件类型
func NotificationEventType(t oicp.ChargingNotificationType) (EventType, bool) {
	switch t {
	case oicp.ChargingNotificationStart:
		return EventTypeChargingStarted, true
	case oicp.ChargingNotificationProgress:
		return EventTypeChargingProgress, true
	case oicp.ChargingNotificationEnd:
		return EventTypeChargingEnded, true
	case oicp.ChargingNotificationError:
		return EventTypeChargingError, true
	default:
		return "", false
	}
}

// EventSeverity 事件严重程度
type EventSeverity string

const (
	EventSeverityInfo     EventSeverity = "info"
	EventSeverityWarning  EventSeverity = "warning"
	EventSeverityError    EventSeverity = "error"
	EventSeverityCritical EventSeverity = "critical"
)

// AuthorizationOperation 授权操作
type AuthorizationOperation string

const (
	AuthorizationOperationStart AuthorizationOperation = "start"
	AuthorizationOperationStop  AuthorizationOperation = "stop"
)

// AuthorizationInfo 授权决策信息
type AuthorizationInfo struct {
	Operation           AuthorizationOperation    `json:"operation"`
	OperatorID          oicp.OperatorID           `json:"operator_id"`
	EvseID              *oicp.EVSEID              `json:"evse_id,omitempty"`
	Identification      string                    `json:"identification"` // 认证信息的规范表示，见 Identification.Key
	Status              oicp.AuthorizationStatus  `json:"status"`
	StatusCode          oicp.StatusCodes          `json:"status_code"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"cpo_partner_session_id,omitempty"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"emp_partner_session_id,omitempty"`
}

// Authorized 是否授权通过
func (a AuthorizationInfo) Authorized() bool {
	return a.Status == oicp.AuthorizationStatusAuthorized
}

// CommandInfo 远程指令执行结果
type CommandInfo struct {
	Name       string           `json:"name"`
	EvseID     *oicp.EVSEID     `json:"evse_id,omitempty"`
	Result     bool             `json:"result"`
	StatusCode oicp.StatusCodes `json:"status_code,omitempty"`
	ProcessID  *oicp.ProcessID  `json:"process_id,omitempty"`
	Error      string           `json:"error,omitempty"`
	// StatusRecords PullEVSEStatusById 指令查询到的状态
	StatusRecords []oicp.EVSEStatusRecord `json:"status_records,omitempty"`
}

// ErrorInfo 协议错误信息
type ErrorInfo struct {
	Code    oicp.StatusCodes `json:"code"`
	Message string           `json:"message"`
	Route   string           `json:"route,omitempty"`
}

// Metadata 事件元数据
type Metadata struct {
	Source          string                 `json:"source"`                      // 事件源标识(pod)
	CorrelationID   *string                `json:"correlation_id,omitempty"`    // 关联ID
	EventTrackingID oicp.EventTrackingID   `json:"event_tracking_id,omitempty"` // 请求跟踪ID
	ProcessID       *oicp.ProcessID        `json:"process_id,omitempty"`        // Hubject处理ID
	OperatorID      *oicp.OperatorID       `json:"operator_id,omitempty"`
	ProviderID      *oicp.ProviderID       `json:"provider_id,omitempty"`
	ProtocolVersion string                 `json:"protocol_version"`
	Custom          map[string]interface{} `json:"custom,omitempty"`
}

// ProtocolVersion 事件中记录的OICP版本
const ProtocolVersion = protocol.DefaultVersion
