package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// Event 统一业务事件接口
type Event interface {
	// GetID 获取事件ID
	GetID() string
	// GetType 获取事件类型
	GetType() EventType
	// GetSessionID 获取充电会话ID，用作消息分区键
	GetSessionID() oicp.SessionID
	// GetTimestamp 获取事件时间戳
	GetTimestamp() time.Time
	// GetSeverity 获取事件严重程度
	GetSeverity() EventSeverity
	// GetMetadata 获取事件元数据
	GetMetadata() Metadata
	// GetPayload 获取事件载荷
	GetPayload() interface{}
	// ToJSON 序列化为JSON
	ToJSON() ([]byte, error)
}

// BaseEvent 基础事件结构
type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	SessionID oicp.SessionID `json:"session_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Severity  EventSeverity  `json:"severity"`
	Metadata  Metadata       `json:"metadata"`
}

func (e *BaseEvent) GetID() string                { return e.ID }
func (e *BaseEvent) GetType() EventType           { return e.Type }
func (e *BaseEvent) GetSessionID() oicp.SessionID { return e.SessionID }
func (e *BaseEvent) GetTimestamp() time.Time      { return e.Timestamp }
func (e *BaseEvent) GetSeverity() EventSeverity   { return e.Severity }
func (e *BaseEvent) GetMetadata() Metadata        { return e.Metadata }

// NewBaseEvent 创建基础事件
func NewBaseEvent(eventType EventType, sessionID oicp.SessionID, severity EventSeverity, metadata Metadata) *BaseEvent {
	if metadata.ProtocolVersion == "" {
		metadata.ProtocolVersion = ProtocolVersion
	}
	return &BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Severity:  severity,
		Metadata:  metadata,
	}
}

// AuthorizationDecidedEvent 授权决策事件 (AuthorizeStart / AuthorizeStop)
type AuthorizationDecidedEvent struct {
	*BaseEvent
	Authorization AuthorizationInfo `json:"authorization"`
}

// GetPayload 实现Event接口
func (e *AuthorizationDecidedEvent) GetPayload() interface{} {
	return e.Authorization
}

// ToJSON 实现Event接口
func (e *AuthorizationDecidedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ChargeDetailRecordReceivedEvent 收到充电详单
type ChargeDetailRecordReceivedEvent struct {
	*BaseEvent
	OperatorID oicp.OperatorID         `json:"operator_id"`
	Record     oicp.ChargeDetailRecord `json:"charge_detail_record"`
}

// GetPayload 实现Event接口
func (e *ChargeDetailRecordReceivedEvent) GetPayload() interface{} {
	return e.Record
}

// ToJSON 实现Event接口
func (e *ChargeDetailRecordReceivedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ChargingNotificationEvent 充电通知事件，Notification 保留原始通知的全部字段
type ChargingNotificationEvent struct {
	*BaseEvent
	NotificationType oicp.ChargingNotificationType `json:"notification_type"`
	EvseID           oicp.EVSEID                   `json:"evse_id"`
	Notification     emp.ChargingNotification      `json:"notification"`
}

// GetPayload 实现Event接口
func (e *ChargingNotificationEvent) GetPayload() interface{} {
	return e.Notification
}

// ToJSON 实现Event接口
func (e *ChargingNotificationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RemoteCommandEvent 远程指令执行结果事件
type RemoteCommandEvent struct {
	*BaseEvent
	Command CommandInfo `json:"command"`
}

// GetPayload 实现Event接口
func (e *RemoteCommandEvent) GetPayload() interface{} {
	return e.Command
}

// ToJSON 实现Event接口
func (e *RemoteCommandEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ProtocolErrorEvent 协议错误事件
type ProtocolErrorEvent struct {
	*BaseEvent
	ErrorInfo       ErrorInfo       `json:"error_info"`
	OriginalMessage json.RawMessage `json:"original_message,omitempty"`
}

// GetPayload 实现Event接口
func (e *ProtocolErrorEvent) GetPayload() interface{} {
	return map[string]interface{}{
		"error_info":       e.ErrorInfo,
		"original_message": e.OriginalMessage,
	}
}

// ToJSON 实现Event接口
func (e *ProtocolErrorEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFactory 事件工厂
type EventFactory struct {
	source string
}

// NewEventFactory 创建事件工厂，source 写入每个事件的元数据
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

func (f *EventFactory) metadata(metadata Metadata) Metadata {
	if metadata.Source == "" {
		metadata.Source = f.source
	}
	return metadata
}

// CreateAuthorizationStartDecidedEvent 创建开始授权决策事件
func (f *EventFactory) CreateAuthorizationStartDecidedEvent(req *emp.AuthorizeStartRequest, resp *emp.AuthorizationStartResponse, metadata Metadata) *AuthorizationDecidedEvent {
	var sessionID oicp.SessionID
	if resp.SessionID != nil {
		sessionID = *resp.SessionID
	}
	metadata.OperatorID = &req.OperatorID
	metadata.EventTrackingID = req.EventTrackingID
	return &AuthorizationDecidedEvent{
		BaseEvent: NewBaseEvent(EventTypeAuthorizationStartDecided, sessionID, authorizationSeverity(resp.AuthorizationStatus), f.metadata(metadata)),
		Authorization: AuthorizationInfo{
			Operation:           AuthorizationOperationStart,
			OperatorID:          req.OperatorID,
			EvseID:              req.EvseID,
			Identification:      req.Identification.Key(),
			Status:              resp.AuthorizationStatus,
			StatusCode:          resp.StatusCode.Code,
			CPOPartnerSessionID: resp.CPOPartnerSessionID,
			EMPPartnerSessionID: resp.EMPPartnerSessionID,
		},
	}
}

// CreateAuthorizationStopDecidedEvent 创建停止授权决策事件
func (f *EventFactory) CreateAuthorizationStopDecidedEvent(req *emp.AuthorizeStopRequest, resp *emp.AuthorizationStopResponse, metadata Metadata) *AuthorizationDecidedEvent {
	metadata.OperatorID = &req.OperatorID
	metadata.EventTrackingID = req.EventTrackingID
	return &AuthorizationDecidedEvent{
		BaseEvent: NewBaseEvent(EventTypeAuthorizationStopDecided, req.SessionID, authorizationSeverity(resp.AuthorizationStatus), f.metadata(metadata)),
		Authorization: AuthorizationInfo{
			Operation:           AuthorizationOperationStop,
			OperatorID:          req.OperatorID,
			EvseID:              req.EvseID,
			Identification:      req.Identification.Key(),
			Status:              resp.AuthorizationStatus,
			StatusCode:          resp.StatusCode.Code,
			CPOPartnerSessionID: resp.CPOPartnerSessionID,
			EMPPartnerSessionID: resp.EMPPartnerSessionID,
		},
	}
}

// CreateChargeDetailRecordReceivedEvent 创建充电详单事件
func (f *EventFactory) CreateChargeDetailRecordReceivedEvent(req *emp.ChargeDetailRecordRequest, metadata Metadata) *ChargeDetailRecordReceivedEvent {
	metadata.OperatorID = &req.OperatorID
	metadata.EventTrackingID = req.EventTrackingID
	return &ChargeDetailRecordReceivedEvent{
		BaseEvent:  NewBaseEvent(EventTypeChargeDetailRecordReceived, req.ChargeDetailRecord.SessionID, EventSeverityInfo, f.metadata(metadata)),
		OperatorID: req.OperatorID,
		Record:     req.ChargeDetailRecord,
	}
}

// CreateChargingNotificationEvent 创建充电通知事件，未知通知类型返回false
func (f *EventFactory) CreateChargingNotificationEvent(n emp.ChargingNotification, metadata Metadata) (*ChargingNotificationEvent, bool) {
	eventType, ok := NotificationEventType(n.NotificationType())
	if !ok {
		return nil, false
	}
	severity := EventSeverityInfo
	if eventType == EventTypeChargingError {
		severity = EventSeverityError
	}
	return &ChargingNotificationEvent{
		BaseEvent:        NewBaseEvent(eventType, n.Session(), severity, f.metadata(metadata)),
		NotificationType: n.NotificationType(),
		EvseID:           n.EVSE(),
		Notification:     n,
	}, true
}

// CreateRemoteCommandEvent 创建远程指令结果事件
func (f *EventFactory) CreateRemoteCommandEvent(sessionID oicp.SessionID, command CommandInfo, metadata Metadata) *RemoteCommandEvent {
	eventType, severity := EventTypeRemoteCommandExecuted, EventSeverityInfo
	if !command.Result {
		eventType, severity = EventTypeRemoteCommandFailed, EventSeverityWarning
	}
	metadata.ProcessID = command.ProcessID
	return &RemoteCommandEvent{
		BaseEvent: NewBaseEvent(eventType, sessionID, severity, f.metadata(metadata)),
		Command:   command,
	}
}

// CreateProtocolErrorEvent 创建协议错误事件
func (f *EventFactory) CreateProtocolErrorEvent(errorInfo ErrorInfo, originalMessage []byte, metadata Metadata) *ProtocolErrorEvent {
	var raw json.RawMessage
	if json.Valid(originalMessage) {
		raw = json.RawMessage(originalMessage)
	}
	return &ProtocolErrorEvent{
		BaseEvent:       NewBaseEvent(EventTypeProtocolError, "", EventSeverityError, f.metadata(metadata)),
		ErrorInfo:       errorInfo,
		OriginalMessage: raw,
	}
}

func authorizationSeverity(status oicp.AuthorizationStatus) EventSeverity {
	if status == oicp.AuthorizationStatusAuthorized {
		return EventSeverityInfo
	}
	return EventSeverityWarning
}
