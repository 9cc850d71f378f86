package gateway

import (
	"errors"
	"fmt"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/events"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
)

// ModelConverter 将OICP消息转换为统一业务事件
type ModelConverter interface {
	// ConvertToUnifiedEvent 将入站请求及其应答转换为事件，response 对授权请求必填
	ConvertToUnifiedEvent(request emp.Message, response emp.Message) (events.Event, error)

	// ConvertCommandResult 转换远程指令的执行结果
	ConvertCommandResult(sessionID oicp.SessionID, command events.CommandInfo, trackingID oicp.EventTrackingID) *events.RemoteCommandEvent

	// ConvertParseError 转换入站报文的解析失败
	ConvertParseError(route string, data []byte, err error) *events.ProtocolErrorEvent

	// GetSupportedMessages 可转换的入站消息名称
	GetSupportedMessages() []string
}

// UnifiedModelConverter ModelConverter 的默认实现
type UnifiedModelConverter struct {
	eventFactory *events.EventFactory
	providerID   oicp.ProviderID
	logger       *logger.Logger
}

// NewUnifiedModelConverter 创建转换器，source 写入事件元数据
func NewUnifiedModelConverter(source string, providerID oicp.ProviderID, l *logger.Logger) *UnifiedModelConverter {
	if l == nil {
		l = logger.Nop()
	}
	return &UnifiedModelConverter{
		eventFactory: events.NewEventFactory(source),
		providerID:   providerID,
		logger:       l,
	}
}

func (c *UnifiedModelConverter) metadata(trackingID oicp.EventTrackingID) events.Metadata {
	providerID := c.providerID
	return events.Metadata{
		EventTrackingID: trackingID,
		ProviderID:      &providerID,
	}
}

// ConvertToUnifiedEvent 按请求类型分派
func (c *UnifiedModelConverter) ConvertToUnifiedEvent(request emp.Message, response emp.Message) (events.Event, error) {
	c.logger.Debugf("Converting %s to unified event", request.MessageType())

	switch req := request.(type) {
	case *emp.AuthorizeStartRequest:
		resp, ok := response.(*emp.AuthorizationStartResponse)
		if !ok {
			return nil, fmt.Errorf("invalid response type for AuthorizeStart: %T", response)
		}
		return c.eventFactory.CreateAuthorizationStartDecidedEvent(req, resp, c.metadata(req.EventTrackingID)), nil

	case *emp.AuthorizeStopRequest:
		resp, ok := response.(*emp.AuthorizationStopResponse)
		if !ok {
			return nil, fmt.Errorf("invalid response type for AuthorizeStop: %T", response)
		}
		return c.eventFactory.CreateAuthorizationStopDecidedEvent(req, resp, c.metadata(req.EventTrackingID)), nil

	case *emp.ChargeDetailRecordRequest:
		return c.eventFactory.CreateChargeDetailRecordReceivedEvent(req, c.metadata(req.EventTrackingID)), nil

	case emp.ChargingNotification:
		md := events.Metadata{}
		if m, ok := req.(interface{ GetEventTrackingID() oicp.EventTrackingID }); ok {
			md = c.metadata(m.GetEventTrackingID())
		}
		event, ok := c.eventFactory.CreateChargingNotificationEvent(req, md)
		if !ok {
			return nil, fmt.Errorf("unsupported charging notification type: %s", req.NotificationType())
		}
		return event, nil

	default:
		return nil, fmt.Errorf("unsupported OICP message: %s", request.MessageType())
	}
}

// ConvertCommandResult 转换远程指令结果
func (c *UnifiedModelConverter) ConvertCommandResult(sessionID oicp.SessionID, command events.CommandInfo, trackingID oicp.EventTrackingID) *events.RemoteCommandEvent {
	return c.eventFactory.CreateRemoteCommandEvent(sessionID, command, c.metadata(trackingID))
}

// ConvertParseError 解析失败映射为协议错误事件：校验错误为022，其余为021
func (c *UnifiedModelConverter) ConvertParseError(route string, data []byte, err error) *events.ProtocolErrorEvent {
	info := events.ErrorInfo{
		Code:    StatusCodeForError(err),
		Message: err.Error(),
		Route:   route,
	}
	return c.eventFactory.CreateProtocolErrorEvent(info, data, c.metadata(""))
}

// GetSupportedMessages 可转换的入站消息名称
func (c *UnifiedModelConverter) GetSupportedMessages() []string {
	return []string{
		"AuthorizeStartRequest",
		"AuthorizeStopRequest",
		"ChargeDetailRecordRequest",
		"ChargingNotification",
	}
}

// StatusCodeForError 入站报文错误对应的OICP状态码
func StatusCodeForError(err error) oicp.StatusCodes {
	var pe *emp.ParseError
	if errors.As(err, &pe) && pe.IsValidation() {
		return oicp.StatusCodeDataError
	}
	return oicp.StatusCodeSystemError
}
