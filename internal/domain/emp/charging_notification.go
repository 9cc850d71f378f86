package emp

import (
	"bytes"
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/validation"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

// ChargingNotification 四种充电通知的公共接口
type ChargingNotification interface {
	Message
	NotificationType() oicp.ChargingNotificationType
	Session() oicp.SessionID
	EVSE() oicp.EVSEID
}

var (
	_ ChargingNotification = (*ChargingStartNotificationRequest)(nil)
	_ ChargingNotification = (*ChargingProgressNotificationRequest)(nil)
	_ ChargingNotification = (*ChargingEndNotificationRequest)(nil)
	_ ChargingNotification = (*ChargingErrorNotificationRequest)(nil)
)

// chargingNotificationType 分派前失败时计入指标的消息类型
const chargingNotificationType = "ChargingNotification"

// ParseChargingNotification 按 "Type" 字段分派到具体的通知类型
func ParseChargingNotification(data []byte, opts ...Option) (ChargingNotification, error) {
	notificationType, err := notificationTypeOf(data)
	if err != nil {
		metrics.ObserveParse(chargingNotificationType, err)
		return nil, &ParseError{Type: chargingNotificationType, Cause: err}
	}

	switch notificationType {
	case oicp.ChargingNotificationStart:
		return asNotification(ParseChargingStartNotificationRequest(data, opts...))
	case oicp.ChargingNotificationProgress:
		return asNotification(ParseChargingProgressNotificationRequest(data, opts...))
	case oicp.ChargingNotificationEnd:
		return asNotification(ParseChargingEndNotificationRequest(data, opts...))
	default:
		return asNotification(ParseChargingErrorNotificationRequest(data, opts...))
	}
}

// notificationTypeOf 与具体消息相同的空报文和大小检查之后读取 "Type"
func notificationTypeOf(data []byte) (oicp.ChargingNotificationType, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ErrEmptyBody
	}
	if err := validator().ValidateMessageSize(data, MaxMessageSize); err != nil {
		return "", err
	}
	var head struct {
		Type oicp.ChargingNotificationType `json:"Type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", err
	}
	switch head.Type {
	case oicp.ChargingNotificationStart, oicp.ChargingNotificationProgress,
		oicp.ChargingNotificationEnd, oicp.ChargingNotificationError:
		return head.Type, nil
	}
	return "", validation.ValidationError{
		Field:   "Type",
		Tag:     "oicp_enum",
		Value:   string(head.Type),
		Message: "Unknown charging notification type '" + string(head.Type) + "'",
	}
}

// asNotification 避免把nil指针包装成非nil接口
func asNotification[T ChargingNotification](n T, err error) (ChargingNotification, error) {
	if err != nil {
		return nil, err
	}
	return n, nil
}
