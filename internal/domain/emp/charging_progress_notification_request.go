package emp

import (
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// ChargingProgressNotificationRequest 充电过程中的进度通知
type ChargingProgressNotificationRequest struct {
	Request `json:"-"`

	Type                   oicp.ChargingNotificationType `json:"Type" validate:"required,eq=Progress"`
	SessionID              oicp.SessionID                `json:"SessionID" validate:"required,oicp_session_id"`
	CPOPartnerSessionID    *oicp.CPOPartnerSessionID     `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID    *oicp.EMPPartnerSessionID     `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	Identification         *oicp.Identification          `json:"Identification,omitempty"`
	EvseID                 oicp.EVSEID                   `json:"EvseID" validate:"required,oicp_evse_id"`
	ChargingStart          oicp.DateTime                 `json:"ChargingStart" validate:"required"`
	EventOccurred          oicp.DateTime                 `json:"EventOccurred" validate:"required"`
	ChargingDuration       *int64                        `json:"ChargingDuration,omitempty" validate:"omitempty,gte=0"`
	SessionStart           *oicp.DateTime                `json:"SessionStart,omitempty"`
	ConsumedEnergyProgress *float64                      `json:"ConsumedEnergyProgress,omitempty" validate:"omitempty,gte=0"`
	MeterValueStart        *float64                      `json:"MeterValueStart,omitempty" validate:"omitempty,gte=0"`
	MeterValueInBetween    *oicp.MeterValueInBetween     `json:"MeterValueInBetween,omitempty"`
	OperatorID             *oicp.OperatorID              `json:"OperatorID,omitempty" validate:"omitempty,oicp_operator_id"`
	PartnerProductID       *oicp.PartnerProductID        `json:"PartnerProductID,omitempty" validate:"omitempty,max=100"`
}

func NewChargingProgressNotificationRequest(sessionID oicp.SessionID, evseID oicp.EVSEID, chargingStart, eventOccurred oicp.DateTime, opts ...Option) *ChargingProgressNotificationRequest {
	return &ChargingProgressNotificationRequest{
		Request:       newRequest(applyOptions(opts)),
		Type:          oicp.ChargingNotificationProgress,
		SessionID:     sessionID,
		EvseID:        evseID,
		ChargingStart: chargingStart,
		EventOccurred: eventOccurred,
	}
}

func ParseChargingProgressNotificationRequest(data []byte, opts ...Option) (*ChargingProgressNotificationRequest, error) {
	r := &ChargingProgressNotificationRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseChargingProgressNotificationRequest(data []byte, opts ...Option) (*ChargingProgressNotificationRequest, bool) {
	r, err := ParseChargingProgressNotificationRequest(data, opts...)
	return r, err == nil
}

// Elapsed 已充电时长，ChargingDuration 以毫秒为单位
func (r *ChargingProgressNotificationRequest) Elapsed() time.Duration {
	if r.ChargingDuration != nil {
		return time.Duration(*r.ChargingDuration) * time.Millisecond
	}
	return r.EventOccurred.Sub(r.ChargingStart.Time)
}

func (r *ChargingProgressNotificationRequest) NotificationType() oicp.ChargingNotificationType {
	return oicp.ChargingNotificationProgress
}

func (r *ChargingProgressNotificationRequest) Session() oicp.SessionID { return r.SessionID }

func (r *ChargingProgressNotificationRequest) EVSE() oicp.EVSEID { return r.EvseID }

func (r *ChargingProgressNotificationRequest) MessageType() string {
	return "ChargingProgressNotificationRequest"
}

func (r *ChargingProgressNotificationRequest) Validate() error { return validateStruct(r) }

func (r *ChargingProgressNotificationRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *ChargingProgressNotificationRequest) HashCode() uint64 { return hashOf(r) }

func (r *ChargingProgressNotificationRequest) Equal(other *ChargingProgressNotificationRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Type == other.Type &&
		r.SessionID == other.SessionID &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID) &&
		oicp.EqualRecordPtr(r.Identification, other.Identification) &&
		r.EvseID == other.EvseID &&
		r.ChargingStart.Equal(other.ChargingStart) &&
		r.EventOccurred.Equal(other.EventOccurred) &&
		oicp.EqualPtr(r.ChargingDuration, other.ChargingDuration) &&
		oicp.EqualRecordPtr(r.SessionStart, other.SessionStart) &&
		oicp.EqualPtr(r.ConsumedEnergyProgress, other.ConsumedEnergyProgress) &&
		oicp.EqualPtr(r.MeterValueStart, other.MeterValueStart) &&
		oicp.EqualRecordPtr(r.MeterValueInBetween, other.MeterValueInBetween) &&
		oicp.EqualPtr(r.OperatorID, other.OperatorID) &&
		oicp.EqualPtr(r.PartnerProductID, other.PartnerProductID)
}
