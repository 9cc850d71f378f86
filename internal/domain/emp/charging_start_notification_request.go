package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// ChargingStartNotificationRequest 充电开始通知
type ChargingStartNotificationRequest struct {
	Request `json:"-"`

	Type                oicp.ChargingNotificationType `json:"Type" validate:"required,eq=Start"`
	SessionID           oicp.SessionID                `json:"SessionID" validate:"required,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID     `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID     `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	Identification      *oicp.Identification          `json:"Identification,omitempty"`
	EvseID              oicp.EVSEID                   `json:"EvseID" validate:"required,oicp_evse_id"`
	ChargingStart       oicp.DateTime                 `json:"ChargingStart" validate:"required"`
	SessionStart        *oicp.DateTime                `json:"SessionStart,omitempty"`
	MeterValueStart     *float64                      `json:"MeterValueStart,omitempty" validate:"omitempty,gte=0"`
	OperatorID          *oicp.OperatorID              `json:"OperatorID,omitempty" validate:"omitempty,oicp_operator_id"`
	PartnerProductID    *oicp.PartnerProductID        `json:"PartnerProductID,omitempty" validate:"omitempty,max=100"`
}

func NewChargingStartNotificationRequest(sessionID oicp.SessionID, evseID oicp.EVSEID, chargingStart oicp.DateTime, opts ...Option) *ChargingStartNotificationRequest {
	return &ChargingStartNotificationRequest{
		Request:       newRequest(applyOptions(opts)),
		Type:          oicp.ChargingNotificationStart,
		SessionID:     sessionID,
		EvseID:        evseID,
		ChargingStart: chargingStart,
	}
}

func ParseChargingStartNotificationRequest(data []byte, opts ...Option) (*ChargingStartNotificationRequest, error) {
	r := &ChargingStartNotificationRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseChargingStartNotificationRequest(data []byte, opts ...Option) (*ChargingStartNotificationRequest, bool) {
	r, err := ParseChargingStartNotificationRequest(data, opts...)
	return r, err == nil
}

func (r *ChargingStartNotificationRequest) NotificationType() oicp.ChargingNotificationType {
	return oicp.ChargingNotificationStart
}

func (r *ChargingStartNotificationRequest) Session() oicp.SessionID { return r.SessionID }

func (r *ChargingStartNotificationRequest) EVSE() oicp.EVSEID { return r.EvseID }

func (r *ChargingStartNotificationRequest) MessageType() string {
	return "ChargingStartNotificationRequest"
}

func (r *ChargingStartNotificationRequest) Validate() error { return validateStruct(r) }

func (r *ChargingStartNotificationRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *ChargingStartNotificationRequest) HashCode() uint64 { return hashOf(r) }

func (r *ChargingStartNotificationRequest) Equal(other *ChargingStartNotificationRequest) bool {
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
		oicp.EqualRecordPtr(r.SessionStart, other.SessionStart) &&
		oicp.EqualPtr(r.MeterValueStart, other.MeterValueStart) &&
		oicp.EqualPtr(r.OperatorID, other.OperatorID) &&
		oicp.EqualPtr(r.PartnerProductID, other.PartnerProductID)
}
