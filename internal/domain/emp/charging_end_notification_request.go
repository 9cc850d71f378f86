package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// ChargingEndNotificationRequest 充电结束通知
type ChargingEndNotificationRequest struct {
	Request `json:"-"`

	Type                oicp.ChargingNotificationType `json:"Type" validate:"required,eq=End"`
	SessionID           oicp.SessionID                `json:"SessionID" validate:"required,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID     `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID     `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	Identification      *oicp.Identification          `json:"Identification,omitempty"`
	EvseID              oicp.EVSEID                   `json:"EvseID" validate:"required,oicp_evse_id"`
	ChargingStart       *oicp.DateTime                `json:"ChargingStart,omitempty"`
	ChargingEnd         oicp.DateTime                 `json:"ChargingEnd" validate:"required"`
	SessionStart        *oicp.DateTime                `json:"SessionStart,omitempty"`
	SessionEnd          *oicp.DateTime                `json:"SessionEnd,omitempty"`
	ConsumedEnergy      *float64                      `json:"ConsumedEnergy,omitempty" validate:"omitempty,gte=0"`
	MeterValueStart     *float64                      `json:"MeterValueStart,omitempty" validate:"omitempty,gte=0"`
	MeterValueEnd       *float64                      `json:"MeterValueEnd,omitempty" validate:"omitempty,gte=0"`
	MeterValueInBetween *oicp.MeterValueInBetween     `json:"MeterValueInBetween,omitempty"`
	OperatorID          *oicp.OperatorID              `json:"OperatorID,omitempty" validate:"omitempty,oicp_operator_id"`
	PartnerProductID    *oicp.PartnerProductID        `json:"PartnerProductID,omitempty" validate:"omitempty,max=100"`
	PenaltyTimeStart    *oicp.DateTime                `json:"PenaltyTimeStart,omitempty"`
}

func NewChargingEndNotificationRequest(sessionID oicp.SessionID, evseID oicp.EVSEID, chargingEnd oicp.DateTime, opts ...Option) *ChargingEndNotificationRequest {
	return &ChargingEndNotificationRequest{
		Request:     newRequest(applyOptions(opts)),
		Type:        oicp.ChargingNotificationEnd,
		SessionID:   sessionID,
		EvseID:      evseID,
		ChargingEnd: chargingEnd,
	}
}

func ParseChargingEndNotificationRequest(data []byte, opts ...Option) (*ChargingEndNotificationRequest, error) {
	r := &ChargingEndNotificationRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, r.checkTimes); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseChargingEndNotificationRequest(data []byte, opts ...Option) (*ChargingEndNotificationRequest, bool) {
	r, err := ParseChargingEndNotificationRequest(data, opts...)
	return r, err == nil
}

func (r *ChargingEndNotificationRequest) checkTimes() error {
	if r.ChargingStart == nil {
		return nil
	}
	return validator().ValidateTimeRange("ChargingStart", "ChargingEnd", r.ChargingStart.Time, r.ChargingEnd.Time)
}

func (r *ChargingEndNotificationRequest) NotificationType() oicp.ChargingNotificationType {
	return oicp.ChargingNotificationEnd
}

func (r *ChargingEndNotificationRequest) Session() oicp.SessionID { return r.SessionID }

func (r *ChargingEndNotificationRequest) EVSE() oicp.EVSEID { return r.EvseID }

func (r *ChargingEndNotificationRequest) MessageType() string {
	return "ChargingEndNotificationRequest"
}

func (r *ChargingEndNotificationRequest) Validate() error { return validateStruct(r) }

func (r *ChargingEndNotificationRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *ChargingEndNotificationRequest) HashCode() uint64 { return hashOf(r) }

func (r *ChargingEndNotificationRequest) Equal(other *ChargingEndNotificationRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Type == other.Type &&
		r.SessionID == other.SessionID &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID) &&
		oicp.EqualRecordPtr(r.Identification, other.Identification) &&
		r.EvseID == other.EvseID &&
		oicp.EqualRecordPtr(r.ChargingStart, other.ChargingStart) &&
		r.ChargingEnd.Equal(other.ChargingEnd) &&
		oicp.EqualRecordPtr(r.SessionStart, other.SessionStart) &&
		oicp.EqualRecordPtr(r.SessionEnd, other.SessionEnd) &&
		oicp.EqualPtr(r.ConsumedEnergy, other.ConsumedEnergy) &&
		oicp.EqualPtr(r.MeterValueStart, other.MeterValueStart) &&
		oicp.EqualPtr(r.MeterValueEnd, other.MeterValueEnd) &&
		oicp.EqualRecordPtr(r.MeterValueInBetween, other.MeterValueInBetween) &&
		oicp.EqualPtr(r.OperatorID, other.OperatorID) &&
		oicp.EqualPtr(r.PartnerProductID, other.PartnerProductID) &&
		oicp.EqualRecordPtr(r.PenaltyTimeStart, other.PenaltyTimeStart)
}
