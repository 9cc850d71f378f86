package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// ChargingErrorNotificationRequest 充电异常通知
type ChargingErrorNotificationRequest struct {
	Request `json:"-"`

	Type                oicp.ChargingNotificationType `json:"Type" validate:"required,eq=Error"`
	SessionID           oicp.SessionID                `json:"SessionID" validate:"required,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID     `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID     `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	Identification      *oicp.Identification          `json:"Identification,omitempty"`
	EvseID              oicp.EVSEID                   `json:"EvseID" validate:"required,oicp_evse_id"`
	ErrorType           oicp.ErrorClass               `json:"ErrorType" validate:"required,oicp_enum"`
	ErrorAdditionalInfo *string                       `json:"ErrorAdditionalInfo,omitempty" validate:"omitempty,max=250"`
}

func NewChargingErrorNotificationRequest(sessionID oicp.SessionID, evseID oicp.EVSEID, errorType oicp.ErrorClass, opts ...Option) *ChargingErrorNotificationRequest {
	return &ChargingErrorNotificationRequest{
		Request:   newRequest(applyOptions(opts)),
		Type:      oicp.ChargingNotificationError,
		SessionID: sessionID,
		EvseID:    evseID,
		ErrorType: errorType,
	}
}

func ParseChargingErrorNotificationRequest(data []byte, opts ...Option) (*ChargingErrorNotificationRequest, error) {
	r := &ChargingErrorNotificationRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseChargingErrorNotificationRequest(data []byte, opts ...Option) (*ChargingErrorNotificationRequest, bool) {
	r, err := ParseChargingErrorNotificationRequest(data, opts...)
	return r, err == nil
}

func (r *ChargingErrorNotificationRequest) NotificationType() oicp.ChargingNotificationType {
	return oicp.ChargingNotificationError
}

func (r *ChargingErrorNotificationRequest) Session() oicp.SessionID { return r.SessionID }

func (r *ChargingErrorNotificationRequest) EVSE() oicp.EVSEID { return r.EvseID }

func (r *ChargingErrorNotificationRequest) MessageType() string {
	return "ChargingErrorNotificationRequest"
}

func (r *ChargingErrorNotificationRequest) Validate() error { return validateStruct(r) }

func (r *ChargingErrorNotificationRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *ChargingErrorNotificationRequest) HashCode() uint64 { return hashOf(r) }

func (r *ChargingErrorNotificationRequest) Equal(other *ChargingErrorNotificationRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Type == other.Type &&
		r.SessionID == other.SessionID &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID) &&
		oicp.EqualRecordPtr(r.Identification, other.Identification) &&
		r.EvseID == other.EvseID &&
		r.ErrorType == other.ErrorType &&
		oicp.EqualPtr(r.ErrorAdditionalInfo, other.ErrorAdditionalInfo)
}
