package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// AuthorizeRemoteReservationStopRequest 取消预约 (EMP → Hubject)
type AuthorizeRemoteReservationStopRequest struct {
	Request `json:"-"`

	ProviderID          oicp.ProviderID           `json:"ProviderID" validate:"required,oicp_provider_id"`
	EvseID              oicp.EVSEID               `json:"EvseID" validate:"required,oicp_evse_id"`
	SessionID           oicp.SessionID            `json:"SessionID" validate:"required,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
}

func NewAuthorizeRemoteReservationStopRequest(providerID oicp.ProviderID, evseID oicp.EVSEID, sessionID oicp.SessionID, opts ...Option) *AuthorizeRemoteReservationStopRequest {
	return &AuthorizeRemoteReservationStopRequest{
		Request:    newRequest(applyOptions(opts)),
		ProviderID: providerID,
		EvseID:     evseID,
		SessionID:  sessionID,
	}
}

func ParseAuthorizeRemoteReservationStopRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*AuthorizeRemoteReservationStopRequest, error) {
	r := &AuthorizeRemoteReservationStopRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseAuthorizeRemoteReservationStopRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*AuthorizeRemoteReservationStopRequest, bool) {
	r, err := ParseAuthorizeRemoteReservationStopRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *AuthorizeRemoteReservationStopRequest) MessageType() string {
	return "AuthorizeRemoteReservationStopRequest"
}

func (r *AuthorizeRemoteReservationStopRequest) Validate() error { return validateStruct(r) }

func (r *AuthorizeRemoteReservationStopRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *AuthorizeRemoteReservationStopRequest) HashCode() uint64 { return hashOf(r) }

func (r *AuthorizeRemoteReservationStopRequest) Equal(other *AuthorizeRemoteReservationStopRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		r.EvseID == other.EvseID &&
		r.SessionID == other.SessionID &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID)
}
