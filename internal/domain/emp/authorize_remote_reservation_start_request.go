package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// AuthorizeRemoteReservationStartRequest 远程预约充电点 (EMP → Hubject)
type AuthorizeRemoteReservationStartRequest struct {
	Request `json:"-"`

	ProviderID          oicp.ProviderID           `json:"ProviderID" validate:"required,oicp_provider_id"`
	EvseID              oicp.EVSEID               `json:"EvseID" validate:"required,oicp_evse_id"`
	Identification      oicp.Identification       `json:"Identification" validate:"required"`
	SessionID           *oicp.SessionID           `json:"SessionID,omitempty" validate:"omitempty,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	PartnerProductID    *oicp.PartnerProductID    `json:"PartnerProductID,omitempty" validate:"omitempty,max=100"`
	// 预约时长，单位分钟
	Duration *int `json:"Duration,omitempty" validate:"omitempty,min=1,max=99"`
}

// NewAuthorizeRemoteReservationStartRequest 创建预约请求
func NewAuthorizeRemoteReservationStartRequest(providerID oicp.ProviderID, evseID oicp.EVSEID, identification oicp.Identification, opts ...Option) *AuthorizeRemoteReservationStartRequest {
	return &AuthorizeRemoteReservationStartRequest{
		Request:        newRequest(applyOptions(opts)),
		ProviderID:     providerID,
		EvseID:         evseID,
		Identification: identification,
	}
}

// ParseAuthorizeRemoteReservationStartRequest 解析预约请求
func ParseAuthorizeRemoteReservationStartRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*AuthorizeRemoteReservationStartRequest, error) {
	r := &AuthorizeRemoteReservationStartRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseAuthorizeRemoteReservationStartRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*AuthorizeRemoteReservationStartRequest, bool) {
	r, err := ParseAuthorizeRemoteReservationStartRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *AuthorizeRemoteReservationStartRequest) MessageType() string {
	return "AuthorizeRemoteReservationStartRequest"
}

func (r *AuthorizeRemoteReservationStartRequest) Validate() error { return validateStruct(r) }

func (r *AuthorizeRemoteReservationStartRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *AuthorizeRemoteReservationStartRequest) HashCode() uint64 { return hashOf(r) }

func (r *AuthorizeRemoteReservationStartRequest) Equal(other *AuthorizeRemoteReservationStartRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		r.EvseID == other.EvseID &&
		r.Identification.Equal(other.Identification) &&
		oicp.EqualPtr(r.SessionID, other.SessionID) &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID) &&
		oicp.EqualPtr(r.PartnerProductID, other.PartnerProductID) &&
		oicp.EqualPtr(r.Duration, other.Duration)
}
