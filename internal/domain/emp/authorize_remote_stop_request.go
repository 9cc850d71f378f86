package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// AuthorizeRemoteStopRequest 远程停止充电 (EMP → Hubject)
type AuthorizeRemoteStopRequest struct {
	Request `json:"-"`

	ProviderID          oicp.ProviderID           `json:"ProviderID" validate:"required,oicp_provider_id"`
	EvseID              oicp.EVSEID               `json:"EvseID" validate:"required,oicp_evse_id"`
	SessionID           oicp.SessionID            `json:"SessionID" validate:"required,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
}

// NewAuthorizeRemoteStopRequest 创建远程停止请求
func NewAuthorizeRemoteStopRequest(providerID oicp.ProviderID, evseID oicp.EVSEID, sessionID oicp.SessionID, opts ...Option) *AuthorizeRemoteStopRequest {
	return &AuthorizeRemoteStopRequest{
		Request:    newRequest(applyOptions(opts)),
		ProviderID: providerID,
		EvseID:     evseID,
		SessionID:  sessionID,
	}
}

// ParseAuthorizeRemoteStopRequest 解析远程停止请求
func ParseAuthorizeRemoteStopRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*AuthorizeRemoteStopRequest, error) {
	r := &AuthorizeRemoteStopRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseAuthorizeRemoteStopRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*AuthorizeRemoteStopRequest, bool) {
	r, err := ParseAuthorizeRemoteStopRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *AuthorizeRemoteStopRequest) MessageType() string { return "AuthorizeRemoteStopRequest" }

func (r *AuthorizeRemoteStopRequest) Validate() error { return validateStruct(r) }

func (r *AuthorizeRemoteStopRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *AuthorizeRemoteStopRequest) HashCode() uint64 { return hashOf(r) }

func (r *AuthorizeRemoteStopRequest) Equal(other *AuthorizeRemoteStopRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		r.EvseID == other.EvseID &&
		r.SessionID == other.SessionID &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID)
}
