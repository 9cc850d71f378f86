package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// AuthorizeRemoteStartRequest 远程启动充电 (EMP → Hubject)
type AuthorizeRemoteStartRequest struct {
	Request `json:"-"`

	ProviderID          oicp.ProviderID           `json:"ProviderID" validate:"required,oicp_provider_id"`
	EvseID              oicp.EVSEID               `json:"EvseID" validate:"required,oicp_evse_id"`
	Identification      oicp.Identification       `json:"Identification" validate:"required"`
	SessionID           *oicp.SessionID           `json:"SessionID,omitempty" validate:"omitempty,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	PartnerProductID    *oicp.PartnerProductID    `json:"PartnerProductID,omitempty" validate:"omitempty,max=100"`
}

// NewAuthorizeRemoteStartRequest 创建远程启动请求
func NewAuthorizeRemoteStartRequest(providerID oicp.ProviderID, evseID oicp.EVSEID, identification oicp.Identification, opts ...Option) *AuthorizeRemoteStartRequest {
	return &AuthorizeRemoteStartRequest{
		Request:        newRequest(applyOptions(opts)),
		ProviderID:     providerID,
		EvseID:         evseID,
		Identification: identification,
	}
}

// ParseAuthorizeRemoteStartRequest 解析远程启动请求。providerID 非空时须与报文一致。
func ParseAuthorizeRemoteStartRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*AuthorizeRemoteStartRequest, error) {
	r := &AuthorizeRemoteStartRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

// TryParseAuthorizeRemoteStartRequest 解析失败时返回false
func TryParseAuthorizeRemoteStartRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*AuthorizeRemoteStartRequest, bool) {
	r, err := ParseAuthorizeRemoteStartRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *AuthorizeRemoteStartRequest) MessageType() string { return "AuthorizeRemoteStartRequest" }

func (r *AuthorizeRemoteStartRequest) Validate() error { return validateStruct(r) }

func (r *AuthorizeRemoteStartRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *AuthorizeRemoteStartRequest) HashCode() uint64 { return hashOf(r) }

// Equal 比较所有报文字段，不包括请求元数据
func (r *AuthorizeRemoteStartRequest) Equal(other *AuthorizeRemoteStartRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		r.EvseID == other.EvseID &&
		r.Identification.Equal(other.Identification) &&
		oicp.EqualPtr(r.SessionID, other.SessionID) &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID) &&
		oicp.EqualPtr(r.PartnerProductID, other.PartnerProductID)
}
