package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// AuthorizeStartRequest 运营商请求授权开始充电 (Hubject → EMP)
type AuthorizeStartRequest struct {
	Request `json:"-"`

	OperatorID          oicp.OperatorID           `json:"OperatorID" validate:"required,oicp_operator_id"`
	Identification      oicp.Identification       `json:"Identification" validate:"required"`
	EvseID              *oicp.EVSEID              `json:"EvseID,omitempty" validate:"omitempty,oicp_evse_id"`
	PartnerProductID    *oicp.PartnerProductID    `json:"PartnerProductID,omitempty" validate:"omitempty,max=100"`
	SessionID           *oicp.SessionID           `json:"SessionID,omitempty" validate:"omitempty,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
}

// NewAuthorizeStartRequest 创建授权开始请求
func NewAuthorizeStartRequest(operatorID oicp.OperatorID, identification oicp.Identification, opts ...Option) *AuthorizeStartRequest {
	return &AuthorizeStartRequest{
		Request:        newRequest(applyOptions(opts)),
		OperatorID:     operatorID,
		Identification: identification,
	}
}

// ParseAuthorizeStartRequest 解析授权开始请求，operatorID 来自URL
func ParseAuthorizeStartRequest(data []byte, operatorID oicp.OperatorID, opts ...Option) (*AuthorizeStartRequest, error) {
	r := &AuthorizeStartRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchOperator(operatorID, &r.OperatorID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseAuthorizeStartRequest(data []byte, operatorID oicp.OperatorID, opts ...Option) (*AuthorizeStartRequest, bool) {
	r, err := ParseAuthorizeStartRequest(data, operatorID, opts...)
	return r, err == nil
}

func (r *AuthorizeStartRequest) MessageType() string { return "AuthorizeStartRequest" }

func (r *AuthorizeStartRequest) Validate() error { return validateStruct(r) }

func (r *AuthorizeStartRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *AuthorizeStartRequest) HashCode() uint64 { return hashOf(r) }

func (r *AuthorizeStartRequest) Equal(other *AuthorizeStartRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.OperatorID == other.OperatorID &&
		r.Identification.Equal(other.Identification) &&
		oicp.EqualPtr(r.EvseID, other.EvseID) &&
		oicp.EqualPtr(r.PartnerProductID, other.PartnerProductID) &&
		oicp.EqualPtr(r.SessionID, other.SessionID) &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID)
}
