package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// AuthorizeStopRequest 运营商请求授权停止充电 (Hubject → EMP)
type AuthorizeStopRequest struct {
	Request `json:"-"`

	OperatorID          oicp.OperatorID           `json:"OperatorID" validate:"required,oicp_operator_id"`
	SessionID           oicp.SessionID            `json:"SessionID" validate:"required,oicp_session_id"`
	Identification      oicp.Identification       `json:"Identification" validate:"required"`
	EvseID              *oicp.EVSEID              `json:"EvseID,omitempty" validate:"omitempty,oicp_evse_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
}

func NewAuthorizeStopRequest(operatorID oicp.OperatorID, sessionID oicp.SessionID, identification oicp.Identification, opts ...Option) *AuthorizeStopRequest {
	return &AuthorizeStopRequest{
		Request:        newRequest(applyOptions(opts)),
		OperatorID:     operatorID,
		SessionID:      sessionID,
		Identification: identification,
	}
}

// ParseAuthorizeStopRequest 解析授权停止请求，operatorID 来自URL
func ParseAuthorizeStopRequest(data []byte, operatorID oicp.OperatorID, opts ...Option) (*AuthorizeStopRequest, error) {
	r := &AuthorizeStopRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchOperator(operatorID, &r.OperatorID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseAuthorizeStopRequest(data []byte, operatorID oicp.OperatorID, opts ...Option) (*AuthorizeStopRequest, bool) {
	r, err := ParseAuthorizeStopRequest(data, operatorID, opts...)
	return r, err == nil
}

func (r *AuthorizeStopRequest) MessageType() string { return "AuthorizeStopRequest" }

func (r *AuthorizeStopRequest) Validate() error { return validateStruct(r) }

func (r *AuthorizeStopRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *AuthorizeStopRequest) HashCode() uint64 { return hashOf(r) }

func (r *AuthorizeStopRequest) Equal(other *AuthorizeStopRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.OperatorID == other.OperatorID &&
		r.SessionID == other.SessionID &&
		r.Identification.Equal(other.Identification) &&
		oicp.EqualPtr(r.EvseID, other.EvseID) &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID)
}
