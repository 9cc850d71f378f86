package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// AuthorizationStopResponse 授权停止的决定 (EMP → Hubject)
type AuthorizationStopResponse struct {
	Response `json:"-"`
	Request  *AuthorizeStopRequest `json:"-" validate:"-"`

	SessionID           *oicp.SessionID           `json:"SessionID,omitempty" validate:"omitempty,oicp_session_id"`
	CPOPartnerSessionID *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	ProviderID          *oicp.ProviderID          `json:"ProviderID,omitempty" validate:"omitempty,oicp_provider_id"`
	AuthorizationStatus oicp.AuthorizationStatus  `json:"AuthorizationStatus" validate:"required,oicp_enum"`
	StatusCode          oicp.StatusCode           `json:"StatusCode" validate:"required"`
}

// AuthorizationStopAuthorized 允许停止
func AuthorizationStopAuthorized(request *AuthorizeStopRequest, providerID oicp.ProviderID, opts ...Option) *AuthorizationStopResponse {
	b := NewAuthorizationStopResponseBuilder(request, opts...)
	b.ProviderID = &providerID
	b.AuthorizationStatus = oicp.AuthorizationStatusAuthorized
	b.StatusCode = oicp.NewStatusCode(oicp.StatusCodeSuccess, "")
	return b.response()
}

// AuthorizationStopNotAuthorized 拒绝停止
func AuthorizationStopNotAuthorized(request *AuthorizeStopRequest, providerID *oicp.ProviderID, code oicp.StatusCodes, description string, opts ...Option) *AuthorizationStopResponse {
	b := NewAuthorizationStopResponseBuilder(request, opts...)
	b.ProviderID = providerID
	b.AuthorizationStatus = oicp.AuthorizationStatusNotAuthorized
	b.StatusCode = oicp.NewStatusCode(code, description)
	return b.response()
}

func ParseAuthorizationStopResponse(request *AuthorizeStopRequest, data []byte, opts ...Option) (*AuthorizationStopResponse, error) {
	r := &AuthorizationStopResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseAuthorizationStopResponse(request *AuthorizeStopRequest, data []byte, opts ...Option) (*AuthorizationStopResponse, bool) {
	r, err := ParseAuthorizationStopResponse(request, data, opts...)
	return r, err == nil
}

func (r *AuthorizationStopResponse) IsAuthorized() bool {
	return r.AuthorizationStatus == oicp.AuthorizationStatusAuthorized
}

func (r *AuthorizationStopResponse) MessageType() string { return "AuthorizationStopResponse" }

func (r *AuthorizationStopResponse) Validate() error { return validateStruct(r) }

func (r *AuthorizationStopResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *AuthorizationStopResponse) HashCode() uint64 { return hashOf(r) }

func (r *AuthorizationStopResponse) Equal(other *AuthorizationStopResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return oicp.EqualPtr(r.SessionID, other.SessionID) &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID) &&
		oicp.EqualPtr(r.ProviderID, other.ProviderID) &&
		r.AuthorizationStatus == other.AuthorizationStatus &&
		r.StatusCode.Equal(other.StatusCode)
}

func (r *AuthorizationStopResponse) ToBuilder() *AuthorizationStopResponseBuilder {
	return &AuthorizationStopResponseBuilder{
		Response:            r.Response,
		Request:             r.Request,
		SessionID:           r.SessionID,
		CPOPartnerSessionID: r.CPOPartnerSessionID,
		EMPPartnerSessionID: r.EMPPartnerSessionID,
		ProviderID:          r.ProviderID,
		AuthorizationStatus: r.AuthorizationStatus,
		StatusCode:          r.StatusCode,
	}
}

// AuthorizationStopResponseBuilder 授权停止响应构建器
type AuthorizationStopResponseBuilder struct {
	Response
	Request             *AuthorizeStopRequest
	SessionID           *oicp.SessionID
	CPOPartnerSessionID *oicp.CPOPartnerSessionID
	EMPPartnerSessionID *oicp.EMPPartnerSessionID
	ProviderID          *oicp.ProviderID
	AuthorizationStatus oicp.AuthorizationStatus
	StatusCode          oicp.StatusCode
}

func NewAuthorizationStopResponseBuilder(request *AuthorizeStopRequest, opts ...Option) *AuthorizationStopResponseBuilder {
	b := &AuthorizationStopResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if request != nil {
		sessionID := request.SessionID
		b.SessionID = &sessionID
		b.CPOPartnerSessionID = request.CPOPartnerSessionID
		b.EMPPartnerSessionID = request.EMPPartnerSessionID
	}
	return b
}

func (b *AuthorizationStopResponseBuilder) response() *AuthorizationStopResponse {
	return &AuthorizationStopResponse{
		Response:            b.Response,
		Request:             b.Request,
		SessionID:           b.SessionID,
		CPOPartnerSessionID: b.CPOPartnerSessionID,
		EMPPartnerSessionID: b.EMPPartnerSessionID,
		ProviderID:          b.ProviderID,
		AuthorizationStatus: b.AuthorizationStatus,
		StatusCode:          b.StatusCode,
	}
}

func (b *AuthorizationStopResponseBuilder) Build() (*AuthorizationStopResponse, error) {
	return build(b.response())
}
