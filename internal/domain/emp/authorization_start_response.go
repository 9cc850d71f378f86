package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// 授权响应中最多携带的停止授权标识数量
const MaxAuthorizationStopIdentifications = 20

// AuthorizationStartResponse 授权开始的决定 (EMP → Hubject)
type AuthorizationStartResponse struct {
	Response `json:"-"`
	Request  *AuthorizeStartRequest `json:"-" validate:"-"`

	SessionID                        *oicp.SessionID           `json:"SessionID,omitempty" validate:"omitempty,oicp_session_id"`
	CPOPartnerSessionID              *oicp.CPOPartnerSessionID `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID              *oicp.EMPPartnerSessionID `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	ProviderID                       *oicp.ProviderID          `json:"ProviderID,omitempty" validate:"omitempty,oicp_provider_id"`
	AuthorizationStatus              oicp.AuthorizationStatus  `json:"AuthorizationStatus" validate:"required,oicp_enum"`
	StatusCode                       oicp.StatusCode           `json:"StatusCode" validate:"required"`
	AuthorizationStopIdentifications []oicp.Identification     `json:"AuthorizationStopIdentifications,omitempty" validate:"omitempty,max=20,dive"`
}

// AuthorizationStartAuthorized 授权通过，会话标识沿用请求中的值
func AuthorizationStartAuthorized(request *AuthorizeStartRequest, providerID oicp.ProviderID, empSessionID *oicp.EMPPartnerSessionID, stopIdentifications []oicp.Identification, opts ...Option) *AuthorizationStartResponse {
	b := NewAuthorizationStartResponseBuilder(request, opts...)
	b.ProviderID = &providerID
	b.AuthorizationStatus = oicp.AuthorizationStatusAuthorized
	b.StatusCode = oicp.NewStatusCode(oicp.StatusCodeSuccess, "")
	b.EMPPartnerSessionID = empSessionID
	b.AuthorizationStopIdentifications = stopIdentifications
	return b.response()
}

// AuthorizationStartNotAuthorized 拒绝授权
func AuthorizationStartNotAuthorized(request *AuthorizeStartRequest, providerID *oicp.ProviderID, code oicp.StatusCodes, description string, opts ...Option) *AuthorizationStartResponse {
	b := NewAuthorizationStartResponseBuilder(request, opts...)
	b.ProviderID = providerID
	b.AuthorizationStatus = oicp.AuthorizationStatusNotAuthorized
	b.StatusCode = oicp.NewStatusCode(code, description)
	return b.response()
}

// ParseAuthorizationStartResponse 解析授权开始响应
func ParseAuthorizationStartResponse(request *AuthorizeStartRequest, data []byte, opts ...Option) (*AuthorizationStartResponse, error) {
	r := &AuthorizationStartResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseAuthorizationStartResponse(request *AuthorizeStartRequest, data []byte, opts ...Option) (*AuthorizationStartResponse, bool) {
	r, err := ParseAuthorizationStartResponse(request, data, opts...)
	return r, err == nil
}

// IsAuthorized 是否授权通过
func (r *AuthorizationStartResponse) IsAuthorized() bool {
	return r.AuthorizationStatus == oicp.AuthorizationStatusAuthorized
}

func (r *AuthorizationStartResponse) MessageType() string { return "AuthorizationStartResponse" }

func (r *AuthorizationStartResponse) Validate() error { return validateStruct(r) }

func (r *AuthorizationStartResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *AuthorizationStartResponse) HashCode() uint64 { return hashOf(r) }

func (r *AuthorizationStartResponse) Equal(other *AuthorizationStartResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return oicp.EqualPtr(r.SessionID, other.SessionID) &&
		oicp.EqualPtr(r.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		oicp.EqualPtr(r.EMPPartnerSessionID, other.EMPPartnerSessionID) &&
		oicp.EqualPtr(r.ProviderID, other.ProviderID) &&
		r.AuthorizationStatus == other.AuthorizationStatus &&
		r.StatusCode.Equal(other.StatusCode) &&
		oicp.EqualRecords(r.AuthorizationStopIdentifications, other.AuthorizationStopIdentifications)
}

func (r *AuthorizationStartResponse) ToBuilder() *AuthorizationStartResponseBuilder {
	return &AuthorizationStartResponseBuilder{
		Response:                         r.Response,
		Request:                          r.Request,
		SessionID:                        r.SessionID,
		CPOPartnerSessionID:              r.CPOPartnerSessionID,
		EMPPartnerSessionID:              r.EMPPartnerSessionID,
		ProviderID:                       r.ProviderID,
		AuthorizationStatus:              r.AuthorizationStatus,
		StatusCode:                       r.StatusCode,
		AuthorizationStopIdentifications: append([]oicp.Identification(nil), r.AuthorizationStopIdentifications...),
	}
}

// AuthorizationStartResponseBuilder 授权开始响应构建器
type AuthorizationStartResponseBuilder struct {
	Response
	Request                          *AuthorizeStartRequest
	SessionID                        *oicp.SessionID
	CPOPartnerSessionID              *oicp.CPOPartnerSessionID
	EMPPartnerSessionID              *oicp.EMPPartnerSessionID
	ProviderID                       *oicp.ProviderID
	AuthorizationStatus              oicp.AuthorizationStatus
	StatusCode                       oicp.StatusCode
	AuthorizationStopIdentifications []oicp.Identification
}

// NewAuthorizationStartResponseBuilder 创建构建器，会话标识默认取自请求
func NewAuthorizationStartResponseBuilder(request *AuthorizeStartRequest, opts ...Option) *AuthorizationStartResponseBuilder {
	b := &AuthorizationStartResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if request != nil {
		b.SessionID = request.SessionID
		b.CPOPartnerSessionID = request.CPOPartnerSessionID
		b.EMPPartnerSessionID = request.EMPPartnerSessionID
	}
	return b
}

func (b *AuthorizationStartResponseBuilder) response() *AuthorizationStartResponse {
	return &AuthorizationStartResponse{
		Response:                         b.Response,
		Request:                          b.Request,
		SessionID:                        b.SessionID,
		CPOPartnerSessionID:              b.CPOPartnerSessionID,
		EMPPartnerSessionID:              b.EMPPartnerSessionID,
		ProviderID:                       b.ProviderID,
		AuthorizationStatus:              b.AuthorizationStatus,
		StatusCode:                       b.StatusCode,
		AuthorizationStopIdentifications: b.AuthorizationStopIdentifications,
	}
}

// Build 校验必填字段并生成响应
func (b *AuthorizationStartResponseBuilder) Build() (*AuthorizationStartResponse, error) {
	return build(b.response())
}
