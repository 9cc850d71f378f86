package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// PushAuthenticationDataRequest 向Hubject推送离线授权数据
type PushAuthenticationDataRequest struct {
	Request `json:"-"`

	ActionType                 oicp.ActionType                 `json:"ActionType" validate:"required,oicp_enum"`
	ProviderAuthenticationData oicp.ProviderAuthenticationData `json:"ProviderAuthenticationData" validate:"required"`
}

// NewPushAuthenticationDataRequest 创建授权数据推送请求
func NewPushAuthenticationDataRequest(action oicp.ActionType, data oicp.ProviderAuthenticationData, opts ...Option) *PushAuthenticationDataRequest {
	return &PushAuthenticationDataRequest{
		Request:                    newRequest(applyOptions(opts)),
		ActionType:                 action,
		ProviderAuthenticationData: data,
	}
}

// ParsePushAuthenticationDataRequest 解析授权数据推送请求，providerID 来自URL
func ParsePushAuthenticationDataRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PushAuthenticationDataRequest, error) {
	r := &PushAuthenticationDataRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderAuthenticationData.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePushAuthenticationDataRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PushAuthenticationDataRequest, bool) {
	r, err := ParsePushAuthenticationDataRequest(data, providerID, opts...)
	return r, err == nil
}

// ProviderID 报文中的服务商标识
func (r *PushAuthenticationDataRequest) ProviderID() oicp.ProviderID {
	return r.ProviderAuthenticationData.ProviderID
}

func (r *PushAuthenticationDataRequest) MessageType() string { return "PushAuthenticationDataRequest" }

func (r *PushAuthenticationDataRequest) Validate() error { return validateStruct(r) }

func (r *PushAuthenticationDataRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PushAuthenticationDataRequest) HashCode() uint64 { return hashOf(r) }

func (r *PushAuthenticationDataRequest) Equal(other *PushAuthenticationDataRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ActionType == other.ActionType &&
		r.ProviderAuthenticationData.Equal(other.ProviderAuthenticationData)
}
