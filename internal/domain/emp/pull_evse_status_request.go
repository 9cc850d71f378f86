package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// PullEVSEStatusRequest 按地理范围或状态拉取充电点状态
type PullEVSEStatusRequest struct {
	Request `json:"-"`

	ProviderID   oicp.ProviderID    `json:"ProviderID" validate:"required,oicp_provider_id"`
	SearchCenter *oicp.SearchCenter `json:"SearchCenter,omitempty"`
	EvseStatus   *oicp.EVSEStatus   `json:"EvseStatus,omitempty" validate:"omitempty,oicp_enum"`
}

// NewPullEVSEStatusRequest 创建状态拉取请求
func NewPullEVSEStatusRequest(providerID oicp.ProviderID, opts ...Option) *PullEVSEStatusRequest {
	return &PullEVSEStatusRequest{
		Request:    newRequest(applyOptions(opts)),
		ProviderID: providerID,
	}
}

// ParsePullEVSEStatusRequest 解析状态拉取请求
func ParsePullEVSEStatusRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEStatusRequest, error) {
	r := &PullEVSEStatusRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEStatusRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEStatusRequest, bool) {
	r, err := ParsePullEVSEStatusRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *PullEVSEStatusRequest) MessageType() string { return "PullEVSEStatusRequest" }

func (r *PullEVSEStatusRequest) Validate() error { return validateStruct(r) }

func (r *PullEVSEStatusRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEStatusRequest) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEStatusRequest) Equal(other *PullEVSEStatusRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		oicp.EqualRecordPtr(r.SearchCenter, other.SearchCenter) &&
		oicp.EqualPtr(r.EvseStatus, other.EvseStatus)
}
