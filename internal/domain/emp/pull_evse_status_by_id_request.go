package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// 单次按ID查询的最大数量
const MaxEVSEStatusIDs = 100

// PullEVSEStatusByIdRequest 按EVSE标识拉取状态
type PullEVSEStatusByIdRequest struct {
	Request `json:"-"`

	ProviderID oicp.ProviderID `json:"ProviderID" validate:"required,oicp_provider_id"`
	EvseIDs    []oicp.EVSEID   `json:"EvseID" validate:"required,min=1,max=100,dive,oicp_evse_id"`
}

// NewPullEVSEStatusByIdRequest 创建请求
func NewPullEVSEStatusByIdRequest(providerID oicp.ProviderID, evseIDs []oicp.EVSEID, opts ...Option) *PullEVSEStatusByIdRequest {
	return &PullEVSEStatusByIdRequest{
		Request:    newRequest(applyOptions(opts)),
		ProviderID: providerID,
		EvseIDs:    evseIDs,
	}
}

// ParsePullEVSEStatusByIdRequest 解析请求
func ParsePullEVSEStatusByIdRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEStatusByIdRequest, error) {
	r := &PullEVSEStatusByIdRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEStatusByIdRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEStatusByIdRequest, bool) {
	r, err := ParsePullEVSEStatusByIdRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *PullEVSEStatusByIdRequest) MessageType() string { return "PullEVSEStatusByIdRequest" }

func (r *PullEVSEStatusByIdRequest) Validate() error { return validateStruct(r) }

func (r *PullEVSEStatusByIdRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEStatusByIdRequest) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEStatusByIdRequest) Equal(other *PullEVSEStatusByIdRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		oicp.EqualSlice(r.EvseIDs, other.EvseIDs)
}

// ChunkEVSEIDs 将EVSE标识按单次请求上限分组
func ChunkEVSEIDs(ids []oicp.EVSEID) [][]oicp.EVSEID {
	var chunks [][]oicp.EVSEID
	for len(ids) > MaxEVSEStatusIDs {
		chunks = append(chunks, ids[:MaxEVSEStatusIDs:MaxEVSEStatusIDs])
		ids = ids[MaxEVSEStatusIDs:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}
