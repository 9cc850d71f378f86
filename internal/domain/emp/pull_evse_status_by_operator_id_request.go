package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// PullEVSEStatusByOperatorIdRequest 按运营商拉取状态
type PullEVSEStatusByOperatorIdRequest struct {
	Request `json:"-"`

	ProviderID  oicp.ProviderID   `json:"ProviderID" validate:"required,oicp_provider_id"`
	OperatorIDs []oicp.OperatorID `json:"OperatorID" validate:"required,min=1,max=100,dive,oicp_operator_id"`
}

func NewPullEVSEStatusByOperatorIdRequest(providerID oicp.ProviderID, operatorIDs []oicp.OperatorID, opts ...Option) *PullEVSEStatusByOperatorIdRequest {
	return &PullEVSEStatusByOperatorIdRequest{
		Request:     newRequest(applyOptions(opts)),
		ProviderID:  providerID,
		OperatorIDs: operatorIDs,
	}
}

func ParsePullEVSEStatusByOperatorIdRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEStatusByOperatorIdRequest, error) {
	r := &PullEVSEStatusByOperatorIdRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEStatusByOperatorIdRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEStatusByOperatorIdRequest, bool) {
	r, err := ParsePullEVSEStatusByOperatorIdRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *PullEVSEStatusByOperatorIdRequest) MessageType() string {
	return "PullEVSEStatusByOperatorIdRequest"
}

func (r *PullEVSEStatusByOperatorIdRequest) Validate() error { return validateStruct(r) }

func (r *PullEVSEStatusByOperatorIdRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEStatusByOperatorIdRequest) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEStatusByOperatorIdRequest) Equal(other *PullEVSEStatusByOperatorIdRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		oicp.EqualSlice(r.OperatorIDs, other.OperatorIDs)
}
