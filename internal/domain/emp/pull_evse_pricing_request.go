package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// PullEVSEPricingRequest 拉取充电点与计价产品的映射
type PullEVSEPricingRequest struct {
	Request `json:"-"`

	ProviderID  oicp.ProviderID   `json:"ProviderID" validate:"required,oicp_provider_id"`
	OperatorIDs []oicp.OperatorID `json:"OperatorIDs" validate:"required,min=1,max=100,dive,oicp_operator_id"`
	LastCall    *oicp.DateTime    `json:"LastCall,omitempty"`
}

func NewPullEVSEPricingRequest(providerID oicp.ProviderID, operatorIDs []oicp.OperatorID, opts ...Option) *PullEVSEPricingRequest {
	return &PullEVSEPricingRequest{
		Request:     newRequest(applyOptions(opts)),
		ProviderID:  providerID,
		OperatorIDs: operatorIDs,
	}
}

func ParsePullEVSEPricingRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEPricingRequest, error) {
	r := &PullEVSEPricingRequest{Request: newRequest(applyOptions(opts))}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEPricingRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEPricingRequest, bool) {
	r, err := ParsePullEVSEPricingRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *PullEVSEPricingRequest) MessageType() string { return "PullEVSEPricingRequest" }

func (r *PullEVSEPricingRequest) Validate() error { return validateStruct(r) }

func (r *PullEVSEPricingRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEPricingRequest) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEPricingRequest) Equal(other *PullEVSEPricingRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		oicp.EqualSlice(r.OperatorIDs, other.OperatorIDs) &&
		oicp.EqualRecordPtr(r.LastCall, other.LastCall)
}
