package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// PullPricingProductDataRequest 分页拉取运营商的计价产品
type PullPricingProductDataRequest struct {
	Request      `json:"-"`
	PagedRequest `json:"-"`

	ProviderID  oicp.ProviderID   `json:"ProviderID" validate:"required,oicp_provider_id"`
	OperatorIDs []oicp.OperatorID `json:"OperatorIDs" validate:"required,min=1,max=100,dive,oicp_operator_id"`
	LastCall    *oicp.DateTime    `json:"LastCall,omitempty"`
}

func NewPullPricingProductDataRequest(providerID oicp.ProviderID, operatorIDs []oicp.OperatorID, opts ...Option) *PullPricingProductDataRequest {
	o := applyOptions(opts)
	return &PullPricingProductDataRequest{
		Request:      newRequest(o),
		PagedRequest: newPagedRequest(o),
		ProviderID:   providerID,
		OperatorIDs:  operatorIDs,
	}
}

func ParsePullPricingProductDataRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullPricingProductDataRequest, error) {
	o := applyOptions(opts)
	r := &PullPricingProductDataRequest{Request: newRequest(o), PagedRequest: newPagedRequest(o)}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullPricingProductDataRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullPricingProductDataRequest, bool) {
	r, err := ParsePullPricingProductDataRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *PullPricingProductDataRequest) WithPagedRequest(p PagedRequest) *PullPricingProductDataRequest {
	next := *r
	next.PagedRequest = p
	return &next
}

func (r *PullPricingProductDataRequest) MessageType() string { return "PullPricingProductDataRequest" }

func (r *PullPricingProductDataRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	return r.PagedRequest.validate()
}

func (r *PullPricingProductDataRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullPricingProductDataRequest) HashCode() uint64 { return hashOf(r) }

func (r *PullPricingProductDataRequest) Equal(other *PullPricingProductDataRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		oicp.EqualSlice(r.OperatorIDs, other.OperatorIDs) &&
		oicp.EqualRecordPtr(r.LastCall, other.LastCall)
}
