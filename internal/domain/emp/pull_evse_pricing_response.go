package emp

import (
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// PullEVSEPricingResponse 充电点计价映射
type PullEVSEPricingResponse struct {
	Response `json:"-"`
	Request  *PullEVSEPricingRequest `json:"-" validate:"-"`

	EVSEPricing []oicp.EVSEPricing `json:"EVSEPricing" validate:"dive"`
	StatusCode  *oicp.StatusCode   `json:"StatusCode,omitempty"`
}

func ParsePullEVSEPricingResponse(request *PullEVSEPricingRequest, data []byte, opts ...Option) (*PullEVSEPricingResponse, error) {
	r := &PullEVSEPricingResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEPricingResponse(request *PullEVSEPricingRequest, data []byte, opts ...Option) (*PullEVSEPricingResponse, bool) {
	r, err := ParsePullEVSEPricingResponse(request, data, opts...)
	return r, err == nil
}

type pullEVSEPricingResponseJSON PullEVSEPricingResponse

func (r *PullEVSEPricingResponse) UnmarshalJSON(data []byte) error {
	if err := oicp.RequireFields(data, "PullEVSEPricingResponse", "EVSEPricing"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*pullEVSEPricingResponseJSON)(r))
}

// ProductsFor 返回某个充电点可用的产品ID
func (r *PullEVSEPricingResponse) ProductsFor(evseID oicp.EVSEID) []oicp.PartnerProductID {
	for _, p := range r.EVSEPricing {
		if p.EvseID == evseID {
			return p.EvseIDProductList
		}
	}
	return nil
}

func (r *PullEVSEPricingResponse) MessageType() string { return "PullEVSEPricingResponse" }

func (r *PullEVSEPricingResponse) Validate() error { return validateStruct(r) }

func (r *PullEVSEPricingResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEPricingResponse) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEPricingResponse) Equal(other *PullEVSEPricingResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return oicp.EqualRecords(r.EVSEPricing, other.EVSEPricing) &&
		oicp.EqualStatusCodePtr(r.StatusCode, other.StatusCode)
}

func (r *PullEVSEPricingResponse) ToBuilder() *PullEVSEPricingResponseBuilder {
	return &PullEVSEPricingResponseBuilder{
		Response:    r.Response,
		Request:     r.Request,
		EVSEPricing: append([]oicp.EVSEPricing(nil), r.EVSEPricing...),
		StatusCode:  r.StatusCode,
	}
}

type PullEVSEPricingResponseBuilder struct {
	Response
	Request     *PullEVSEPricingRequest
	EVSEPricing []oicp.EVSEPricing
	StatusCode  *oicp.StatusCode
}

func NewPullEVSEPricingResponseBuilder(request *PullEVSEPricingRequest, opts ...Option) *PullEVSEPricingResponseBuilder {
	return &PullEVSEPricingResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
}

func (b *PullEVSEPricingResponseBuilder) Build() (*PullEVSEPricingResponse, error) {
	pricing := b.EVSEPricing
	if pricing == nil {
		pricing = []oicp.EVSEPricing{}
	}
	return build(&PullEVSEPricingResponse{
		Response:    b.Response,
		Request:     b.Request,
		EVSEPricing: pricing,
		StatusCode:  b.StatusCode,
	})
}
