package emp

import (
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// PullPricingProductDataResponse 分页的计价产品数据
type PullPricingProductDataResponse struct {
	Response `json:"-"`
	Request  *PullPricingProductDataRequest `json:"-" validate:"-"`

	PricingProductData []oicp.PricingProductData `json:"content" validate:"dive"`
	Page
	StatusCode *oicp.StatusCode `json:"StatusCode,omitempty"`
}

func ParsePullPricingProductDataResponse(request *PullPricingProductDataRequest, data []byte, opts ...Option) (*PullPricingProductDataResponse, error) {
	r := &PullPricingProductDataResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullPricingProductDataResponse(request *PullPricingProductDataRequest, data []byte, opts ...Option) (*PullPricingProductDataResponse, bool) {
	r, err := ParsePullPricingProductDataResponse(request, data, opts...)
	return r, err == nil
}

type pullPricingProductDataResponseJSON PullPricingProductDataResponse

func (r *PullPricingProductDataResponse) UnmarshalJSON(data []byte) error {
	if err := oicp.RequireFields(data, "PullPricingProductDataResponse", "content"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*pullPricingProductDataResponseJSON)(r))
}

func (r *PullPricingProductDataResponse) MessageType() string {
	return "PullPricingProductDataResponse"
}

func (r *PullPricingProductDataResponse) Validate() error { return validateStruct(r) }

func (r *PullPricingProductDataResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullPricingProductDataResponse) HashCode() uint64 { return hashOf(r) }

func (r *PullPricingProductDataResponse) Equal(other *PullPricingProductDataResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return oicp.EqualRecords(r.PricingProductData, other.PricingProductData) &&
		r.Page == other.Page &&
		oicp.EqualStatusCodePtr(r.StatusCode, other.StatusCode)
}

func (r *PullPricingProductDataResponse) ToBuilder() *PullPricingProductDataResponseBuilder {
	return &PullPricingProductDataResponseBuilder{
		Response:           r.Response,
		Request:            r.Request,
		PricingProductData: append([]oicp.PricingProductData(nil), r.PricingProductData...),
		Page:               r.Page,
		StatusCode:         r.StatusCode,
	}
}

type PullPricingProductDataResponseBuilder struct {
	Response
	Request            *PullPricingProductDataRequest
	PricingProductData []oicp.PricingProductData
	Page               Page
	StatusCode         *oicp.StatusCode
}

func NewPullPricingProductDataResponseBuilder(request *PullPricingProductDataRequest, opts ...Option) *PullPricingProductDataResponseBuilder {
	return &PullPricingProductDataResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
}

func (b *PullPricingProductDataResponseBuilder) Build() (*PullPricingProductDataResponse, error) {
	data := b.PricingProductData
	if data == nil {
		data = []oicp.PricingProductData{}
	}
	return build(&PullPricingProductDataResponse{
		Response:           b.Response,
		Request:            b.Request,
		PricingProductData: data,
		Page:               singlePageIfZero(b.Page, len(data)),
		StatusCode:         b.StatusCode,
	})
}
