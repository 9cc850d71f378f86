package emp

import (
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// GetChargeDetailRecordsResponse 分页的充电详单
type GetChargeDetailRecordsResponse struct {
	Response `json:"-"`
	Request  *GetChargeDetailRecordsRequest `json:"-" validate:"-"`

	ChargeDetailRecords []oicp.ChargeDetailRecord `json:"content" validate:"dive"`
	Page
	StatusCode *oicp.StatusCode `json:"StatusCode,omitempty"`
}

func ParseGetChargeDetailRecordsResponse(request *GetChargeDetailRecordsRequest, data []byte, opts ...Option) (*GetChargeDetailRecordsResponse, error) {
	r := &GetChargeDetailRecordsResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseGetChargeDetailRecordsResponse(request *GetChargeDetailRecordsRequest, data []byte, opts ...Option) (*GetChargeDetailRecordsResponse, bool) {
	r, err := ParseGetChargeDetailRecordsResponse(request, data, opts...)
	return r, err == nil
}

type getChargeDetailRecordsResponseJSON GetChargeDetailRecordsResponse

func (r *GetChargeDetailRecordsResponse) UnmarshalJSON(data []byte) error {
	if err := oicp.RequireFields(data, "GetChargeDetailRecordsResponse", "content"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*getChargeDetailRecordsResponseJSON)(r))
}

// TotalEnergy 本页详单的总电量 (kWh)
func (r *GetChargeDetailRecordsResponse) TotalEnergy() float64 {
	var total float64
	for _, cdr := range r.ChargeDetailRecords {
		total += cdr.ConsumedEnergy
	}
	return total
}

func (r *GetChargeDetailRecordsResponse) MessageType() string {
	return "GetChargeDetailRecordsResponse"
}

func (r *GetChargeDetailRecordsResponse) Validate() error { return validateStruct(r) }

func (r *GetChargeDetailRecordsResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *GetChargeDetailRecordsResponse) HashCode() uint64 { return hashOf(r) }

func (r *GetChargeDetailRecordsResponse) Equal(other *GetChargeDetailRecordsResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return oicp.EqualRecords(r.ChargeDetailRecords, other.ChargeDetailRecords) &&
		r.Page == other.Page &&
		oicp.EqualStatusCodePtr(r.StatusCode, other.StatusCode)
}

func (r *GetChargeDetailRecordsResponse) ToBuilder() *GetChargeDetailRecordsResponseBuilder {
	return &GetChargeDetailRecordsResponseBuilder{
		Response:            r.Response,
		Request:             r.Request,
		ChargeDetailRecords: append([]oicp.ChargeDetailRecord(nil), r.ChargeDetailRecords...),
		Page:                r.Page,
		StatusCode:          r.StatusCode,
	}
}

type GetChargeDetailRecordsResponseBuilder struct {
	Response
	Request             *GetChargeDetailRecordsRequest
	ChargeDetailRecords []oicp.ChargeDetailRecord
	Page                Page
	StatusCode          *oicp.StatusCode
}

func NewGetChargeDetailRecordsResponseBuilder(request *GetChargeDetailRecordsRequest, opts ...Option) *GetChargeDetailRecordsResponseBuilder {
	return &GetChargeDetailRecordsResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
}

func (b *GetChargeDetailRecordsResponseBuilder) Build() (*GetChargeDetailRecordsResponse, error) {
	records := b.ChargeDetailRecords
	if records == nil {
		records = []oicp.ChargeDetailRecord{}
	}
	return build(&GetChargeDetailRecordsResponse{
		Response:            b.Response,
		Request:             b.Request,
		ChargeDetailRecords: records,
		Page:                singlePageIfZero(b.Page, len(records)),
		StatusCode:          b.StatusCode,
	})
}
