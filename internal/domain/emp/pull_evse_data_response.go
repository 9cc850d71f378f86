package emp

import (
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// PullEVSEDataResponse 分页的充电点静态数据
type PullEVSEDataResponse struct {
	Response `json:"-"`
	Request  *PullEVSEDataRequest `json:"-" validate:"-"`

	EVSEDataRecords []oicp.EVSEDataRecord `json:"content" validate:"dive"`
	Page
	StatusCode *oicp.StatusCode `json:"StatusCode,omitempty"`
}

// ParsePullEVSEDataResponse 解析响应
func ParsePullEVSEDataResponse(request *PullEVSEDataRequest, data []byte, opts ...Option) (*PullEVSEDataResponse, error) {
	r := &PullEVSEDataResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEDataResponse(request *PullEVSEDataRequest, data []byte, opts ...Option) (*PullEVSEDataResponse, bool) {
	r, err := ParsePullEVSEDataResponse(request, data, opts...)
	return r, err == nil
}

type pullEVSEDataResponseJSON PullEVSEDataResponse

// UnmarshalJSON content 为必填字段
func (r *PullEVSEDataResponse) UnmarshalJSON(data []byte) error {
	if err := oicp.RequireFields(data, "PullEVSEDataResponse", "content"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*pullEVSEDataResponseJSON)(r))
}

// GroupByOperator 按运营商分组
func (r *PullEVSEDataResponse) GroupByOperator() []oicp.OperatorEVSEData {
	return oicp.GroupByOperator(r.EVSEDataRecords)
}

func (r *PullEVSEDataResponse) MessageType() string { return "PullEVSEDataResponse" }

func (r *PullEVSEDataResponse) Validate() error { return validateStruct(r) }

func (r *PullEVSEDataResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEDataResponse) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEDataResponse) Equal(other *PullEVSEDataResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return oicp.EqualRecords(r.EVSEDataRecords, other.EVSEDataRecords) &&
		r.Page == other.Page &&
		oicp.EqualStatusCodePtr(r.StatusCode, other.StatusCode)
}

func (r *PullEVSEDataResponse) ToBuilder() *PullEVSEDataResponseBuilder {
	return &PullEVSEDataResponseBuilder{
		Response:        r.Response,
		Request:         r.Request,
		EVSEDataRecords: append([]oicp.EVSEDataRecord(nil), r.EVSEDataRecords...),
		Page:            r.Page,
		StatusCode:      r.StatusCode,
	}
}

// PullEVSEDataResponseBuilder 响应构建器，Page 为零值时按记录数生成单页分页信息
type PullEVSEDataResponseBuilder struct {
	Response
	Request         *PullEVSEDataRequest
	EVSEDataRecords []oicp.EVSEDataRecord
	Page            Page
	StatusCode      *oicp.StatusCode
}

func NewPullEVSEDataResponseBuilder(request *PullEVSEDataRequest, opts ...Option) *PullEVSEDataResponseBuilder {
	return &PullEVSEDataResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
}

func (b *PullEVSEDataResponseBuilder) Build() (*PullEVSEDataResponse, error) {
	records := b.EVSEDataRecords
	if records == nil {
		records = []oicp.EVSEDataRecord{}
	}
	return build(&PullEVSEDataResponse{
		Response:        b.Response,
		Request:         b.Request,
		EVSEDataRecords: records,
		Page:            singlePageIfZero(b.Page, len(records)),
		StatusCode:      b.StatusCode,
	})
}
