package emp

import (
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// PullEVSEStatusByIdResponse 按EVSE标识拉取状态的响应
type PullEVSEStatusByIdResponse struct {
	Response `json:"-"`
	Request  *PullEVSEStatusByIdRequest `json:"-" validate:"-"`

	EVSEStatusRecords EVSEStatusRecords `json:"EVSEStatusRecords"`
	StatusCode        *oicp.StatusCode  `json:"StatusCode,omitempty"`
}

// ParsePullEVSEStatusByIdResponse 解析响应
func ParsePullEVSEStatusByIdResponse(request *PullEVSEStatusByIdRequest, data []byte, opts ...Option) (*PullEVSEStatusByIdResponse, error) {
	r := &PullEVSEStatusByIdResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEStatusByIdResponse(request *PullEVSEStatusByIdRequest, data []byte, opts ...Option) (*PullEVSEStatusByIdResponse, bool) {
	r, err := ParsePullEVSEStatusByIdResponse(request, data, opts...)
	return r, err == nil
}

type pullEVSEStatusByIdResponseJSON PullEVSEStatusByIdResponse

func (r *PullEVSEStatusByIdResponse) UnmarshalJSON(data []byte) error {
	if err := oicp.RequireFields(data, "PullEVSEStatusByIdResponse", "EVSEStatusRecords"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*pullEVSEStatusByIdResponseJSON)(r))
}

// StatusOf 查找指定EVSE的状态
func (r *PullEVSEStatusByIdResponse) StatusOf(evseID oicp.EVSEID) (oicp.EVSEStatus, bool) {
	for _, record := range r.EVSEStatusRecords.EvseStatusRecord {
		if record.EvseID == evseID {
			return record.EvseStatus, true
		}
	}
	return "", false
}

func (r *PullEVSEStatusByIdResponse) MessageType() string { return "PullEVSEStatusByIdResponse" }

func (r *PullEVSEStatusByIdResponse) Validate() error { return validateStruct(r) }

func (r *PullEVSEStatusByIdResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEStatusByIdResponse) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEStatusByIdResponse) Equal(other *PullEVSEStatusByIdResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.EVSEStatusRecords.Equal(other.EVSEStatusRecords) &&
		oicp.EqualStatusCodePtr(r.StatusCode, other.StatusCode)
}

func (r *PullEVSEStatusByIdResponse) ToBuilder() *PullEVSEStatusByIdResponseBuilder {
	return &PullEVSEStatusByIdResponseBuilder{
		Response:         r.Response,
		Request:          r.Request,
		EvseStatusRecord: append([]oicp.EVSEStatusRecord(nil), r.EVSEStatusRecords.EvseStatusRecord...),
		StatusCode:       r.StatusCode,
	}
}

// PullEVSEStatusByIdResponseBuilder 响应构建器
type PullEVSEStatusByIdResponseBuilder struct {
	Response
	Request          *PullEVSEStatusByIdRequest
	EvseStatusRecord []oicp.EVSEStatusRecord
	StatusCode       *oicp.StatusCode
}

func NewPullEVSEStatusByIdResponseBuilder(request *PullEVSEStatusByIdRequest, opts ...Option) *PullEVSEStatusByIdResponseBuilder {
	return &PullEVSEStatusByIdResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
}

func (b *PullEVSEStatusByIdResponseBuilder) Build() (*PullEVSEStatusByIdResponse, error) {
	records := b.EvseStatusRecord
	if records == nil {
		records = []oicp.EVSEStatusRecord{}
	}
	return build(&PullEVSEStatusByIdResponse{
		Response:          b.Response,
		Request:           b.Request,
		EVSEStatusRecords: EVSEStatusRecords{EvseStatusRecord: records},
		StatusCode:        b.StatusCode,
	})
}
