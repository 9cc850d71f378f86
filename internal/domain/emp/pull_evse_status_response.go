package emp

import (
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// PullEVSEStatusResponse 状态拉取响应
type PullEVSEStatusResponse struct {
	Response `json:"-"`
	Request  *PullEVSEStatusRequest `json:"-" validate:"-"`

	EVSEStatuses EVSEStatuses     `json:"EvseStatuses"`
	StatusCode   *oicp.StatusCode `json:"StatusCode,omitempty"`
}

// ParsePullEVSEStatusResponse 解析状态拉取响应
func ParsePullEVSEStatusResponse(request *PullEVSEStatusRequest, data []byte, opts ...Option) (*PullEVSEStatusResponse, error) {
	r := &PullEVSEStatusResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEStatusResponse(request *PullEVSEStatusRequest, data []byte, opts ...Option) (*PullEVSEStatusResponse, bool) {
	r, err := ParsePullEVSEStatusResponse(request, data, opts...)
	return r, err == nil
}

type pullEVSEStatusResponseJSON PullEVSEStatusResponse

// UnmarshalJSON EvseStatuses 为必填对象
func (r *PullEVSEStatusResponse) UnmarshalJSON(data []byte) error {
	if err := oicp.RequireFields(data, "PullEVSEStatusResponse", "EvseStatuses"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*pullEVSEStatusResponseJSON)(r))
}

func (r *PullEVSEStatusResponse) MessageType() string { return "PullEVSEStatusResponse" }

func (r *PullEVSEStatusResponse) Validate() error { return validateStruct(r) }

func (r *PullEVSEStatusResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEStatusResponse) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEStatusResponse) Equal(other *PullEVSEStatusResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.EVSEStatuses.Equal(other.EVSEStatuses) &&
		oicp.EqualStatusCodePtr(r.StatusCode, other.StatusCode)
}

// ToBuilder 转换为构建器
func (r *PullEVSEStatusResponse) ToBuilder() *PullEVSEStatusResponseBuilder {
	return &PullEVSEStatusResponseBuilder{
		Response:           r.Response,
		Request:            r.Request,
		OperatorEVSEStatus: append([]oicp.OperatorEVSEStatus(nil), r.EVSEStatuses.OperatorEVSEStatus...),
		StatusCode:         r.StatusCode,
	}
}

// PullEVSEStatusResponseBuilder 状态拉取响应构建器
type PullEVSEStatusResponseBuilder struct {
	Response
	Request            *PullEVSEStatusRequest
	OperatorEVSEStatus []oicp.OperatorEVSEStatus
	StatusCode         *oicp.StatusCode
}

// NewPullEVSEStatusResponseBuilder 创建构建器
func NewPullEVSEStatusResponseBuilder(request *PullEVSEStatusRequest, opts ...Option) *PullEVSEStatusResponseBuilder {
	return &PullEVSEStatusResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
}

// Add 追加一个运营商的状态
func (b *PullEVSEStatusResponseBuilder) Add(status oicp.OperatorEVSEStatus) *PullEVSEStatusResponseBuilder {
	b.OperatorEVSEStatus = append(b.OperatorEVSEStatus, status)
	return b
}

// Build 生成响应
func (b *PullEVSEStatusResponseBuilder) Build() (*PullEVSEStatusResponse, error) {
	statuses := b.OperatorEVSEStatus
	if statuses == nil {
		statuses = []oicp.OperatorEVSEStatus{}
	}
	return build(&PullEVSEStatusResponse{
		Response:     b.Response,
		Request:      b.Request,
		EVSEStatuses: EVSEStatuses{OperatorEVSEStatus: statuses},
		StatusCode:   b.StatusCode,
	})
}
