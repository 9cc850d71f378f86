package emp

import (
	"encoding/json"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/validation"
)

// PullEVSEStatusByOperatorIdResponse 按运营商拉取状态的响应
type PullEVSEStatusByOperatorIdResponse struct {
	Response `json:"-"`
	Request  *PullEVSEStatusByOperatorIdRequest `json:"-" validate:"-"`

	EVSEStatuses EVSEStatuses     `json:"EvseStatuses"`
	StatusCode   *oicp.StatusCode `json:"StatusCode,omitempty"`
}

func ParsePullEVSEStatusByOperatorIdResponse(request *PullEVSEStatusByOperatorIdRequest, data []byte, opts ...Option) (*PullEVSEStatusByOperatorIdResponse, error) {
	r := &PullEVSEStatusByOperatorIdResponse{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
	if err := decode(data, r, r.checkOperators); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEStatusByOperatorIdResponse(request *PullEVSEStatusByOperatorIdRequest, data []byte, opts ...Option) (*PullEVSEStatusByOperatorIdResponse, bool) {
	r, err := ParsePullEVSEStatusByOperatorIdResponse(request, data, opts...)
	return r, err == nil
}

// checkOperators 响应中只能包含请求过的运营商
func (r *PullEVSEStatusByOperatorIdResponse) checkOperators() error {
	if r.Request == nil {
		return nil
	}
	requested := make(map[oicp.OperatorID]struct{}, len(r.Request.OperatorIDs))
	for _, id := range r.Request.OperatorIDs {
		requested[id] = struct{}{}
	}
	for _, status := range r.EVSEStatuses.OperatorEVSEStatus {
		if _, ok := requested[status.OperatorID]; !ok {
			return validation.ValidationError{
				Field:   "EvseStatuses.OperatorEvseStatus.OperatorID",
				Tag:     "requested",
				Value:   string(status.OperatorID),
				Message: "Operator '" + string(status.OperatorID) + "' was not requested",
			}
		}
	}
	return nil
}

type pullEVSEStatusByOperatorIdResponseJSON PullEVSEStatusByOperatorIdResponse

func (r *PullEVSEStatusByOperatorIdResponse) UnmarshalJSON(data []byte) error {
	if err := oicp.RequireFields(data, "PullEVSEStatusByOperatorIdResponse", "EvseStatuses"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*pullEVSEStatusByOperatorIdResponseJSON)(r))
}

func (r *PullEVSEStatusByOperatorIdResponse) MessageType() string {
	return "PullEVSEStatusByOperatorIdResponse"
}

func (r *PullEVSEStatusByOperatorIdResponse) Validate() error { return validateStruct(r) }

func (r *PullEVSEStatusByOperatorIdResponse) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEStatusByOperatorIdResponse) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEStatusByOperatorIdResponse) Equal(other *PullEVSEStatusByOperatorIdResponse) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.EVSEStatuses.Equal(other.EVSEStatuses) &&
		oicp.EqualStatusCodePtr(r.StatusCode, other.StatusCode)
}

func (r *PullEVSEStatusByOperatorIdResponse) ToBuilder() *PullEVSEStatusByOperatorIdResponseBuilder {
	return &PullEVSEStatusByOperatorIdResponseBuilder{
		Response:           r.Response,
		Request:            r.Request,
		OperatorEVSEStatus: append([]oicp.OperatorEVSEStatus(nil), r.EVSEStatuses.OperatorEVSEStatus...),
		StatusCode:         r.StatusCode,
	}
}

type PullEVSEStatusByOperatorIdResponseBuilder struct {
	Response
	Request            *PullEVSEStatusByOperatorIdRequest
	OperatorEVSEStatus []oicp.OperatorEVSEStatus
	StatusCode         *oicp.StatusCode
}

func NewPullEVSEStatusByOperatorIdResponseBuilder(request *PullEVSEStatusByOperatorIdRequest, opts ...Option) *PullEVSEStatusByOperatorIdResponseBuilder {
	return &PullEVSEStatusByOperatorIdResponseBuilder{
		Response: newResponse(requestMeta(request), applyOptions(opts)),
		Request:  request,
	}
}

func (b *PullEVSEStatusByOperatorIdResponseBuilder) Build() (*PullEVSEStatusByOperatorIdResponse, error) {
	statuses := b.OperatorEVSEStatus
	if statuses == nil {
		statuses = []oicp.OperatorEVSEStatus{}
	}
	return build(&PullEVSEStatusByOperatorIdResponse{
		Response:     b.Response,
		Request:      b.Request,
		EVSEStatuses: EVSEStatuses{OperatorEVSEStatus: statuses},
		StatusCode:   b.StatusCode,
	})
}
