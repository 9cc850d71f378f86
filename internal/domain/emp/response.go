package emp

import (
	"net/http"
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// Response 所有响应共享的元数据，不参与序列化
type Response struct {
	ResponseTimestamp oicp.DateTime
	EventTrackingID   oicp.EventTrackingID
	Runtime           time.Duration
	ProcessID         *oicp.ProcessID
	HTTPStatus        int
}

// newResponse 创建响应元数据，事件跟踪ID默认沿用请求的值
func newResponse(request *Request, o options) Response {
	r := Response{
		ResponseTimestamp: oicp.Now(),
		EventTrackingID:   o.eventTrackingID,
		Runtime:           o.runtime,
		ProcessID:         o.processID,
		HTTPStatus:        o.httpStatus,
	}
	if o.timestamp != nil {
		r.ResponseTimestamp = oicp.NewDateTime(*o.timestamp)
	}
	if r.EventTrackingID == "" && request != nil {
		r.EventTrackingID = request.EventTrackingID
	}
	if r.EventTrackingID == "" {
		r.EventTrackingID = oicp.NewEventTrackingID()
	}
	if r.Runtime == 0 && request != nil {
		r.Runtime = r.ResponseTimestamp.Sub(request.Timestamp.Time)
	}
	return r
}

// IsHTTPSuccess HTTP状态码是否为2xx
func (r Response) IsHTTPSuccess() bool {
	return r.HTTPStatus >= http.StatusOK && r.HTTPStatus < http.StatusMultipleChoices
}

// Page 分页响应中的分页信息，在JSON中与content平铺
type Page struct {
	Number           int  `json:"number"`
	Size             int  `json:"size"`
	TotalElements    int  `json:"totalElements"`
	TotalPages       int  `json:"totalPages"`
	First            bool `json:"first"`
	Last             bool `json:"last"`
	NumberOfElements int  `json:"numberOfElements"`
}

// NewPage 根据页码、页大小、总数和本页条数计算分页信息
func NewPage(number, size, totalElements, numberOfElements int) Page {
	totalPages := 0
	if size > 0 {
		totalPages = (totalElements + size - 1) / size
	}
	return Page{
		Number:           number,
		Size:             size,
		TotalElements:    totalElements,
		TotalPages:       totalPages,
		First:            number == 0,
		Last:             number >= totalPages-1,
		NumberOfElements: numberOfElements,
	}
}

// HasNext 是否还有下一页
func (p Page) HasNext() bool {
	return !p.Last && p.Number+1 < p.TotalPages
}

// singlePageIfZero 未设置分页信息时视为只有一页
func singlePageIfZero(p Page, n int) Page {
	if p != (Page{}) {
		return p
	}
	return NewPage(0, n, n, n)
}
