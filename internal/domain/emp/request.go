package emp

import (
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// Request 所有请求共享的元数据，不参与序列化
type Request struct {
	Timestamp       oicp.DateTime
	EventTrackingID oicp.EventTrackingID
	RequestTimeout  time.Duration
}

func newRequest(o options) Request {
	r := Request{
		Timestamp:       oicp.Now(),
		EventTrackingID: o.eventTrackingID,
		RequestTimeout:  o.requestTimeout,
	}
	if o.timestamp != nil {
		r.Timestamp = oicp.NewDateTime(*o.timestamp)
	}
	if r.EventTrackingID == "" {
		r.EventTrackingID = oicp.NewEventTrackingID()
	}
	return r
}

// Deadline 请求的截止时间
func (r Request) Deadline() time.Time {
	return r.Timestamp.Add(r.RequestTimeout)
}

// Renew 返回从当前时间重新计时的元数据，跟踪ID不变
func (r Request) Renew() Request {
	r.Timestamp = oicp.Now()
	return r
}

// PagedRequest 分页参数，通过URL查询字符串传递
type PagedRequest struct {
	Page      *int     `url:"page,omitempty"`
	Size      *int     `url:"size,omitempty"`
	SortOrder []string `url:"sortOrder,omitempty"`
}

func newPagedRequest(o options) PagedRequest {
	return PagedRequest{Page: o.page, Size: o.size, SortOrder: o.sortOrder}
}

// PageOrDefault 当前页码，未设置时为0
func (p PagedRequest) PageOrDefault() int {
	if p.Page == nil {
		return 0
	}
	return *p.Page
}

// NextPage 返回指向下一页的分页参数
func (p PagedRequest) NextPage() PagedRequest {
	next := p.PageOrDefault() + 1
	p.Page = &next
	return p
}

func (p PagedRequest) validate() error {
	return validator().ValidatePaging(p.Page, p.Size)
}

// GetEventTrackingID 请求的事件跟踪ID
func (r Request) GetEventTrackingID() oicp.EventTrackingID {
	return r.EventTrackingID
}
