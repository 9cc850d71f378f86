package emp

import (
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// DefaultRequestTimeout 默认请求超时时间
const DefaultRequestTimeout = 60 * time.Second

// Option 构造或解析消息时的附加参数
type Option func(*options)

type options struct {
	timestamp       *time.Time
	eventTrackingID oicp.EventTrackingID
	requestTimeout  time.Duration
	processID       *oicp.ProcessID
	runtime         time.Duration
	httpStatus      int
	page            *int
	size            *int
	sortOrder       []string
}

func applyOptions(opts []Option) options {
	o := options{
		requestTimeout: DefaultRequestTimeout,
		httpStatus:     200,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithTimestamp 设置请求或响应时间戳
func WithTimestamp(t time.Time) Option {
	return func(o *options) { o.timestamp = &t }
}

// WithEventTrackingID 设置事件跟踪ID
func WithEventTrackingID(id oicp.EventTrackingID) Option {
	return func(o *options) { o.eventTrackingID = id }
}

// WithRequestTimeout 设置请求超时时间
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithProcessID 设置Hubject返回的处理ID
func WithProcessID(id oicp.ProcessID) Option {
	return func(o *options) { o.processID = &id }
}

// WithRuntime 设置请求耗时
func WithRuntime(d time.Duration) Option {
	return func(o *options) { o.runtime = d }
}

// WithHTTPStatus 设置HTTP响应状态码
func WithHTTPStatus(status int) Option {
	return func(o *options) { o.httpStatus = status }
}

// WithPage 设置分页页码，从0开始
func WithPage(page int) Option {
	return func(o *options) { o.page = &page }
}

// WithSize 设置分页大小
func WithSize(size int) Option {
	return func(o *options) { o.size = &size }
}

// WithSortOrder 设置排序字段
func WithSortOrder(fields ...string) Option {
	return func(o *options) { o.sortOrder = fields }
}
