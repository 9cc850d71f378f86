package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

// HeaderProcessID Hubject在响应头中返回的处理标识
const HeaderProcessID = "Process-ID"

// 响应体读取上限
const maxResponseBody = 32 << 20

// HTTPError Hubject返回了非2xx状态码
type HTTPError struct {
	Operation  string
	StatusCode int
	ProcessID  oicp.ProcessID
	Body       string
}

func (e *HTTPError) Error() string {
	if e.ProcessID != "" {
		return fmt.Sprintf("hubject %s: unexpected status %d (process %s): %s", e.Operation, e.StatusCode, e.ProcessID, e.Body)
	}
	return fmt.Sprintf("hubject %s: unexpected status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Client Hubject OICP 出站接口客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
	pageSize   int
}

// Option 客户端配置项
type Option func(*Client)

// WithHTTPClient 使用自定义的 http.Client，此时不再附加日志中间件
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger 设置日志器
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithPageSize 分页遍历时未指定 size 所使用的页大小
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// New 创建客户端
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger.Nop(),
		pageSize: 2000,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: &InterceptorTransport{
				Transport:   http.DefaultTransport,
				Middlewares: []TransportMiddleware{NewLoggingTransportMiddleware(c.logger)},
			},
		}
	}
	return c
}

// outbound 出站请求的公共部分
type outbound interface {
	emp.Message
	Deadline() time.Time
	GetEventTrackingID() oicp.EventTrackingID
}

// call 发送请求并用 parse 解析响应体。请求截止时间取请求自身的 Deadline 与 ctx 中较早者
func call[Resp any](ctx context.Context, c *Client, operation, path string, paging *emp.PagedRequest, req outbound,
	parse func(data []byte, opts ...emp.Option) (Resp, error)) (resp Resp, err error) {
	defer func() {
		metrics.HubjectRequests.WithLabelValues(operation, metrics.ResultLabel(err)).Inc()
	}()

	if err = req.Validate(); err != nil {
		return resp, fmt.Errorf("hubject %s: invalid request: %w", operation, err)
	}
	body, err := req.ToJSON()
	if err != nil {
		return resp, fmt.Errorf("hubject %s: failed to encode request: %w", operation, err)
	}

	target := c.baseURL + path
	if paging != nil {
		values, qerr := query.Values(paging)
		if qerr != nil {
			return resp, fmt.Errorf("hubject %s: failed to encode paging: %w", operation, qerr)
		}
		if encoded := values.Encode(); encoded != "" {
			target += "?" + encoded
		}
	}

	ctx, cancel := context.WithDeadline(ctx, req.Deadline())
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return resp, fmt.Errorf("hubject %s: failed to create request: %w", operation, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return resp, fmt.Errorf("hubject %s: %w", operation, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return resp, fmt.Errorf("hubject %s: failed to read response: %w", operation, err)
	}

	processID := oicp.ProcessID(httpResp.Header.Get(HeaderProcessID))
	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, &HTTPError{
			Operation:  operation,
			StatusCode: httpResp.StatusCode,
			ProcessID:  processID,
			Body:       string(data),
		}
	}

	opts := []emp.Option{
		emp.WithRuntime(time.Since(start)),
		emp.WithHTTPStatus(httpResp.StatusCode),
	}
	if processID != "" {
		opts = append(opts, emp.WithProcessID(processID))
	}
	resp, err = parse(data, opts...)
	if err != nil {
		return resp, fmt.Errorf("hubject %s: failed to parse response: %w", operation, err)
	}

	c.logger.ForMessage(req.MessageType(), map[string]string{
		logger.FieldProcessID:  string(processID),
		logger.FieldTrackingID: string(req.GetEventTrackingID()),
	}).Debug("hubject response parsed")
	return resp, nil
}

func providerPath(format string, providerID oicp.ProviderID) string {
	return fmt.Sprintf(format, url.PathEscape(string(providerID)))
}
