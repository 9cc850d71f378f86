package client

import (
	"net/http"
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
)

// TransportMiddleware 包装 http.RoundTripper
type TransportMiddleware func(http.RoundTripper) http.RoundTripper

// InterceptorTransport 依次应用中间件后发送请求
type InterceptorTransport struct {
	Transport   http.RoundTripper
	Middlewares []TransportMiddleware
}

func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	for _, middleware := range t.Middlewares {
		transport = middleware(transport)
	}
	return transport.RoundTrip(req)
}

type loggingTransport struct {
	next   http.RoundTripper
	logger *logger.Logger
}

// NewLoggingTransportMiddleware 记录每个出站请求的方法、路径、状态码、耗时和Process-ID
func NewLoggingTransportMiddleware(l *logger.Logger) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &loggingTransport{next: rt, logger: l}
	}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start)

	zl := t.logger.GetLogger()
	if err != nil {
		zl.Warn().Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("elapsed", elapsed).
			Msg("hubject request failed")
		return nil, err
	}

	zl.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Str(logger.FieldProcessID, resp.Header.Get(HeaderProcessID)).
		Dur("elapsed", elapsed).
		Msg("hubject request completed")
	return resp, nil
}
