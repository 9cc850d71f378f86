package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/config"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
)

// HTTPServerConfig HTTP服务器配置
type HTTPServerConfig struct {
	Host              string        `json:"host"`
	Port              int           `json:"port"`
	ReadTimeout       time.Duration `json:"read_timeout"`
	ReadHeaderTimeout time.Duration `json:"read_header_timeout"`
	WriteTimeout      time.Duration `json:"write_timeout"`
	IdleTimeout       time.Duration `json:"idle_timeout"`
	MaxHeaderBytes    int           `json:"max_header_bytes"`
	KeepAlivePeriod   time.Duration `json:"keep_alive_period"` // TCP Keep-Alive周期
}

// DefaultHTTPServerConfig 默认HTTP服务器配置
func DefaultHTTPServerConfig() *HTTPServerConfig {
	return &HTTPServerConfig{
		Host:              "0.0.0.0",
		Port:              8080,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
		KeepAlivePeriod:   30 * time.Second,
	}
}

// HTTPServerConfigFrom 从应用配置生成服务器配置，未设置的超时使用默认值
func HTTPServerConfigFrom(c config.ServerConfig) *HTTPServerConfig {
	cfg := DefaultHTTPServerConfig()
	if c.Host != "" {
		cfg.Host = c.Host
	}
	cfg.Port = c.Port
	if c.ReadTimeout > 0 {
		cfg.ReadTimeout = c.ReadTimeout
	}
	if c.WriteTimeout > 0 {
		cfg.WriteTimeout = c.WriteTimeout
	}
	return cfg
}

// Addr 监听地址
func (c *HTTPServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// HTTPServer 承载OICP入站接口的HTTP服务器
type HTTPServer struct {
	config *HTTPServerConfig
	server *http.Server
	logger *logger.Logger

	mu       sync.RWMutex
	listener net.Listener
}

// NewHTTPServer 创建HTTP服务器
func NewHTTPServer(config *HTTPServerConfig, handler http.Handler, log *logger.Logger) *HTTPServer {
	if config == nil {
		config = DefaultHTTPServerConfig()
	}
	if log == nil {
		log = logger.Nop()
	}
	server := &http.Server{
		Addr:              config.Addr(),
		Handler:           handler,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		MaxHeaderBytes:    config.MaxHeaderBytes,
	}

	return &HTTPServer{
		config: config,
		server: server,
		logger: log,
	}
}

// Listen 绑定监听地址。Start 前单独调用可以提前拿到实际端口
func (s *HTTPServer) Listen(ctx context.Context) error {
	lc := net.ListenConfig{KeepAlive: s.config.KeepAlivePeriod}
	listener, err := lc.Listen(ctx, "tcp", s.config.Addr())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	return nil
}

// Start 启动服务器并阻塞到服务器关闭。正常关闭时返回nil
func (s *HTTPServer) Start() error {
	s.mu.RLock()
	listener := s.listener
	s.mu.RUnlock()

	if listener == nil {
		if err := s.Listen(context.Background()); err != nil {
			return err
		}
		listener = s.GetAddrListener()
	}

	s.logger.Infof("HTTP server listening on %s", listener.Addr().String())
	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server...")

	// 优雅关闭服务器
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Errorf("Error during server shutdown: %v", err)
		// 强制关闭
		return s.server.Close()
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// GetAddrListener 当前监听器
func (s *HTTPServer) GetAddrListener() net.Listener {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listener
}

// GetAddr 获取服务器地址
func (s *HTTPServer) GetAddr() net.Addr {
	if l := s.GetAddrListener(); l != nil {
		return l.Addr()
	}
	return nil
}

// GetStats 获取服务器统计信息
func (s *HTTPServer) GetStats() map[string]interface{} {
	stats := make(map[string]interface{})

	if addr := s.GetAddr(); addr != nil {
		stats["listening"] = true
		stats["address"] = addr.String()
	} else {
		stats["listening"] = false
	}

	stats["config"] = map[string]interface{}{
		"keep_alive_period": s.config.KeepAlivePeriod.String(),
		"read_timeout":      s.config.ReadTimeout.String(),
		"write_timeout":     s.config.WriteTimeout.String(),
		"idle_timeout":      s.config.IdleTimeout.String(),
	}

	return stats
}

// HealthCheck 健康检查
func (s *HTTPServer) HealthCheck() error {
	if s.GetAddrListener() == nil {
		return net.ErrClosed
	}
	return nil
}
