package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/protocol"
	"github.com/charging-platform/oicp-emp-gateway/internal/gateway"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

// HeaderProcessID Hubject在每个请求上附带的处理ID
const HeaderProcessID = "Process-ID"

// OICP 2.3 EMP 入站接口，相对于 base path
const (
	RouteAuthorizeStart        = protocol.ChargingV21 + "/operators/{operatorID}/authorize/start"
	RouteAuthorizeStop         = protocol.ChargingV21 + "/operators/{operatorID}/authorize/stop"
	RouteChargeDetailRecord    = protocol.CDRManagementV22 + "/operators/{operatorID}/charge-detail-record"
	RouteChargingNotifications = protocol.NotificationManagementV11 + "/charging-notifications"
)

const (
	maxBodyBytes      = emp.MaxMessageSize
	maxDescriptionLen = 200
)

// EMPService 入站接口依赖的业务处理
type EMPService interface {
	AuthorizeStart(ctx context.Context, req *emp.AuthorizeStartRequest) *emp.AuthorizationStartResponse
	AuthorizeStop(ctx context.Context, req *emp.AuthorizeStopRequest) *emp.AuthorizationStopResponse
	ReceiveChargeDetailRecord(ctx context.Context, req *emp.ChargeDetailRecordRequest) *emp.Acknowledgement[*emp.ChargeDetailRecordRequest]
	ReceiveChargingNotification(ctx context.Context, n emp.ChargingNotification) *emp.Acknowledgement[emp.ChargingNotification]
	ReportParseError(route string, data []byte, err error)
}

var _ EMPService = (*gateway.Service)(nil)

// Handler OICP入站接口处理器
type Handler struct {
	service EMPService
	logger  *logger.Logger
}

// NewRouter 创建带有OICP路由、健康检查和 /metrics 的路由器
func NewRouter(basePath string, service EMPService, l *logger.Logger) http.Handler {
	if l == nil {
		l = logger.Nop()
	}
	h := &Handler{service: service, logger: l}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)
	r.Use(RequestLogger(l))

	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	basePath = strings.TrimRight(basePath, "/")
	if basePath == "" {
		h.routes(r)
	} else {
		r.Route(basePath, h.routes)
	}
	return r
}

func (h *Handler) routes(r chi.Router) {
	r.Post(RouteAuthorizeStart, h.authorizeStart)
	r.Post(RouteAuthorizeStop, h.authorizeStop)
	r.Post(RouteChargeDetailRecord, h.chargeDetailRecord)
	r.Post(RouteChargingNotifications, h.chargingNotification)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) authorizeStart(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	var req *emp.AuthorizeStartRequest
	if err == nil {
		req, err = emp.ParseAuthorizeStartRequest(body, operatorParam(r))
	}
	if err != nil {
		code, description := h.rejected(r, body, err)
		h.write(w, emp.AuthorizationStartNotAuthorized(nil, nil, code, description))
		return
	}
	h.write(w, h.service.AuthorizeStart(r.Context(), req))
}

func (h *Handler) authorizeStop(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	var req *emp.AuthorizeStopRequest
	if err == nil {
		req, err = emp.ParseAuthorizeStopRequest(body, operatorParam(r))
	}
	if err != nil {
		code, description := h.rejected(r, body, err)
		h.write(w, emp.AuthorizationStopNotAuthorized(nil, nil, code, description))
		return
	}
	h.write(w, h.service.AuthorizeStop(r.Context(), req))
}

func (h *Handler) chargeDetailRecord(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	var req *emp.ChargeDetailRecordRequest
	if err == nil {
		req, err = emp.ParseChargeDetailRecordRequest(body, operatorParam(r))
	}
	if err != nil {
		code, description := h.rejected(r, body, err)
		h.write(w, emp.Failure[*emp.ChargeDetailRecordRequest](nil, code, description))
		return
	}
	h.write(w, h.service.ReceiveChargeDetailRecord(r.Context(), req))
}

func (h *Handler) chargingNotification(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	var n emp.ChargingNotification
	if err == nil {
		n, err = emp.ParseChargingNotification(body)
	}
	if err != nil {
		code, description := h.rejected(r, body, err)
		h.write(w, emp.Failure[emp.ChargingNotification](nil, code, description))
		return
	}
	h.write(w, h.service.ReceiveChargingNotification(r.Context(), n))
}

// rejected 上报解析失败并给出应答使用的状态码和描述
func (h *Handler) rejected(r *http.Request, body []byte, err error) (oicp.StatusCodes, string) {
	route := routePattern(r)
	h.logger.With(map[string]string{
		"route":               route,
		logger.FieldProcessID: r.Header.Get(HeaderProcessID),
	}).WarnWithErr(err, "Rejected inbound OICP request")
	h.service.ReportParseError(route, body, err)

	return gateway.StatusCodeForError(err), truncate(err.Error(), maxDescriptionLen)
}

// write 以HTTP 200返回OICP报文，业务结果由报文中的StatusCode表达
func (h *Handler) write(w http.ResponseWriter, msg emp.Message) {
	data, err := msg.ToJSON()
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to encode "+msg.MessageType())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// operatorParam 取路径中的运营商标识，"*" 可能以 %2A 形式出现
func operatorParam(r *http.Request) oicp.OperatorID {
	raw := chi.URLParam(r, "operatorID")
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return oicp.OperatorID(raw)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
