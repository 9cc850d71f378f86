package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/validation"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/message"
	"github.com/charging-platform/oicp-emp-gateway/internal/storage"
)

// HubjectClient 服务用到的Hubject出站接口
type HubjectClient interface {
	AuthorizeRemoteStart(ctx context.Context, req *emp.AuthorizeRemoteStartRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteStartRequest], error)
	AuthorizeRemoteStop(ctx context.Context, req *emp.AuthorizeRemoteStopRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteStopRequest], error)
	AuthorizeRemoteReservationStart(ctx context.Context, req *emp.AuthorizeRemoteReservationStartRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStartRequest], error)
	AuthorizeRemoteReservationStop(ctx context.Context, req *emp.AuthorizeRemoteReservationStopRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStopRequest], error)
	PullEVSEStatusById(ctx context.Context, req *emp.PullEVSEStatusByIdRequest) (*emp.PullEVSEStatusByIdResponse, error)
}

// ServiceConfig EMP服务配置
type ServiceConfig struct {
	Source     string
	ProviderID oicp.ProviderID
	// AuthorizedIdentifications 白名单，元素为 Identification.Key 格式
	AuthorizedIdentifications []string
	// StopIdentifications 授权开始时下发的停止授权标识，同样可以停止任何会话
	StopIdentifications []string
	SessionTTL          time.Duration
}

// Service 服务商侧的OICP业务处理
type Service struct {
	config     ServiceConfig
	allowed    map[string]struct{}
	stopKeys   map[string]struct{}
	stopIDs    []oicp.Identification
	sessions   storage.SessionStore
	producer   message.EventProducer
	client     HubjectClient
	converter  ModelConverter
	dispatcher CommandDispatcher
	logger     *logger.Logger
	clock      func() time.Time
}

// NewService 创建服务。client 为nil时不注册远程指令处理器
func NewService(config ServiceConfig, sessions storage.SessionStore, producer message.EventProducer, client HubjectClient,
	dispatcher CommandDispatcher, l *logger.Logger) (*Service, error) {
	if l == nil {
		l = logger.Nop()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 48 * time.Hour
	}

	s := &Service{
		config:     config,
		allowed:    make(map[string]struct{}, len(config.AuthorizedIdentifications)),
		stopKeys:   make(map[string]struct{}, len(config.StopIdentifications)),
		sessions:   sessions,
		producer:   producer,
		client:     client,
		converter:  NewUnifiedModelConverter(config.Source, config.ProviderID, l),
		dispatcher: dispatcher,
		logger:     l,
		clock:      time.Now,
	}
	for _, key := range config.AuthorizedIdentifications {
		s.allowed[key] = struct{}{}
	}
	if err := validation.Default().ValidateCount("StopIdentifications", len(config.StopIdentifications), 0, emp.MaxAuthorizationStopIdentifications); err != nil {
		return nil, fmt.Errorf("invalid service config: %w", err)
	}
	for _, key := range config.StopIdentifications {
		id, err := oicp.ParseIdentificationKey(key)
		if err != nil {
			return nil, fmt.Errorf("invalid stop identification: %w", err)
		}
		s.stopIDs = append(s.stopIDs, id)
		s.stopKeys[id.Key()] = struct{}{}
	}

	if client != nil && dispatcher != nil {
		if err := s.registerCommands(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Converter 服务使用的事件转换器
func (s *Service) Converter() ModelConverter {
	return s.converter
}

// AuthorizeStart 按白名单决定是否允许开始充电。授权通过时生成 EMPPartnerSessionID 并记录会话
func (s *Service) AuthorizeStart(ctx context.Context, req *emp.AuthorizeStartRequest) *emp.AuthorizationStartResponse {
	key := req.Identification.Key()
	log := s.messageLogger(req.MessageType(), req.OperatorID, req.SessionID, req.EventTrackingID)

	var resp *emp.AuthorizationStartResponse
	if _, ok := s.allowed[key]; !ok {
		log.Infof("Identification %s not authorized", key)
		resp = emp.AuthorizationStartNotAuthorized(req, &s.config.ProviderID, oicp.StatusCodeNoValidContract, "No valid contract")
	} else {
		empSessionID := req.EMPPartnerSessionID
		if empSessionID == nil {
			id := oicp.NewEMPPartnerSessionID()
			empSessionID = &id
		}
		resp = emp.AuthorizationStartAuthorized(req, s.config.ProviderID, empSessionID, s.stopIDs)
		if req.SessionID != nil {
			now := s.clock()
			identification := req.Identification
			s.saveSession(ctx, &storage.Session{
				SessionID:           *req.SessionID,
				ProviderID:          s.config.ProviderID,
				OperatorID:          &req.OperatorID,
				EvseID:              req.EvseID,
				Identification:      &identification,
				CPOPartnerSessionID: req.CPOPartnerSessionID,
				EMPPartnerSessionID: empSessionID,
				Status:              storage.SessionStatusAuthorized,
				CreatedAt:           now,
				UpdatedAt:           now,
			})
		}
		log.Infof("Identification %s authorized", key)
	}

	s.publish(req, resp)
	return resp
}

// AuthorizeStop 允许会话的原认证信息、白名单中的认证信息或停止授权标识停止充电
func (s *Service) AuthorizeStop(ctx context.Context, req *emp.AuthorizeStopRequest) *emp.AuthorizationStopResponse {
	key := req.Identification.Key()
	log := s.messageLogger(req.MessageType(), req.OperatorID, &req.SessionID, req.EventTrackingID)

	session, err := s.sessions.GetSession(ctx, req.SessionID)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		log.WarnWithErr(err, "Failed to load session")
	}

	authorized, code, description := false, oicp.StatusCodeNoValidContract, "No valid contract"
	if _, ok := s.stopKeys[key]; ok {
		authorized = true
	} else if session != nil && session.Identification != nil {
		authorized = session.Identification.Key() == key
		code, description = oicp.StatusCodeNoPositiveAuthentication, "Identification does not match session"
	} else if _, ok := s.allowed[key]; ok {
		authorized = true
	}

	var resp *emp.AuthorizationStopResponse
	if authorized {
		resp = emp.AuthorizationStopAuthorized(req, s.config.ProviderID)
		if session != nil {
			s.updateStatus(ctx, req.SessionID, storage.SessionStatusStopAuthorized)
		}
		log.Infof("Stop authorized for identification %s", key)
	} else {
		resp = emp.AuthorizationStopNotAuthorized(req, &s.config.ProviderID, code, description)
		log.Infof("Stop not authorized for identification %s", key)
	}

	s.publish(req, resp)
	return resp
}

// ReceiveChargeDetailRecord 发布充电详单事件。事件无法发布时返回失败确认，由运营商重发
func (s *Service) ReceiveChargeDetailRecord(ctx context.Context, req *emp.ChargeDetailRecordRequest) *emp.Acknowledgement[*emp.ChargeDetailRecordRequest] {
	cdr := req.ChargeDetailRecord
	log := s.messageLogger(req.MessageType(), req.OperatorID, &cdr.SessionID, req.EventTrackingID)

	if err := s.publishConfirmed(ctx, req); err != nil {
		return emp.Failure(req, oicp.StatusCodeSystemError, "Charge detail record could not be stored").
			WithSession(&cdr.SessionID, cdr.CPOPartnerSessionID, cdr.EMPPartnerSessionID)
	}
	s.updateStatus(ctx, cdr.SessionID, storage.SessionStatusCompleted)
	log.Infof("Charge detail record received, %.3f kWh", cdr.ConsumedEnergy)

	return emp.Success(req, "").WithSession(&cdr.SessionID, cdr.CPOPartnerSessionID, cdr.EMPPartnerSessionID)
}

// ReceiveChargingNotification 发布充电通知事件并更新会话状态
func (s *Service) ReceiveChargingNotification(ctx context.Context, n emp.ChargingNotification) *emp.Acknowledgement[emp.ChargingNotification] {
	sessionID := n.Session()
	log := s.logger.ForMessage(n.MessageType(), map[string]string{
		logger.FieldSessionID: string(sessionID),
	})

	if err := s.publishConfirmed(ctx, n); err != nil {
		return emp.Failure(n, oicp.StatusCodeSystemError, "Charging notification could not be processed")
	}

	if status, ok := notificationStatus(n.NotificationType()); ok {
		s.updateStatus(ctx, sessionID, status)
	}
	log.Debugf("Charging notification %s received for EVSE %s", n.NotificationType(), n.EVSE())
	return emp.Success(n, "")
}

func notificationStatus(t oicp.ChargingNotificationType) (storage.SessionStatus, bool) {
	switch t {
	case oicp.ChargingNotificationStart, oicp.ChargingNotificationProgress:
		return storage.SessionStatusCharging, true
	case oicp.ChargingNotificationEnd:
		return storage.SessionStatusEnded, true
	case oicp.ChargingNotificationError:
		return storage.SessionStatusFailed, true
	default:
		return "", false
	}
}

// ReportParseError 发布入站报文的解析失败
func (s *Service) ReportParseError(route string, data []byte, err error) {
	event := s.converter.ConvertParseError(route, data, err)
	if perr := s.producer.PublishEvent(event); perr != nil {
		s.logger.WarnWithErr(perr, "Failed to publish protocol error event")
	}
}

// HandleCommand 远程指令入口，供消息消费者调用
func (s *Service) HandleCommand(ctx context.Context, cmd *message.Command) error {
	if s.dispatcher == nil {
		return fmt.Errorf("remote commands are not enabled")
	}
	return s.dispatcher.Dispatch(ctx, cmd)
}

// publish 转换并发布事件，返回发布错误以便调用方决定应答
func (s *Service) publish(request emp.Message, response emp.Message) error {
	event, err := s.converter.ConvertToUnifiedEvent(request, response)
	if err != nil {
		s.logger.WarnWithErr(err, "Failed to convert message to event")
		return err
	}
	if err := s.producer.PublishEvent(event); err != nil {
		s.logger.ErrorWithErr(err, fmt.Sprintf("Failed to publish %s event", event.GetType()))
		return err
	}
	return nil
}

// publishConfirmed 等待消息队列确认写入，确认前不向运营商返回成功
func (s *Service) publishConfirmed(ctx context.Context, request emp.Message) error {
	event, err := s.converter.ConvertToUnifiedEvent(request, nil)
	if err != nil {
		s.logger.WarnWithErr(err, "Failed to convert message to event")
		return err
	}
	if err := s.producer.PublishEventConfirmed(ctx, event); err != nil {
		s.logger.ErrorWithErr(err, fmt.Sprintf("Failed to deliver %s event", event.GetType()))
		return err
	}
	return nil
}

// 会话记录只用于关联，存储失败不影响对Hubject的应答
func (s *Service) saveSession(ctx context.Context, session *storage.Session) {
	if err := s.sessions.SaveSession(ctx, session, s.config.SessionTTL); err != nil {
		s.logger.WarnWithErr(err, fmt.Sprintf("Failed to save session %s", session.SessionID))
	}
}

func (s *Service) updateStatus(ctx context.Context, sessionID oicp.SessionID, status storage.SessionStatus) {
	err := s.sessions.UpdateStatus(ctx, sessionID, status, s.config.SessionTTL)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		s.logger.Debugf("Session %s not tracked, status %s not recorded", sessionID, status)
	case err != nil:
		s.logger.WarnWithErr(err, fmt.Sprintf("Failed to update session %s", sessionID))
	}
}

func (s *Service) messageLogger(messageType string, operatorID oicp.OperatorID, sessionID *oicp.SessionID, trackingID oicp.EventTrackingID) *logger.Logger {
	fields := map[string]string{
		logger.FieldOperatorID: string(operatorID),
		logger.FieldTrackingID: string(trackingID),
	}
	if sessionID != nil {
		fields[logger.FieldSessionID] = string(*sessionID)
	}
	return s.logger.ForMessage(messageType, fields)
}
