package gateway

import (
	"context"
	"fmt"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/events"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/message"
	"github.com/charging-platform/oicp-emp-gateway/internal/storage"
)

func (s *Service) registerCommands() error {
	handlers := map[string]CommandFunc{
		"AuthorizeRemoteStartRequest":            s.remoteStart,
		"AuthorizeRemoteStopRequest":             s.remoteStop,
		"AuthorizeRemoteReservationStartRequest": s.reservationStart,
		"AuthorizeRemoteReservationStopRequest":  s.reservationStop,
		"PullEVSEStatusByIdRequest":              s.pullStatusByID,
	}
	for name, handler := range handlers {
		if err := s.dispatcher.RegisterHandler(name, handler); err != nil {
			return err
		}
	}
	return nil
}

// ackResult 把确认响应或调用错误整理为指令结果
func ackResult(name string, evseID *oicp.EVSEID, result bool, statusCode oicp.StatusCodes, processID *oicp.ProcessID, err error) events.CommandInfo {
	info := events.CommandInfo{Name: name, EvseID: evseID}
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Result = result
	info.StatusCode = statusCode
	info.ProcessID = processID
	if !result {
		info.Error = fmt.Sprintf("rejected with status %s", statusCode)
	}
	return info
}

func (s *Service) remoteStart(ctx context.Context, cmd *message.Command, msg emp.Message) error {
	req, ok := msg.(*emp.AuthorizeRemoteStartRequest)
	if !ok {
		return fmt.Errorf("unexpected message %T", msg)
	}
	if req.EMPPartnerSessionID == nil {
		id := oicp.NewEMPPartnerSessionID()
		req.EMPPartnerSessionID = &id
	}

	ack, err := s.client.AuthorizeRemoteStart(ctx, req)
	var info events.CommandInfo
	var sessionID oicp.SessionID
	if err != nil {
		info = ackResult(cmd.Name, &req.EvseID, false, "", nil, err)
	} else {
		info = ackResult(cmd.Name, &req.EvseID, ack.Result, ack.StatusCode.Code, ack.ProcessID, nil)
		if ack.SessionID == nil {
			ack.SessionID = req.SessionID
		}
		if ack.Result && ack.SessionID != nil {
			sessionID = *ack.SessionID
			now := s.clock()
			identification := req.Identification
			s.saveSession(ctx, &storage.Session{
				SessionID:           sessionID,
				ProviderID:          req.ProviderID,
				EvseID:              &req.EvseID,
				Identification:      &identification,
				CPOPartnerSessionID: ack.CPOPartnerSessionID,
				EMPPartnerSessionID: req.EMPPartnerSessionID,
				Status:              storage.SessionStatusRemoteStarted,
				CreatedAt:           now,
				UpdatedAt:           now,
			})
		}
	}
	return s.finishCommand(cmd, sessionID, info, req.EventTrackingID, err)
}

func (s *Service) remoteStop(ctx context.Context, cmd *message.Command, msg emp.Message) error {
	req, ok := msg.(*emp.AuthorizeRemoteStopRequest)
	if !ok {
		return fmt.Errorf("unexpected message %T", msg)
	}

	ack, err := s.client.AuthorizeRemoteStop(ctx, req)
	var info events.CommandInfo
	if err != nil {
		info = ackResult(cmd.Name, &req.EvseID, false, "", nil, err)
	} else {
		info = ackResult(cmd.Name, &req.EvseID, ack.Result, ack.StatusCode.Code, ack.ProcessID, nil)
		if ack.Result {
			s.updateStatus(ctx, req.SessionID, storage.SessionStatusStopAuthorized)
		}
	}
	return s.finishCommand(cmd, req.SessionID, info, req.EventTrackingID, err)
}

func (s *Service) reservationStart(ctx context.Context, cmd *message.Command, msg emp.Message) error {
	req, ok := msg.(*emp.AuthorizeRemoteReservationStartRequest)
	if !ok {
		return fmt.Errorf("unexpected message %T", msg)
	}

	ack, err := s.client.AuthorizeRemoteReservationStart(ctx, req)
	var info events.CommandInfo
	var sessionID oicp.SessionID
	if err != nil {
		info = ackResult(cmd.Name, &req.EvseID, false, "", nil, err)
	} else {
		info = ackResult(cmd.Name, &req.EvseID, ack.Result, ack.StatusCode.Code, ack.ProcessID, nil)
		if ack.Result && ack.SessionID != nil {
			sessionID = *ack.SessionID
			now := s.clock()
			identification := req.Identification
			s.saveSession(ctx, &storage.Session{
				SessionID:           sessionID,
				ProviderID:          req.ProviderID,
				EvseID:              &req.EvseID,
				Identification:      &identification,
				CPOPartnerSessionID: ack.CPOPartnerSessionID,
				EMPPartnerSessionID: req.EMPPartnerSessionID,
				Status:              storage.SessionStatusReserved,
				CreatedAt:           now,
				UpdatedAt:           now,
			})
		}
	}
	return s.finishCommand(cmd, sessionID, info, req.EventTrackingID, err)
}

func (s *Service) reservationStop(ctx context.Context, cmd *message.Command, msg emp.Message) error {
	req, ok := msg.(*emp.AuthorizeRemoteReservationStopRequest)
	if !ok {
		return fmt.Errorf("unexpected message %T", msg)
	}

	ack, err := s.client.AuthorizeRemoteReservationStop(ctx, req)
	var info events.CommandInfo
	if err != nil {
		info = ackResult(cmd.Name, &req.EvseID, false, "", nil, err)
	} else {
		info = ackResult(cmd.Name, &req.EvseID, ack.Result, ack.StatusCode.Code, ack.ProcessID, nil)
		if ack.Result {
			s.updateStatus(ctx, req.SessionID, storage.SessionStatusEnded)
		}
	}
	return s.finishCommand(cmd, req.SessionID, info, req.EventTrackingID, err)
}

func (s *Service) pullStatusByID(ctx context.Context, cmd *message.Command, msg emp.Message) error {
	req, ok := msg.(*emp.PullEVSEStatusByIdRequest)
	if !ok {
		return fmt.Errorf("unexpected message %T", msg)
	}

	resp, err := s.client.PullEVSEStatusById(ctx, req)
	info := events.CommandInfo{Name: cmd.Name}
	if err != nil {
		info.Error = err.Error()
	} else {
		info.Result = resp.StatusCode == nil || resp.StatusCode.IsSuccess()
		if resp.StatusCode != nil {
			info.StatusCode = resp.StatusCode.Code
		}
		info.ProcessID = resp.ProcessID
		info.StatusRecords = resp.EVSEStatusRecords.EvseStatusRecord
	}
	return s.finishCommand(cmd, "", info, req.EventTrackingID, err)
}

// finishCommand 发布指令结果事件；Hubject调用失败时返回该错误
func (s *Service) finishCommand(cmd *message.Command, sessionID oicp.SessionID, info events.CommandInfo, trackingID oicp.EventTrackingID, callErr error) error {
	event := s.converter.ConvertCommandResult(sessionID, info, trackingID)
	log := s.logger.ForMessage(cmd.Name, map[string]string{
		logger.FieldProviderID: string(cmd.ProviderID),
		logger.FieldSessionID:  string(sessionID),
	})
	if err := s.producer.PublishEvent(event); err != nil {
		log.WarnWithErr(err, "Failed to publish command result")
	}

	if callErr != nil {
		return callErr
	}
	log.Infof("Command %s executed, result %t", cmd.CommandID, info.Result)
	return nil
}
