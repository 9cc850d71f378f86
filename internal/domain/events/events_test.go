package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

const (
	testOperatorID = oicp.OperatorID("DE*ABC")
	testEVSEID     = oicp.EVSEID("DE*ABC*E123456")
	testSessionID  = oicp.SessionID("b2688855-7f00-0002-6d8e-48d883f6abb6")
	testProviderID = oicp.ProviderID("DE*GDF")
)

func testIdentification() oicp.Identification {
	return oicp.NewRemoteIdentification("DE-GDF-C12345678-X")
}

func TestBaseEvent_Implementation(t *testing.T) {
	metadata := Metadata{
		Source:        "test-gateway",
		CorrelationID: stringPtr("corr-123"),
	}

	event := NewBaseEvent(EventTypeChargingStarted, testSessionID, EventSeverityInfo, metadata)

	assert.NotEmpty(t, event.GetID())
	assert.Equal(t, EventTypeChargingStarted, event.GetType())
	assert.Equal(t, testSessionID, event.GetSessionID())
	assert.Equal(t, EventSeverityInfo, event.GetSeverity())
	assert.Equal(t, "test-gateway", event.GetMetadata().Source)
	assert.Equal(t, ProtocolVersion, event.GetMetadata().ProtocolVersion)
	assert.WithinDuration(t, time.Now(), event.GetTimestamp(), time.Second)
}

func TestAuthorizationStartDecidedEvent(t *testing.T) {
	evseID := testEVSEID
	req := emp.NewAuthorizeStartRequest(testOperatorID, testIdentification())
	req.EvseID = &evseID
	req.SessionID = sessionIDPtr(testSessionID)

	empSessionID := oicp.EMPPartnerSessionID("emp-1")
	factory := NewEventFactory("pod-1")

	tests := []struct {
		name     string
		resp     *emp.AuthorizationStartResponse
		severity EventSeverity
		status   oicp.AuthorizationStatus
	}{
		{
			name:     "authorized",
			resp:     emp.AuthorizationStartAuthorized(req, testProviderID, &empSessionID, nil),
			severity: EventSeverityInfo,
			status:   oicp.AuthorizationStatusAuthorized,
		},
		{
			name:     "not authorized",
			resp:     emp.AuthorizationStartNotAuthorized(req, nil, oicp.StatusCodeNoPositiveAuthentication, "unknown identification"),
			severity: EventSeverityWarning,
			status:   oicp.AuthorizationStatusNotAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := factory.CreateAuthorizationStartDecidedEvent(req, tt.resp, Metadata{})

			assert.Equal(t, EventTypeAuthorizationStartDecided, event.GetType())
			assert.Equal(t, testSessionID, event.GetSessionID())
			assert.Equal(t, tt.severity, event.GetSeverity())
			assert.Equal(t, "pod-1", event.GetMetadata().Source)
			assert.Equal(t, req.EventTrackingID, event.GetMetadata().EventTrackingID)

			info, ok := event.GetPayload().(AuthorizationInfo)
			require.True(t, ok)
			assert.Equal(t, AuthorizationOperationStart, info.Operation)
			assert.Equal(t, tt.status, info.Status)
			assert.Equal(t, tt.status == oicp.AuthorizationStatusAuthorized, info.Authorized())
			assert.Equal(t, "EVCO:DE-GDF-C12345678-X", info.Identification)
		})
	}
}

func TestAuthorizationStopDecidedEvent(t *testing.T) {
	req := emp.NewAuthorizeStopRequest(testOperatorID, testSessionID, testIdentification())
	resp := emp.AuthorizationStopAuthorized(req, testProviderID)

	event := NewEventFactory("pod-1").CreateAuthorizationStopDecidedEvent(req, resp, Metadata{})

	assert.Equal(t, EventTypeAuthorizationStopDecided, event.GetType())
	assert.Equal(t, testSessionID, event.GetSessionID())
	assert.Equal(t, AuthorizationOperationStop, event.Authorization.Operation)
	assert.Equal(t, oicp.StatusCodeSuccess, event.Authorization.StatusCode)

	data, err := event.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"authorization.stop_decided"`)
	assert.Contains(t, string(data), `"operator_id":"DE*ABC"`)
}

func TestChargeDetailRecordReceivedEvent(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cdr := oicp.ChargeDetailRecord{
		SessionID:      testSessionID,
		EvseID:         testEVSEID,
		Identification: testIdentification(),
		ChargingStart:  oicp.NewDateTime(start),
		ChargingEnd:    oicp.NewDateTime(start.Add(time.Hour)),
		SessionStart:   oicp.NewDateTime(start),
		SessionEnd:     oicp.NewDateTime(start.Add(time.Hour)),
		ConsumedEnergy: 11.5,
	}
	req := emp.NewChargeDetailRecordRequest(testOperatorID, cdr)

	event := NewEventFactory("pod-1").CreateChargeDetailRecordReceivedEvent(req, Metadata{})

	assert.Equal(t, EventTypeChargeDetailRecordReceived, event.GetType())
	assert.Equal(t, testSessionID, event.GetSessionID())
	assert.Equal(t, cdr, event.GetPayload())

	data, err := event.ToJSON()
	require.NoError(t, err)

	var decoded ChargeDetailRecordReceivedEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.GetID(), decoded.GetID())
	assert.True(t, event.Record.Equal(decoded.Record))
}

func TestChargingNotificationEvent(t *testing.T) {
	now := oicp.NewDateTime(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	factory := NewEventFactory("pod-1")

	tests := []struct {
		name         string
		notification emp.ChargingNotification
		eventType    EventType
		severity     EventSeverity
	}{
		{
			name:         "start",
			notification: emp.NewChargingStartNotificationRequest(testSessionID, testEVSEID, now),
			eventType:    EventTypeChargingStarted,
			severity:     EventSeverityInfo,
		},
		{
			name:         "end",
			notification: emp.NewChargingEndNotificationRequest(testSessionID, testEVSEID, now),
			eventType:    EventTypeChargingEnded,
			severity:     EventSeverityInfo,
		},
		{
			name:         "error",
			notification: emp.NewChargingErrorNotificationRequest(testSessionID, testEVSEID, oicp.ErrorClassConnectorError),
			eventType:    EventTypeChargingError,
			severity:     EventSeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, ok := factory.CreateChargingNotificationEvent(tt.notification, Metadata{})
			require.True(t, ok)

			assert.Equal(t, tt.eventType, event.GetType())
			assert.Equal(t, tt.severity, event.GetSeverity())
			assert.Equal(t, testSessionID, event.GetSessionID())
			assert.Equal(t, testEVSEID, event.EvseID)

			data, err := event.ToJSON()
			require.NoError(t, err)
			assert.Contains(t, string(data), `"notification":{"Type":"`)
		})
	}
}

func TestNotificationEventType_Unknown(t *testing.T) {
	_, ok := NotificationEventType("Paused")
	assert.False(t, ok)
}

func TestRemoteCommandEvent(t *testing.T) {
	factory := NewEventFactory("pod-1")
	processID := oicp.ProcessID("proc-1")

	executed := factory.CreateRemoteCommandEvent(testSessionID, CommandInfo{
		Name:       "AuthorizeRemoteStart",
		Result:     true,
		StatusCode: oicp.StatusCodeSuccess,
		ProcessID:  &processID,
	}, Metadata{})
	assert.Equal(t, EventTypeRemoteCommandExecuted, executed.GetType())
	assert.Equal(t, EventSeverityInfo, executed.GetSeverity())
	assert.Equal(t, &processID, executed.GetMetadata().ProcessID)

	failed := factory.CreateRemoteCommandEvent(testSessionID, CommandInfo{
		Name:  "AuthorizeRemoteStop",
		Error: "connection refused",
	}, Metadata{})
	assert.Equal(t, EventTypeRemoteCommandFailed, failed.GetType())
	assert.Equal(t, EventSeverityWarning, failed.GetSeverity())
}

func TestProtocolErrorEvent(t *testing.T) {
	factory := NewEventFactory("pod-1")
	info := ErrorInfo{Code: oicp.StatusCodeDataError, Message: "bad EvseID", Route: "authorize/start"}

	event := factory.CreateProtocolErrorEvent(info, []byte(`{"OperatorID":"DE*ABC"}`), Metadata{})
	assert.Equal(t, EventTypeProtocolError, event.GetType())
	assert.Equal(t, EventSeverityError, event.GetSeverity())
	assert.Empty(t, event.GetSessionID())

	data, err := event.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"original_message":{"OperatorID":"DE*ABC"}`)

	// 非JSON的原始报文不写入事件
	garbage := factory.CreateProtocolErrorEvent(info, []byte("{not json"), Metadata{})
	assert.Nil(t, garbage.OriginalMessage)
	_, err = garbage.ToJSON()
	require.NoError(t, err)
}

// 辅助函数
func stringPtr(s string) *string {
	return &s
}

func sessionIDPtr(id oicp.SessionID) *oicp.SessionID {
	return &id
}
