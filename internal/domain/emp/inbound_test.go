package emp

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

const authorizeStartJSON = `{
	"OperatorID": "DE*ABC",
	"EvseID": "DE*ABC*E123456",
	"SessionID": "b2688855-7f00-0002-6d8e-48d883f6abb6",
	"CPOPartnerSessionID": "cpo-4711",
	"Identification": {"RFIDMifareFamilyIdentification": {"UID": "1234ABCD"}}
}`

func TestAuthorizeStartRequest_Parse(t *testing.T) {
	req, err := ParseAuthorizeStartRequest([]byte(authorizeStartJSON), testOperatorID)
	require.NoError(t, err)
	assert.Equal(t, testOperatorID, req.OperatorID)
	assert.Equal(t, "UID:1234ABCD", req.Identification.Key())
	require.NotNil(t, req.SessionID)
	assert.Equal(t, testSessionID, *req.SessionID)

	data, err := req.ToJSON()
	require.NoError(t, err)
	again, ok := TryParseAuthorizeStartRequest(data, testOperatorID)
	require.True(t, ok)
	assert.True(t, req.Equal(again))
	assert.Equal(t, req.HashCode(), again.HashCode())

	_, err = ParseAuthorizeStartRequest([]byte(authorizeStartJSON), "DE*XYZ")
	assert.Error(t, err)
}

func TestAuthorizeStartRequest_TwoIdentifications(t *testing.T) {
	body := `{"OperatorID":"DE*ABC","Identification":{
		"RFIDMifareFamilyIdentification":{"UID":"1234ABCD"},
		"RemoteIdentification":{"EvcoID":"DE-GDF-C12345678-X"}}}`
	_, err := ParseAuthorizeStartRequest([]byte(body), testOperatorID)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.True(t, pe.IsValidation())
}

func TestAuthorizationStartResponse(t *testing.T) {
	req, err := ParseAuthorizeStartRequest([]byte(authorizeStartJSON), testOperatorID)
	require.NoError(t, err)

	t.Run("authorized", func(t *testing.T) {
		empSession := oicp.EMPPartnerSessionID("emp-0815")
		resp := AuthorizationStartAuthorized(req, testProviderID, &empSession, []oicp.Identification{testIdentification()})
		require.NoError(t, resp.Validate())
		assert.True(t, resp.IsAuthorized())
		assert.Equal(t, req.SessionID, resp.SessionID)
		assert.Equal(t, req.CPOPartnerSessionID, resp.CPOPartnerSessionID)
		assert.Equal(t, req.EventTrackingID, resp.EventTrackingID)

		data, err := resp.ToJSON()
		require.NoError(t, err)
		parsed, err := ParseAuthorizationStartResponse(req, data)
		require.NoError(t, err)
		assert.True(t, resp.Equal(parsed))
		assert.Equal(t, resp.HashCode(), parsed.HashCode())
	})

	t.Run("not authorized", func(t *testing.T) {
		resp := AuthorizationStartNotAuthorized(req, nil, oicp.StatusCodeNoPositiveAuthentication, "unknown card")
		require.NoError(t, resp.Validate())
		assert.False(t, resp.IsAuthorized())

		data, err := resp.ToJSON()
		require.NoError(t, err)
		var wire map[string]any
		require.NoError(t, json.Unmarshal(data, &wire))
		assert.Equal(t, "NotAuthorized", wire["AuthorizationStatus"])
		assert.NotContains(t, wire, "ProviderID")
		assert.NotContains(t, wire, "AuthorizationStopIdentifications")
	})

	t.Run("builder requires status", func(t *testing.T) {
		b := NewAuthorizationStartResponseBuilder(req)
		_, err := b.Build()
		require.Error(t, err)

		b.AuthorizationStatus = oicp.AuthorizationStatusAuthorized
		b.StatusCode = oicp.NewStatusCode(oicp.StatusCodeSuccess, "")
		resp, err := b.Build()
		require.NoError(t, err)

		modified := resp.ToBuilder()
		modified.AuthorizationStatus = oicp.AuthorizationStatusNotAuthorized
		other, err := modified.Build()
		require.NoError(t, err)
		assert.False(t, resp.Equal(other))
	})

	t.Run("too many stop identifications", func(t *testing.T) {
		ids := make([]oicp.Identification, MaxAuthorizationStopIdentifications+1)
		for i := range ids {
			ids[i] = testIdentification()
		}
		resp := AuthorizationStartAuthorized(req, testProviderID, nil, ids)
		assert.Error(t, resp.Validate())
	})
}

func TestAuthorizeStop(t *testing.T) {
	body := `{"OperatorID":"DE*ABC","SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6",
		"Identification":{"RFIDMifareFamilyIdentification":{"UID":"1234ABCD"}}}`
	req, err := ParseAuthorizeStopRequest([]byte(body), testOperatorID)
	require.NoError(t, err)

	resp := AuthorizationStopAuthorized(req, testProviderID)
	require.NoError(t, resp.Validate())
	require.NotNil(t, resp.SessionID)
	assert.Equal(t, testSessionID, *resp.SessionID)

	denied := AuthorizationStopNotAuthorized(req, nil, oicp.StatusCodeSessionIsInvalid, "")
	assert.False(t, denied.IsAuthorized())
	assert.False(t, resp.Equal(denied))

	_, err = ParseAuthorizeStopRequest([]byte(`{"OperatorID":"DE*ABC","Identification":{"RFIDMifareFamilyIdentification":{"UID":"1234ABCD"}}}`), testOperatorID)
	assert.Error(t, err)
}

const chargeDetailRecordJSON = `{
	"SessionID": "b2688855-7f00-0002-6d8e-48d883f6abb6",
	"EvseID": "DE*ABC*E123456",
	"Identification": {"RemoteIdentification": {"EvcoID": "DE-GDF-C12345678-X"}},
	"ChargingStart": "2024-03-01T10:00:00Z",
	"ChargingEnd": "2024-03-01T11:30:00Z",
	"SessionStart": "2024-03-01T09:58:00Z",
	"SessionEnd": "2024-03-01T11:32:00Z",
	"ConsumedEnergy": 17.5
}`

func TestChargeDetailRecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		operatorID oicp.OperatorID
		wantErr    bool
	}{
		{name: "matching operator", operatorID: testOperatorID},
		{name: "operator without separator", operatorID: "DEABC"},
		{name: "no operator", operatorID: ""},
		{name: "foreign operator", operatorID: "DE*XYZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseChargeDetailRecordRequest([]byte(chargeDetailRecordJSON), tt.operatorID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 90*time.Minute, req.ChargeDetailRecord.Duration())
			assert.Equal(t, 17.5, req.ChargeDetailRecord.ConsumedEnergy)
		})
	}
}

func TestChargeDetailRecordRequest_OperatorFromEVSE(t *testing.T) {
	tests := []struct {
		evseID     string
		operatorID oicp.OperatorID
		wantErr    bool
	}{
		{evseID: "DE*ENB*E123456", operatorID: "DE*ENB"},
		{evseID: "DE*ENB*E123456", operatorID: "DEENB"},
		{evseID: "DE*ABCE123456", operatorID: "DE*ABC"},
		{evseID: "DEABCE123456", operatorID: "DE*ABC"},
		{evseID: "DEEEEE1", operatorID: "DE*EEE"},
		{evseID: "+49*810*000*438", operatorID: "+49*810"},
		{evseID: "DE*ENB*E123456", operatorID: "DE*ABC", wantErr: true},
		{evseID: "+49*810*000*438", operatorID: "+49*811", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.evseID+"@"+string(tt.operatorID), func(t *testing.T) {
			var record map[string]any
			require.NoError(t, json.Unmarshal([]byte(chargeDetailRecordJSON), &record))
			record["EvseID"] = tt.evseID
			data, err := json.Marshal(record)
			require.NoError(t, err)

			req, err := ParseChargeDetailRecordRequest(data, tt.operatorID)
			if tt.wantErr {
				var pe *ParseError
				require.True(t, errors.As(err, &pe))
				assert.True(t, pe.IsValidation())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, oicp.EVSEID(tt.evseID), req.ChargeDetailRecord.EvseID)
		})
	}
}

func TestChargeDetailRecordRequest_BodyIsRecord(t *testing.T) {
	req, err := ParseChargeDetailRecordRequest([]byte(chargeDetailRecordJSON), testOperatorID)
	require.NoError(t, err)

	data, err := req.ToJSON()
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "DE*ABC*E123456", wire["EvseID"])
	assert.NotContains(t, wire, "OperatorID")

	again, err := ParseChargeDetailRecordRequest(data, testOperatorID)
	require.NoError(t, err)
	assert.True(t, req.Equal(again))
	assert.Equal(t, req.HashCode(), again.HashCode())
}

func TestChargeDetailRecordRequest_Invalid(t *testing.T) {
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(chargeDetailRecordJSON), &record))

	delete(record, "ConsumedEnergy")
	data, err := json.Marshal(record)
	require.NoError(t, err)
	_, err = ParseChargeDetailRecordRequest(data, testOperatorID)
	assert.Error(t, err)

	record["ConsumedEnergy"] = 1.0
	record["ChargingEnd"] = "2024-03-01T09:00:00Z"
	data, err = json.Marshal(record)
	require.NoError(t, err)
	_, err = ParseChargeDetailRecordRequest(data, testOperatorID)
	assert.Error(t, err)
}

func TestParseChargingNotification(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType oicp.ChargingNotificationType
		wantErr  bool
	}{
		{
			name:     "start",
			body:     `{"Type":"Start","SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6","EvseID":"DE*ABC*E123456","ChargingStart":"2024-03-01T10:00:00Z","MeterValueStart":1200.5}`,
			wantType: oicp.ChargingNotificationStart,
		},
		{
			name:     "progress",
			body:     `{"Type":"Progress","SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6","EvseID":"DE*ABC*E123456","ChargingStart":"2024-03-01T10:00:00Z","EventOccurred":"2024-03-01T10:15:00Z","ConsumedEnergyProgress":3.2,"MeterValueInBetween":{"meterValues":[1201.1,1203.7]}}`,
			wantType: oicp.ChargingNotificationProgress,
		},
		{
			name:     "end",
			body:     `{"Type":"End","SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6","EvseID":"DE*ABC*E123456","ChargingStart":"2024-03-01T10:00:00Z","ChargingEnd":"2024-03-01T11:00:00Z","ConsumedEnergy":12.1}`,
			wantType: oicp.ChargingNotificationEnd,
		},
		{
			name:     "error",
			body:     `{"Type":"Error","SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6","EvseID":"DE*ABC*E123456","ErrorType":"ConnectorError","ErrorAdditionalInfo":"plug stuck"}`,
			wantType: oicp.ChargingNotificationError,
		},
		{
			name:    "unknown type",
			body:    `{"Type":"Pause","SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6","EvseID":"DE*ABC*E123456"}`,
			wantErr: true,
		},
		{
			name:    "start without charging start",
			body:    `{"Type":"Start","SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6","EvseID":"DE*ABC*E123456"}`,
			wantErr: true,
		},
		{
			name:    "end before start",
			body:    `{"Type":"End","SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6","EvseID":"DE*ABC*E123456","ChargingStart":"2024-03-01T10:00:00Z","ChargingEnd":"2024-03-01T09:00:00Z"}`,
			wantErr: true,
		},
		{name: "not json", body: `Start`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseChargingNotification([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, n)
				assert.True(t, IsParseError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, n.NotificationType())
			assert.Equal(t, testSessionID, n.Session())
			assert.Equal(t, testEVSEID, n.EVSE())

			data, err := n.ToJSON()
			require.NoError(t, err)
			again, err := ParseChargingNotification(data)
			require.NoError(t, err)
			assert.Equal(t, n.HashCode(), again.HashCode())
		})
	}
}

func TestParseChargingNotification_RejectedBeforeDispatch(t *testing.T) {
	oversized := `{"Type":"Start","EvseID":"` + strings.Repeat("E", MaxMessageSize) + `"}`

	tests := []struct {
		name           string
		body           string
		wantEmpty      bool
		wantValidation bool
	}{
		{name: "empty", body: "", wantEmpty: true},
		{name: "whitespace only", body: " \n\t ", wantEmpty: true},
		{name: "oversized", body: oversized, wantValidation: true},
		{name: "unknown type", body: `{"Type":"Pause"}`, wantValidation: true},
		{name: "missing type", body: `{"SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6"}`, wantValidation: true},
		{name: "malformed", body: `{"Type":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := metrics.MessagesParsed.WithLabelValues(chargingNotificationType, metrics.ResultFailure)
			before := testutil.ToFloat64(failures)

			n, err := ParseChargingNotification([]byte(tt.body))
			require.Error(t, err)
			assert.Nil(t, n)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, chargingNotificationType, perr.Type)
			assert.Equal(t, tt.wantEmpty, errors.Is(err, ErrEmptyBody))
			assert.Equal(t, tt.wantValidation, perr.IsValidation())
			assert.Equal(t, before+1, testutil.ToFloat64(failures))
		})
	}
}

func TestChargingProgressNotification_Elapsed(t *testing.T) {
	start := oicp.NewDateTime(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	n := NewChargingProgressNotificationRequest(testSessionID, testEVSEID, start, oicp.NewDateTime(start.Add(20*time.Minute)))
	require.NoError(t, n.Validate())
	assert.Equal(t, 20*time.Minute, n.Elapsed())

	ms := int64(5 * 60 * 1000)
	n.ChargingDuration = &ms
	assert.Equal(t, 5*time.Minute, n.Elapsed())
}

func TestChargingNotification_TypeMustMatch(t *testing.T) {
	n := NewChargingStartNotificationRequest(testSessionID, testEVSEID, oicp.Now())
	require.NoError(t, n.Validate())

	n.Type = oicp.ChargingNotificationEnd
	assert.Error(t, n.Validate())

	errNotification := NewChargingErrorNotificationRequest(testSessionID, testEVSEID, "Broken")
	assert.Error(t, errNotification.Validate())
}

func TestAcknowledgement_ForNotification(t *testing.T) {
	n := NewChargingEndNotificationRequest(testSessionID, testEVSEID, oicp.Now())
	var notification ChargingNotification = n

	ack := Success(notification, "")
	sessionID := n.SessionID
	ack.WithSession(&sessionID, nil, nil)
	require.NoError(t, ack.Validate())
	assert.Equal(t, n.EventTrackingID, ack.EventTrackingID)

	data, err := ack.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Result":true,"StatusCode":{"Code":"000"},"SessionID":"b2688855-7f00-0002-6d8e-48d883f6abb6"}`, string(data))
}
