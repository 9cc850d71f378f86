package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

func TestNewValidator(t *testing.T) {
	validator := NewValidator()
	assert.NotNil(t, validator)
	assert.NotNil(t, validator.validate)
	assert.Same(t, Default(), Default())
}

func TestValidator_Identification(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		id      oicp.Identification
		wantTag string
	}{
		{
			name: "remote identification",
			id:   oicp.NewRemoteIdentification("DE-GDF-C12345678-X"),
		},
		{
			name: "mifare uid",
			id:   oicp.NewRFIDMifareFamilyIdentification("1234ABCD"),
		},
		{
			name:    "invalid uid",
			id:      oicp.NewRFIDMifareFamilyIdentification("XYZ"),
			wantTag: "oicp_uid",
		},
		{
			name: "two variants",
			id: oicp.Identification{
				RemoteIdentification:        &oicp.RemoteIdentification{EvcoID: "DE-GDF-C12345678-X"},
				PlugAndChargeIdentification: &oicp.PlugAndChargeIdentification{EvcoID: "DE-GDF-C12345678-X"},
			},
			wantTag: "oicp_one_of",
		},
		{
			name:    "no variant",
			id:      oicp.Identification{},
			wantTag: "oicp_one_of",
		},
		{
			name:    "unknown hash function",
			id:      oicp.NewQRCodeIdentification("DE-GDF-C12345678-X", &oicp.HashedPIN{Value: "abc", Function: "MD5"}),
			wantTag: "oicp_enum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.id)
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}
			var errs ValidationErrors
			require.True(t, errors.As(err, &errs), "unexpected error %v", err)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantTag, errs[0].Tag)
		})
	}
}

func TestValidator_StatusCode(t *testing.T) {
	validator := NewValidator()

	assert.NoError(t, validator.ValidateStruct(oicp.NewStatusCode(oicp.StatusCodeSuccess, "")))

	err := validator.ValidateStruct(oicp.StatusCode{Code: "999"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Field 'Code' has an unknown value '999'")

	err = validator.ValidateStruct(oicp.StatusCode{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Field 'Code' is required")
}

func TestValidator_ChargeDetailRecord(t *testing.T) {
	validator := NewValidator()
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	cdr := oicp.ChargeDetailRecord{
		SessionID:      "b2688855-7f00-0002-6d8e-48d883f6abb6",
		EvseID:         "DE*ABC*E123456",
		Identification: oicp.NewRFIDMifareFamilyIdentification("1234ABCD"),
		ChargingStart:  oicp.NewDateTime(start),
		ChargingEnd:    oicp.NewDateTime(start.Add(time.Hour)),
		SessionStart:   oicp.NewDateTime(start),
		SessionEnd:     oicp.NewDateTime(start.Add(time.Hour)),
		ConsumedEnergy: 11,
	}
	require.NoError(t, validator.ValidateStruct(cdr))

	cdr.ChargingEnd = oicp.NewDateTime(start.Add(-time.Minute))
	cdr.EvseID = "invalid"
	err := validator.ValidateStruct(cdr)

	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.ElementsMatch(t, []string{"EvseID", "ChargingEnd"}, errs.Fields())
}

func TestValidator_ValidateURLMatch(t *testing.T) {
	validator := NewValidator()

	assert.NoError(t, validator.ValidateURLMatch("ProviderID", "", "DE*GDF"))
	assert.NoError(t, validator.ValidateURLMatch("ProviderID", "DE*GDF", "DE*GDF"))

	err := validator.ValidateURLMatch("ProviderID", "DE*ABC", "DE*GDF")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "url_match", err.(ValidationError).Tag)
}

func TestValidator_ValidatePaging(t *testing.T) {
	validator := NewValidator()
	intPtr := func(i int) *int { return &i }

	tests := []struct {
		name    string
		page    *int
		size    *int
		wantErr bool
	}{
		{name: "unset"},
		{name: "first page", page: intPtr(0), size: intPtr(100)},
		{name: "max size", size: intPtr(MaxPageSize)},
		{name: "negative page", page: intPtr(-1), wantErr: true},
		{name: "zero size", size: intPtr(0), wantErr: true},
		{name: "too large", size: intPtr(MaxPageSize + 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePaging(tt.page, tt.size)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ValidateTimeRangeAndCount(t *testing.T) {
	validator := NewValidator()
	now := time.Now()

	assert.NoError(t, validator.ValidateTimeRange("From", "To", now, now))
	assert.Error(t, validator.ValidateTimeRange("From", "To", now, now.Add(-time.Second)))

	assert.NoError(t, validator.ValidateCount("EvseID", 1, 1, 100))
	assert.Error(t, validator.ValidateCount("EvseID", 0, 1, 100))
	assert.Error(t, validator.ValidateCount("EvseID", 101, 1, 100))
}

func TestValidator_ValidateMessageSize(t *testing.T) {
	validator := NewValidator()

	assert.NoError(t, validator.ValidateMessageSize([]byte("small"), 10))
	err := validator.ValidateMessageSize([]byte("this message is too long"), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum allowed size")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}
	assert.Equal(t, "first; second", errs.Error())
	assert.Equal(t, []string{"a", "b"}, errs.Fields())
}
