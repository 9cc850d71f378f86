package oicp

import (
	"encoding/json"
	"time"
)

// MeteringStatus 签名计量值对应的阶段
type MeteringStatus string

const (
	MeteringStatusStart    MeteringStatus = "Start"
	MeteringStatusProgress MeteringStatus = "Progress"
	MeteringStatusEnd      MeteringStatus = "End"
)

var meteringStatuses = newEnumSet(MeteringStatusStart, MeteringStatusProgress, MeteringStatusEnd)

// IsValid 检查计量阶段是否有效
func (m MeteringStatus) IsValid() bool { return meteringStatuses.contains(m) }

// MeterValueInBetween 充电过程中的中间电表读数
type MeterValueInBetween struct {
	MeterValues []float64 `json:"meterValues" validate:"required,min=1"`
}

// Equal 比较两组中间读数
func (m MeterValueInBetween) Equal(other MeterValueInBetween) bool {
	return EqualSlice(m.MeterValues, other.MeterValues)
}

// SignedMeteringValue 签名计量值
type SignedMeteringValue struct {
	SignedMeteringValue *string         `json:"SignedMeteringValue,omitempty" validate:"omitempty,max=3000"`
	MeteringStatus      *MeteringStatus `json:"MeteringStatus,omitempty" validate:"omitempty,oicp_enum"`
}

// Equal 比较两个签名计量值
func (s SignedMeteringValue) Equal(other SignedMeteringValue) bool {
	return equalPtr(s.SignedMeteringValue, other.SignedMeteringValue) &&
		equalPtr(s.MeteringStatus, other.MeteringStatus)
}

// CalibrationLawVerification 计量法校验信息
type CalibrationLawVerification struct {
	CalibrationLawCertificateID                 *string `json:"CalibrationLawCertificateID,omitempty" validate:"omitempty,max=100"`
	PublicKey                                   *string `json:"PublicKey,omitempty" validate:"omitempty,max=1000"`
	MeteringSignatureURL                        *string `json:"MeteringSignatureUrl,omitempty" validate:"omitempty,max=200"`
	MeteringSignatureEncodingFormat             *string `json:"MeteringSignatureEncodingFormat,omitempty" validate:"omitempty,max=50"`
	SignedMeteringValuesVerificationInstruction *string `json:"SignedMeteringValuesVerificationInstruction,omitempty" validate:"omitempty,max=400"`
}

// Equal 比较两个校验信息
func (c CalibrationLawVerification) Equal(other CalibrationLawVerification) bool {
	return equalPtr(c.CalibrationLawCertificateID, other.CalibrationLawCertificateID) &&
		equalPtr(c.PublicKey, other.PublicKey) &&
		equalPtr(c.MeteringSignatureURL, other.MeteringSignatureURL) &&
		equalPtr(c.MeteringSignatureEncodingFormat, other.MeteringSignatureEncodingFormat) &&
		equalPtr(c.SignedMeteringValuesVerificationInstruction, other.SignedMeteringValuesVerificationInstruction)
}

// ChargeDetailRecord 充电详单
type ChargeDetailRecord struct {
	SessionID                      SessionID                   `json:"SessionID" validate:"required,oicp_session_id"`
	CPOPartnerSessionID            *CPOPartnerSessionID        `json:"CPOPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	EMPPartnerSessionID            *EMPPartnerSessionID        `json:"EMPPartnerSessionID,omitempty" validate:"omitempty,max=250"`
	PartnerProductID               *PartnerProductID           `json:"PartnerProductID,omitempty" validate:"omitempty,max=100"`
	EvseID                         EVSEID                      `json:"EvseID" validate:"required,oicp_evse_id"`
	Identification                 Identification              `json:"Identification" validate:"required"`
	ChargingStart                  DateTime                    `json:"ChargingStart" validate:"required"`
	ChargingEnd                    DateTime                    `json:"ChargingEnd" validate:"required"`
	SessionStart                   DateTime                    `json:"SessionStart" validate:"required"`
	SessionEnd                     DateTime                    `json:"SessionEnd" validate:"required"`
	MeterValueStart                *float64                    `json:"MeterValueStart,omitempty" validate:"omitempty,gte=0"`
	MeterValueEnd                  *float64                    `json:"MeterValueEnd,omitempty" validate:"omitempty,gte=0"`
	MeterValueInBetween            *MeterValueInBetween        `json:"MeterValueInBetween,omitempty"`
	ConsumedEnergy                 float64                     `json:"ConsumedEnergy" validate:"gte=0"`
	SignedMeteringValues           []SignedMeteringValue       `json:"SignedMeteringValues,omitempty" validate:"omitempty,max=10,dive"`
	CalibrationLawVerificationInfo *CalibrationLawVerification `json:"CalibrationLawVerificationInfo,omitempty"`
	HubOperatorID                  *OperatorID                 `json:"HubOperatorID,omitempty" validate:"omitempty,oicp_operator_id"`
	HubProviderID                  *ProviderID                 `json:"HubProviderID,omitempty" validate:"omitempty,oicp_provider_id"`
}

// UnmarshalJSON 检查消耗电量字段是否存在
func (c *ChargeDetailRecord) UnmarshalJSON(data []byte) error {
	type alias ChargeDetailRecord
	if err := RequireFields(data, "ChargeDetailRecord", "ConsumedEnergy"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*alias)(c))
}

// Equal 比较两张充电详单
func (c ChargeDetailRecord) Equal(other ChargeDetailRecord) bool {
	return c.SessionID == other.SessionID &&
		equalPtr(c.CPOPartnerSessionID, other.CPOPartnerSessionID) &&
		equalPtr(c.EMPPartnerSessionID, other.EMPPartnerSessionID) &&
		equalPtr(c.PartnerProductID, other.PartnerProductID) &&
		c.EvseID == other.EvseID &&
		c.Identification.Equal(other.Identification) &&
		c.ChargingStart.Equal(other.ChargingStart) &&
		c.ChargingEnd.Equal(other.ChargingEnd) &&
		c.SessionStart.Equal(other.SessionStart) &&
		c.SessionEnd.Equal(other.SessionEnd) &&
		equalPtr(c.MeterValueStart, other.MeterValueStart) &&
		equalPtr(c.MeterValueEnd, other.MeterValueEnd) &&
		EqualRecordPtr(c.MeterValueInBetween, other.MeterValueInBetween) &&
		c.ConsumedEnergy == other.ConsumedEnergy &&
		EqualRecords(c.SignedMeteringValues, other.SignedMeteringValues) &&
		EqualRecordPtr(c.CalibrationLawVerificationInfo, other.CalibrationLawVerificationInfo) &&
		equalPtr(c.HubOperatorID, other.HubOperatorID) &&
		equalPtr(c.HubProviderID, other.HubProviderID)
}

// Duration 充电时长
func (c ChargeDetailRecord) Duration() time.Duration {
	return c.ChargingEnd.Sub(c.ChargingStart.Time)
}
