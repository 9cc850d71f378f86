package oicp

import "encoding/json"

// Period 时间段，格式为 "HH:MM"
type Period struct {
	Begin string `json:"begin" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
}

// OpeningTimes 营业时间
type OpeningTimes struct {
	Period []Period  `json:"Period" validate:"required,min=1,dive"`
	On     DayOfWeek `json:"on" validate:"required,oicp_enum"`
}

// Equal 比较两个营业时间
func (o OpeningTimes) Equal(other OpeningTimes) bool {
	return o.On == other.On && EqualSlice(o.Period, other.Period)
}

// ChargingFacility 充电设施参数
type ChargingFacility struct {
	PowerType PowerType `json:"PowerType" validate:"required,oicp_enum"`
	Voltage   *int      `json:"Voltage,omitempty" validate:"omitempty,min=0"`
	Amperage  *int      `json:"Amperage,omitempty" validate:"omitempty,min=0"`
	// 功率，单位kW
	Power float64 `json:"Power" validate:"gt=0"`
}

// Equal 比较两个充电设施
func (c ChargingFacility) Equal(other ChargingFacility) bool {
	return c.PowerType == other.PowerType &&
		equalPtr(c.Voltage, other.Voltage) &&
		equalPtr(c.Amperage, other.Amperage) &&
		c.Power == other.Power
}

// EVSEDataRecord 充电点静态数据
type EVSEDataRecord struct {
	DeltaType                      *DeltaType                     `json:"deltaType,omitempty" validate:"omitempty,oicp_enum"`
	LastUpdate                     *DateTime                      `json:"lastUpdate,omitempty"`
	EvseID                         EVSEID                         `json:"EvseID" validate:"required,oicp_evse_id"`
	ChargingPoolID                 *ChargingPoolID                `json:"ChargingPoolID,omitempty" validate:"omitempty,max=250"`
	ChargingStationID              *ChargingStationID             `json:"ChargingStationID,omitempty" validate:"omitempty,max=50"`
	ChargingStationNames           []InfoText                     `json:"ChargingStationNames" validate:"required,min=1,dive"`
	HardwareManufacturer           *string                        `json:"HardwareManufacturer,omitempty" validate:"omitempty,max=50"`
	ChargingStationImage           *string                        `json:"ChargingStationImage,omitempty" validate:"omitempty,max=200"`
	SubOperatorName                *string                        `json:"SubOperatorName,omitempty" validate:"omitempty,max=100"`
	Address                        Address                        `json:"Address"`
	GeoCoordinates                 GeoCoordinates                 `json:"GeoCoordinates"`
	Plugs                          []PlugType                     `json:"Plugs" validate:"required,min=1,dive,oicp_enum"`
	DynamicPowerLevel              *bool                          `json:"DynamicPowerLevel,omitempty"`
	ChargingFacilities             []ChargingFacility             `json:"ChargingFacilities" validate:"required,min=1,dive"`
	RenewableEnergy                bool                           `json:"RenewableEnergy"`
	CalibrationLawDataAvailability CalibrationLawDataAvailability `json:"CalibrationLawDataAvailability" validate:"required,oicp_enum"`
	AuthenticationModes            []AuthenticationMode           `json:"AuthenticationModes" validate:"required,min=1,dive,oicp_enum"`
	MaxCapacity                    *int                           `json:"MaxCapacity,omitempty" validate:"omitempty,min=0"`
	PaymentOptions                 []PaymentOption                `json:"PaymentOptions" validate:"required,min=1,dive,oicp_enum"`
	ValueAddedServices             []ValueAddedService            `json:"ValueAddedServices" validate:"required,min=1,dive,oicp_enum"`
	Accessibility                  AccessibilityType              `json:"Accessibility" validate:"required,oicp_enum"`
	HotlinePhoneNumber             string                         `json:"HotlinePhoneNumber" validate:"required,max=20"`
	AdditionalInfo                 []InfoText                     `json:"AdditionalInfo,omitempty" validate:"omitempty,dive"`
	IsOpen24Hours                  bool                           `json:"IsOpen24Hours"`
	OpeningTimes                   []OpeningTimes                 `json:"OpeningTimes,omitempty" validate:"omitempty,dive"`
	HubOperatorID                  *OperatorID                    `json:"HubOperatorID,omitempty" validate:"omitempty,oicp_operator_id"`
	ClearinghouseID                *string                        `json:"ClearinghouseID,omitempty" validate:"omitempty,max=20"`
	IsHubjectCompatible            bool                           `json:"IsHubjectCompatible"`
	DynamicInfoAvailable           DynamicInfoAvailable           `json:"DynamicInfoAvailable" validate:"required,oicp_enum"`
}

// UnmarshalJSON 检查零值合法的必填字段后解码
func (r *EVSEDataRecord) UnmarshalJSON(data []byte) error {
	type alias EVSEDataRecord
	if err := RequireFields(data, "EVSEDataRecord",
		"Address", "GeoCoordinates", "RenewableEnergy", "IsOpen24Hours", "IsHubjectCompatible"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*alias)(r))
}

// Equal 比较两个EVSE数据记录
func (r EVSEDataRecord) Equal(other EVSEDataRecord) bool {
	return equalPtr(r.DeltaType, other.DeltaType) &&
		EqualRecordPtr(r.LastUpdate, other.LastUpdate) &&
		r.EvseID == other.EvseID &&
		equalPtr(r.ChargingPoolID, other.ChargingPoolID) &&
		equalPtr(r.ChargingStationID, other.ChargingStationID) &&
		EqualSlice(r.ChargingStationNames, other.ChargingStationNames) &&
		equalPtr(r.HardwareManufacturer, other.HardwareManufacturer) &&
		equalPtr(r.ChargingStationImage, other.ChargingStationImage) &&
		equalPtr(r.SubOperatorName, other.SubOperatorName) &&
		r.Address.Equal(other.Address) &&
		r.GeoCoordinates.Equal(other.GeoCoordinates) &&
		EqualSlice(r.Plugs, other.Plugs) &&
		equalPtr(r.DynamicPowerLevel, other.DynamicPowerLevel) &&
		EqualRecords(r.ChargingFacilities, other.ChargingFacilities) &&
		r.RenewableEnergy == other.RenewableEnergy &&
		r.CalibrationLawDataAvailability == other.CalibrationLawDataAvailability &&
		EqualSlice(r.AuthenticationModes, other.AuthenticationModes) &&
		equalPtr(r.MaxCapacity, other.MaxCapacity) &&
		EqualSlice(r.PaymentOptions, other.PaymentOptions) &&
		EqualSlice(r.ValueAddedServices, other.ValueAddedServices) &&
		r.Accessibility == other.Accessibility &&
		r.HotlinePhoneNumber == other.HotlinePhoneNumber &&
		EqualSlice(r.AdditionalInfo, other.AdditionalInfo) &&
		r.IsOpen24Hours == other.IsOpen24Hours &&
		EqualRecords(r.OpeningTimes, other.OpeningTimes) &&
		equalPtr(r.HubOperatorID, other.HubOperatorID) &&
		equalPtr(r.ClearinghouseID, other.ClearinghouseID) &&
		r.IsHubjectCompatible == other.IsHubjectCompatible &&
		r.DynamicInfoAvailable == other.DynamicInfoAvailable
}

// OperatorID 从EVSE标识推导运营商
func (r EVSEDataRecord) OperatorID() OperatorID {
	return r.EvseID.OperatorID()
}

// OperatorEVSEData 按运营商分组的充电点数据
type OperatorEVSEData struct {
	OperatorID     OperatorID       `json:"OperatorID" validate:"required,oicp_operator_id"`
	OperatorName   string           `json:"OperatorName" validate:"required,max=100"`
	EvseDataRecord []EVSEDataRecord `json:"EvseDataRecord" validate:"dive"`
}

// Equal 比较两个运营商数据集合
func (o OperatorEVSEData) Equal(other OperatorEVSEData) bool {
	return o.OperatorID == other.OperatorID &&
		o.OperatorName == other.OperatorName &&
		EqualRecords(o.EvseDataRecord, other.EvseDataRecord)
}

// GroupByOperator 按EVSE标识中的运营商对数据记录分组，保持首次出现的顺序
func GroupByOperator(records []EVSEDataRecord) []OperatorEVSEData {
	var groups []OperatorEVSEData
	index := make(map[OperatorID]int)
	for _, r := range records {
		op := r.OperatorID()
		i, ok := index[op]
		if !ok {
			i = len(groups)
			index[op] = i
			name := ""
			if r.SubOperatorName != nil {
				name = *r.SubOperatorName
			}
			groups = append(groups, OperatorEVSEData{OperatorID: op, OperatorName: name})
		}
		groups[i].EvseDataRecord = append(groups[i].EvseDataRecord, r)
	}
	return groups
}
