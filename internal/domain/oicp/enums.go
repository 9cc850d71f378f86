package oicp

// enumSet 枚举合法值集合
type enumSet[T ~string] map[T]struct{}

func newEnumSet[T ~string](values ...T) enumSet[T] {
	set := make(enumSet[T], len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s enumSet[T]) contains(v T) bool {
	_, ok := s[v]
	return ok
}

// GeoCoordinatesResponseFormat 坐标响应格式
type GeoCoordinatesResponseFormat string

const (
	GeoFormatGoogle              GeoCoordinatesResponseFormat = "Google"
	GeoFormatDegreeMinuteSeconds GeoCoordinatesResponseFormat = "DegreeMinuteSeconds"
	GeoFormatDecimalDegree       GeoCoordinatesResponseFormat = "DecimalDegree"
)

var geoFormats = newEnumSet(GeoFormatGoogle, GeoFormatDegreeMinuteSeconds, GeoFormatDecimalDegree)

func (f GeoCoordinatesResponseFormat) IsValid() bool { return geoFormats.contains(f) }

// EVSEStatus 充电点状态
type EVSEStatus string

const (
	EVSEStatusAvailable    EVSEStatus = "Available"
	EVSEStatusReserved     EVSEStatus = "Reserved"
	EVSEStatusOccupied     EVSEStatus = "Occupied"
	EVSEStatusOutOfService EVSEStatus = "OutOfService"
	EVSEStatusEvseNotFound EVSEStatus = "EvseNotFound"
	EVSEStatusUnknown      EVSEStatus = "Unknown"
)

var evseStatuses = newEnumSet(EVSEStatusAvailable, EVSEStatusReserved, EVSEStatusOccupied,
	EVSEStatusOutOfService, EVSEStatusEvseNotFound, EVSEStatusUnknown)

func (s EVSEStatus) IsValid() bool { return evseStatuses.contains(s) }

// AuthorizationStatus 授权结果
type AuthorizationStatus string

const (
	AuthorizationStatusAuthorized    AuthorizationStatus = "Authorized"
	AuthorizationStatusNotAuthorized AuthorizationStatus = "NotAuthorized"
)

var authorizationStatuses = newEnumSet(AuthorizationStatusAuthorized, AuthorizationStatusNotAuthorized)

func (s AuthorizationStatus) IsValid() bool { return authorizationStatuses.contains(s) }

// ActionType 认证数据推送的操作类型
type ActionType string

const (
	ActionTypeFullLoad ActionType = "fullLoad"
	ActionTypeUpdate   ActionType = "update"
	ActionTypeInsert   ActionType = "insert"
	ActionTypeDelete   ActionType = "delete"
)

var actionTypes = newEnumSet(ActionTypeFullLoad, ActionTypeUpdate, ActionTypeInsert, ActionTypeDelete)

func (a ActionType) IsValid() bool { return actionTypes.contains(a) }

// DeltaType 增量数据的变更类型
type DeltaType string

const (
	DeltaTypeUpdate DeltaType = "update"
	DeltaTypeInsert DeltaType = "insert"
	DeltaTypeDelete DeltaType = "delete"
)

var deltaTypes = newEnumSet(DeltaTypeUpdate, DeltaTypeInsert, DeltaTypeDelete)

func (d DeltaType) IsValid() bool { return deltaTypes.contains(d) }

// AccessibilityType 可访问性
type AccessibilityType string

const (
	AccessibilityFreePubliclyAccessible   AccessibilityType = "Free publicly accessible"
	AccessibilityRestrictedAccess         AccessibilityType = "Restricted access"
	AccessibilityPayingPubliclyAccessible AccessibilityType = "Paying publicly accessible"
	AccessibilityTestStation              AccessibilityType = "Test Station"
)

var accessibilityTypes = newEnumSet(AccessibilityFreePubliclyAccessible, AccessibilityRestrictedAccess,
	AccessibilityPayingPubliclyAccessible, AccessibilityTestStation)

func (a AccessibilityType) IsValid() bool { return accessibilityTypes.contains(a) }

// AuthenticationMode 认证方式
type AuthenticationMode string

const (
	AuthenticationModeNFCRFIDClassic AuthenticationMode = "NFC RFID Classic"
	AuthenticationModeNFCRFIDDESFire AuthenticationMode = "NFC RFID DESFire"
	AuthenticationModePnC            AuthenticationMode = "PnC"
	AuthenticationModeRemote         AuthenticationMode = "REMOTE"
	AuthenticationModeDirectPayment  AuthenticationMode = "Direct Payment"
	AuthenticationModeNoAuthRequired AuthenticationMode = "No Authentication Required"
)

var authenticationModes = newEnumSet(AuthenticationModeNFCRFIDClassic, AuthenticationModeNFCRFIDDESFire,
	AuthenticationModePnC, AuthenticationModeRemote, AuthenticationModeDirectPayment, AuthenticationModeNoAuthRequired)

func (m AuthenticationMode) IsValid() bool { return authenticationModes.contains(m) }

// CalibrationLawDataAvailability 计量法数据可用性
type CalibrationLawDataAvailability string

const (
	CalibrationLawDataLocal        CalibrationLawDataAvailability = "Local"
	CalibrationLawDataExternal     CalibrationLawDataAvailability = "External"
	CalibrationLawDataNotAvailable CalibrationLawDataAvailability = "Not Available"
)

var calibrationLawDataAvailabilities = newEnumSet(CalibrationLawDataLocal, CalibrationLawDataExternal, CalibrationLawDataNotAvailable)

func (c CalibrationLawDataAvailability) IsValid() bool {
	return calibrationLawDataAvailabilities.contains(c)
}

// PaymentOption 支付方式
type PaymentOption string

const (
	PaymentOptionNoPayment PaymentOption = "No Payment"
	PaymentOptionDirect    PaymentOption = "Direct"
	PaymentOptionContract  PaymentOption = "Contract"
)

var paymentOptions = newEnumSet(PaymentOptionNoPayment, PaymentOptionDirect, PaymentOptionContract)

func (p PaymentOption) IsValid() bool { return paymentOptions.contains(p) }

// ValueAddedService 增值服务
type ValueAddedService string

const (
	ValueAddedServiceReservation                ValueAddedService = "Reservation"
	ValueAddedServiceDynamicPricing             ValueAddedService = "DynamicPricing"
	ValueAddedServiceParkingSensors             ValueAddedService = "ParkingSensors"
	ValueAddedServiceMaximumPowerCharging       ValueAddedService = "MaximumPowerCharging"
	ValueAddedServicePredictiveChargePointUsage ValueAddedService = "PredictiveChargePointUsage"
	ValueAddedServiceChargingPlans              ValueAddedService = "ChargingPlans"
	ValueAddedServiceRoofProvided               ValueAddedService = "RoofProvided"
	ValueAddedServiceNone                       ValueAddedService = "None"
)

var valueAddedServices = newEnumSet(ValueAddedServiceReservation, ValueAddedServiceDynamicPricing,
	ValueAddedServiceParkingSensors, ValueAddedServiceMaximumPowerCharging, ValueAddedServicePredictiveChargePointUsage,
	ValueAddedServiceChargingPlans, ValueAddedServiceRoofProvided, ValueAddedServiceNone)

func (v ValueAddedService) IsValid() bool { return valueAddedServices.contains(v) }

// PlugType 插头类型
type PlugType string

const (
	PlugSmallPaddleInductive PlugType = "Small Paddle Inductive"
	PlugLargePaddleInductive PlugType = "Large Paddle Inductive"
	PlugAVCONConnector       PlugType = "AVCON Connector"
	PlugTeslaConnector       PlugType = "Tesla Connector"
	PlugNEMA520              PlugType = "NEMA 5-20"
	PlugTypeEFrench          PlugType = "Type E French Standard"
	PlugTypeFSchuko          PlugType = "Type F Schuko"
	PlugTypeGBritish         PlugType = "Type G British Standard"
	PlugTypeJSwiss           PlugType = "Type J Swiss Standard"
	PlugType1Connector       PlugType = "Type 1 Connector (Cable Attached)"
	PlugType2Outlet          PlugType = "Type 2 Outlet"
	PlugType2Connector       PlugType = "Type 2 Connector (Cable Attached)"
	PlugType3Outlet          PlugType = "Type 3 Outlet"
	PlugIEC60309SinglePhase  PlugType = "IEC 60309 Single Phase"
	PlugIEC60309ThreePhase   PlugType = "IEC 60309 Three Phase"
	PlugCCSCombo2            PlugType = "CCS Combo 2 Plug (Cable Attached)"
	PlugCCSCombo1            PlugType = "CCS Combo 1 Plug (Cable Attached)"
	PlugCHAdeMO              PlugType = "CHAdeMO"
)

var plugTypes = newEnumSet(PlugSmallPaddleInductive, PlugLargePaddleInductive, PlugAVCONConnector,
	PlugTeslaConnector, PlugNEMA520, PlugTypeEFrench, PlugTypeFSchuko, PlugTypeGBritish, PlugTypeJSwiss,
	PlugType1Connector, PlugType2Outlet, PlugType2Connector, PlugType3Outlet, PlugIEC60309SinglePhase,
	PlugIEC60309ThreePhase, PlugCCSCombo2, PlugCCSCombo1, PlugCHAdeMO)

func (p PlugType) IsValid() bool { return plugTypes.contains(p) }

// PowerType 供电类型
type PowerType string

const (
	PowerTypeAC1Phase PowerType = "AC_1_PHASE"
	PowerTypeAC3Phase PowerType = "AC_3_PHASE"
	PowerTypeDC       PowerType = "DC"
)

var powerTypes = newEnumSet(PowerTypeAC1Phase, PowerTypeAC3Phase, PowerTypeDC)

func (p PowerType) IsValid() bool { return powerTypes.contains(p) }

// RFIDType RFID卡类型
type RFIDType string

const (
	RFIDTypeMifareClassic RFIDType = "mifareCls"
	RFIDTypeMifareDESFire RFIDType = "mifareDes"
	RFIDTypeCalypso       RFIDType = "calypso"
	RFIDTypeNFC           RFIDType = "nfc"
	RFIDTypeMifareFamily  RFIDType = "mifareFamily"
)

var rfidTypes = newEnumSet(RFIDTypeMifareClassic, RFIDTypeMifareDESFire, RFIDTypeCalypso, RFIDTypeNFC, RFIDTypeMifareFamily)

func (r RFIDType) IsValid() bool { return rfidTypes.contains(r) }

// HashFunction PIN哈希算法
type HashFunction string

const (
	HashFunctionBcrypt HashFunction = "Bcrypt"
)

var hashFunctions = newEnumSet(HashFunctionBcrypt)

func (h HashFunction) IsValid() bool { return hashFunctions.contains(h) }

// ChargingNotificationType 充电通知类型
type ChargingNotificationType string

const (
	ChargingNotificationStart    ChargingNotificationType = "Start"
	ChargingNotificationProgress ChargingNotificationType = "Progress"
	ChargingNotificationEnd      ChargingNotificationType = "End"
	ChargingNotificationError    ChargingNotificationType = "Error"
)

var chargingNotificationTypes = newEnumSet(ChargingNotificationStart, ChargingNotificationProgress,
	ChargingNotificationEnd, ChargingNotificationError)

func (t ChargingNotificationType) IsValid() bool { return chargingNotificationTypes.contains(t) }

// ErrorClass 充电错误类别
type ErrorClass string

const (
	ErrorClassConnectorError ErrorClass = "ConnectorError"
	ErrorClassCriticalError  ErrorClass = "CriticalError"
)

var errorClasses = newEnumSet(ErrorClassConnectorError, ErrorClassCriticalError)

func (e ErrorClass) IsValid() bool { return errorClasses.contains(e) }

// ReferenceUnit 计价单位
type ReferenceUnit string

const (
	ReferenceUnitHour         ReferenceUnit = "HOUR"
	ReferenceUnitKilowattHour ReferenceUnit = "KILOWATT_HOUR"
	ReferenceUnitMinute       ReferenceUnit = "MINUTE"
)

var referenceUnits = newEnumSet(ReferenceUnitHour, ReferenceUnitKilowattHour, ReferenceUnitMinute)

func (r ReferenceUnit) IsValid() bool { return referenceUnits.contains(r) }

// DynamicInfoAvailable 是否提供动态状态信息
type DynamicInfoAvailable string

const (
	DynamicInfoAvailableTrue  DynamicInfoAvailable = "true"
	DynamicInfoAvailableFalse DynamicInfoAvailable = "false"
	DynamicInfoAvailableAuto  DynamicInfoAvailable = "auto"
)

var dynamicInfoAvailables = newEnumSet(DynamicInfoAvailableTrue, DynamicInfoAvailableFalse, DynamicInfoAvailableAuto)

func (d DynamicInfoAvailable) IsValid() bool { return dynamicInfoAvailables.contains(d) }

// DayOfWeek 可用时段对应的日期
type DayOfWeek string

const (
	Everyday  DayOfWeek = "Everyday"
	Workdays  DayOfWeek = "Workdays"
	Weekend   DayOfWeek = "Weekend"
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
)

var daysOfWeek = newEnumSet(Everyday, Workdays, Weekend, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday)

func (d DayOfWeek) IsValid() bool { return daysOfWeek.contains(d) }
