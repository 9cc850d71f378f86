package oicp

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// idFormat 标识符格式约束
type idFormat struct {
	name    string
	pattern *regexp.Regexp
	maxLen  int
}

func (f idFormat) check(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("the given %s must not be empty", f.name)
	}
	if f.maxLen > 0 && len(s) > f.maxLen {
		return fmt.Errorf("the given %s %q must not exceed %d characters", f.name, s, f.maxLen)
	}
	if f.pattern != nil && !f.pattern.MatchString(s) {
		return fmt.Errorf("invalid %s %q", f.name, s)
	}
	return nil
}

var (
	providerIDFormat = idFormat{
		name:    "provider identification",
		pattern: regexp.MustCompile(`^[A-Za-z]{2}[*-]?[A-Za-z0-9]{3}$`),
	}
	operatorIDFormat = idFormat{
		name:    "operator identification",
		pattern: regexp.MustCompile(`^(([A-Za-z]{2}\*?[A-Za-z0-9]{3})|(\+?[0-9]{1,3}\*[0-9]{3}))$`),
	}
	evseIDFormat = idFormat{
		name:    "EVSE identification",
		pattern: regexp.MustCompile(`^(([A-Za-z]{2}\*?[A-Za-z0-9]{3}\*?E[A-Za-z0-9*]{1,30})|(\+?[0-9]{1,3}\*[0-9]{3}\*[0-9*]{1,32}))$`),
	}
	sessionIDFormat = idFormat{
		name:    "session identification",
		pattern: regexp.MustCompile(`^[A-Za-z0-9]{8}(-[A-Za-z0-9]{4}){3}-[A-Za-z0-9]{12}$`),
	}
	evcoIDFormat = idFormat{
		name:    "EVCO identification",
		pattern: regexp.MustCompile(`^(([A-Za-z]{2}-?[A-Za-z0-9]{3}-?C[A-Za-z0-9]{8}-?[0-9A-Za-z])|([A-Za-z]{2}[*-]?[A-Za-z0-9]{3}[*-]?[A-Za-z0-9]{9}[*-]?[0-9A-Za-z]))$`),
	}
	uidFormat = idFormat{
		name:    "RFID UID",
		pattern: regexp.MustCompile(`^([0-9A-Fa-f]{8}|[0-9A-Fa-f]{14}|[0-9A-Fa-f]{20})$`),
	}
	cpoPartnerSessionIDFormat = idFormat{name: "CPO partner session identification", maxLen: 250}
	empPartnerSessionIDFormat = idFormat{name: "EMP partner session identification", maxLen: 250}
	partnerProductIDFormat    = idFormat{name: "partner product identification", maxLen: 100}
	chargingPoolIDFormat      = idFormat{name: "charging pool identification", maxLen: 250}
	chargingStationIDFormat   = idFormat{name: "charging station identification", maxLen: 50}
	processIDFormat           = idFormat{name: "process identification", maxLen: 250}
)

// ProviderID 电动出行服务商标识，例如 "DE*GDF"
type ProviderID string

// ParseProviderID 解析服务商标识
func ParseProviderID(s string) (ProviderID, error) {
	if err := providerIDFormat.check(s); err != nil {
		return "", err
	}
	return ProviderID(s), nil
}

// TryParseProviderID 解析服务商标识，失败时返回false
func TryParseProviderID(s string) (ProviderID, bool) {
	id, err := ParseProviderID(s)
	return id, err == nil
}

func (id ProviderID) IsValid() bool  { return providerIDFormat.check(string(id)) == nil }
func (id ProviderID) String() string { return string(id) }

// OperatorID 充电运营商标识，例如 "DE*ABC"
type OperatorID string

// ParseOperatorID 解析运营商标识
func ParseOperatorID(s string) (OperatorID, error) {
	if err := operatorIDFormat.check(s); err != nil {
		return "", err
	}
	return OperatorID(s), nil
}

// TryParseOperatorID 解析运营商标识，失败时返回false
func TryParseOperatorID(s string) (OperatorID, bool) {
	id, err := ParseOperatorID(s)
	return id, err == nil
}

func (id OperatorID) IsValid() bool  { return operatorIDFormat.check(string(id)) == nil }
func (id OperatorID) String() string { return string(id) }

// EVSEID 充电点标识，例如 "DE*ABC*E123456"
type EVSEID string

// ParseEVSEID 解析充电点标识
func ParseEVSEID(s string) (EVSEID, error) {
	if err := evseIDFormat.check(s); err != nil {
		return "", err
	}
	return EVSEID(s), nil
}

// TryParseEVSEID 解析充电点标识，失败时返回false
func TryParseEVSEID(s string) (EVSEID, bool) {
	id, err := ParseEVSEID(s)
	return id, err == nil
}

func (id EVSEID) IsValid() bool  { return evseIDFormat.check(string(id)) == nil }
func (id EVSEID) String() string { return string(id) }

// evseOperatorPrefix 取EVSE标识的运营商前缀，两种写法与 evseIDFormat 一致
var evseOperatorPrefix = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Za-z]{2}\*?[A-Za-z0-9]{3})\*?E[A-Za-z0-9*]{1,30}$`),
	regexp.MustCompile(`^(\+?[0-9]{1,3}\*[0-9]{3})\*[0-9*]{1,32}$`),
}

// OperatorID 返回EVSE标识中包含的运营商部分，格式无效时返回空
func (id EVSEID) OperatorID() OperatorID {
	for _, re := range evseOperatorPrefix {
		if m := re.FindStringSubmatch(string(id)); m != nil {
			return OperatorID(m[1])
		}
	}
	return ""
}

// SessionID Hubject分配的充电会话标识 (UUID格式)
type SessionID string

// NewSessionID 生成随机会话标识
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// ParseSessionID 解析会话标识
func ParseSessionID(s string) (SessionID, error) {
	if err := sessionIDFormat.check(s); err != nil {
		return "", err
	}
	return SessionID(s), nil
}

// TryParseSessionID 解析会话标识，失败时返回false
func TryParseSessionID(s string) (SessionID, bool) {
	id, err := ParseSessionID(s)
	return id, err == nil
}

func (id SessionID) IsValid() bool  { return sessionIDFormat.check(string(id)) == nil }
func (id SessionID) String() string { return string(id) }

// CPOPartnerSessionID 运营商侧的会话标识
type CPOPartnerSessionID string

// ParseCPOPartnerSessionID 解析运营商侧会话标识
func ParseCPOPartnerSessionID(s string) (CPOPartnerSessionID, error) {
	if err := cpoPartnerSessionIDFormat.check(s); err != nil {
		return "", err
	}
	return CPOPartnerSessionID(s), nil
}

func (id CPOPartnerSessionID) IsValid() bool {
	return cpoPartnerSessionIDFormat.check(string(id)) == nil
}
func (id CPOPartnerSessionID) String() string { return string(id) }

// EMPPartnerSessionID 服务商侧的会话标识
type EMPPartnerSessionID string

// NewEMPPartnerSessionID 生成随机的服务商会话标识
func NewEMPPartnerSessionID() EMPPartnerSessionID {
	return EMPPartnerSessionID(uuid.New().String())
}

// ParseEMPPartnerSessionID 解析服务商侧会话标识
func ParseEMPPartnerSessionID(s string) (EMPPartnerSessionID, error) {
	if err := empPartnerSessionIDFormat.check(s); err != nil {
		return "", err
	}
	return EMPPartnerSessionID(s), nil
}

func (id EMPPartnerSessionID) IsValid() bool {
	return empPartnerSessionIDFormat.check(string(id)) == nil
}
func (id EMPPartnerSessionID) String() string { return string(id) }

// PartnerProductID 充电产品标识
type PartnerProductID string

// ParsePartnerProductID 解析产品标识
func ParsePartnerProductID(s string) (PartnerProductID, error) {
	if err := partnerProductIDFormat.check(s); err != nil {
		return "", err
	}
	return PartnerProductID(s), nil
}

func (id PartnerProductID) IsValid() bool  { return partnerProductIDFormat.check(string(id)) == nil }
func (id PartnerProductID) String() string { return string(id) }

// EVCOID 电动出行合同标识
type EVCOID string

// ParseEVCOID 解析合同标识
func ParseEVCOID(s string) (EVCOID, error) {
	if err := evcoIDFormat.check(s); err != nil {
		return "", err
	}
	return EVCOID(s), nil
}

// TryParseEVCOID 解析合同标识，失败时返回false
func TryParseEVCOID(s string) (EVCOID, bool) {
	id, err := ParseEVCOID(s)
	return id, err == nil
}

func (id EVCOID) IsValid() bool  { return evcoIDFormat.check(string(id)) == nil }
func (id EVCOID) String() string { return string(id) }

// UID RFID卡的唯一标识 (4, 7 或 10 字节十六进制)
type UID string

// ParseUID 解析RFID UID
func ParseUID(s string) (UID, error) {
	if err := uidFormat.check(s); err != nil {
		return "", err
	}
	return UID(s), nil
}

// TryParseUID 解析RFID UID，失败时返回false
func TryParseUID(s string) (UID, bool) {
	id, err := ParseUID(s)
	return id, err == nil
}

func (id UID) IsValid() bool  { return uidFormat.check(string(id)) == nil }
func (id UID) String() string { return string(id) }

// ChargingPoolID 充电场站标识
type ChargingPoolID string

func (id ChargingPoolID) IsValid() bool  { return chargingPoolIDFormat.check(string(id)) == nil }
func (id ChargingPoolID) String() string { return string(id) }

// ChargingStationID 充电站标识
type ChargingStationID string

func (id ChargingStationID) IsValid() bool  { return chargingStationIDFormat.check(string(id)) == nil }
func (id ChargingStationID) String() string { return string(id) }

// ProcessID Hubject在 "Process-ID" 响应头中返回的处理标识
type ProcessID string

// ParseProcessID 解析处理标识
func ParseProcessID(s string) (ProcessID, error) {
	if err := processIDFormat.check(s); err != nil {
		return "", err
	}
	return ProcessID(s), nil
}

func (id ProcessID) String() string { return string(id) }

// EventTrackingID 用于关联日志和事件的请求跟踪标识
type EventTrackingID string

// NewEventTrackingID 生成新的跟踪标识
func NewEventTrackingID() EventTrackingID {
	return EventTrackingID(uuid.New().String())
}

func (id EventTrackingID) String() string { return string(id) }

// IsValidID 按标识类型名称校验字符串，供验证器使用
func IsValidID(kind, value string) bool {
	var f idFormat
	switch kind {
	case "provider":
		f = providerIDFormat
	case "operator":
		f = operatorIDFormat
	case "evse":
		f = evseIDFormat
	case "session":
		f = sessionIDFormat
	case "evco":
		f = evcoIDFormat
	case "uid":
		f = uidFormat
	case "cpo_session":
		f = cpoPartnerSessionIDFormat
	case "emp_session":
		f = empPartnerSessionIDFormat
	case "product":
		f = partnerProductIDFormat
	case "pool":
		f = chargingPoolIDFormat
	case "station":
		f = chargingStationIDFormat
	default:
		return false
	}
	return f.check(value) == nil
}
