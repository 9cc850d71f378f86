package oicp

import (
	"fmt"
	"strings"
)

// RFIDMifareFamilyIdentification 仅包含UID的RFID认证
type RFIDMifareFamilyIdentification struct {
	UID UID `json:"UID" validate:"required,oicp_uid"`
}

// RFIDIdentification RFID卡认证
type RFIDIdentification struct {
	UID           UID       `json:"UID" validate:"required,oicp_uid"`
	RFID          RFIDType  `json:"RFID" validate:"required,oicp_enum"`
	EvcoID        *EVCOID   `json:"EvcoID,omitempty" validate:"omitempty,oicp_evco_id"`
	PrintedNumber *string   `json:"PrintedNumber,omitempty" validate:"omitempty,max=150"`
	ExpiryDate    *DateTime `json:"ExpiryDate,omitempty"`
}

// HashedPIN 二维码认证使用的哈希PIN
type HashedPIN struct {
	Value    string       `json:"Value" validate:"required,max=100"`
	Function HashFunction `json:"Function" validate:"required,oicp_enum"`
}

// QRCodeIdentification 二维码认证
type QRCodeIdentification struct {
	EvcoID    EVCOID     `json:"EvcoID" validate:"required,oicp_evco_id"`
	HashedPIN *HashedPIN `json:"HashedPIN,omitempty"`
	PIN       *string    `json:"PIN,omitempty" validate:"omitempty,max=20"`
}

// PlugAndChargeIdentification ISO 15118即插即充认证
type PlugAndChargeIdentification struct {
	EvcoID EVCOID `json:"EvcoID" validate:"required,oicp_evco_id"`
}

// RemoteIdentification 远程(App)认证
type RemoteIdentification struct {
	EvcoID EVCOID `json:"EvcoID" validate:"required,oicp_evco_id"`
}

// Identification 用户认证信息，五种方式中必须且只能设置一种
type Identification struct {
	RFIDMifareFamilyIdentification *RFIDMifareFamilyIdentification `json:"RFIDMifareFamilyIdentification,omitempty"`
	RFIDIdentification             *RFIDIdentification             `json:"RFIDIdentification,omitempty"`
	QRCodeIdentification           *QRCodeIdentification           `json:"QRCodeIdentification,omitempty"`
	PlugAndChargeIdentification    *PlugAndChargeIdentification    `json:"PlugAndChargeIdentification,omitempty"`
	RemoteIdentification           *RemoteIdentification           `json:"RemoteIdentification,omitempty"`
}

// NewRFIDMifareFamilyIdentification 创建Mifare UID认证
func NewRFIDMifareFamilyIdentification(uid UID) Identification {
	return Identification{RFIDMifareFamilyIdentification: &RFIDMifareFamilyIdentification{UID: uid}}
}

// NewRFIDIdentification 创建RFID认证
func NewRFIDIdentification(uid UID, rfid RFIDType) Identification {
	return Identification{RFIDIdentification: &RFIDIdentification{UID: uid, RFID: rfid}}
}

// NewQRCodeIdentification 创建二维码认证
func NewQRCodeIdentification(evcoID EVCOID, hashedPIN *HashedPIN) Identification {
	return Identification{QRCodeIdentification: &QRCodeIdentification{EvcoID: evcoID, HashedPIN: hashedPIN}}
}

// NewPlugAndChargeIdentification 创建即插即充认证
func NewPlugAndChargeIdentification(evcoID EVCOID) Identification {
	return Identification{PlugAndChargeIdentification: &PlugAndChargeIdentification{EvcoID: evcoID}}
}

// NewRemoteIdentification 创建远程认证
func NewRemoteIdentification(evcoID EVCOID) Identification {
	return Identification{RemoteIdentification: &RemoteIdentification{EvcoID: evcoID}}
}

// VariantCount 已设置的认证方式数量，合法值为1
func (i Identification) VariantCount() int {
	n := 0
	if i.RFIDMifareFamilyIdentification != nil {
		n++
	}
	if i.RFIDIdentification != nil {
		n++
	}
	if i.QRCodeIdentification != nil {
		n++
	}
	if i.PlugAndChargeIdentification != nil {
		n++
	}
	if i.RemoteIdentification != nil {
		n++
	}
	return n
}

// Key 返回认证信息的规范表示，用于白名单匹配和日志
func (i Identification) Key() string {
	switch {
	case i.RFIDMifareFamilyIdentification != nil:
		return "UID:" + string(i.RFIDMifareFamilyIdentification.UID)
	case i.RFIDIdentification != nil:
		return "UID:" + string(i.RFIDIdentification.UID)
	case i.QRCodeIdentification != nil:
		return "EVCO:" + string(i.QRCodeIdentification.EvcoID)
	case i.PlugAndChargeIdentification != nil:
		return "EVCO:" + string(i.PlugAndChargeIdentification.EvcoID)
	case i.RemoteIdentification != nil:
		return "EVCO:" + string(i.RemoteIdentification.EvcoID)
	default:
		return ""
	}
}

// ParseIdentificationKey 解析 Key 的输出。"UID:" 还原为 RFIDMifareFamilyIdentification，
// "EVCO:" 还原为 RemoteIdentification
func ParseIdentificationKey(key string) (Identification, error) {
	kind, value, ok := strings.Cut(key, ":")
	if !ok {
		return Identification{}, fmt.Errorf("invalid identification key %q", key)
	}
	switch kind {
	case "UID":
		uid, err := ParseUID(value)
		if err != nil {
			return Identification{}, err
		}
		return NewRFIDMifareFamilyIdentification(uid), nil
	case "EVCO":
		evco, err := ParseEVCOID(value)
		if err != nil {
			return Identification{}, err
		}
		return NewRemoteIdentification(evco), nil
	default:
		return Identification{}, fmt.Errorf("unknown identification kind %q", kind)
	}
}

func (i Identification) String() string {
	return i.Key()
}

// Equal 比较两个认证信息
func (i Identification) Equal(other Identification) bool {
	return equalPtr(i.RFIDMifareFamilyIdentification, other.RFIDMifareFamilyIdentification) &&
		EqualRecordPtr(i.RFIDIdentification, other.RFIDIdentification) &&
		EqualRecordPtr(i.QRCodeIdentification, other.QRCodeIdentification) &&
		equalPtr(i.PlugAndChargeIdentification, other.PlugAndChargeIdentification) &&
		equalPtr(i.RemoteIdentification, other.RemoteIdentification)
}

// Equal 比较两个RFID认证
func (r RFIDIdentification) Equal(other RFIDIdentification) bool {
	return r.UID == other.UID &&
		r.RFID == other.RFID &&
		equalPtr(r.EvcoID, other.EvcoID) &&
		equalPtr(r.PrintedNumber, other.PrintedNumber) &&
		EqualRecordPtr(r.ExpiryDate, other.ExpiryDate)
}

// Equal 比较两个二维码认证
func (q QRCodeIdentification) Equal(other QRCodeIdentification) bool {
	return q.EvcoID == other.EvcoID &&
		equalPtr(q.HashedPIN, other.HashedPIN) &&
		equalPtr(q.PIN, other.PIN)
}
