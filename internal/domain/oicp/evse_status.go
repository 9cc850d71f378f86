package oicp

import "encoding/json"

// EVSEStatusRecord 单个充电点的实时状态
type EVSEStatusRecord struct {
	EvseID     EVSEID     `json:"EvseID" validate:"required,oicp_evse_id"`
	EvseStatus EVSEStatus `json:"EvseStatus" validate:"required,oicp_enum"`
}

// OperatorEVSEStatus 按运营商分组的充电点状态
type OperatorEVSEStatus struct {
	OperatorID       OperatorID         `json:"OperatorID" validate:"required,oicp_operator_id"`
	OperatorName     string             `json:"OperatorName" validate:"required,max=100"`
	EvseStatusRecord []EVSEStatusRecord `json:"EvseStatusRecord" validate:"dive"`
}

// UnmarshalJSON 状态记录列表为必填字段，但可以为空
func (o *OperatorEVSEStatus) UnmarshalJSON(data []byte) error {
	type alias OperatorEVSEStatus
	if err := RequireFields(data, "OperatorEVSEStatus", "EvseStatusRecord"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*alias)(o))
}

// Equal 比较两个运营商状态集合
func (o OperatorEVSEStatus) Equal(other OperatorEVSEStatus) bool {
	return o.OperatorID == other.OperatorID &&
		o.OperatorName == other.OperatorName &&
		EqualSlice(o.EvseStatusRecord, other.EvseStatusRecord)
}

// StatusOf 查找指定EVSE的状态
func (o OperatorEVSEStatus) StatusOf(evseID EVSEID) (EVSEStatus, bool) {
	for _, r := range o.EvseStatusRecord {
		if r.EvseID == evseID {
			return r.EvseStatus, true
		}
	}
	return "", false
}
