package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// EVSEStatuses 按运营商分组的状态列表，对应报文中的 EvseStatuses 对象
type EVSEStatuses struct {
	OperatorEVSEStatus []oicp.OperatorEVSEStatus `json:"OperatorEvseStatus" validate:"dive"`
}

// Equal 比较两个状态列表
func (s EVSEStatuses) Equal(other EVSEStatuses) bool {
	return oicp.EqualRecords(s.OperatorEVSEStatus, other.OperatorEVSEStatus)
}

// Records 展开所有运营商的状态记录
func (s EVSEStatuses) Records() []oicp.EVSEStatusRecord {
	var records []oicp.EVSEStatusRecord
	for _, op := range s.OperatorEVSEStatus {
		records = append(records, op.EvseStatusRecord...)
	}
	return records
}

// EVSEStatusRecords 状态记录列表，对应报文中的 EVSEStatusRecords 对象
type EVSEStatusRecords struct {
	EvseStatusRecord []oicp.EVSEStatusRecord `json:"EvseStatusRecord" validate:"dive"`
}

// Equal 比较两个状态记录列表
func (s EVSEStatusRecords) Equal(other EVSEStatusRecords) bool {
	return oicp.EqualSlice(s.EvseStatusRecord, other.EvseStatusRecord)
}
