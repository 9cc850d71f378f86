package emp

import (
	"encoding/json"
	"strings"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/validation"
)

// ChargeDetailRecordRequest 运营商发送的充电详单 (Hubject → EMP)。
// 报文主体就是详单本身，OperatorID 来自URL。
type ChargeDetailRecordRequest struct {
	Request `json:"-"`

	OperatorID         oicp.OperatorID
	ChargeDetailRecord oicp.ChargeDetailRecord
}

func NewChargeDetailRecordRequest(operatorID oicp.OperatorID, cdr oicp.ChargeDetailRecord, opts ...Option) *ChargeDetailRecordRequest {
	return &ChargeDetailRecordRequest{
		Request:            newRequest(applyOptions(opts)),
		OperatorID:         operatorID,
		ChargeDetailRecord: cdr,
	}
}

// ParseChargeDetailRecordRequest 解析充电详单，EVSE所属运营商须与URL一致
func ParseChargeDetailRecordRequest(data []byte, operatorID oicp.OperatorID, opts ...Option) (*ChargeDetailRecordRequest, error) {
	r := &ChargeDetailRecordRequest{
		Request:    newRequest(applyOptions(opts)),
		OperatorID: operatorID,
	}
	if err := decode(data, r, r.checkOperator); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseChargeDetailRecordRequest(data []byte, operatorID oicp.OperatorID, opts ...Option) (*ChargeDetailRecordRequest, bool) {
	r, err := ParseChargeDetailRecordRequest(data, operatorID, opts...)
	return r, err == nil
}

func (r *ChargeDetailRecordRequest) checkOperator() error {
	if r.OperatorID == "" {
		return nil
	}
	evseOperator := r.ChargeDetailRecord.EvseID.OperatorID()
	if normalizeOperatorID(evseOperator) == normalizeOperatorID(r.OperatorID) {
		return nil
	}
	return validation.ValidationError{
		Field:   "EvseID",
		Tag:     "url_match",
		Value:   string(r.ChargeDetailRecord.EvseID),
		Message: "EVSE " + string(r.ChargeDetailRecord.EvseID) + " does not belong to operator " + string(r.OperatorID),
	}
}

// 运营商标识中的 '*' 分隔符可省略
func normalizeOperatorID(id oicp.OperatorID) string {
	return strings.ToUpper(strings.ReplaceAll(string(id), "*", ""))
}

func (r *ChargeDetailRecordRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ChargeDetailRecord)
}

func (r *ChargeDetailRecordRequest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.ChargeDetailRecord)
}

func (r *ChargeDetailRecordRequest) MessageType() string { return "ChargeDetailRecordRequest" }

// Validate 校验详单，包括结束时间不早于开始时间
func (r *ChargeDetailRecordRequest) Validate() error { return validateStruct(&r.ChargeDetailRecord) }

func (r *ChargeDetailRecordRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *ChargeDetailRecordRequest) HashCode() uint64 { return hashOf(r) }

func (r *ChargeDetailRecordRequest) Equal(other *ChargeDetailRecordRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ChargeDetailRecord.Equal(other.ChargeDetailRecord)
}
