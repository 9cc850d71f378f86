package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// GetChargeDetailRecordsRequest 分页查询时间范围内的充电详单
type GetChargeDetailRecordsRequest struct {
	Request      `json:"-"`
	PagedRequest `json:"-"`

	ProviderID   oicp.ProviderID   `json:"ProviderID" validate:"required,oicp_provider_id"`
	From         oicp.DateTime     `json:"From" validate:"required"`
	To           oicp.DateTime     `json:"To" validate:"required"`
	SessionIDs   []oicp.SessionID  `json:"SessionID,omitempty" validate:"omitempty,dive,oicp_session_id"`
	OperatorIDs  []oicp.OperatorID `json:"OperatorID,omitempty" validate:"omitempty,dive,oicp_operator_id"`
	CDRForwarded *bool             `json:"CDRForwarded,omitempty"`
}

// NewGetChargeDetailRecordsRequest 创建详单查询请求
func NewGetChargeDetailRecordsRequest(providerID oicp.ProviderID, from, to oicp.DateTime, opts ...Option) *GetChargeDetailRecordsRequest {
	o := applyOptions(opts)
	return &GetChargeDetailRecordsRequest{
		Request:      newRequest(o),
		PagedRequest: newPagedRequest(o),
		ProviderID:   providerID,
		From:         from,
		To:           to,
	}
}

// ParseGetChargeDetailRecordsRequest 解析请求，要求 From 不晚于 To
func ParseGetChargeDetailRecordsRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*GetChargeDetailRecordsRequest, error) {
	o := applyOptions(opts)
	r := &GetChargeDetailRecordsRequest{Request: newRequest(o), PagedRequest: newPagedRequest(o)}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParseGetChargeDetailRecordsRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*GetChargeDetailRecordsRequest, bool) {
	r, err := ParseGetChargeDetailRecordsRequest(data, providerID, opts...)
	return r, err == nil
}

func (r *GetChargeDetailRecordsRequest) WithPagedRequest(p PagedRequest) *GetChargeDetailRecordsRequest {
	next := *r
	next.PagedRequest = p
	return &next
}

func (r *GetChargeDetailRecordsRequest) MessageType() string { return "GetChargeDetailRecordsRequest" }

func (r *GetChargeDetailRecordsRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if err := validator().ValidateTimeRange("From", "To", r.From.Time, r.To.Time); err != nil {
		return err
	}
	return r.PagedRequest.validate()
}

func (r *GetChargeDetailRecordsRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *GetChargeDetailRecordsRequest) HashCode() uint64 { return hashOf(r) }

func (r *GetChargeDetailRecordsRequest) Equal(other *GetChargeDetailRecordsRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		r.From.Equal(other.From) &&
		r.To.Equal(other.To) &&
		oicp.EqualSlice(r.SessionIDs, other.SessionIDs) &&
		oicp.EqualSlice(r.OperatorIDs, other.OperatorIDs) &&
		oicp.EqualPtr(r.CDRForwarded, other.CDRForwarded)
}
