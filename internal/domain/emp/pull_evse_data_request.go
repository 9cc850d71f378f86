package emp

import "github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"

// PullEVSEDataRequest 分页拉取充电点静态数据
type PullEVSEDataRequest struct {
	Request      `json:"-"`
	PagedRequest `json:"-"`

	ProviderID                     oicp.ProviderID                       `json:"ProviderID" validate:"required,oicp_provider_id"`
	GeoCoordinatesResponseFormat   oicp.GeoCoordinatesResponseFormat     `json:"GeoCoordinatesResponseFormat" validate:"required,oicp_enum"`
	LastCall                       *oicp.DateTime                        `json:"LastCall,omitempty"`
	SearchCenter                   *oicp.SearchCenter                    `json:"SearchCenter,omitempty"`
	OperatorIDs                    []oicp.OperatorID                     `json:"OperatorIds,omitempty" validate:"omitempty,dive,oicp_operator_id"`
	CountryCodes                   []string                              `json:"CountryCodes,omitempty" validate:"omitempty,dive,iso3166_1_alpha2|iso3166_1_alpha3"`
	AccessibilityFilter            []oicp.AccessibilityType              `json:"AccessibilityFilter,omitempty" validate:"omitempty,dive,oicp_enum"`
	AuthenticationModes            []oicp.AuthenticationMode             `json:"AuthenticationModes,omitempty" validate:"omitempty,dive,oicp_enum"`
	CalibrationLawDataAvailability []oicp.CalibrationLawDataAvailability `json:"CalibrationLawDataAvailability,omitempty" validate:"omitempty,dive,oicp_enum"`
	RenewableEnergy                *bool                                 `json:"RenewableEnergy,omitempty"`
	IsHubjectCompatible            *bool                                 `json:"IsHubjectCompatible,omitempty"`
	IsOpen24Hours                  *bool                                 `json:"IsOpen24Hours,omitempty"`
}

// NewPullEVSEDataRequest 创建请求，坐标格式默认为DecimalDegree
func NewPullEVSEDataRequest(providerID oicp.ProviderID, opts ...Option) *PullEVSEDataRequest {
	o := applyOptions(opts)
	return &PullEVSEDataRequest{
		Request:                      newRequest(o),
		PagedRequest:                 newPagedRequest(o),
		ProviderID:                   providerID,
		GeoCoordinatesResponseFormat: oicp.GeoFormatDecimalDegree,
	}
}

// ParsePullEVSEDataRequest 解析请求，分页参数通过 WithPage/WithSize 传入
func ParsePullEVSEDataRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEDataRequest, error) {
	o := applyOptions(opts)
	r := &PullEVSEDataRequest{Request: newRequest(o), PagedRequest: newPagedRequest(o)}
	if err := decode(data, r, matchProvider(providerID, &r.ProviderID)); err != nil {
		return nil, err
	}
	return r, nil
}

func TryParsePullEVSEDataRequest(data []byte, providerID oicp.ProviderID, opts ...Option) (*PullEVSEDataRequest, bool) {
	r, err := ParsePullEVSEDataRequest(data, providerID, opts...)
	return r, err == nil
}

// WithPagedRequest 返回使用指定分页参数的副本
func (r *PullEVSEDataRequest) WithPagedRequest(p PagedRequest) *PullEVSEDataRequest {
	next := *r
	next.PagedRequest = p
	return &next
}

func (r *PullEVSEDataRequest) MessageType() string { return "PullEVSEDataRequest" }

func (r *PullEVSEDataRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	return r.PagedRequest.validate()
}

func (r *PullEVSEDataRequest) ToJSON() ([]byte, error) { return toJSON(r) }

func (r *PullEVSEDataRequest) HashCode() uint64 { return hashOf(r) }

func (r *PullEVSEDataRequest) Equal(other *PullEVSEDataRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ProviderID == other.ProviderID &&
		r.GeoCoordinatesResponseFormat == other.GeoCoordinatesResponseFormat &&
		oicp.EqualRecordPtr(r.LastCall, other.LastCall) &&
		oicp.EqualRecordPtr(r.SearchCenter, other.SearchCenter) &&
		oicp.EqualSlice(r.OperatorIDs, other.OperatorIDs) &&
		oicp.EqualSlice(r.CountryCodes, other.CountryCodes) &&
		oicp.EqualSlice(r.AccessibilityFilter, other.AccessibilityFilter) &&
		oicp.EqualSlice(r.AuthenticationModes, other.AuthenticationModes) &&
		oicp.EqualSlice(r.CalibrationLawDataAvailability, other.CalibrationLawDataAvailability) &&
		oicp.EqualPtr(r.RenewableEnergy, other.RenewableEnergy) &&
		oicp.EqualPtr(r.IsHubjectCompatible, other.IsHubjectCompatible) &&
		oicp.EqualPtr(r.IsOpen24Hours, other.IsOpen24Hours)
}
