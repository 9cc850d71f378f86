package oicp

import "encoding/json"

// ProductAvailabilityTimes 产品可用时间段
type ProductAvailabilityTimes struct {
	Periods []Period  `json:"Periods" validate:"required,min=1,dive"`
	On      DayOfWeek `json:"on" validate:"required,oicp_enum"`
}

// Equal 比较两个可用时间段
func (p ProductAvailabilityTimes) Equal(other ProductAvailabilityTimes) bool {
	return p.On == other.On && EqualSlice(p.Periods, other.Periods)
}

// PricingProductDataRecord 单个计价产品
type PricingProductDataRecord struct {
	ProductID                   PartnerProductID           `json:"ProductID" validate:"required,max=50"`
	ReferenceUnit               ReferenceUnit              `json:"ReferenceUnit" validate:"required,oicp_enum"`
	ProductPriceCurrency        string                     `json:"ProductPriceCurrency" validate:"required,iso4217"`
	PricePerReferenceUnit       float64                    `json:"PricePerReferenceUnit" validate:"gte=0"`
	MaximumProductChargingPower float64                    `json:"MaximumProductChargingPower" validate:"gt=0"`
	IsValid24hours              bool                       `json:"IsValid24hours"`
	ProductAvailabilityTimes    []ProductAvailabilityTimes `json:"ProductAvailabilityTimes" validate:"required,min=1,dive"`
	AdditionalReferences        []AdditionalReference      `json:"AdditionalReferences,omitempty" validate:"omitempty,dive"`
}

// AdditionalReference 附加计费项
type AdditionalReference struct {
	AdditionalReference             string        `json:"AdditionalReference" validate:"required,max=100"`
	AdditionalReferenceUnit         ReferenceUnit `json:"AdditionalReferenceUnit" validate:"required,oicp_enum"`
	PricePerAdditionalReferenceUnit float64       `json:"PricePerAdditionalReferenceUnit" validate:"gte=0"`
}

// UnmarshalJSON 检查价格和布尔必填字段
func (r *PricingProductDataRecord) UnmarshalJSON(data []byte) error {
	type alias PricingProductDataRecord
	if err := RequireFields(data, "PricingProductDataRecord",
		"PricePerReferenceUnit", "MaximumProductChargingPower", "IsValid24hours"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*alias)(r))
}

// Equal 比较两个计价产品
func (r PricingProductDataRecord) Equal(other PricingProductDataRecord) bool {
	return r.ProductID == other.ProductID &&
		r.ReferenceUnit == other.ReferenceUnit &&
		r.ProductPriceCurrency == other.ProductPriceCurrency &&
		r.PricePerReferenceUnit == other.PricePerReferenceUnit &&
		r.MaximumProductChargingPower == other.MaximumProductChargingPower &&
		r.IsValid24hours == other.IsValid24hours &&
		EqualRecords(r.ProductAvailabilityTimes, other.ProductAvailabilityTimes) &&
		EqualSlice(r.AdditionalReferences, other.AdditionalReferences)
}

// PricingProductData 运营商针对某个服务商发布的计价产品集合，ProviderID 可为 "*"
type PricingProductData struct {
	OperatorID                  OperatorID                 `json:"OperatorID" validate:"required,oicp_operator_id"`
	OperatorName                *string                    `json:"OperatorName,omitempty" validate:"omitempty,max=100"`
	ProviderID                  ProviderID                 `json:"ProviderID" validate:"required,oicp_provider_id_or_wildcard"`
	PricingDefaultPrice         float64                    `json:"PricingDefaultPrice" validate:"gte=0"`
	PricingDefaultPriceCurrency string                     `json:"PricingDefaultPriceCurrency" validate:"required,iso4217"`
	PricingDefaultReferenceUnit ReferenceUnit              `json:"PricingDefaultReferenceUnit" validate:"required,oicp_enum"`
	PricingProductDataRecords   []PricingProductDataRecord `json:"PricingProductDataRecords" validate:"dive"`
}

// UnmarshalJSON 检查默认价格和产品列表
func (p *PricingProductData) UnmarshalJSON(data []byte) error {
	type alias PricingProductData
	if err := RequireFields(data, "PricingProductData",
		"PricingDefaultPrice", "PricingProductDataRecords"); err != nil {
		return err
	}
	return json.Unmarshal(data, (*alias)(p))
}

// Equal 比较两个计价产品集合
func (p PricingProductData) Equal(other PricingProductData) bool {
	return p.OperatorID == other.OperatorID &&
		equalPtr(p.OperatorName, other.OperatorName) &&
		p.ProviderID == other.ProviderID &&
		p.PricingDefaultPrice == other.PricingDefaultPrice &&
		p.PricingDefaultPriceCurrency == other.PricingDefaultPriceCurrency &&
		p.PricingDefaultReferenceUnit == other.PricingDefaultReferenceUnit &&
		EqualRecords(p.PricingProductDataRecords, other.PricingProductDataRecords)
}

// Product 按产品ID查找
func (p PricingProductData) Product(id PartnerProductID) (PricingProductDataRecord, bool) {
	for _, r := range p.PricingProductDataRecords {
		if r.ProductID == id {
			return r, true
		}
	}
	return PricingProductDataRecord{}, false
}

// EVSEPricing 充电点到计价产品的映射
type EVSEPricing struct {
	EvseID            EVSEID             `json:"EvseID" validate:"required,oicp_evse_id"`
	ProviderID        ProviderID         `json:"ProviderID" validate:"required,oicp_provider_id_or_wildcard"`
	EvseIDProductList []PartnerProductID `json:"EvseIDProductList" validate:"required,min=1,dive,max=50"`
}

// Equal 比较两个EVSE计价映射
func (e EVSEPricing) Equal(other EVSEPricing) bool {
	return e.EvseID == other.EvseID &&
		e.ProviderID == other.ProviderID &&
		EqualSlice(e.EvseIDProductList, other.EvseIDProductList)
}
