package oicp

// SearchCenter 按地理位置搜索的中心点和半径
type SearchCenter struct {
	GeoCoordinates GeoCoordinates `json:"GeoCoordinates"`
	// 搜索半径，单位为公里
	Radius float64 `json:"Radius" validate:"gt=0"`
}

// Equal 比较两个搜索中心
func (s SearchCenter) Equal(other SearchCenter) bool {
	return s.GeoCoordinates.Equal(other.GeoCoordinates) && s.Radius == other.Radius
}

// Address 充电站地址
type Address struct {
	Country         string  `json:"Country" validate:"required,len=3"`
	City            string  `json:"City" validate:"required,max=50"`
	Street          string  `json:"Street" validate:"required,max=100"`
	PostalCode      *string `json:"PostalCode,omitempty" validate:"omitempty,max=10"`
	HouseNum        *string `json:"HouseNum,omitempty" validate:"omitempty,max=10"`
	Floor           *string `json:"Floor,omitempty" validate:"omitempty,max=5"`
	Region          *string `json:"Region,omitempty" validate:"omitempty,max=50"`
	ParkingFacility *bool   `json:"ParkingFacility,omitempty"`
	ParkingSpot     *string `json:"ParkingSpot,omitempty" validate:"omitempty,max=5"`
	TimeZone        *string `json:"TimeZone,omitempty" validate:"omitempty,max=10"`
}

// Equal 比较两个地址
func (a Address) Equal(other Address) bool {
	return a.Country == other.Country &&
		a.City == other.City &&
		a.Street == other.Street &&
		equalPtr(a.PostalCode, other.PostalCode) &&
		equalPtr(a.HouseNum, other.HouseNum) &&
		equalPtr(a.Floor, other.Floor) &&
		equalPtr(a.Region, other.Region) &&
		equalPtr(a.ParkingFacility, other.ParkingFacility) &&
		equalPtr(a.ParkingSpot, other.ParkingSpot) &&
		equalPtr(a.TimeZone, other.TimeZone)
}

// InfoText 多语言文本
type InfoText struct {
	Lang  string `json:"lang" validate:"required,len=2"`
	Value string `json:"value" validate:"required,max=150"`
}
