package oicp

// AuthenticationDataRecord 授权数据记录
type AuthenticationDataRecord struct {
	Identification Identification `json:"Identification" validate:"required"`
}

// Equal 比较两条授权数据
func (a AuthenticationDataRecord) Equal(other AuthenticationDataRecord) bool {
	return a.Identification.Equal(other.Identification)
}

// ProviderAuthenticationData 服务商推送的离线授权数据
type ProviderAuthenticationData struct {
	ProviderID               ProviderID                 `json:"ProviderID" validate:"required,oicp_provider_id"`
	AuthenticationDataRecord []AuthenticationDataRecord `json:"AuthenticationDataRecord" validate:"dive"`
}

// Equal 比较两个授权数据集合
func (p ProviderAuthenticationData) Equal(other ProviderAuthenticationData) bool {
	return p.ProviderID == other.ProviderID &&
		EqualRecords(p.AuthenticationDataRecord, other.AuthenticationDataRecord)
}

// Keys 返回所有授权数据的标识键
func (p ProviderAuthenticationData) Keys() []string {
	keys := make([]string, 0, len(p.AuthenticationDataRecord))
	for _, r := range p.AuthenticationDataRecord {
		keys = append(keys, r.Identification.Key())
	}
	return keys
}
