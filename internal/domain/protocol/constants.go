package protocol

// OICP协议版本
const (
	OICPVersion23  = "2.3"
	DefaultVersion = OICPVersion23
)

// BasePath Hubject接口的公共路径前缀，EMP自身的入站接口默认也挂在这里
const BasePath = "/api/oicp"

// OICP 2.3 各业务服务的路径前缀，服务版本号彼此独立
const (
	EVSEPullDataV23           = "/evsepull/v23"
	EVSEPullStatusV21         = "/evsepull/v21"
	DynamicPricingV10         = "/dynamicpricing/v10"
	AuthDataV21               = "/authdata/v21"
	ChargingV21               = "/charging/v21"
	CDRManagementV22          = "/cdrmgmt/v22"
	NotificationManagementV11 = "/notificationmgmt/v11"
)
