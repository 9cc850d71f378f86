package oicp

import "fmt"

// StatusCodes OICP状态码
type StatusCodes string

const (
	StatusCodeSuccess                    StatusCodes = "000"
	StatusCodeHubjectSystemError         StatusCodes = "001"
	StatusCodeHubjectDatabaseError       StatusCodes = "002"
	StatusCodeDataTransactionError       StatusCodes = "009"
	StatusCodeUnauthorizedAccess         StatusCodes = "017"
	StatusCodeInconsistentEvseID         StatusCodes = "018"
	StatusCodeInconsistentEvcoID         StatusCodes = "019"
	StatusCodeSystemError                StatusCodes = "021"
	StatusCodeDataError                  StatusCodes = "022"
	StatusCodeQRCodeAuthenticationFailed StatusCodes = "101"
	StatusCodeRFIDAuthenticationFailed   StatusCodes = "102"
	StatusCodeRFIDCardNotReadable        StatusCodes = "103"
	StatusCodePLCAuthenticationFailed    StatusCodes = "105"
	StatusCodeNoPositiveAuthentication   StatusCodes = "106"
	StatusCodeQRCodeAppTimeout           StatusCodes = "110"
	StatusCodePLCInvalidEvcoID           StatusCodes = "120"
	StatusCodePLCInvalidCertificate      StatusCodes = "121"
	StatusCodePLCTimeout                 StatusCodes = "122"
	StatusCodeEvcoIDLocked               StatusCodes = "200"
	StatusCodeNoValidContract            StatusCodes = "210"
	StatusCodePartnerNotFound            StatusCodes = "300"
	StatusCodePartnerDidNotRespond       StatusCodes = "310"
	StatusCodeServiceNotAvailable        StatusCodes = "320"
	StatusCodeSessionIsInvalid           StatusCodes = "400"
	StatusCodeCommunicationToEVSEFailed  StatusCodes = "501"
	StatusCodeNoEVConnectedToEVSE        StatusCodes = "510"
	StatusCodeEVSEAlreadyReserved        StatusCodes = "601"
	StatusCodeEVSEAlreadyInUseWrongToken StatusCodes = "602"
	StatusCodeUnknownEVSEID              StatusCodes = "603"
	StatusCodeEVSEIDNotHubjectCompatible StatusCodes = "604"
	StatusCodeEVSEOutOfService           StatusCodes = "700"
)

var statusCodes = newEnumSet(StatusCodeSuccess, StatusCodeHubjectSystemError, StatusCodeHubjectDatabaseError,
	StatusCodeDataTransactionError, StatusCodeUnauthorizedAccess, StatusCodeInconsistentEvseID,
	StatusCodeInconsistentEvcoID, StatusCodeSystemError, StatusCodeDataError, StatusCodeQRCodeAuthenticationFailed,
	StatusCodeRFIDAuthenticationFailed, StatusCodeRFIDCardNotReadable, StatusCodePLCAuthenticationFailed,
	StatusCodeNoPositiveAuthentication, StatusCodeQRCodeAppTimeout, StatusCodePLCInvalidEvcoID,
	StatusCodePLCInvalidCertificate, StatusCodePLCTimeout, StatusCodeEvcoIDLocked, StatusCodeNoValidContract,
	StatusCodePartnerNotFound, StatusCodePartnerDidNotRespond, StatusCodeServiceNotAvailable,
	StatusCodeSessionIsInvalid, StatusCodeCommunicationToEVSEFailed, StatusCodeNoEVConnectedToEVSE,
	StatusCodeEVSEAlreadyReserved, StatusCodeEVSEAlreadyInUseWrongToken, StatusCodeUnknownEVSEID,
	StatusCodeEVSEIDNotHubjectCompatible, StatusCodeEVSEOutOfService)

func (c StatusCodes) IsValid() bool { return statusCodes.contains(c) }

// StatusCode 处理结果状态
type StatusCode struct {
	Code           StatusCodes `json:"Code" validate:"required,oicp_enum"`
	Description    *string     `json:"Description,omitempty" validate:"omitempty,max=200"`
	AdditionalInfo *string     `json:"AdditionalInfo,omitempty" validate:"omitempty,max=200"`
}

// NewStatusCode 创建状态码，description为空时省略
func NewStatusCode(code StatusCodes, description string) StatusCode {
	sc := StatusCode{Code: code}
	if description != "" {
		sc.Description = &description
	}
	return sc
}

// WithAdditionalInfo 附加说明信息
func (s StatusCode) WithAdditionalInfo(info string) StatusCode {
	if info != "" {
		s.AdditionalInfo = &info
	}
	return s
}

// IsSuccess 是否为成功状态
func (s StatusCode) IsSuccess() bool {
	return s.Code == StatusCodeSuccess
}

// Equal 比较两个状态码
func (s StatusCode) Equal(other StatusCode) bool {
	return s.Code == other.Code &&
		equalPtr(s.Description, other.Description) &&
		equalPtr(s.AdditionalInfo, other.AdditionalInfo)
}

func (s StatusCode) String() string {
	if s.Description != nil {
		return fmt.Sprintf("%s (%s)", s.Code, *s.Description)
	}
	return string(s.Code)
}

// EqualStatusCodePtr 比较两个可选状态码
func EqualStatusCodePtr(a, b *StatusCode) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
