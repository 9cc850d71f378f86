package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// 单页最大记录数
const MaxPageSize = 2000

// Validator OICP消息验证器
type Validator struct {
	validate *validator.Validate
}

// ValidationError 验证错误
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Error 实现error接口
func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors 验证错误集合
type ValidationErrors []ValidationError

// Error 实现error接口
func (e ValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// Fields 返回出错字段列表
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, err := range e {
		fields = append(fields, err.Field)
	}
	return fields
}

// IsValidationError 判断错误链中是否包含验证错误
func IsValidationError(err error) bool {
	var single ValidationError
	var multiple ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multiple)
}

var (
	defaultValidator     *Validator
	defaultValidatorOnce sync.Once
)

// Default 返回共享的验证器实例
func Default() *Validator {
	defaultValidatorOnce.Do(func() {
		defaultValidator = NewValidator()
	})
	return defaultValidator
}

// NewValidator 创建新的验证器
func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 错误中使用JSON字段名，与OICP报文保持一致
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// 注册自定义验证规则
	registerCustomValidations(validate)

	return &Validator{
		validate: validate,
	}
}

// ValidateStruct 验证结构体
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validatorErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	validationErrors := make(ValidationErrors, 0, len(validatorErrors))
	for _, validatorError := range validatorErrors {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldPath(validatorError),
			Tag:     validatorError.Tag(),
			Value:   fmt.Sprintf("%v", validatorError.Value()),
			Message: getErrorMessage(validatorError),
		})
	}
	return validationErrors
}

// ValidateMessageSize 验证消息大小
func (v *Validator) ValidateMessageSize(data []byte, maxSize int) error {
	if len(data) > maxSize {
		return ValidationError{
			Field:   "message",
			Tag:     "max_size",
			Value:   fmt.Sprintf("%d bytes", len(data)),
			Message: fmt.Sprintf("Message size %d bytes exceeds maximum allowed size %d bytes", len(data), maxSize),
		}
	}
	return nil
}

// ValidateURLMatch 验证URL中的标识与报文中的标识一致，URL值为空时跳过
func (v *Validator) ValidateURLMatch(field, urlValue, bodyValue string) error {
	if urlValue == "" || urlValue == bodyValue {
		return nil
	}
	return ValidationError{
		Field:   field,
		Tag:     "url_match",
		Value:   bodyValue,
		Message: fmt.Sprintf("Field '%s' (%s) does not match the %s given in the URL (%s)", field, bodyValue, field, urlValue),
	}
}

// ValidatePaging 验证分页参数
func (v *Validator) ValidatePaging(page, size *int) error {
	if page != nil && *page < 0 {
		return ValidationError{
			Field:   "page",
			Tag:     "min",
			Value:   strconv.Itoa(*page),
			Message: "Field 'page' must not be negative",
		}
	}
	if size != nil && (*size <= 0 || *size > MaxPageSize) {
		return ValidationError{
			Field:   "size",
			Tag:     "range",
			Value:   strconv.Itoa(*size),
			Message: fmt.Sprintf("Field 'size' must be between 1 and %d", MaxPageSize),
		}
	}
	return nil
}

// ValidateTimeRange 验证起止时间顺序
func (v *Validator) ValidateTimeRange(fromField, toField string, from, to time.Time) error {
	if from.After(to) {
		return ValidationError{
			Field:   fromField,
			Tag:     "ltefield",
			Value:   from.UTC().Format(time.RFC3339),
			Message: fmt.Sprintf("Field '%s' must not be after '%s'", fromField, toField),
		}
	}
	return nil
}

// ValidateCount 验证列表长度
func (v *Validator) ValidateCount(field string, n, min, max int) error {
	if n < min || n > max {
		return ValidationError{
			Field:   field,
			Tag:     "len_range",
			Value:   strconv.Itoa(n),
			Message: fmt.Sprintf("Field '%s' must contain between %d and %d entries", field, min, max),
		}
	}
	return nil
}

// registerCustomValidations 注册自定义验证规则
func registerCustomValidations(validate *validator.Validate) {
	// 标识符格式
	for tag, kind := range map[string]string{
		"oicp_provider_id": "provider",
		"oicp_operator_id": "operator",
		"oicp_evse_id":     "evse",
		"oicp_session_id":  "session",
		"oicp_evco_id":     "evco",
		"oicp_uid":         "uid",
	} {
		validate.RegisterValidation(tag, validateID(kind))
	}
	validate.RegisterValidation("oicp_provider_id_or_wildcard", validateProviderIDOrWildcard)
	validate.RegisterValidation("oicp_enum", validateEnum)

	validate.RegisterStructValidation(validateIdentification, oicp.Identification{})
	validate.RegisterStructValidation(validateEVSEDataRecord, oicp.EVSEDataRecord{})
	validate.RegisterStructValidation(validateChargeDetailRecord, oicp.ChargeDetailRecord{})
}

// validateID 按标识类型验证字符串
func validateID(kind string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // 允许空值，required标签会处理必填验证
		}
		return oicp.IsValidID(kind, value)
	}
}

// validateProviderIDOrWildcard 服务商标识，或表示全部服务商的 "*"
func validateProviderIDOrWildcard(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || value == "*" || oicp.IsValidID("provider", value)
}

// validateEnum 验证枚举值，字段类型需实现 IsValid
func validateEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String && field.String() == "" {
		return true
	}
	if !field.CanInterface() {
		return false
	}
	enum, ok := field.Interface().(interface{ IsValid() bool })
	return ok && enum.IsValid()
}

// validateIdentification 五种认证方式必须且只能设置一种
func validateIdentification(sl validator.StructLevel) {
	id := sl.Current().Interface().(oicp.Identification)
	if n := id.VariantCount(); n != 1 {
		sl.ReportError(id, "Identification", "Identification", "oicp_one_of", strconv.Itoa(n))
	}
}

// validateEVSEDataRecord 非全天营业时必须提供营业时间
func validateEVSEDataRecord(sl validator.StructLevel) {
	r := sl.Current().Interface().(oicp.EVSEDataRecord)
	if !r.IsOpen24Hours && len(r.OpeningTimes) == 0 {
		sl.ReportError(r.OpeningTimes, "OpeningTimes", "OpeningTimes", "required_unless_open24", "")
	}
}

// validateChargeDetailRecord 结束时间不能早于开始时间
func validateChargeDetailRecord(sl validator.StructLevel) {
	c := sl.Current().Interface().(oicp.ChargeDetailRecord)
	if c.ChargingEnd.Before(c.ChargingStart.Time) {
		sl.ReportError(c.ChargingEnd, "ChargingEnd", "ChargingEnd", "gtefield", "ChargingStart")
	}
	if c.SessionEnd.Before(c.SessionStart.Time) {
		sl.ReportError(c.SessionEnd, "SessionEnd", "SessionEnd", "gtefield", "SessionStart")
	}
}

// fieldPath 去掉顶层结构体名的字段路径，例如 Identification.RemoteIdentification.EvcoID
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// getErrorMessage 获取友好的错误消息
func getErrorMessage(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", field)
	case "min":
		return fmt.Sprintf("Field '%s' must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("Field '%s' must not exceed %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("Field '%s' must have length %s", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("Field '%s' is out of range", field)
	case "iso4217":
		return fmt.Sprintf("Field '%s' must be an ISO 4217 currency code", field)
	case "datetime":
		return fmt.Sprintf("Field '%s' must match the time format %s", field, fe.Param())
	case "oicp_provider_id", "oicp_provider_id_or_wildcard":
		return fmt.Sprintf("Field '%s' must be a valid provider identification", field)
	case "oicp_operator_id":
		return fmt.Sprintf("Field '%s' must be a valid operator identification", field)
	case "oicp_evse_id":
		return fmt.Sprintf("Field '%s' must be a valid EVSE identification", field)
	case "oicp_session_id":
		return fmt.Sprintf("Field '%s' must be a valid session identification", field)
	case "oicp_evco_id":
		return fmt.Sprintf("Field '%s' must be a valid EVCO identification", field)
	case "oicp_uid":
		return fmt.Sprintf("Field '%s' must be a valid RFID UID (8, 14 or 20 hex characters)", field)
	case "oicp_enum":
		return fmt.Sprintf("Field '%s' has an unknown value '%v'", field, fe.Value())
	case "oicp_one_of":
		return fmt.Sprintf("Field '%s' must contain exactly one identification variant, found %s", field, fe.Param())
	case "required_unless_open24":
		return fmt.Sprintf("Field '%s' is required when the EVSE is not open 24 hours", field)
	case "gtefield":
		return fmt.Sprintf("Field '%s' must not be before '%s'", field, fe.Param())
	default:
		return fmt.Sprintf("Field '%s' failed validation for tag '%s'", field, fe.Tag())
	}
}
