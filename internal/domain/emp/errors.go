package emp

import (
	"errors"
	"fmt"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/validation"
)

// ErrEmptyBody 报文为空
var ErrEmptyBody = errors.New("empty message body")

// ParseError 消息解析失败
type ParseError struct {
	Type  string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON representation of a %s: %v", e.Type, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsValidation 是否为内容校验错误(含缺少必填字段)，否则为语法错误
func (e *ParseError) IsValidation() bool {
	var missingField *oicp.MissingFieldError
	return validation.IsValidationError(e.Cause) || errors.As(e.Cause, &missingField)
}

// IsParseError 判断错误链中是否包含ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
