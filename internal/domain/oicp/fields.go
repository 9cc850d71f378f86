package oicp

import (
	"encoding/json"
	"fmt"
)

// MissingFieldError 缺少必填字段
type MissingFieldError struct {
	Object string
	Field  string
}

func (e *MissingFieldError) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("missing mandatory field '%s' in %s", e.Field, e.Object)
	}
	return fmt.Sprintf("missing mandatory field '%s'", e.Field)
}

// RequireFields 检查JSON对象中必填字段是否存在且不为null。
// 用于bool和坐标等零值合法、无法通过 validate:"required" 判断的字段。
func RequireFields(data []byte, object string, fields ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj == nil {
		return fmt.Errorf("%s must be a JSON object", object)
	}
	for _, field := range fields {
		if v, ok := obj[field]; !ok || string(v) == "null" {
			return &MissingFieldError{Object: object, Field: field}
		}
	}
	return nil
}
