package emp

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/validation"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

// Message 所有OICP消息的公共行为
type Message interface {
	MessageType() string
	Validate() error
	ToJSON() ([]byte, error)
	HashCode() uint64
}

// MaxMessageSize 单条报文的最大字节数
const MaxMessageSize = 4 << 20

func validator() *validation.Validator {
	return validation.Default()
}

// decode 解码并校验消息，checks 为URL参数等附加一致性检查
func decode(data []byte, msg Message, checks ...func() error) error {
	err := decodeAndValidate(data, msg, checks)
	metrics.ObserveParse(msg.MessageType(), err)
	if err != nil {
		return &ParseError{Type: msg.MessageType(), Cause: err}
	}
	return nil
}

func decodeAndValidate(data []byte, msg Message, checks []func() error) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyBody
	}
	if err := validator().ValidateMessageSize(data, MaxMessageSize); err != nil {
		return err
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// build 校验由构建器生成的消息
func build[T Message](msg T) (T, error) {
	if err := msg.Validate(); err != nil {
		var zero T
		return zero, err
	}
	return msg, nil
}

func toJSON(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func hashOf(msg any) uint64 {
	return oicp.HashOf(msg)
}

func validateStruct(msg any) error {
	return validator().ValidateStruct(msg)
}

// matchProvider URL中的服务商标识须与解码后的报文一致
func matchProvider(urlValue oicp.ProviderID, body *oicp.ProviderID) func() error {
	return func() error {
		return validator().ValidateURLMatch("ProviderID", string(urlValue), string(*body))
	}
}

// matchOperator URL中的运营商标识须与解码后的报文一致
func matchOperator(urlValue oicp.OperatorID, body *oicp.OperatorID) func() error {
	return func() error {
		return validator().ValidateURLMatch("OperatorID", string(urlValue), string(*body))
	}
}

// requestMeta 取出请求的元数据，用于派生响应的跟踪ID和耗时
func requestMeta(request any) *Request {
	if v := reflect.ValueOf(request); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return nil
	}
	if r, ok := request.(interface{ meta() *Request }); ok {
		return r.meta()
	}
	return nil
}

func (r *Request) meta() *Request { return r }

func missing(field string) error {
	return validation.ValidationError{
		Field:   field,
		Tag:     "required",
		Message: "Field '" + field + "' is required",
	}
}
