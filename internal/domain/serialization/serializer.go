package serialization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
)

// SerializationFormat 序列化格式
type SerializationFormat string

const (
	FormatJSON       SerializationFormat = "json"
	FormatPrettyJSON SerializationFormat = "pretty"
)

// Decoder 将报文解析为OICP消息。urlID 为URL路径中的服务商或运营商标识，可为空
type Decoder func(data []byte, urlID string, opts ...emp.Option) (emp.Message, error)

// Serializer OICP消息编解码注册表
type Serializer struct {
	format   SerializationFormat
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// SerializationError 序列化错误
type SerializationError struct {
	Operation string
	Message   string
	Cause     error
}

// Error 实现error接口
func (e SerializationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap 返回底层错误
func (e SerializationError) Unwrap() error {
	return e.Cause
}

// NewSerializer 创建序列化器并注册所有请求类型的解码器
func NewSerializer(format SerializationFormat) *Serializer {
	s := &Serializer{
		format:   format,
		decoders: make(map[string]Decoder),
	}

	s.Register("PullEVSEDataRequest", byProvider(emp.ParsePullEVSEDataRequest))
	s.Register("PullEVSEStatusRequest", byProvider(emp.ParsePullEVSEStatusRequest))
	s.Register("PullEVSEStatusByIdRequest", byProvider(emp.ParsePullEVSEStatusByIdRequest))
	s.Register("PullEVSEStatusByOperatorIdRequest", byProvider(emp.ParsePullEVSEStatusByOperatorIdRequest))
	s.Register("PullPricingProductDataRequest", byProvider(emp.ParsePullPricingProductDataRequest))
	s.Register("PullEVSEPricingRequest", byProvider(emp.ParsePullEVSEPricingRequest))
	s.Register("PushAuthenticationDataRequest", byProvider(emp.ParsePushAuthenticationDataRequest))
	s.Register("AuthorizeRemoteReservationStartRequest", byProvider(emp.ParseAuthorizeRemoteReservationStartRequest))
	s.Register("AuthorizeRemoteReservationStopRequest", byProvider(emp.ParseAuthorizeRemoteReservationStopRequest))
	s.Register("AuthorizeRemoteStartRequest", byProvider(emp.ParseAuthorizeRemoteStartRequest))
	s.Register("AuthorizeRemoteStopRequest", byProvider(emp.ParseAuthorizeRemoteStopRequest))
	s.Register("GetChargeDetailRecordsRequest", byProvider(emp.ParseGetChargeDetailRecordsRequest))

	s.Register("AuthorizeStartRequest", byOperator(emp.ParseAuthorizeStartRequest))
	s.Register("AuthorizeStopRequest", byOperator(emp.ParseAuthorizeStopRequest))
	s.Register("ChargeDetailRecordRequest", byOperator(emp.ParseChargeDetailRecordRequest))

	s.Register("ChargingNotification", func(data []byte, _ string, opts ...emp.Option) (emp.Message, error) {
		n, err := emp.ParseChargingNotification(data, opts...)
		if err != nil {
			return nil, err
		}
		return n, nil
	})
	s.Register("ChargingStartNotificationRequest", unscoped(emp.ParseChargingStartNotificationRequest))
	s.Register("ChargingProgressNotificationRequest", unscoped(emp.ParseChargingProgressNotificationRequest))
	s.Register("ChargingEndNotificationRequest", unscoped(emp.ParseChargingEndNotificationRequest))
	s.Register("ChargingErrorNotificationRequest", unscoped(emp.ParseChargingErrorNotificationRequest))

	return s
}

func byProvider[T emp.Message](parse func([]byte, oicp.ProviderID, ...emp.Option) (T, error)) Decoder {
	return func(data []byte, urlID string, opts ...emp.Option) (emp.Message, error) {
		msg, err := parse(data, oicp.ProviderID(urlID), opts...)
		if err != nil {
			return nil, err
		}
		return msg, nil
	}
}

func byOperator[T emp.Message](parse func([]byte, oicp.OperatorID, ...emp.Option) (T, error)) Decoder {
	return func(data []byte, urlID string, opts ...emp.Option) (emp.Message, error) {
		msg, err := parse(data, oicp.OperatorID(urlID), opts...)
		if err != nil {
			return nil, err
		}
		return msg, nil
	}
}

func unscoped[T emp.Message](parse func([]byte, ...emp.Option) (T, error)) Decoder {
	return func(data []byte, _ string, opts ...emp.Option) (emp.Message, error) {
		msg, err := parse(data, opts...)
		if err != nil {
			return nil, err
		}
		return msg, nil
	}
}

// Register 注册或替换消息解码器
func (s *Serializer) Register(name string, decoder Decoder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decoders[name] = decoder
}

// Names 已注册的消息名称，按字母排序
func (s *Serializer) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.decoders))
	for name := range s.decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode 按消息名称解析报文
func (s *Serializer) Decode(name string, data []byte, urlID string, opts ...emp.Option) (emp.Message, error) {
	s.mu.RLock()
	decoder, ok := s.decoders[name]
	s.mu.RUnlock()
	if !ok {
		return nil, SerializationError{
			Operation: "Decode",
			Message:   fmt.Sprintf("unknown message type: %s", name),
		}
	}
	return decoder(data, urlID, opts...)
}

// Encode 按配置的格式序列化消息
func (s *Serializer) Encode(msg emp.Message) ([]byte, error) {
	data, err := msg.ToJSON()
	if err != nil {
		return nil, SerializationError{
			Operation: "Encode",
			Message:   "Failed to marshal " + msg.MessageType(),
			Cause:     err,
		}
	}

	switch s.format {
	case FormatJSON:
		return data, nil
	case FormatPrettyJSON:
		return s.PrettyPrint(data)
	default:
		return nil, SerializationError{
			Operation: "Encode",
			Message:   fmt.Sprintf("Unsupported format: %s", s.format),
		}
	}
}

// PrettyPrint 格式化打印JSON
func (s *Serializer) PrettyPrint(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, SerializationError{
			Operation: "PrettyPrint",
			Message:   "Failed to format JSON",
			Cause:     err,
		}
	}
	return out.Bytes(), nil
}

// CompactJSON 压缩JSON
func (s *Serializer) CompactJSON(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Compact(&out, data); err != nil {
		return nil, SerializationError{
			Operation: "CompactJSON",
			Message:   "Failed to compact JSON",
			Cause:     err,
		}
	}
	return out.Bytes(), nil
}
