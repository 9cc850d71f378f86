package message

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/events"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/serialization"
)

// EventProducer 定义了向消息队列发布统一业务事件的接口
type EventProducer interface {
	// PublishEvent 异步发布一个事件
	PublishEvent(event events.Event) error
	// PublishEventConfirmed 发布事件并等待消息队列确认写入，用于不能丢失的事件
	PublishEventConfirmed(ctx context.Context, event events.Event) error
	// Close 关闭生产者
	Close() error
}

// SaramaConsumerGroup sarama.ConsumerGroup 中消费者用到的部分，便于测试替换
type SaramaConsumerGroup interface {
	Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error
	Close() error
}

// Command EMP后台下发的远程指令。
// Name 为OICP消息名称 (例如 "AuthorizeRemoteStartRequest")，Payload 为该消息的OICP JSON。
type Command struct {
	CommandID  string          `json:"command_id"`
	Name       string          `json:"name"`
	ProviderID oicp.ProviderID `json:"provider_id,omitempty"`
	Payload    json.RawMessage `json:"payload"`
}

// Decode 通过编解码注册表把载荷解析为OICP消息，ProviderID 用于校验报文中的服务商
func (c *Command) Decode(s *serialization.Serializer, opts ...emp.Option) (emp.Message, error) {
	return s.Decode(c.Name, c.Payload, string(c.ProviderID), opts...)
}

// CommandHandler 指令处理函数
type CommandHandler func(ctx context.Context, cmd *Command) error
