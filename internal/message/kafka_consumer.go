package message

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

// 消费循环出错后的重试间隔
const consumeRetryInterval = time.Second

type KafkaConsumer struct {
	consumerGroup SaramaConsumerGroup
	topic         string
	podID         string // 当前 Pod 的唯一标识
	logger        *logger.Logger
	cancel        context.CancelFunc
	done          chan struct{}
	handler       CommandHandler
}

// NewKafkaConsumer 创建远程指令消费者
func NewKafkaConsumer(brokers []string, groupID, topic, podID string, logger *logger.Logger) (*KafkaConsumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetNewest // 网关重启后不重放过期的远程指令
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
	config.Consumer.Group.Session.Timeout = 10 * time.Second
	config.Consumer.Group.Heartbeat.Interval = 3 * time.Second

	consumerGroup, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama consumer group: %w", err)
	}

	go func() {
		for err := range consumerGroup.Errors() {
			logger.Errorf("Sarama consumer group error: %v", err)
		}
	}()

	return NewKafkaConsumerWithGroup(consumerGroup, topic, podID, logger), nil
}

// NewKafkaConsumerWithGroup 使用已有的消费者组创建消费者，便于注入
func NewKafkaConsumerWithGroup(group SaramaConsumerGroup, topic, podID string, logger *logger.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		consumerGroup: group,
		topic:         topic,
		podID:         podID,
		logger:        logger,
	}
}

// Start 启动消费者组，在 ctx 取消或 Close 之前持续消费
func (c *KafkaConsumer) Start(ctx context.Context, handler CommandHandler) error {
	if handler == nil {
		return fmt.Errorf("command handler must not be nil")
	}
	c.handler = handler

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	go func() {
		defer close(c.done)
		defer cancel()
		for {
			// Consume 在一次 rebalance 周期内阻塞，返回后需要重新加入
			if err := c.consumerGroup.Consume(ctx, []string{c.topic}, c); err != nil {
				c.logger.Errorf("Error from Kafka consumer group: %v", err)
			}
			if ctx.Err() != nil {
				c.logger.Infof("Kafka consumer context cancelled, stopping consumption.")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(consumeRetryInterval):
			}
		}
	}()
	return nil
}

// Close 关闭消费者
func (c *KafkaConsumer) Close() error {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}
	if c.consumerGroup != nil {
		return c.consumerGroup.Close()
	}
	return nil
}

// -- sarama.ConsumerGroupHandler 接口实现 --

func (c *KafkaConsumer) Setup(sarama.ConsumerGroupSession) error {
	c.logger.Info("Kafka consumer group setup completed.")
	return nil
}

func (c *KafkaConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	c.logger.Info("Kafka consumer group cleanup completed.")
	return nil
}

// ConsumeClaim 逐条处理分区中的指令。处理失败的消息同样会被标记，避免重复下发远程指令
func (c *KafkaConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	c.logger.Infof("Pod %s consuming commands from partition %d", c.podID, claim.Partition())

	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			c.handle(session.Context(), message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (c *KafkaConsumer) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	var cmd Command
	if err := json.Unmarshal(message.Value, &cmd); err != nil {
		metrics.CommandsConsumed.WithLabelValues("invalid").Inc()
		c.logger.Errorf("Failed to unmarshal Kafka message: %v, message: %s", err, string(message.Value))
		return
	}
	metrics.CommandsConsumed.WithLabelValues(cmd.Name).Inc()

	if err := c.handler(ctx, &cmd); err != nil {
		c.logger.Errorf("Command %s (%s) failed: %v", cmd.Name, cmd.CommandID, err)
		return
	}

	c.logger.Debugf("Command consumed and marked: Topic=%s, Partition=%d, Offset=%d, Name=%s",
		message.Topic, message.Partition, message.Offset, cmd.Name)
}

// NewKafkaConsumerForTest 仅为测试目的创建消费者实例，不连接真正的消费者组
func NewKafkaConsumerForTest(podID string, logger *logger.Logger, handler CommandHandler) *KafkaConsumer {
	return &KafkaConsumer{
		podID:   podID,
		logger:  logger,
		handler: handler,
	}
}
