package message

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/events"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

// 事件类型写入消息头，消费方无需解析载荷即可过滤
const headerEventType = "event_type"

// DefaultConfirmTimeout 等待Kafka确认写入的默认上限
const DefaultConfirmTimeout = 10 * time.Second

// ErrProducerClosed 生产者关闭后继续发布
var ErrProducerClosed = errors.New("event producer is closed")

type KafkaProducer struct {
	producer sarama.AsyncProducer
	topic    string

	// ConfirmTimeout PublishEventConfirmed 的等待上限
	ConfirmTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// delivery 随消息传递，done 非空时由结果处理协程回报写入结果
type delivery struct {
	eventType events.EventType
	done      chan error
}

// NewKafkaProducer 创建一个新的 KafkaProducer
func NewKafkaProducer(brokers []string, topic string) (*KafkaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal       // 只等待本地确认
	config.Producer.Compression = sarama.CompressionSnappy   // 压缩
	config.Producer.Flush.Frequency = 500 * time.Millisecond // 刷新频率
	config.Producer.Return.Successes = true                  // 开启成功交付通知
	config.Producer.Return.Errors = true                     // 开启错误通知

	producer, err := sarama.NewAsyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka async producer: %w", err)
	}
	return NewKafkaProducerWithClient(producer, topic), nil
}

// NewKafkaProducerWithClient 使用已有的 AsyncProducer 创建生产者
func NewKafkaProducerWithClient(producer sarama.AsyncProducer, topic string) *KafkaProducer {
	kp := &KafkaProducer{
		producer:       producer,
		topic:          topic,
		ConfirmTimeout: DefaultConfirmTimeout,
	}

	// 启动 goroutine 处理成功和失败的 Kafka 消息
	go kp.handleSuccesses()
	go kp.handleErrors()

	return kp
}

// PublishEvent 把事件放入发送队列后立即返回，写入失败只记录日志
func (p *KafkaProducer) PublishEvent(event events.Event) error {
	return p.enqueue(event, nil)
}

// PublishEventConfirmed 发布事件并等待Kafka确认写入
func (p *KafkaProducer) PublishEventConfirmed(ctx context.Context, event events.Event) error {
	if p.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.ConfirmTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	if err := p.enqueue(event, done); err != nil {
		return err
	}
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to deliver %s event: %w", event.GetType(), err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for %s event delivery: %w", event.GetType(), ctx.Err())
	}
}

func (p *KafkaProducer) enqueue(event events.Event, done chan error) error {
	eventData, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrProducerClosed
	}
	p.producer.Input() <- &sarama.ProducerMessage{
		Topic:    p.topic,
		Key:      sarama.StringEncoder(partitionKey(event)), // 同一会话的事件落入同一分区，保证顺序
		Value:    sarama.ByteEncoder(eventData),
		Headers:  []sarama.RecordHeader{{Key: []byte(headerEventType), Value: []byte(event.GetType())}},
		Metadata: &delivery{eventType: event.GetType(), done: done},
	}
	return nil
}

// Close 关闭生产者，之后的发布返回 ErrProducerClosed
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// partitionKey 会话ID，没有会话的事件(如协议错误)使用事件ID
func partitionKey(event events.Event) string {
	if id := event.GetSessionID(); id != "" {
		return string(id)
	}
	return event.GetID()
}

func (p *KafkaProducer) handleSuccesses() {
	for msg := range p.producer.Successes() {
		d := deliveryOf(msg)
		metrics.EventsPublished.WithLabelValues(string(d.eventType)).Inc()
		log.Debug().
			Str("topic", msg.Topic).
			Str("key", encoderString(msg.Key)).
			Str("event_type", string(d.eventType)).
			Msg("Kafka message sent successfully")
		d.report(nil)
	}
}

func (p *KafkaProducer) handleErrors() {
	for err := range p.producer.Errors() {
		d := deliveryOf(err.Msg)
		log.Error().
			Err(err).
			Str("topic", err.Msg.Topic).
			Str("key", encoderString(err.Msg.Key)).
			Str("event_type", string(d.eventType)).
			Msg("Failed to send Kafka message")
		d.report(err.Err)
	}
}

func deliveryOf(msg *sarama.ProducerMessage) *delivery {
	if d, ok := msg.Metadata.(*delivery); ok && d != nil {
		return d
	}
	return &delivery{}
}

func (d *delivery) report(err error) {
	if d.done != nil {
		d.done <- err
	}
}

func encoderString(e sarama.Encoder) string {
	if s, ok := e.(sarama.StringEncoder); ok {
		return string(s)
	}
	return ""
}

// LogProducer 未配置Kafka时使用，只把事件写入日志
type LogProducer struct{}

func (LogProducer) PublishEvent(event events.Event) error {
	data, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}
	metrics.EventsPublished.WithLabelValues(string(event.GetType())).Inc()
	log.Info().
		Str("event_type", string(event.GetType())).
		Str("session_id", string(event.GetSessionID())).
		RawJSON("event", data).
		Msg("event")
	return nil
}

// PublishEventConfirmed 日志写入即视为确认
func (p LogProducer) PublishEventConfirmed(_ context.Context, event events.Event) error {
	return p.PublishEvent(event)
}

func (LogProducer) Close() error { return nil }
