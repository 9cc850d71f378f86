package message

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/events"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/metrics"
)

// MockAsyncProducer 是 sarama.AsyncProducer 的 mock 实现
type MockAsyncProducer struct {
	mock.Mock
	input     chan *sarama.ProducerMessage
	successes chan *sarama.ProducerMessage
	errors    chan *sarama.ProducerError
}

func NewMockAsyncProducer() *MockAsyncProducer {
	return &MockAsyncProducer{
		input:     make(chan *sarama.ProducerMessage, 1),
		successes: make(chan *sarama.ProducerMessage),
		errors:    make(chan *sarama.ProducerError),
	}
}

func (m *MockAsyncProducer) AsyncClose() {
	m.Called()
	close(m.input)
	close(m.successes)
	close(m.errors)
}

func (m *MockAsyncProducer) Close() error {
	args := m.Called()
	m.AsyncClose()
	return args.Error(0)
}

func (m *MockAsyncProducer) Input() chan<- *sarama.ProducerMessage {
	return m.input
}

func (m *MockAsyncProducer) AbortTxn() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockAsyncProducer) Successes() <-chan *sarama.ProducerMessage {
	return m.successes
}

func (m *MockAsyncProducer) IsTransactional() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAsyncProducer) TxnStatus() sarama.ProducerTxnStatusFlag {
	args := m.Called()
	return args.Get(0).(sarama.ProducerTxnStatusFlag)
}

func (m *MockAsyncProducer) BeginTxn() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockAsyncProducer) CommitTxn() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockAsyncProducer) AddOffsetsToTxn(offsets map[string][]*sarama.PartitionOffsetMetadata, groupID string) error {
	args := m.Called(offsets, groupID)
	return args.Error(0)
}

func (m *MockAsyncProducer) AddMessageToTxn(msg *sarama.ConsumerMessage, groupID string, metadata *string) error {
	args := m.Called(msg, groupID, metadata)
	return args.Error(0)
}

func (m *MockAsyncProducer) Errors() <-chan *sarama.ProducerError {
	return m.errors
}

// UnserializableEvent 实现了 events.Event 接口，但其 ToJSON 方法总是返回错误
type UnserializableEvent struct {
	*events.BaseEvent
}

func (e *UnserializableEvent) GetPayload() interface{} {
	return nil
}

func (e *UnserializableEvent) ToJSON() ([]byte, error) {
	return nil, assert.AnError
}

const testSessionID = oicp.SessionID("b2688855-7f00-0002-6d8e-48d883f6abb6")

func TestEventProducerInterface(t *testing.T) {
	var _ EventProducer = (*KafkaProducer)(nil)
	var _ EventProducer = LogProducer{}
}

func TestPublishEvent(t *testing.T) {
	factory := events.NewEventFactory("pod-1")
	withSession := factory.CreateRemoteCommandEvent(testSessionID, events.CommandInfo{Name: "AuthorizeRemoteStop", Result: true}, events.Metadata{})
	withoutSession := factory.CreateProtocolErrorEvent(events.ErrorInfo{Code: oicp.StatusCodeSystemError, Message: "bad json"}, nil, events.Metadata{})

	tests := []struct {
		name    string
		event   events.Event
		wantKey string
	}{
		{name: "keyed by session", event: withSession, wantKey: string(testSessionID)},
		{name: "falls back to event id", event: withoutSession, wantKey: withoutSession.GetID()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProducer := NewMockAsyncProducer()
			kp := &KafkaProducer{producer: mockProducer, topic: "emp-events"}

			require.NoError(t, kp.PublishEvent(tt.event))

			msg := <-mockProducer.input
			assert.Equal(t, "emp-events", msg.Topic)
			assert.Equal(t, sarama.StringEncoder(tt.wantKey), msg.Key)
			assert.Equal(t, &delivery{eventType: tt.event.GetType()}, msg.Metadata)
			require.Len(t, msg.Headers, 1)
			assert.Equal(t, string(tt.event.GetType()), string(msg.Headers[0].Value))

			want, err := tt.event.ToJSON()
			require.NoError(t, err)
			assert.Equal(t, sarama.ByteEncoder(want), msg.Value)
		})
	}
}

func TestPublishEvent_Failure(t *testing.T) {
	mockProducer := NewMockAsyncProducer()
	kp := &KafkaProducer{producer: mockProducer, topic: "test-topic"}

	badEvent := &UnserializableEvent{
		BaseEvent: events.NewBaseEvent(events.EventType("BadEventType"), testSessionID, events.EventSeverityError, events.Metadata{}),
	}

	err := kp.PublishEvent(badEvent)
	assert.Error(t, err, "Expected an error when event serialization fails")
	assert.Len(t, mockProducer.input, 0)
}

func TestHandleSuccesses_CountsPublishedEvents(t *testing.T) {
	mockProducer := NewMockAsyncProducer()
	mockProducer.On("Close").Return(nil)
	mockProducer.On("AsyncClose").Return()
	kp := NewKafkaProducerWithClient(mockProducer, "emp-events")

	counter := metrics.EventsPublished.WithLabelValues(string(events.EventTypeChargingEnded))
	before := testutil.ToFloat64(counter)

	mockProducer.successes <- &sarama.ProducerMessage{
		Topic:    "emp-events",
		Key:      sarama.StringEncoder(testSessionID),
		Metadata: &delivery{eventType: events.EventTypeChargingEnded},
	}

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(counter) == before+1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, kp.Close())
}

func TestPublishEventConfirmed(t *testing.T) {
	event := events.NewEventFactory("pod-1").CreateRemoteCommandEvent(testSessionID, events.CommandInfo{Name: "ChargeDetailRecord"}, events.Metadata{})

	tests := []struct {
		name    string
		result  func(p *MockAsyncProducer, msg *sarama.ProducerMessage)
		wantErr error
	}{
		{
			name: "acknowledged by broker",
			result: func(p *MockAsyncProducer, msg *sarama.ProducerMessage) {
				p.successes <- msg
			},
		},
		{
			name: "delivery failed",
			result: func(p *MockAsyncProducer, msg *sarama.ProducerMessage) {
				p.errors <- &sarama.ProducerError{Msg: msg, Err: sarama.ErrNotEnoughReplicas}
			},
			wantErr: sarama.ErrNotEnoughReplicas,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProducer := NewMockAsyncProducer()
			mockProducer.On("Close").Return(nil)
			mockProducer.On("AsyncClose").Return()
			kp := NewKafkaProducerWithClient(mockProducer, "emp-events")

			result := make(chan error, 1)
			go func() { result <- kp.PublishEventConfirmed(context.Background(), event) }()

			msg := <-mockProducer.input
			select {
			case err := <-result:
				t.Fatalf("returned before delivery result: %v", err)
			case <-time.After(20 * time.Millisecond):
			}
			tt.result(mockProducer, msg)

			select {
			case err := <-result:
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.NoError(t, err)
				}
			case <-time.After(time.Second):
				t.Fatal("no delivery result")
			}
			require.NoError(t, kp.Close())
		})
	}
}

func TestPublishEventConfirmed_Timeout(t *testing.T) {
	mockProducer := NewMockAsyncProducer()
	kp := &KafkaProducer{producer: mockProducer, topic: "emp-events", ConfirmTimeout: 30 * time.Millisecond}
	event := events.NewEventFactory("pod-1").CreateRemoteCommandEvent(testSessionID, events.CommandInfo{Name: "ChargeDetailRecord"}, events.Metadata{})

	err := kp.PublishEventConfirmed(context.Background(), event)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, mockProducer.input, 1)
}

func TestPublishEvent_AfterClose(t *testing.T) {
	mockProducer := NewMockAsyncProducer()
	mockProducer.On("Close").Return(nil)
	mockProducer.On("AsyncClose").Return()
	kp := NewKafkaProducerWithClient(mockProducer, "emp-events")
	require.NoError(t, kp.Close())

	event := events.NewEventFactory("pod-1").CreateRemoteCommandEvent(testSessionID, events.CommandInfo{Name: "AuthorizeRemoteStop"}, events.Metadata{})
	assert.NotPanics(t, func() {
		assert.True(t, errors.Is(kp.PublishEvent(event), ErrProducerClosed))
		assert.True(t, errors.Is(kp.PublishEventConfirmed(context.Background(), event), ErrProducerClosed))
	})
	// 重复关闭不再触达底层生产者
	require.NoError(t, kp.Close())
	mockProducer.AssertNumberOfCalls(t, "Close", 1)
}

func TestClose_Failure(t *testing.T) {
	mockProducer := NewMockAsyncProducer()
	mockProducer.On("Close").Return(assert.AnError)
	mockProducer.On("AsyncClose").Return()

	kp := &KafkaProducer{
		producer: mockProducer,
		topic:    "test-topic",
	}

	err := kp.Close()
	assert.Error(t, err, "Expected an error when producer close fails")
	mockProducer.AssertExpectations(t)
}

func TestLogProducer(t *testing.T) {
	event := events.NewEventFactory("pod-1").CreateRemoteCommandEvent(testSessionID, events.CommandInfo{Name: "AuthorizeRemoteStart"}, events.Metadata{})
	p := LogProducer{}
	assert.NoError(t, p.PublishEvent(event))
	assert.NoError(t, p.PublishEventConfirmed(context.Background(), event))
	assert.NoError(t, p.Close())

	bad := &UnserializableEvent{BaseEvent: events.NewBaseEvent("bad", "", events.EventSeverityInfo, events.Metadata{})}
	assert.Error(t, p.PublishEvent(bad))
}
