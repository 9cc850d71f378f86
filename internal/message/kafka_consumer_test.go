package message_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/serialization"
	"github.com/charging-platform/oicp-emp-gateway/internal/logger"
	"github.com/charging-platform/oicp-emp-gateway/internal/message"
)

// MockSaramaConsumerGroup is a mock for our SaramaConsumerGroup interface
type MockSaramaConsumerGroup struct {
	mock.Mock
}

func (m *MockSaramaConsumerGroup) Consume(ctx context.Context, topics []string, handler sarama.ConsumerGroupHandler) error {
	args := m.Called(ctx, topics, handler)
	return args.Error(0)
}

func (m *MockSaramaConsumerGroup) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSaramaConsumerGroupSession is a mock for sarama.ConsumerGroupSession
type MockSaramaConsumerGroupSession struct {
	mock.Mock
	ctx context.Context
}

func (m *MockSaramaConsumerGroupSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	m.Called(msg, metadata)
}

func (m *MockSaramaConsumerGroupSession) Context() context.Context {
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

func (m *MockSaramaConsumerGroupSession) Claims() map[string][]int32 { return nil }
func (m *MockSaramaConsumerGroupSession) MemberID() string           { return "" }
func (m *MockSaramaConsumerGroupSession) GenerationID() int32        { return 0 }
func (m *MockSaramaConsumerGroupSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
}
func (m *MockSaramaConsumerGroupSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
}
func (m *MockSaramaConsumerGroupSession) Commit() {}

// MockSaramaConsumerGroupClaim is a mock for sarama.ConsumerGroupClaim
type MockSaramaConsumerGroupClaim struct {
	msgChan chan *sarama.ConsumerMessage
	part    int32
}

func (m *MockSaramaConsumerGroupClaim) Messages() <-chan *sarama.ConsumerMessage {
	return m.msgChan
}

func (m *MockSaramaConsumerGroupClaim) Partition() int32 {
	return m.part
}

func (m *MockSaramaConsumerGroupClaim) Topic() string              { return "test-topic" }
func (m *MockSaramaConsumerGroupClaim) InitialOffset() int64       { return 0 }
func (m *MockSaramaConsumerGroupClaim) HighWaterMarkOffset() int64 { return 0 }

const remoteStartPayload = `{
	"ProviderID": "DE*GDF",
	"EvseID": "DE*ABC*E123456",
	"Identification": {"RemoteIdentification": {"EvcoID": "DE-GDF-C12345678-X"}}
}`

func remoteStartCommand() *message.Command {
	return &message.Command{
		CommandID:  "cmd-1",
		Name:       "AuthorizeRemoteStartRequest",
		ProviderID: "DE*GDF",
		Payload:    json.RawMessage(remoteStartPayload),
	}
}

func TestConsumeClaim(t *testing.T) {
	log, _ := logger.New(logger.DefaultConfig())

	testCases := []struct {
		name                string
		messageValue        []byte
		handlerErr          error
		expectHandlerCalled bool
	}{
		{
			name:                "should process a valid command",
			messageValue:        mustMarshal(t, remoteStartCommand()),
			expectHandlerCalled: true,
		},
		{
			name:                "should mark a command whose handler fails",
			messageValue:        mustMarshal(t, remoteStartCommand()),
			handlerErr:          errors.New("hubject unavailable"),
			expectHandlerCalled: true,
		},
		{
			name:                "should not process invalid json message but still mark it",
			messageValue:        []byte(`{"invalid": "json"`),
			expectHandlerCalled: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var receivedCmd *message.Command
			handler := func(_ context.Context, cmd *message.Command) error {
				receivedCmd = cmd
				return tc.handlerErr
			}

			consumer := message.NewKafkaConsumerForTest("test-pod-1", log, handler)

			msgChan := make(chan *sarama.ConsumerMessage, 1)
			msgChan <- &sarama.ConsumerMessage{Value: tc.messageValue}
			close(msgChan)

			mockSession := &MockSaramaConsumerGroupSession{}
			mockSession.On("MarkMessage", mock.Anything, "").Return()

			err := consumer.ConsumeClaim(mockSession, &MockSaramaConsumerGroupClaim{msgChan: msgChan})
			assert.NoError(t, err)

			if tc.expectHandlerCalled {
				require.NotNil(t, receivedCmd)
				assert.Equal(t, "AuthorizeRemoteStartRequest", receivedCmd.Name)
				assert.Equal(t, "cmd-1", receivedCmd.CommandID)
			} else {
				assert.Nil(t, receivedCmd)
			}
			mockSession.AssertNumberOfCalls(t, "MarkMessage", 1)
		})
	}
}

func TestConsumeClaim_StopsOnSessionCancel(t *testing.T) {
	log, _ := logger.New(logger.DefaultConfig())
	consumer := message.NewKafkaConsumerForTest("test-pod-1", log, func(context.Context, *message.Command) error {
		t.Fatal("handler must not be called")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mockSession := &MockSaramaConsumerGroupSession{ctx: ctx}

	err := consumer.ConsumeClaim(mockSession, &MockSaramaConsumerGroupClaim{msgChan: make(chan *sarama.ConsumerMessage)})
	assert.NoError(t, err)
	mockSession.AssertNotCalled(t, "MarkMessage", mock.Anything, mock.Anything)
}

func TestCommand_Decode(t *testing.T) {
	s := serialization.NewSerializer(serialization.FormatJSON)

	msg, err := remoteStartCommand().Decode(s)
	require.NoError(t, err)
	req, ok := msg.(*emp.AuthorizeRemoteStartRequest)
	require.True(t, ok)
	assert.Equal(t, "DE*ABC*E123456", string(req.EvseID))

	// 指令声明的服务商与载荷不一致
	cmd := remoteStartCommand()
	cmd.ProviderID = "DE*XYZ"
	_, err = cmd.Decode(s)
	assert.True(t, emp.IsParseError(err))

	cmd = remoteStartCommand()
	cmd.Name = "UnknownRequest"
	_, err = cmd.Decode(s)
	assert.Error(t, err)
}

func TestKafkaConsumerStartAndClose(t *testing.T) {
	topic := "test-topic"
	log, _ := logger.New(logger.DefaultConfig())

	mockConsumerGroup := new(MockSaramaConsumerGroup)
	consumer := message.NewKafkaConsumerWithGroup(mockConsumerGroup, topic, "test-pod", log)

	var handlerWg sync.WaitGroup
	handlerWg.Add(1)
	handler := func(_ context.Context, cmd *message.Command) error {
		assert.Equal(t, "AuthorizeRemoteStartRequest", cmd.Name)
		handlerWg.Done()
		return nil
	}

	// Consume 模拟一次 rebalance 周期：把一条指令交给 handler 后返回
	mockConsumerGroup.On("Consume", mock.Anything, []string{topic}, mock.Anything).
		Run(func(args mock.Arguments) {
			h := args.Get(2).(sarama.ConsumerGroupHandler)
			session := new(MockSaramaConsumerGroupSession)
			session.On("MarkMessage", mock.Anything, "").Return()

			msgChan := make(chan *sarama.ConsumerMessage, 1)
			msgChan <- &sarama.ConsumerMessage{Topic: topic, Value: mustMarshal(t, remoteStartCommand())}
			close(msgChan)

			require.NoError(t, h.Setup(session))
			require.NoError(t, h.ConsumeClaim(session, &MockSaramaConsumerGroupClaim{msgChan: msgChan}))
			require.NoError(t, h.Cleanup(session))
		}).
		Return(nil).Once()
	mockConsumerGroup.On("Consume", mock.Anything, []string{topic}, mock.Anything).Return(nil)
	mockConsumerGroup.On("Close").Return(nil)

	err := consumer.Start(context.Background(), handler)
	require.NoError(t, err)

	waitTimeout(t, &handlerWg, time.Second)

	assert.NoError(t, consumer.Close())
	mockConsumerGroup.AssertCalled(t, "Close")
}

func TestKafkaConsumerStart_NilHandler(t *testing.T) {
	log, _ := logger.New(logger.DefaultConfig())
	consumer := message.NewKafkaConsumerWithGroup(new(MockSaramaConsumerGroup), "test-topic", "test-pod", log)
	assert.Error(t, consumer.Start(context.Background(), nil))
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for handler")
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal test data: %v", err)
	}
	return bytes
}
