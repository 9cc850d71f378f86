package gateway

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/charging-platform/oicp-emp-gateway/internal/domain/emp"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/events"
)

// MockEventProducer 是 message.EventProducer 的 mock 实现，记录发布的事件
type MockEventProducer struct {
	mock.Mock
	mu     sync.Mutex
	events []events.Event
}

func (m *MockEventProducer) PublishEvent(event events.Event) error {
	args := m.Called(event)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.events = append(m.events, event)
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *MockEventProducer) PublishEventConfirmed(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.events = append(m.events, event)
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *MockEventProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockEventProducer) Published() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.events...)
}

// MockHubjectClient 是 HubjectClient 的 mock 实现
type MockHubjectClient struct {
	mock.Mock
}

func (m *MockHubjectClient) AuthorizeRemoteStart(ctx context.Context, req *emp.AuthorizeRemoteStartRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteStartRequest], error) {
	args := m.Called(ctx, req)
	ack, _ := args.Get(0).(*emp.Acknowledgement[*emp.AuthorizeRemoteStartRequest])
	return ack, args.Error(1)
}

func (m *MockHubjectClient) AuthorizeRemoteStop(ctx context.Context, req *emp.AuthorizeRemoteStopRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteStopRequest], error) {
	args := m.Called(ctx, req)
	ack, _ := args.Get(0).(*emp.Acknowledgement[*emp.AuthorizeRemoteStopRequest])
	return ack, args.Error(1)
}

func (m *MockHubjectClient) AuthorizeRemoteReservationStart(ctx context.Context, req *emp.AuthorizeRemoteReservationStartRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStartRequest], error) {
	args := m.Called(ctx, req)
	ack, _ := args.Get(0).(*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStartRequest])
	return ack, args.Error(1)
}

func (m *MockHubjectClient) AuthorizeRemoteReservationStop(ctx context.Context, req *emp.AuthorizeRemoteReservationStopRequest) (*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStopRequest], error) {
	args := m.Called(ctx, req)
	ack, _ := args.Get(0).(*emp.Acknowledgement[*emp.AuthorizeRemoteReservationStopRequest])
	return ack, args.Error(1)
}

func (m *MockHubjectClient) PullEVSEStatusById(ctx context.Context, req *emp.PullEVSEStatusByIdRequest) (*emp.PullEVSEStatusByIdResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*emp.PullEVSEStatusByIdResponse)
	return resp, args.Error(1)
}
