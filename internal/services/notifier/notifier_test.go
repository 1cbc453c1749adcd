package notifier

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/user-identity/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordNotificationFailure() {
	m.Called()
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestNotifier_Notify(t *testing.T) {
	tests := []struct {
		name       string
		publishErr error
		setupMocks func(*MockMetrics)
	}{
		{
			name:       "success",
			setupMocks: func(_ *MockMetrics) {},
		},
		{
			name:       "publish error is recorded",
			publishErr: errors.New("channel closed"),
			setupMocks: func(m *MockMetrics) {
				m.On("RecordNotificationFailure").Return().Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := new(MockPublisher)
			metrics := new(MockMetrics)
			tt.setupMocks(metrics)

			expected := models.VerificationMessage{
				Email: "a@x.com",
				Token: "tok",
				Link:  "http://localhost:3000/users/verify/tok",
			}
			pub.On("Publish", rabbitmq.VerificationRoutingKey, expected).Return(tt.publishErr).Once()

			n := New(pub, newNoopLogger(), metrics, "http://localhost:3000/")
			n.Notify(context.Background(), "a@x.com", "tok")
			n.Wait()

			pub.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}

func TestNotifier_IgnoresCallerCancellation(t *testing.T) {
	pub := new(MockPublisher)
	metrics := new(MockMetrics)
	pub.On("Publish", rabbitmq.VerificationRoutingKey, mock.AnythingOfType("models.VerificationMessage")).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := New(pub, newNoopLogger(), metrics, "http://localhost:3000")
	n.Notify(ctx, "a@x.com", "tok")
	n.Wait()

	pub.AssertExpectations(t)
	metrics.AssertNotCalled(t, "RecordNotificationFailure")
}

func TestNotifier_Link(t *testing.T) {
	n := New(nil, newNoopLogger(), nil, "https://id.example.com/")
	assert.Equal(t, "https://id.example.com/users/verify/abc", n.Link("abc"))
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))

	n := New(NewLogPublisher(log), log, new(MockMetrics), "http://localhost:3000")
	n.Notify(context.Background(), "a@x.com", "tok")
	n.Wait()

	assert.Contains(t, buf.String(), "routing_key="+rabbitmq.VerificationRoutingKey)
	assert.Contains(t, buf.String(), "/users/verify/tok")
}
