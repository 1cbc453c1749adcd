package sender

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/user-identity/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/user-identity/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Dial() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) From() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordEmailSent(err error) {
	m.Called(err)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const validBody = `{"email":"test@example.com","token":"tok123","link":"http://localhost:3000/users/verify/tok123"}`

func TestService_SendVerification(t *testing.T) {
	tests := []struct {
		name          string
		body          []byte
		setupMocks    func(*MockTransport)
		expectedError bool
		errorMessage  string
		unprocessable bool
	}{
		{
			name: "success - send verification email",
			body: []byte(validBody),
			setupMocks: func(t *MockTransport) {
				mockClient := new(MockSMTPClient)
				mockWriter := new(MockSMTPWriter)

				t.On("From").Return("sender@example.com")
				t.On("Dial").Return(mockClient, nil).Once()
				mockClient.On("Mail", "sender@example.com").Return(nil).Once()
				mockClient.On("Rcpt", "test@example.com").Return(nil).Once()
				mockClient.On("Data").Return(mockWriter, nil).Once()
				mockWriter.On("Write", mock.MatchedBy(func(p []byte) bool {
					body := string(p)
					return strings.Contains(body, "To: test@example.com") &&
						strings.Contains(body, "/users/verify/tok123")
				})).Return(100, nil).Once()
				mockWriter.On("Close").Return(nil).Once()
				mockClient.On("Quit").Return(nil).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			expectedError: false,
		},
		{
			name: "invalid JSON",
			body: []byte(`invalid json`),
			setupMocks: func(_ *MockTransport) {
				// Для невалидного JSON обращений к транспорту нет
			},
			expectedError: true,
			errorMessage:  "error unmarshalling message",
			unprocessable: true,
		},
		{
			name:          "empty token",
			body:          []byte(`{"email":"test@example.com"}`),
			setupMocks:    func(_ *MockTransport) {},
			expectedError: true,
			errorMessage:  "empty email or token",
			unprocessable: true,
		},
		{
			name: "SMTP connection error",
			body: []byte(validBody),
			setupMocks: func(t *MockTransport) {
				t.On("From").Return("sender@example.com")
				t.On("Dial").Return(nil, errors.New("connection error")).Once()
			},
			expectedError: true,
			errorMessage:  "connection error",
		},
		{
			name: "RCPT error",
			body: []byte(validBody),
			setupMocks: func(t *MockTransport) {
				mockClient := new(MockSMTPClient)

				t.On("From").Return("sender@example.com")
				t.On("Dial").Return(mockClient, nil).Once()
				mockClient.On("Mail", "sender@example.com").Return(nil).Once()
				mockClient.On("Rcpt", "test@example.com").Return(errors.New("mailbox unavailable")).Once()
				mockClient.On("Close").Return(nil).Once()
			},
			expectedError: true,
			errorMessage:  "mailbox unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			metrics := new(MockMetrics)
			metrics.On("RecordEmailSent", mock.Anything).Return().Once()
			service := New(newNoopLogger(), transport, metrics)

			tt.setupMocks(transport)

			err := service.SendVerification(tt.body)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMessage)
				assert.Equal(t, tt.unprocessable, errors.Is(err, rabbitmq.ErrUnprocessable))
			} else {
				assert.NoError(t, err)
			}

			transport.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}
