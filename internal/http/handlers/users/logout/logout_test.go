package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/user-identity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Logout(ctx context.Context, acc *models.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	acc := &models.Account{UUID: "uid-1", Email: "user@example.com"}

	tests := []struct {
		name           string
		withAccount    bool
		mockErr        error
		wantStatusCode int
	}{
		{name: "success", withAccount: true, wantStatusCode: http.StatusNoContent},
		{name: "no account in context", wantStatusCode: http.StatusUnauthorized},
		{name: "storage failure", withAccount: true, mockErr: errors.New("db down"), wantStatusCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.withAccount {
				svc.On("Logout", mock.Anything, acc).Return(tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/users/logout", nil)
			if tt.withAccount {
				req = req.WithContext(middlewarectx.WithAccount(req.Context(), acc))
			}
			rec := httptest.NewRecorder()

			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantStatusCode == http.StatusNoContent {
				assert.Empty(t, rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}
