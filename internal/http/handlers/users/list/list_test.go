package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-identity/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context) ([]models.PublicAccount, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.PublicAccount)
	return users, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestListHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		mockResp       []models.PublicAccount
		mockErr        error
		wantStatusCode int
		wantUsers      int
	}{
		{
			name: "two accounts",
			mockResp: []models.PublicAccount{
				{Email: "a@example.com", Subscription: models.TierStarter},
				{Email: "b@example.com", Subscription: models.TierPro},
			},
			wantStatusCode: http.StatusOK,
			wantUsers:      2,
		},
		{
			name:           "empty",
			mockResp:       []models.PublicAccount{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "storage failure",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("List", mock.Anything).Return(tt.mockResp, tt.mockErr).Once()

			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.mockErr == nil {
				data, ok := got["data"].(map[string]any)
				require.True(t, ok)
				users, ok := data["users"].([]any)
				require.True(t, ok)
				assert.Len(t, users, tt.wantUsers)
			}
			svc.AssertExpectations(t)
		})
	}
}
