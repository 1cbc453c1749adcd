package current

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-identity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Current(acc *models.Account) models.AccountSummary {
	args := m.Called(acc)
	return args.Get(0).(models.AccountSummary)
}

func TestCurrentHandler_ServeHTTP(t *testing.T) {
	acc := &models.Account{UUID: "uid-1", Email: "user@example.com", Subscription: models.TierBusiness}
	svc := new(ServiceMock)
	svc.On("Current", acc).Return(acc.Summary()).Once()

	req := httptest.NewRequest(http.MethodGet, "/users/current", nil)
	req = req.WithContext(middlewarectx.WithAccount(req.Context(), acc))
	rec := httptest.NewRecorder()

	New(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, map[string]any{"email": "user@example.com", "subscription": "business"}, got["data"])
	svc.AssertExpectations(t)
}

func TestCurrentHandler_NoAccount(t *testing.T) {
	svc := new(ServiceMock)
	rec := httptest.NewRecorder()

	New(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/current", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Current", mock.Anything)
}
