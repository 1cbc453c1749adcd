package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	resp := New(http.StatusConflict, "Email in use", nil)

	assert.Equal(t, "Conflict", resp.Status)
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "Email in use", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestRender(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Render(rec, req, WithData(http.StatusCreated, map[string]string{"k": "v"}))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Created", body["status"])
	assert.Equal(t, float64(http.StatusCreated), body["code"])
	assert.NotContains(t, body, "message")
	assert.Equal(t, map[string]any{"k": "v"}, body["data"])
}

func TestValidationError(t *testing.T) {
	type request struct {
		Email        string `validate:"required,email"`
		Password     string `validate:"required"`
		Subscription string `validate:"omitempty,oneof=starter pro business"`
	}

	err := validator.New().Struct(request{Email: "bad", Subscription: "gold"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Bad Request", resp.Status)
	assert.Contains(t, resp.Message, "field email must be a valid email")
	assert.Contains(t, resp.Message, "missing required field password")
	assert.Contains(t, resp.Message, "field subscription must be one of: starter pro business")
}
