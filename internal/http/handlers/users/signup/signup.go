// Package signup содержит обработчик регистрации учётной записи.
package signup

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-identity/internal/http/response"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Request входные данные для регистрации.
type Request struct {
	Email        string `json:"email" validate:"required,email" example:"user@example.com"`
	Password     string `json:"password" validate:"required" example:"Secret#123"`
	Subscription string `json:"subscription,omitempty" validate:"omitempty,oneof=starter pro business" example:"starter"`
}

// Data тело успешного ответа.
type Data struct {
	User models.PublicAccount `json:"user"`
}

// Handler обрабатывает POST /users/signup.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация учётной записи
// @Description Создает неподтверждённую учётную запись и отправляет письмо со ссылкой подтверждения
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные новой учётной записи"
// @Success 201 {object} response.Response{data=Data} "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Email уже используется"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug("failed to decode request body", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Debug("validation failed", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusBadRequest, "validation error"))
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password, models.SubscriptionTier(req.Subscription))
	switch {
	case err == nil:
	case errors.Is(err, models.ErrValidation):
		log.Debug("registration rejected", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusBadRequest, "validation error"))
		return
	case errors.Is(err, models.ErrConflict):
		response.Render(w, r, response.Error(http.StatusConflict, "Email in use"))
		return
	default:
		log.Error("registration failed", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusInternalServerError, "internal server error"))
		return
	}

	response.Render(w, r, response.WithData(http.StatusCreated, Data{User: *user}))
}
