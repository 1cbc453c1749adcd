// Package login содержит обработчик входа в учётную запись.
package login

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
	"github.com/magabrotheeeer/user-identity/internal/services/account"
)

// Request учётные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"Secret#123"`
}

// Data тело успешного ответа: токен и краткая проекция учётной записи.
type Data = account.LoginResult

// Handler обрабатывает POST /users/login.
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
// @Summary Вход в учётную запись
// @Description Проверяет email и пароль подтверждённой учётной записи и возвращает JWT на 1 час
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} response.Response{data=Data} "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль или email не подтверждён"
// @Failure 404 {object} response.ErrorResponse "Учётная запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.login"

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
		response.Render(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrValidation):
		response.Render(w, r, response.Error(http.StatusBadRequest, "validation error"))
		return
	case errors.Is(err, models.ErrNotFound):
		response.Render(w, r, response.Error(http.StatusNotFound, "User not found"))
		return
	case errors.Is(err, models.ErrNotVerified):
		response.Render(w, r, response.Error(http.StatusUnauthorized, "Email is not verified"))
		return
	case errors.Is(err, models.ErrUnauthorized):
		response.Render(w, r, response.Error(http.StatusUnauthorized, "Email or password is wrong"))
		return
	default:
		log.Error("login failed", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusInternalServerError, "internal server error"))
		return
	}

	log.Info("user logged in")
	response.Render(w, r, response.WithData(http.StatusOK, res))
}
