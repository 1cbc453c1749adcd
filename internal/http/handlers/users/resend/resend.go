// Package resend содержит обработчик повторной отправки письма верификации.
package resend

import (
	"context"
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

// Request email, на который нужно повторно отправить письмо.
type Request struct {
	Email string `json:"email" validate:"required" example:"user@example.com"`
}

// Service описывает повторную отправку письма верификации.
type Service interface {
	ResendVerification(ctx context.Context, email string) error
}

// Handler обрабатывает POST /users/verify.
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
// @Summary Повторная отправка письма верификации
// @Description Повторно отправляет письмо с тем же токеном, если email ещё не подтверждён
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Email"
// @Success 200 {object} response.Response "Verification email sent"
// @Failure 400 {object} response.ErrorResponse "Email не передан или уже подтверждён"
// @Failure 404 {object} response.ErrorResponse "Учётная запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/verify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.resend"

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
		response.Render(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.ResendVerification(r.Context(), req.Email)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrValidation):
		response.Render(w, r, response.Error(http.StatusBadRequest, "validation error"))
		return
	case errors.Is(err, models.ErrNotFound):
		response.Render(w, r, response.Error(http.StatusNotFound, "User not found"))
		return
	case errors.Is(err, models.ErrAlreadyVerified):
		response.Render(w, r, response.Error(http.StatusBadRequest, "Verification has already been passed"))
		return
	default:
		log.Error("failed to resend verification", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusInternalServerError, "internal server error"))
		return
	}

	response.Render(w, r, response.New(http.StatusOK, "Verification email sent", nil))
}
