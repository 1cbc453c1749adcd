// Package verify содержит обработчик подтверждения email по токену.
package verify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/user-identity/internal/http/response"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// TokenParam имя параметра маршрута с токеном верификации.
const TokenParam = "verificationToken"

// Service описывает подтверждение email.
type Service interface {
	ConfirmVerification(ctx context.Context, token string) error
}

// Handler обрабатывает GET /users/verify/{verificationToken}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подтверждение email
// @Description Подтверждает email по одноразовому токену из письма
// @Tags Users
// @Produce  json
// @Param verificationToken path string true "Токен верификации"
// @Success 200 {object} response.Response "Verification successful"
// @Failure 404 {object} response.ErrorResponse "Токен не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/verify/{verificationToken} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := chi.URLParam(r, TokenParam)

	err := h.service.ConfirmVerification(r.Context(), token)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		response.Render(w, r, response.Error(http.StatusNotFound, "User not found"))
		return
	default:
		log.Error("verification failed", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusInternalServerError, "internal server error"))
		return
	}

	response.Render(w, r, response.New(http.StatusOK, "Verification successful", nil))
}
