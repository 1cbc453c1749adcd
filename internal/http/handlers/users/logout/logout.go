// Package logout содержит обработчик выхода из учётной записи.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/user-identity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-identity/internal/http/response"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Service описывает завершение сессии.
type Service interface {
	Logout(ctx context.Context, acc *models.Account) error
}

// Handler обрабатывает GET /users/logout.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выход из учётной записи
// @Description Сбрасывает токен текущей сессии. Ранее выданный JWT перестаёт приниматься.
// @Tags Users
// @Security BearerAuth
// @Success 204 "Сессия завершена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, ok := middlewarectx.AccountFromContext(r.Context())
	if !ok {
		response.Render(w, r, response.Error(http.StatusUnauthorized, middlewarectx.NotAuthorized))
		return
	}

	if err := h.service.Logout(r.Context(), acc); err != nil {
		log.Error("logout failed", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusInternalServerError, "internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
