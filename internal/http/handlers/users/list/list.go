// Package list содержит обработчик получения списка учётных записей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/user-identity/internal/http/response"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Service описывает получение всех учётных записей.
type Service interface {
	List(ctx context.Context) ([]models.PublicAccount, error)
}

// Data тело успешного ответа.
type Data struct {
	Users []models.PublicAccount `json:"users"`
}

// Handler обрабатывает GET /users.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список учётных записей
// @Description Возвращает публичные данные всех учётных записей
// @Tags Users
// @Produce  json
// @Success 200 {object} response.Response{data=Data} "Список учётных записей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list accounts", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusInternalServerError, "internal server error"))
		return
	}
	response.Render(w, r, response.WithData(http.StatusOK, Data{Users: users}))
}
