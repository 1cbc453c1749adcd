// Package current содержит обработчик получения текущей учётной записи.
package current

import (
	"net/http"

	"github.com/magabrotheeeer/user-identity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-identity/internal/http/response"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// Service описывает проекцию текущей учётной записи.
type Service interface {
	Current(acc *models.Account) models.AccountSummary
}

// Handler обрабатывает GET /users/current.
type Handler struct {
	service Service
}

// New создает новый экземпляр Handler.
func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Текущая учётная запись
// @Description Возвращает email и тариф аутентифицированной учётной записи
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.AccountSummary} "Текущая учётная запись"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users/current [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	acc, ok := middlewarectx.AccountFromContext(r.Context())
	if !ok {
		response.Render(w, r, response.Error(http.StatusUnauthorized, middlewarectx.NotAuthorized))
		return
	}
	response.Render(w, r, response.WithData(http.StatusOK, h.service.Current(acc)))
}
