// Package avatar содержит обработчик загрузки аватара.
package avatar

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/user-identity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-identity/internal/http/response"
	"github.com/magabrotheeeer/user-identity/internal/lib/sl"
	"github.com/magabrotheeeer/user-identity/internal/models"
)

// FormField имя поля multipart-формы с файлом.
const FormField = "avatar"

// Service описывает обновление аватара.
type Service interface {
	UpdateAvatar(ctx context.Context, acc *models.Account, src io.Reader) (string, error)
}

// Data тело успешного ответа.
type Data struct {
	AvatarURL string `json:"avatarURL"`
}

// Handler обрабатывает PATCH /users/avatars.
type Handler struct {
	log     *slog.Logger
	service Service
	maxSize int64
}

// New создает новый экземпляр Handler. maxSize ограничивает размер тела запроса.
func New(log *slog.Logger, service Service, maxSize int64) *Handler {
	return &Handler{log: log, service: service, maxSize: maxSize}
}

// ServeHTTP godoc
// @Summary Загрузка аватара
// @Description Обрезает изображение до 250x250, сохраняет в JPEG и возвращает его URL
// @Tags Users
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param avatar formData file true "Изображение"
// @Success 200 {object} response.Response{data=Data} "Аватар обновлён"
// @Failure 400 {object} response.ErrorResponse "Файл отсутствует или не является изображением"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 413 {object} response.ErrorResponse "Файл слишком большой"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/avatars [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.avatar"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	acc, ok := middlewarectx.AccountFromContext(r.Context())
	if !ok {
		response.Render(w, r, response.Error(http.StatusUnauthorized, middlewarectx.NotAuthorized))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	file, _, err := r.FormFile(FormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Render(w, r, response.Error(http.StatusRequestEntityTooLarge, "file too large"))
			return
		}
		log.Debug("avatar file is missing", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusBadRequest, "missing avatar file"))
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	url, err := h.service.UpdateAvatar(r.Context(), acc, file)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrUnsupportedImage):
		log.Debug("unsupported image", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusBadRequest, "unsupported image"))
		return
	default:
		log.Error("failed to update avatar", sl.Err(err))
		response.Render(w, r, response.Error(http.StatusInternalServerError, "internal server error"))
		return
	}

	log.Info("avatar updated", slog.String("uuid", acc.UUID))
	response.Render(w, r, response.WithData(http.StatusOK, Data{AvatarURL: url}))
}
